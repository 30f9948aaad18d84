package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/sparkmigrate/advisor-api/internal/authz"
	"github.com/sparkmigrate/advisor-api/internal/repository"
	"github.com/sparkmigrate/advisor-api/internal/temporal"
	"github.com/sparkmigrate/advisor-api/internal/temporal/workflows"
	tc "go.temporal.io/sdk/client"
)

type TrainingHandler struct {
	repo            repository.TrainingRepository
	temporalClient  tc.Client
	defaultEpisodes int
	logger          zerolog.Logger
}

func NewTrainingHandler(repo repository.TrainingRepository, temporalClient tc.Client, defaultEpisodes int, logger zerolog.Logger) *TrainingHandler {
	return &TrainingHandler{
		repo:            repo,
		temporalClient:  temporalClient,
		defaultEpisodes: defaultEpisodes,
		logger:          logger.With().Str("handler", "training").Logger(),
	}
}

func (h *TrainingHandler) StartTraining(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Episodes int `json:"episodes"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
	}
	episodes := payload.Episodes
	if episodes <= 0 {
		episodes = h.defaultEpisodes
	}

	run, err := h.repo.CreateRun(uid, episodes)
	if err != nil {
		http.Error(w, "Failed to create training run: "+err.Error(), http.StatusInternalServerError)
		return
	}

	workflowOptions := tc.StartWorkflowOptions{
		ID:        temporal.TrainingWorkflowIDPrefix + run.ID,
		TaskQueue: temporal.TaskQueueName,
	}
	params := temporal.TrainingParams{
		UserID:   uid,
		RunID:    run.ID,
		Episodes: episodes,
	}
	if _, err := h.temporalClient.ExecuteWorkflow(r.Context(), workflowOptions, workflows.TrainingWorkflow, params); err != nil {
		h.logger.Error().Err(err).Str("run_id", run.ID).Msg("failed to start training workflow")
		if failErr := h.repo.FailRun(run.ID, "failed to start training workflow"); failErr != nil {
			h.logger.Error().Err(failErr).Str("run_id", run.ID).Msg("failed to mark training run as failed")
		}
		http.Error(w, "Failed to start training workflow", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, run)
}

func (h *TrainingHandler) GetTrainingRun(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	runID := mux.Vars(r)["runID"]

	run, err := h.repo.GetRun(uid, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Training run not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get training run: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, run)
}

func (h *TrainingHandler) ListTrainingRuns(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}

	limit := 20
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil {
			offset = v
		}
	}

	runs, err := h.repo.ListRuns(uid, limit, offset)
	if err != nil {
		http.Error(w, "Failed to list training runs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, runs)
}
