package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/sparkmigrate/advisor-api/internal/advisor"
	"github.com/sparkmigrate/advisor-api/internal/authz"
	"github.com/sparkmigrate/advisor-api/internal/notification"
	"github.com/sparkmigrate/advisor-api/internal/repository"
)

type StrategyHandler struct {
	repo          repository.StrategyRepository
	notifications notification.Service
	logger        zerolog.Logger
}

func NewStrategyHandler(repo repository.StrategyRepository, notifications notification.Service, logger zerolog.Logger) *StrategyHandler {
	return &StrategyHandler{
		repo:          repo,
		notifications: notifications,
		logger:        logger.With().Str("handler", "strategy").Logger(),
	}
}

func (h *StrategyHandler) OptimizeStrategy(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}

	var req advisor.MigrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := advisor.Validate(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := advisor.DeriveStrategy(req)

	record, err := h.repo.Create(uid, req.TableName, req, result)
	if err != nil {
		http.Error(w, "Failed to save strategy: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if result.RiskAssessment.RiskLevel == advisor.RiskHigh {
		if err := h.notifications.NotifyHighRiskStrategy(r.Context(), uid, record.ID, req.TableName); err != nil {
			h.logger.Warn().Err(err).Str("strategy_id", record.ID).Msg("failed to publish high risk notification")
		}
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *StrategyHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}

	// parse query params with defaults
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

	records, err := h.repo.List(uid, limit, offset)
	if err != nil {
		http.Error(w, "Failed to list strategies: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *StrategyHandler) GetStrategy(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	strategyID := mux.Vars(r)["strategyID"]

	record, err := h.repo.Get(uid, strategyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Strategy not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get strategy: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *StrategyHandler) SessionStats(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}

	stats, err := h.repo.Stats(uid)
	if err != nil {
		http.Error(w, "Failed to get session stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
