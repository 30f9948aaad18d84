package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/sparkmigrate/advisor-api/internal/authz"
	"github.com/sparkmigrate/advisor-api/internal/export"
	"github.com/sparkmigrate/advisor-api/internal/repository"
)

type ExportHandler struct {
	repo      repository.StrategyRepository
	exportDir string
	logger    zerolog.Logger
}

func NewExportHandler(repo repository.StrategyRepository, exportDir string, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		repo:      repo,
		exportDir: exportDir,
		logger:    logger.With().Str("handler", "export").Logger(),
	}
}

func (h *ExportHandler) ExportStrategy(w http.ResponseWriter, r *http.Request) {
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

	filename, err := export.Write(h.exportDir, record.Result, time.Now())
	if err != nil {
		h.logger.Error().Err(err).Str("strategy_id", strategyID).Msg("failed to export strategy report")
		http.Error(w, "Failed to export strategy report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"filename": filename})
}
