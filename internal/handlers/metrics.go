package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sparkmigrate/advisor-api/internal/authz"
	"github.com/sparkmigrate/advisor-api/internal/repository"
)

// MetricsHandler serves the dashboard's performance-metrics document. The
// averages are computed over the caller's optimization history.
type MetricsHandler struct {
	repo   repository.StrategyRepository
	logger zerolog.Logger
}

func NewMetricsHandler(repo repository.StrategyRepository, logger zerolog.Logger) *MetricsHandler {
	return &MetricsHandler{
		repo:   repo,
		logger: logger.With().Str("handler", "metrics").Logger(),
	}
}

func (h *MetricsHandler) GetPerformanceMetrics(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}

	stats, err := h.repo.Stats(uid)
	if err != nil {
		http.Error(w, "Failed to get performance metrics: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_optimizations":     stats.TotalOptimizations,
		"avg_quality_score":       stats.AvgQualityScore,
		"avg_processing_time":     stats.AvgProcessingTime,
		"avg_success_probability": stats.AvgSuccessProbability,
	})
}
