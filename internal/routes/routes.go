package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sparkmigrate/advisor-api/internal/authz"
	"github.com/sparkmigrate/advisor-api/internal/handlers"
	"github.com/sparkmigrate/advisor-api/internal/models"
)

// NewRouter sets up the API routes
func NewRouter(
	jwtSecret string,
	auth *handlers.AuthHandler,
	strategy *handlers.StrategyHandler,
	metrics *handlers.MetricsHandler,
	export *handlers.ExportHandler,
	training *handlers.TrainingHandler,
	notification *handlers.NotificationHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc("/api/signup", auth.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/login", auth.Login).Methods(http.MethodPost)

	// Authenticated API
	api := router.PathPrefix("/api").Subrouter()
	api.Use(authz.Authenticate(jwtSecret))

	api.HandleFunc("/strategies", strategy.OptimizeStrategy).Methods(http.MethodPost)
	api.HandleFunc("/strategies", strategy.ListStrategies).Methods(http.MethodGet)
	api.HandleFunc("/strategies/stats", strategy.SessionStats).Methods(http.MethodGet)
	api.HandleFunc("/strategies/{strategyID}", strategy.GetStrategy).Methods(http.MethodGet)
	api.HandleFunc("/strategies/{strategyID}/export", export.ExportStrategy).Methods(http.MethodPost)

	api.HandleFunc("/metrics", metrics.GetPerformanceMetrics).Methods(http.MethodGet)

	api.Handle("/training/runs", authz.RequireRoleHandler(models.RoleAdmin, http.HandlerFunc(training.StartTraining))).Methods(http.MethodPost)
	api.HandleFunc("/training/runs", training.ListTrainingRuns).Methods(http.MethodGet)
	api.HandleFunc("/training/runs/{runID}", training.GetTrainingRun).Methods(http.MethodGet)

	api.HandleFunc("/notifications", notification.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{notificationID}/read", notification.MarkRead).Methods(http.MethodPost)

	return router
}
