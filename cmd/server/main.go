package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/sparkmigrate/advisor-api/internal/config"
	"github.com/sparkmigrate/advisor-api/internal/handlers"
	"github.com/sparkmigrate/advisor-api/internal/middleware"
	"github.com/sparkmigrate/advisor-api/internal/migration"
	"github.com/sparkmigrate/advisor-api/internal/notification"
	"github.com/sparkmigrate/advisor-api/internal/repository"
	"github.com/sparkmigrate/advisor-api/internal/routes"
	"github.com/sparkmigrate/advisor-api/internal/temporal"
	"github.com/sparkmigrate/advisor-api/internal/temporal/activities"
	"github.com/sparkmigrate/advisor-api/internal/temporal/workflows"

	_ "github.com/lib/pq" // PostgreSQL driver
	tc "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

type application struct {
	config         *config.Config
	db             *sql.DB
	temporalClient tc.Client
	logger         zerolog.Logger
	notifications  notification.Service
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	temporalLogger := temporal.NewTemporalAdapter(logger)

	gooseAdapter := migration.NewGooseAdapter(logger)
	goose.SetLogger(gooseAdapter)

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL, logger)

	// Initialize notification service.
	notificationRepo := repository.NewNotificationRepository(db)
	webhookNotifier := notification.NewWebhookNotifier(cfg.Notification, logger)
	notificationService := notification.NewService(notificationRepo, logger, webhookNotifier)

	// Initialize Temporal client.
	temporalClient, err := tc.Dial(tc.Options{
		Logger: temporalLogger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Unable to create Temporal client")
	}
	defer temporalClient.Close()

	// Create the application instance.
	app := &application{
		config:         cfg,
		db:             db,
		temporalClient: temporalClient,
		logger:         logger,
		notifications:  notificationService,
	}

	// Start the Temporal worker in a separate goroutine.
	temporalWorker := app.startTemporalWorker(logger)

	// Initialize the HTTP router and middleware.
	router := app.initRouter()
	loggedRouter := middleware.RequestIDMiddleware(middleware.LoggingMiddleware(app.logger)(router))
	corsHandler := h.CORS(
		h.AllowedOrigins([]string{cfg.CORSAllowedOrigin}),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, temporalWorker, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter() *mux.Router {
	// Repositories
	strategyRepo := repository.NewStrategyRepository(app.db)
	userRepo := repository.NewUserRepository(app.db)
	trainingRepo := repository.NewTrainingRepository(app.db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, app.config.JWTSecret, app.logger)
	strategyHandler := handlers.NewStrategyHandler(strategyRepo, app.notifications, app.logger)
	metricsHandler := handlers.NewMetricsHandler(strategyRepo, app.logger)
	exportHandler := handlers.NewExportHandler(strategyRepo, app.config.Advisor.ExportDir, app.logger)
	trainingHandler := handlers.NewTrainingHandler(trainingRepo, app.temporalClient, app.config.Advisor.TrainingEpisodes, app.logger)
	notificationHandler := handlers.NewNotificationHandler(app.notifications, app.logger)

	return routes.NewRouter(app.config.JWTSecret, authHandler, strategyHandler, metricsHandler, exportHandler, trainingHandler, notificationHandler)
}

func (app *application) startTemporalWorker(logger zerolog.Logger) worker.Worker {
	activityImpl := &activities.Activities{
		TrainingRepo:  repository.NewTrainingRepository(app.db),
		Notifier:      app.notifications,
		TrainingDelay: app.config.Advisor.TrainingDelay,
	}

	w := worker.New(app.temporalClient, temporal.TaskQueueName, worker.Options{})

	w.RegisterWorkflow(workflows.TrainingWorkflow)
	w.RegisterActivity(activityImpl)

	// Start the worker in a goroutine so it doesn't block.
	go func() {
		logger.Info().Msg("Starting Temporal worker...")
		if err := w.Run(worker.InterruptCh()); err != nil {
			logger.Fatal().Err(err).Msg("Unable to start worker")
		}
	}()

	return w
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, temporalWorker worker.Worker, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}

	// Stop the Temporal worker.
	logger.Info().Msg("Stopping Temporal worker...")
	temporalWorker.Stop()
	logger.Info().Msg("Temporal worker stopped.")
}
