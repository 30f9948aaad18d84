package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sparkmigrate/advisor-api/internal/models"
	"github.com/sparkmigrate/advisor-api/internal/repository"
)

type Event struct {
	UserID   string
	Event    models.NotificationEvent
	Severity models.NotificationSeverity
	Title    string
	Message  string
	Metadata map[string]interface{}
}

type Service interface {
	Publish(ctx context.Context, evt Event) (models.Notification, error)
	NotifyHighRiskStrategy(ctx context.Context, userID, strategyID, tableName string) error
	NotifyTrainingCompleted(ctx context.Context, userID, runID string, episodes int, successRate float64) error
	NotifyTrainingFailed(ctx context.Context, userID, runID, reason string) error
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (models.Notification, error)
}

type service struct {
	repo      repository.NotificationRepository
	logger    zerolog.Logger
	notifiers []Notifier
}

func NewService(repo repository.NotificationRepository, logger zerolog.Logger, notifiers ...Notifier) Service {
	active := make([]Notifier, 0, len(notifiers))
	for _, notifier := range notifiers {
		if notifier != nil {
			active = append(active, notifier)
		}
	}
	return &service{
		repo:      repo,
		logger:    logger.With().Str("component", "notification_service").Logger(),
		notifiers: active,
	}
}

func (s *service) Publish(ctx context.Context, evt Event) (models.Notification, error) {
	if evt.Event == "" {
		return models.Notification{}, fmt.Errorf("event type is required")
	}
	if evt.Severity == "" {
		evt.Severity = models.NotificationSeverityInfo
	}
	title := strings.TrimSpace(evt.Title)
	message := strings.TrimSpace(evt.Message)
	if title == "" {
		title = string(evt.Event)
	}
	params := repository.CreateNotificationParams{
		Event:    evt.Event,
		Severity: evt.Severity,
		Title:    title,
		Message:  message,
		Metadata: evt.Metadata,
	}
	if uid := strings.TrimSpace(evt.UserID); uid != "" {
		params.UserID = &uid
	}

	notif, err := s.repo.Create(ctx, params)
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", string(evt.Event)).Msg("failed to persist notification")
		return models.Notification{}, err
	}
	for _, notifier := range s.notifiers {
		if err := notifier.Notify(ctx, notif); err != nil {
			logNotifyError(s.logger, err, notifierChannelName(notifier), notif)
		}
	}
	return notif, nil
}

func (s *service) NotifyHighRiskStrategy(ctx context.Context, userID, strategyID, tableName string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required for strategy notifications")
	}
	_, err := s.Publish(ctx, Event{
		UserID:   userID,
		Event:    models.NotificationEventHighRiskStrategy,
		Severity: models.NotificationSeverityWarning,
		Title:    fmt.Sprintf("High risk strategy: %s", tableName),
		Message:  fmt.Sprintf("The derived strategy for %s was classified HIGH risk. Review the risk factors before migrating.", tableName),
		Metadata: map[string]interface{}{
			"strategy_id": strategyID,
			"table_name":  tableName,
		},
	})
	return err
}

func (s *service) NotifyTrainingCompleted(ctx context.Context, userID, runID string, episodes int, successRate float64) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required for training notifications")
	}
	_, err := s.Publish(ctx, Event{
		UserID:   userID,
		Event:    models.NotificationEventTrainingCompleted,
		Severity: models.NotificationSeverityInfo,
		Title:    "Model training completed",
		Message:  fmt.Sprintf("Training run %s finished %d episodes with a %.0f%% success rate.", runID, episodes, successRate*100),
		Metadata: map[string]interface{}{
			"training_run_id": runID,
			"episodes":        episodes,
			"success_rate":    successRate,
		},
	})
	return err
}

func (s *service) NotifyTrainingFailed(ctx context.Context, userID, runID, reason string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required for training notifications")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Unknown error"
	}
	_, err := s.Publish(ctx, Event{
		UserID:   userID,
		Event:    models.NotificationEventTrainingFailed,
		Severity: models.NotificationSeverityError,
		Title:    "Model training failed",
		Message:  fmt.Sprintf("Training run %s failed: %s", runID, reason),
		Metadata: map[string]interface{}{
			"training_run_id": runID,
			"reason":          reason,
		},
	})
	return err
}

func (s *service) ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return s.repo.ListRecent(ctx, userID, limit)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID string) (models.Notification, error) {
	return s.repo.MarkRead(ctx, userID, notificationID)
}
