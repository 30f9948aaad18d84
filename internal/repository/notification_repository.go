package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sparkmigrate/advisor-api/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, params CreateNotificationParams) (models.Notification, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (models.Notification, error)
}

type notificationRepository struct {
	db *sql.DB
}

type CreateNotificationParams struct {
	UserID   *string
	Event    models.NotificationEvent
	Severity models.NotificationSeverity
	Title    string
	Message  string
	Metadata map[string]interface{}
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, params CreateNotificationParams) (models.Notification, error) {
	const query = `
		INSERT INTO advisor.notifications (user_id, event_type, severity, title, message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, event_type, severity, title, message, metadata, created_at, read_at
	`

	var userID interface{}
	if params.UserID != nil && strings.TrimSpace(*params.UserID) != "" {
		userID = strings.TrimSpace(*params.UserID)
	}

	var metadata interface{}
	if len(params.Metadata) > 0 {
		bytes, err := json.Marshal(params.Metadata)
		if err != nil {
			return models.Notification{}, fmt.Errorf("marshal metadata: %w", err)
		}
		metadata = bytes
	}

	row := r.db.QueryRowContext(ctx, query, userID, params.Event, params.Severity, params.Title, params.Message, metadata)
	return scanNotification(row)
}

func (r *notificationRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	const query = `
		SELECT id, user_id, event_type, severity, title, message, metadata, created_at, read_at
		FROM advisor.notifications
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, strings.TrimSpace(userID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		notif, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notif)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID string) (models.Notification, error) {
	const query = `
		UPDATE advisor.notifications
		SET read_at = COALESCE(read_at, now())
		WHERE id = $2 AND (user_id IS NULL OR user_id = $1)
		RETURNING id, user_id, event_type, severity, title, message, metadata, created_at, read_at
	`

	row := r.db.QueryRowContext(ctx, query, strings.TrimSpace(userID), notificationID)
	return scanNotification(row)
}

func scanNotification(row rowScanner) (models.Notification, error) {
	var notif models.Notification
	var metadata []byte

	if err := row.Scan(
		&notif.ID,
		&notif.UserID,
		&notif.EventType,
		&notif.Severity,
		&notif.Title,
		&notif.Message,
		&metadata,
		&notif.CreatedAt,
		&notif.ReadAt,
	); err != nil {
		return models.Notification{}, err
	}

	if len(metadata) > 0 {
		notif.Metadata = json.RawMessage(metadata)
	}
	return notif, nil
}
