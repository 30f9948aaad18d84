package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sparkmigrate/advisor-api/internal/config"
	"github.com/sparkmigrate/advisor-api/internal/models"
)

// WebhookNotifier POSTs each notification as JSON to a configured URL.
// A missing URL disables the notifier without error.
type WebhookNotifier struct {
	enabled bool
	url     string
	client  *http.Client
	logger  zerolog.Logger
}

func NewWebhookNotifier(cfg config.NotificationConfig, logger zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		enabled: cfg.WebhookURL != "",
		url:     cfg.WebhookURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger.With().Str("notifier", "webhook").Logger(),
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, notif models.Notification) error {
	if !n.enabled {
		return nil
	}

	payload, err := json.Marshal(notif)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.logger.Debug().
		Str("notification_id", notif.ID).
		Str("event_type", string(notif.EventType)).
		Msg("webhook notification dispatched")
	return nil
}

func (n *WebhookNotifier) String() string {
	if !n.enabled {
		return "WebhookNotifier(disabled)"
	}
	return fmt.Sprintf("WebhookNotifier(url=%s)", n.url)
}
