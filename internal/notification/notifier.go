package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sparkmigrate/advisor-api/internal/models"
)

type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

func notifierChannelName(notifier Notifier) string {
	if named, ok := notifier.(fmt.Stringer); ok {
		return named.String()
	}
	return fmt.Sprintf("%T", notifier)
}

func logNotifyError(logger zerolog.Logger, err error, channel string, notif models.Notification) {
	if err == nil {
		return
	}
	logger.Warn().
		Err(err).
		Str("notification_id", notif.ID).
		Str("event_type", string(notif.EventType)).
		Str("channel", channel).
		Msg("failed to deliver notification")
}
