package notifier

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Notifier delivers alert and snapshot messages.
type Notifier interface {
	Send(text string) error
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
	Name() string
}

// LogNotifier writes messages to the log, used when Telegram is not configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (l *LogNotifier) Name() string { return "log" }

func (l *LogNotifier) Send(text string) error {
	log.Info().Str("notification", text).Msg("notify")
	return nil
}

func (l *LogNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	return l.Send(text)
}
