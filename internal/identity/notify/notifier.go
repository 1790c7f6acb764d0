package notify

import (
	"context"
	"log/slog"
)

// Notifier delivers a message to a recipient. The service treats delivery
// as best-effort; callers decide whether a failure is fatal for the request.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogNotifier writes notifications to the logger instead of sending them.
// Used in development and as the default when no SMTP address is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, to, subject, body string) error {
	n.Logger.Info("notification (log only)",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
