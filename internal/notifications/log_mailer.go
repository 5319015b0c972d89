package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// LogMailer writes messages to the log instead of a provider. Used when no Resend
// credential is configured (local dev) and by tests.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) (string, error) {
	// Optional: simulate provider outage
	if os.Getenv("MAILER_FAIL") == "1" {
		return "", fmt.Errorf("provider down (simulated)")
	}

	id := "log-" + uuid.NewString()

	m.log.InfoContext(ctx, "mail.logged",
		"to", msg.To,
		"subject", msg.Subject,
		"id", id,
	)

	return id, nil
}
