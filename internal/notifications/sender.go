package notifications

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/suinigeria/events-api/internal/domain/event"
	"github.com/suinigeria/events-api/internal/domain/registration"
)

// Sender turns registration lifecycle moments into concrete messages and applies the
// delivery-target policy: outside production every message is rerouted to the admin
// address and annotated with the true intended recipient, so a misconfigured box can
// never spam real registrants.
type Sender struct {
	mailer     Mailer
	log        *slog.Logger
	adminEmail string
	production bool
}

func NewSender(mailer Mailer, log *slog.Logger, adminEmail string, production bool) *Sender {
	return &Sender{
		mailer:     mailer,
		log:        log,
		adminEmail: adminEmail,
		production: production,
	}
}

func (s *Sender) SendRegistrationConfirmation(ctx context.Context, reg registration.Registration) error {
	subject, body := renderConfirmation(reg.FullName, event.TitleFor(reg.Event))

	// reply-to the registrant so the team can answer directly
	_, err := s.send(ctx, Message{
		To:      reg.Email,
		Subject: subject,
		HTML:    body,
		ReplyTo: reg.Email,
	})

	return err
}

func (s *Sender) SendStatusUpdate(ctx context.Context, reg registration.Registration) error {
	subject, body := renderStatusUpdate(reg.FullName, event.TitleFor(reg.Event), reg.Status)

	_, err := s.send(ctx, Message{
		To:      reg.Email,
		Subject: subject,
		HTML:    body,
	})

	return err
}

// SendTest fires a plain message at the admin address so deliverability can be checked
// end to end without creating a registration.
func (s *Sender) SendTest(ctx context.Context) (string, error) {
	return s.send(ctx, Message{
		To:      s.adminEmail,
		Subject: "Test Email - Sui Nigeria",
		HTML:    "This is a test email to verify the mailer configuration.",
	})
}

func (s *Sender) send(ctx context.Context, msg Message) (string, error) {
	if !s.production && msg.To != s.adminEmail {
		msg.HTML = fmt.Sprintf(`<p style="color: #ff0000;">[TEST MODE] Original recipient: %s</p>`, html.EscapeString(msg.To)) + msg.HTML
		msg.To = s.adminEmail
	}

	id, err := s.mailer.Send(ctx, msg)

	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "mail.sent", "to", msg.To, "subject", msg.Subject, "provider_id", id)

	return id, nil
}
