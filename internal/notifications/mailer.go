package notifications

import "context"

// Message is a single transactional email.
type Message struct {
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

// Mailer is the outbound email capability. Implementations return the provider's
// message id on success.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}
