package ports

import "context"

// MailMessage is an outbound HTML email.
type MailMessage struct {
	To      string
	Subject string
	HTML    string
}

// Delivery reports what a Mailer did with a message.
type Delivery struct {
	// PreviewURL points at a captured copy of the message when the channel
	// runs in test mode; empty for real deliveries.
	PreviewURL string
}

// Mailer is the outbound notification channel. Implementations either
// deliver the message over SMTP or capture it for preview.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) (*Delivery, error)
}
