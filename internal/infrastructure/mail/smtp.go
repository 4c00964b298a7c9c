// Package mail provides the outbound notification channel: a real SMTP
// sender and an in-memory outbox used when no credentials are configured.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/corpspend/expense-api/internal/core/ports"
)

const senderName = "CorpSpend"

// Config captures the SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether real credentials are present. Without them the
// application falls back to the preview outbox.
func (c Config) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// SMTPMailer delivers messages over SMTP using go-mail.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTP builds an SMTPMailer from cfg.
func NewSMTP(cfg Config) (*SMTPMailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// Send delivers msg. The returned Delivery never carries a preview reference.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.MailMessage) (*ports.Delivery, error) {
	out := gomail.NewMsg()
	if err := out.FromFormat(senderName, m.from); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("smtp recipient: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return nil, fmt.Errorf("smtp send: %w", err)
	}
	return &ports.Delivery{}, nil
}
