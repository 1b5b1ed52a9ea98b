package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers one rendered template to one recipient.
type Mailer interface {
	Send(ctx context.Context, to string, tpl Template, notes string) error
}

// SendGridConfig holds the mail provider credentials and sender identity.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// SendGridMailer implements Mailer on top of the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendGridMailer creates a SendGrid-backed mailer.
func NewSendGridMailer(cfg SendGridConfig) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

var _ Mailer = (*SendGridMailer)(nil)

func (m *SendGridMailer) Send(ctx context.Context, to string, tpl Template, notes string) error {
	subject, text, html, ok := Render(tpl, notes)
	if !ok {
		return fmt.Errorf("unknown email template: %s", tpl)
	}

	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), text, html)
	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send %s email to %s: %w", tpl, to, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected %s email to %s: status %d", tpl, to, response.StatusCode)
	}

	log.Printf("Sent %s email to %s", tpl, to)
	return nil
}
