// Package mail sends notification emails to the site operators.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/db/models"
)

// ErrNoRecipients is returned when no recipient is configured.
var ErrNoRecipients = errors.New("no mail recipients configured")

// Message is a plain text notification.
type Message struct {
	Subject string
	Body    string
	ReplyTo string
}

// Mailer delivers notifications.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the mailer configured in cfg. A disabled mailer only logs.
func New(cfg config.Mail) (Mailer, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}

	return NewSMTP(cfg)
}

// Noop discards messages.
type Noop struct{}

// Send logs the subject and returns nil.
func (Noop) Send(_ context.Context, msg Message) error {
	log.Debug().Str("subject", msg.Subject).Msg("mail disabled, message dropped")

	return nil
}

// ContactNotification builds the operator notification for a contact message.
func ContactNotification(c *models.ContactMessage) Message {
	return Message{
		Subject: "New Contact Form Submission: " + c.Subject,
		Body:    fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", c.Name, c.Email, c.Message),
		ReplyTo: c.Email,
	}
}
