package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/gywan/gywan-site/internal/config"
)

// SMTP delivers messages through an SMTP relay.
type SMTP struct {
	client  *gomail.Client
	from    string
	to      []string
	timeout time.Duration
}

// NewSMTP creates an SMTP mailer. Authentication is enabled when a username is set.
func NewSMTP(cfg config.Mail) (*SMTP, error) {
	if len(cfg.To) == 0 {
		return nil, ErrNoRecipients
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
	}

	if cfg.TLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}

	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTP{client: client, from: cfg.From, to: cfg.To, timeout: cfg.Timeout}, nil
}

// Send delivers msg to all configured recipients.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()

	if err := m.From(s.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}

	if err := m.To(s.to...); err != nil {
		return fmt.Errorf("set to: %w", err)
	}

	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("set reply-to: %w", err)
		}
	}

	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
