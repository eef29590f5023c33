package mailer

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"pomoweb/internal/config"
)

// Sender delivers transactional mail. Handlers depend on this interface so
// tests can swap in a recording fake.
type Sender interface {
	SendPasswordReset(to, resetURL string) error
}

// SMTPMailer sends mail through the configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer from the MAIL_* settings.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	port, err := strconv.Atoi(cfg.MailPort)
	if err != nil {
		return nil, fmt.Errorf("invalid mail port %q: %w", cfg.MailPort, err)
	}

	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.MailHost, port, cfg.MailUsername, cfg.MailPassword),
		from:   cfg.MailFrom,
	}, nil
}

// SendPasswordReset mails a reset link to a single recipient.
func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your Pomoweb password")
	msg.SetBody("text/plain", fmt.Sprintf("Click to reset your password: %s", resetURL))
	msg.AddAlternative("text/html",
		fmt.Sprintf("<p>Click to reset your password: <a href=%q>Reset password</a></p>", resetURL))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}
