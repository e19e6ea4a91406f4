// Package mail sends transactional email such as account verification links.
package mail

import (
	"fmt"

	"hiredev/internal/config"
	"hiredev/internal/middleware"

	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers transactional messages to a single recipient.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through an SMTP relay using gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer from SMTP settings.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// LogMailer writes messages to the structured log instead of sending them.
// Used when no SMTP host is configured, so local setups work without a relay.
type LogMailer struct{}

func (LogMailer) Send(to, subject, htmlBody string) error {
	middleware.Logger.Info("mail delivery skipped, no SMTP host configured",
		"to", to,
		"subject", subject,
	)
	return nil
}

// NewMailer returns an SMTP mailer when a host is configured, otherwise a LogMailer.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return LogMailer{}
	}
	return NewSMTPMailer(cfg)
}

// SendVerification dispatches the verification email in the background.
// Registration should not block or fail on mail relay problems.
func SendVerification(m Mailer, baseURL, to string, userID, token string) {
	go func() {
		link := fmt.Sprintf("%s/api/auth/verify-email/%s/%s", baseURL, userID, token)
		body := fmt.Sprintf(
			"<p>Welcome to HireDev!</p><p>Confirm your email address by opening <a href=%q>this link</a>.</p>",
			link,
		)
		if err := m.Send(to, "Verify your HireDev account", body); err != nil {
			middleware.MailSendFailures.Inc()
			middleware.Logger.Warn("verification email failed", "to", to, "error", err)
		}
	}()
}
