package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/config"
)

// Sender delivers plain-text mail. The notification service treats it as a
// best-effort sink; errors are logged by the caller, never retried here.
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// NewSender builds an SMTP sender from config. When SMTP is disabled it
// returns a no-op sender so callers never branch.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.Enabled {
		return noopSender{}
	}
	return &smtpSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

type noopSender struct{}

func (noopSender) Send(string, string, string) error { return nil }
