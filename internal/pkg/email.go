package pkg

import (
	"crypto/tls"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"budgetmate/internal/config"
)

// Mailer sends HTML mail through the configured SMTP relay.
type Mailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return &Mailer{cfg: cfg, dialer: d}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// ModerationNoticeHTML renders the body of a content-removal email.
func ModerationNoticeHTML(name, message string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`<p>Hi %s,</p><p>%s</p><p>If you think this was a mistake, reply to this email.</p><p>The BudgetMate team</p>`,
		html.EscapeString(name), html.EscapeString(message))
}
