package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"review-catalog/pkg/utils"
)

// Mailer delivers out-of-band notifications. Delivery failures must
// never fail the transaction that queued them; callers log and move on.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	config utils.EmailConfig
}

func NewSMTPMailer(config utils.EmailConfig) Mailer {
	return &smtpMailer{config: config}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var msg strings.Builder
	msg.WriteString("From: " + m.config.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	var auth smtp.Auth
	if m.config.User != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}
