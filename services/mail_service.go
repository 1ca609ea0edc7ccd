package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/HSouheill/barrim_admin/config"
)

// MailSender sends one message to many recipients
type MailSender interface {
	SendBcc(recipients []string, subject, body string) error
}

// SMTPMailer sends mail over SMTP, with every recipient on Bcc
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer returns nil when SMTP is not configured
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if cfg.SMTPHost == "" {
		logrus.Warn("SMTP_HOST not set, subscriber broadcasts disabled")
		return nil
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPUser,
	}
}

func (m *SMTPMailer) SendBcc(recipients []string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.from)
	msg.SetHeader("Bcc", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	logrus.WithField("recipients", len(recipients)).Printf("Broadcast email sent: %s", subject)
	return nil
}
