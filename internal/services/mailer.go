package services

import (
	"fmt"
	"net/smtp"
)

// Mailer is the email-sending collaborator used by the notification sweep.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Mail     string
	Password string
}

// SMTPMailer sends plain-text mail through a single SMTP account.
type SMTPMailer struct {
	config SMTPConfig
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	auth := smtp.PlainAuth("", m.config.Mail, m.config.Password, m.config.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.config.Mail, to, subject, body,
	))

	addr := m.config.Host + ":" + m.config.Port
	if err := smtp.SendMail(addr, auth, m.config.Mail, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
