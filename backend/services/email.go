package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/FidelisKagashe26/GodCares/backend/config"
)

// Mailer sends transactional and broadcast email.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// NewMailer returns a SendGrid-backed mailer, or a logging mailer when no API
// key is configured (local development and tests).
func NewMailer(cfg *config.Config, log *zap.Logger) Mailer {
	if cfg.SendgridAPIKey == "" {
		return &LogMailer{log: log}
	}
	return &SendgridMailer{
		client:    sendgrid.NewSendClient(cfg.SendgridAPIKey),
		fromName:  cfg.EmailFromName,
		fromEmail: cfg.EmailFrom,
	}
}

type SendgridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func (m *SendgridMailer) Send(to []string, subject, body string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	for _, addr := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", addr), body, body)
		resp, err := m.client.Send(message)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("sendgrid: status %d for %s", resp.StatusCode, addr)
		}
	}
	return nil
}

// LogMailer writes outgoing mail to the log instead of sending it.
type LogMailer struct {
	log *zap.Logger
}

func (m *LogMailer) Send(to []string, subject, body string) error {
	m.log.Info("email (not sent, no SENDGRID_API_KEY)",
		zap.Strings("to", to),
		zap.String("subject", subject),
	)
	return nil
}
