package mailer

import (
	"context"
	"log/slog"

	"github.com/gridshare/landing/internal/config"
	"github.com/resend/resend-go/v2"
)

type resendMailer struct {
	client    *resend.Client
	fromEmail string
	appURL    string
}

func newResendMailer(cfg *config.Config) *resendMailer {
	return &resendMailer{
		client:    resend.NewClient(cfg.ResendAPIKey),
		fromEmail: cfg.EmailFrom,
		appURL:    cfg.AppURL,
	}
}

func (m *resendMailer) SendConfirmation(email, token string) error {
	subject, body := confirmationTemplate(confirmationLink(m.appURL, email, token))

	params := &resend.SendEmailRequest{
		From:    m.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := m.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "confirmation", "provider", "resend", "to", email)
	}
	return err
}

func (m *resendMailer) Provider() string { return "resend" }
