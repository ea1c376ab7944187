package mailer

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gridshare/landing/internal/config"
)

// Mailer sends the transactional confirmation email for a subscription.
type Mailer interface {
	SendConfirmation(email, token string) error
	Provider() string
}

// New picks the provider once, from which API key is configured. Development
// always uses log mode so local testing never needs credentials.
func New(cfg *config.Config) Mailer {
	if cfg.IsDevelopment() {
		return &logMailer{appURL: cfg.AppURL}
	}

	switch {
	case cfg.ResendAPIKey != "":
		return newResendMailer(cfg)
	case cfg.SparkPostAPIKey != "":
		return newSparkPostMailer(cfg)
	default:
		// Config validation rejects this in production; tolerate it elsewhere.
		slog.Warn("no email provider configured, falling back to log mode")
		return &logMailer{appURL: cfg.AppURL}
	}
}

// confirmationLink builds the link embedded in the confirmation email.
func confirmationLink(appURL, email, token string) string {
	return fmt.Sprintf("%s/confirm?token=%s&email=%s", appURL, url.QueryEscape(token), url.QueryEscape(email))
}

// logMailer writes the email to the log instead of sending it.
type logMailer struct {
	appURL string
}

func (m *logMailer) SendConfirmation(email, token string) error {
	subject, _ := confirmationTemplate(confirmationLink(m.appURL, email, token))
	slog.Info("email sent (log mode)", "type", "confirmation", "to", email, "subject", subject,
		"url", confirmationLink(m.appURL, email, token))
	return nil
}

func (m *logMailer) Provider() string { return "log" }
