package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gridshare/landing/internal/config"
)

type sparkPostMailer struct {
	baseURL    string
	apiKey     string
	fromEmail  string
	appURL     string
	timeout    time.Duration
	httpClient *http.Client
}

func newSparkPostMailer(cfg *config.Config) *sparkPostMailer {
	return &sparkPostMailer{
		baseURL:    cfg.SparkPostBaseURL,
		apiKey:     cfg.SparkPostAPIKey,
		fromEmail:  cfg.EmailFrom,
		appURL:     cfg.AppURL,
		timeout:    cfg.EmailSendTimeout,
		httpClient: &http.Client{Timeout: cfg.EmailSendTimeout},
	}
}

// transmission is the subset of the SparkPost transmissions payload we use.
type transmission struct {
	Recipients []recipient `json:"recipients"`
	Content    content     `json:"content"`
}

type recipient struct {
	Address address `json:"address"`
}

type address struct {
	Email string `json:"email"`
}

type content struct {
	From    address `json:"from"`
	Subject string  `json:"subject"`
	Text    string  `json:"text"`
}

type transmissionResponse struct {
	Results struct {
		TotalAcceptedRecipients int    `json:"total_accepted_recipients"`
		ID                      string `json:"id"`
	} `json:"results"`
	Errors []struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"errors"`
}

func (m *sparkPostMailer) SendConfirmation(email, token string) error {
	subject, body := confirmationTemplate(confirmationLink(m.appURL, email, token))

	payload := transmission{
		Recipients: []recipient{{Address: address{Email: email}}},
		Content: content{
			From:    address{Email: m.fromEmail},
			Subject: subject,
			Text:    body,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling transmission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/transmissions", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	var spResp transmissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&spResp); err != nil {
		return fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || len(spResp.Errors) > 0 {
		msg := "transmission rejected"
		if len(spResp.Errors) > 0 {
			msg = spResp.Errors[0].Message
		}
		return fmt.Errorf("sparkpost API error (status %d): %s", resp.StatusCode, msg)
	}

	slog.Info("email sent", "type", "confirmation", "provider", "sparkpost",
		"to", email, "transmission_id", spResp.Results.ID)
	return nil
}

func (m *sparkPostMailer) Provider() string { return "sparkpost" }
