package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/utils"
)

const (
	sendGridMailPath = "/v3/mail/send"

	passwordResetSubject = "Password Recovery"

	mailerRetries = 2
)

type sendGridMailer struct {
	client *utils.HTTPClient

	from sendGridAddress

	logger *logger.Logger
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridMessage struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

// NewSendGridMailer constructs a [Mailer] talking to the SendGrid v3 mail
// API at cfg.BaseURL.
//
// Returns an error if cfg.BaseURL cannot be parsed as a valid URL.
func NewSendGridMailer(cfg config.Mailer, logger *logger.Logger) (Mailer, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mailer base url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout, mailerRetries)
	client.
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &sendGridMailer{
		client: client,
		from:   sendGridAddress{Email: cfg.FromEmail, Name: cfg.FromName},
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SendNewPassword implements [Mailer]. It POSTs a plain text message to
// /v3/mail/send. SendGrid answers 202 Accepted on success.
func (m *sendGridMailer) SendNewPassword(ctx context.Context, toEmail, newPassword string) error {
	msg := sendGridMessage{
		Personalizations: []sendGridPersonalization{{To: []sendGridAddress{{Email: toEmail}}}},
		From:             m.from,
		Subject:          passwordResetSubject,
		Content: []sendGridContent{{
			Type:  "text/plain",
			Value: "Here is your new password: " + newPassword,
		}},
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(sendGridMailPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Warn().Int("status", resp.StatusCode()).Msg("mail provider refused password reset mail")
		return err
	}

	return nil
}
