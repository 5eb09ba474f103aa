package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
)

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Delivers one rendered message through an email provider
type Mailer interface {
	Deliver(ctx context.Context, msg Message) error
}

// Ensure HTTPMailer implements Mailer interface.
var _ Mailer = (*HTTPMailer)(nil)

// Client for a Resend-compatible JSON email API
type HTTPMailer struct {
	client   *retryablehttp.Client
	endpoint *url.URL
	apiKey   string
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func NewHTTPMailer(endpoint, apiKey string, logger *slog.Logger) (*HTTPMailer, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid mail endpoint: %w", err)
	}

	client := retryablehttp.NewClient()
	// sends are not idempotent, a retried timeout could deliver twice
	client.RetryMax = 0
	client.Logger = logger

	return &HTTPMailer{client: client, endpoint: base, apiKey: apiKey}, nil
}

func (m *HTTPMailer) Deliver(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(sendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.endpoint.JoinPath("emails").String(),
		bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return nil
}

// Ensure NoopMailer implements Mailer interface.
var _ Mailer = (*NoopMailer)(nil)

// Used when no mail provider is configured
type NoopMailer struct {
	logger *slog.Logger
}

func NewNoopMailer(logger *slog.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

func (m *NoopMailer) Deliver(ctx context.Context, msg Message) error {
	m.logger.WarnContext(ctx, "mail provider not configured, dropping email",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
