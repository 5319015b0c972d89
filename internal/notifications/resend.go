package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendMailer delivers mail through the Resend HTTP API.
type ResendMailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	payload := resendRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}

	body, err := json.Marshal(payload)

	if err != nil {
		return "", fmt.Errorf("encode resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))

	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := m.client.Do(req)

	if err != nil {
		return "", fmt.Errorf("resend request: %w", err)
	}

	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))

	if err != nil {
		return "", fmt.Errorf("read resend response: %w", err)
	}

	var decoded resendResponse

	// response bodies are JSON for both success and error cases
	if err := json.Unmarshal(raw, &decoded); err != nil && res.StatusCode < 300 {
		return "", fmt.Errorf("decode resend response: %w", err)
	}

	if res.StatusCode >= 300 {
		if decoded.Message != "" {
			return "", fmt.Errorf("resend: %s (status %d)", decoded.Message, res.StatusCode)
		}
		return "", fmt.Errorf("resend: unexpected status %d", res.StatusCode)
	}

	return decoded.ID, nil
}
