package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// Sender delivers notification emails. A nil Sender is a no-op.
type Sender interface {
	SendNotification(ctx context.Context, toEmail, subject, body string) error
}

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender `json:"sender"`
	To          []BrevoTo   `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// BrevoClient sends emails via Brevo (Sendinblue) API. Env:
// SENDINBLUE_API_KEY, MAIL_FROM.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@dz-kitab.app"
}

// SendNotification sends one notification email. An unset API key makes the
// client a no-op so development environments work without credentials.
func (c *BrevoClient) SendNotification(ctx context.Context, toEmail, subject, body string) error {
	if c.APIKey == "" {
		return nil
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}

	payload := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: "DZ-Kitab"},
		To:          []BrevoTo{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: renderLayout(subject, body),
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo error: status %d body: %s", resp.StatusCode, respBody)
	}
	return nil
}
