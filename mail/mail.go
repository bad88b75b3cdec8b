// Package mail sends transactional email through the SendGrid v3 API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

// Default is the process-wide mail client, set up by Init at startup.
var Default *Client

func Init(apiKey, from string) {
	Default = NewClient("https://api.sendgrid.com", apiKey, from)
}

func NewClient(baseURL, apiKey, from string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type emailAddress struct {
	Email string `json:"email"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []contentPart     `json:"content"`
}

type contentPart struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send delivers one HTML email to a single recipient.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	body, err := json.Marshal(sendRequest{
		Personalizations: []personalization{{To: []emailAddress{{Email: to}}}},
		From:             emailAddress{Email: c.from},
		Subject:          subject,
		Content:          []contentPart{{Type: "text/html", Value: htmlBody}},
	})
	if err != nil {
		return fmt.Errorf("marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/mail/send", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mail endpoint returned status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

// SendVerificationEmail mails the six-digit sign-up verification code.
func (c *Client) SendVerificationEmail(ctx context.Context, to, userName, code string) error {
	subject := "Verify your Asterisk Academy account"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your verification code is:</p>
<h2>%s</h2>
<p>The code expires in one hour. If you didn't sign up, you can ignore this email.</p>`, userName, code)
	return c.Send(ctx, to, subject, body)
}

// SendPasswordResetEmail mails the password reset code.
func (c *Client) SendPasswordResetEmail(ctx context.Context, to, userName, code string) error {
	subject := "Reset your Asterisk Academy password"
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Use this code to reset your password:</p>
<h2>%s</h2>
<p>The code expires in one hour. If you didn't request a reset, you can ignore this email.</p>`, userName, code)
	return c.Send(ctx, to, subject, body)
}
