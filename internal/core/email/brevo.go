package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// BrevoProvider implements email sending via Brevo (formerly Sendinblue)
type BrevoProvider struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

// NewBrevoProvider creates a new Brevo email provider
func NewBrevoProvider(apiKey, fromEmail, fromName string) *BrevoProvider {
	return &BrevoProvider{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		httpClient: &http.Client{},
	}
}

type brevoEmailRequest struct {
	Sender      brevoContact      `json:"sender"`
	To          []brevoContact    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent,omitempty"`
	TextContent string            `json:"textContent,omitempty"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoAttachment struct {
	Content string `json:"content"` // base64
	Name    string `json:"name"`
}

// SendEmail sends an email via Brevo API
func (p *BrevoProvider) SendEmail(to, subject, body string) error {
	return p.send(brevoEmailRequest{
		Sender:      brevoContact{Email: p.fromEmail, Name: p.fromName},
		To:          []brevoContact{{Email: to}},
		Subject:     subject,
		HTMLContent: body,
	})
}

// SendEmailWithAttachment sends an email with one attached file
func (p *BrevoProvider) SendEmailWithAttachment(to, subject, body string, attachment Attachment) error {
	return p.send(brevoEmailRequest{
		Sender:      brevoContact{Email: p.fromEmail, Name: p.fromName},
		To:          []brevoContact{{Email: to}},
		Subject:     subject,
		HTMLContent: body,
		Attachment:  []brevoAttachment{{Content: attachment.Content, Name: attachment.Name}},
	})
}

// GetProviderName returns the provider name
func (p *BrevoProvider) GetProviderName() string {
	return "brevo"
}

func (p *BrevoProvider) send(reqBody brevoEmailRequest) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.brevo.com/v3/smtp/email", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo API error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
