package email

import "fmt"

// Attachment is a base64-encoded file attached to an email.
type Attachment struct {
	Name    string
	Content string // base64
}

// Provider defines the interface for email providers
type Provider interface {
	SendEmail(to, subject, body string) error
	SendEmailWithAttachment(to, subject, body string, attachment Attachment) error
	GetProviderName() string
}

// Service wraps the email provider
type Service struct {
	provider Provider
}

// NewService creates a new email service with the specified provider
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// SendEmail sends a plain text or HTML email
func (s *Service) SendEmail(to, subject, body string) error {
	if s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	return s.provider.SendEmail(to, subject, body)
}

// SendEmailWithAttachment sends an email with one attached file
func (s *Service) SendEmailWithAttachment(to, subject, body string, attachment Attachment) error {
	if s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	return s.provider.SendEmailWithAttachment(to, subject, body, attachment)
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}
