package llm

import (
	"context"
	"log"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/config"
)

// Service wraps an LLM provider for dependency injection.
type Service struct {
	provider Provider
}

// NewService creates the LLM service from application config.
func NewService(cfg *config.Config) *Service {
	provider, err := NewProvider(&ProviderConfig{
		Type:        ProviderType(cfg.LLMProvider),
		OpenAIKey:   cfg.OpenAIKey,
		GroqKey:     cfg.GroqKey,
		DeepSeekKey: cfg.DeepSeekKey,
		Model:       cfg.LLMModel,
	})
	if err != nil {
		log.Fatalf("❌ Failed to create LLM provider: %v", err)
	}

	log.Printf("🤖 Using LLM provider: %s", provider.GetProviderName())
	return &Service{provider: provider}
}

// NewServiceWithProvider creates a service with a custom provider (for testing).
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

// Complete runs a role-tagged completion.
func (s *Service) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	return s.provider.Complete(ctx, messages, temperature)
}

// GenerateResponse is the common system+user shape.
func (s *Service) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return s.provider.Complete(ctx, []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: userMessage},
	}, 0)
}

// GetProviderName returns the active provider name.
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
