package llm

import (
	"context"
	"fmt"
)

// Message is one role-tagged turn handed to a provider.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider is the generative-completion contract. Temperature <= 0 means
// the provider default.
type Provider interface {
	Complete(ctx context.Context, messages []Message, temperature float32) (string, error)
	GetProviderName() string
}

// ProviderType selects the concrete provider in the factory.
type ProviderType string

const (
	ProviderOpenAI   ProviderType = "openai"
	ProviderGroq     ProviderType = "groq"
	ProviderDeepSeek ProviderType = "deepseek"
)

// ProviderConfig holds factory inputs.
type ProviderConfig struct {
	Type ProviderType

	OpenAIKey   string
	GroqKey     string
	DeepSeekKey string

	Model       string
	Temperature float32
	MaxTokens   int
}

// NewProvider builds the configured completion provider.
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderGroq:
		if cfg.GroqKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required")
		}
		return NewGroqProvider(cfg.GroqKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderDeepSeek:
		if cfg.DeepSeekKey == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY is required")
		}
		return NewDeepSeekProvider(cfg.DeepSeekKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}
