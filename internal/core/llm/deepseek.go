package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type DeepSeekProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewDeepSeekProvider(apiKey string, model string, temperature float32, maxTokens int) *DeepSeekProvider {
	if model == "" {
		model = "deepseek-chat"
	}
	if temperature == 0 {
		temperature = 0.7
	}
	if maxTokens == 0 {
		maxTokens = 2048
	}

	// DeepSeek uses OpenAI-compatible API with custom base URL
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = "https://api.deepseek.com/v1"

	return &DeepSeekProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (p *DeepSeekProvider) GetProviderName() string {
	return "DeepSeek"
}

func (p *DeepSeekProvider) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	if temperature <= 0 {
		temperature = p.temperature
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("deepseek error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from DeepSeek")
	}
	return resp.Choices[0].Message.Content, nil
}
