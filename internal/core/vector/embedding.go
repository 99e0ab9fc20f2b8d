package vector

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingProvider generates embeddings for text.
type EmbeddingProvider interface {
	// GenerateEmbedding generates an embedding for a single text
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)

	// GenerateEmbeddings generates embeddings for multiple texts in one call
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)

	// GetDimensions returns the embedding vector size
	GetDimensions() int
}

// OpenAIEmbeddingProvider uses the OpenAI embeddings API.
type OpenAIEmbeddingProvider struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

// NewOpenAIEmbeddingProvider creates the provider.
// Default model: text-embedding-3-small (1536 dimensions).
func NewOpenAIEmbeddingProvider(apiKey, model string) (*OpenAIEmbeddingProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for embeddings")
	}

	embeddingModel := openai.SmallEmbedding3
	dimensions := 1536
	switch model {
	case "text-embedding-3-large":
		embeddingModel = openai.LargeEmbedding3
		dimensions = 3072
	case "text-embedding-ada-002":
		embeddingModel = openai.AdaEmbeddingV2
		dimensions = 1536
	}

	return &OpenAIEmbeddingProvider{
		client:     openai.NewClient(apiKey),
		model:      embeddingModel,
		dimensions: dimensions,
	}, nil
}

func (p *OpenAIEmbeddingProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := p.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

func (p *OpenAIEmbeddingProvider) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		embeddings[i] = data.Embedding
	}
	return embeddings, nil
}

func (p *OpenAIEmbeddingProvider) GetDimensions() int {
	return p.dimensions
}
