package vector

import (
	"context"
	"fmt"
	"log"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/config"
)

// Service composes the embedding provider with the vector database.
type Service struct {
	provider  Provider
	embedding EmbeddingProvider
}

// NewService builds the vector service from application config and
// opens the connection.
func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	var provider Provider
	var err error

	switch cfg.QdrantMode {
	case "cloud":
		provider, err = NewQdrantCloudProvider(cfg.QdrantURL, cfg.QdrantAPIKey)
	default:
		provider, err = NewQdrantSelfHostedProvider(cfg.QdrantHost, cfg.QdrantPort)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create vector provider: %w", err)
	}

	if err := provider.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize vector provider: %w", err)
	}

	embedding, err := NewOpenAIEmbeddingProvider(cfg.OpenAIKey, cfg.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	log.Printf("🧠 Vector store ready (provider: %s)", provider.GetProviderType())
	return &Service{provider: provider, embedding: embedding}, nil
}

// NewServiceWith wires explicit providers (for testing).
func NewServiceWith(provider Provider, embedding EmbeddingProvider) *Service {
	return &Service{provider: provider, embedding: embedding}
}

// EnsureCollection creates the collection if missing, sized to the
// embedding model.
func (s *Service) EnsureCollection(ctx context.Context, name string) error {
	return s.provider.CreateCollection(ctx, name, s.embedding.GetDimensions())
}

// AddDocument embeds one document and upserts it.
func (s *Service) AddDocument(ctx context.Context, collection, id, text string, metadata map[string]interface{}) error {
	return s.AddDocuments(ctx, collection, []Document{{ID: id, Text: text, Metadata: metadata}})
}

// Document is a text with its identity and metadata, prior to embedding.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]interface{}
}

// AddDocuments embeds documents in one batch and upserts them. The
// original text is stored in the payload under "text".
func (s *Service) AddDocuments(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	embeddings, err := s.embedding.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return err
	}

	points := make([]Point, len(docs))
	for i, doc := range docs {
		payload := map[string]interface{}{"text": doc.Text}
		for key, val := range doc.Metadata {
			payload[key] = val
		}
		points[i] = Point{ID: doc.ID, Vector: embeddings[i], Payload: payload}
	}

	return s.provider.Upsert(ctx, collection, points)
}

// Search embeds the query and returns the closest documents.
func (s *Service) Search(ctx context.Context, collection, query string, limit int) ([]SearchResult, error) {
	queryVector, err := s.embedding.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.provider.Search(ctx, collection, queryVector, limit)
}

// Delete removes documents by ID.
func (s *Service) Delete(ctx context.Context, collection string, ids []string) error {
	return s.provider.Delete(ctx, collection, ids)
}

// CollectionInfo returns collection metadata.
func (s *Service) CollectionInfo(ctx context.Context, collection string) (*CollectionInfo, error) {
	return s.provider.GetCollectionInfo(ctx, collection)
}

// Close releases the vector database connection.
func (s *Service) Close() error {
	return s.provider.Close()
}
