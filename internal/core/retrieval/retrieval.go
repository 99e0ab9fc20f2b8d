package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/vector"
)

// Searcher is the slice of the vector service the retriever needs.
type Searcher interface {
	Search(ctx context.Context, collection, query string, limit int) ([]vector.SearchResult, error)
}

// Retriever answers free-form queries against the indexed product
// catalog. It is the semantic tier behind the exact-match lookups.
type Retriever struct {
	searcher   Searcher
	collection string
	topK       int
}

// NewRetriever creates a retriever over a collection. topK defaults to 3.
func NewRetriever(searcher Searcher, collection string, topK int) *Retriever {
	if topK <= 0 {
		topK = 3
	}
	return &Retriever{searcher: searcher, collection: collection, topK: topK}
}

// Query returns the indexed documents closest to the text, best first.
// Hits without a stored text payload are skipped.
func (r *Retriever) Query(ctx context.Context, text string) ([]string, error) {
	results, err := r.searcher.Search(ctx, r.collection, text, r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	docs := make([]string, 0, len(results))
	for _, hit := range results {
		if text, ok := hit.Payload["text"].(string); ok && text != "" {
			docs = append(docs, text)
		}
	}
	return docs, nil
}

// ProductCard is the catalog snapshot indexed per product.
type ProductCard struct {
	ID          string
	Name        string
	Category    string
	Description string
	Price       float64
	Stock       int
	Promotions  []string
}

// Document renders the card as the indexed text with its metadata.
// The point ID is the product's UUID so reindexing overwrites in place.
func (c ProductCard) Document() vector.Document {
	promos := "ninguna"
	if len(c.Promotions) > 0 {
		promos = strings.Join(c.Promotions, ", ")
	}

	text := fmt.Sprintf(
		"Producto: %s\nCategoría: %s\nDescripción: %s\nPrecio: Bs. %.2f\nStock disponible: %d\nPromociones: %s",
		c.Name, c.Category, c.Description, c.Price, c.Stock, promos,
	)

	return vector.Document{
		ID:   c.ID,
		Text: text,
		Metadata: map[string]interface{}{
			"nombre":    c.Name,
			"categoria": c.Category,
			"precio":    c.Price,
			"stock":     c.Stock,
		},
	}
}
