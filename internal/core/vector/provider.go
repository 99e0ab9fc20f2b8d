package vector

import "context"

// Provider abstracts the vector database. Both a gRPC self-hosted Qdrant
// and the Qdrant Cloud HTTP API are supported.
type Provider interface {
	// Initialize opens the connection to the vector database
	Initialize(ctx context.Context) error

	// CreateCollection creates a collection if it does not exist
	CreateCollection(ctx context.Context, name string, vectorSize int) error

	// Upsert inserts or updates points in a collection
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs similarity search, best matches first
	Search(ctx context.Context, collection string, query []float32, limit int) ([]SearchResult, error)

	// Delete deletes points by IDs
	Delete(ctx context.Context, collection string, ids []string) error

	// GetCollectionInfo returns collection metadata
	GetCollectionInfo(ctx context.Context, collection string) (*CollectionInfo, error)

	// Close closes the connection
	Close() error

	// GetProviderType returns "qdrant_cloud" or "qdrant_self_hosted"
	GetProviderType() string
}

// Point is a vector with its payload.
type Point struct {
	ID      string                 `json:"id"`
	Vector  []float32              `json:"vector"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// SearchResult is one ranked hit.
type SearchResult struct {
	ID      string                 `json:"id"`
	Score   float32                `json:"score"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// CollectionInfo describes a collection.
type CollectionInfo struct {
	Name        string `json:"name"`
	VectorSize  int    `json:"vector_size"`
	PointsCount int64  `json:"points_count"`
	Status      string `json:"status"`
}
