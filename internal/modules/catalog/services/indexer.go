package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/retrieval"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/vector"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/google/uuid"
)

// Indexer is the slice of the vector service the index job needs.
type Indexer interface {
	EnsureCollection(ctx context.Context, name string) error
	AddDocuments(ctx context.Context, collection string, docs []vector.Document) error
}

// IndexService rebuilds the semantic product index from the catalog.
// Point IDs are product UUIDs, so reindexing overwrites in place.
type IndexService struct {
	catalogRepo repositories.CatalogRepo
	indexer     Indexer
	collection  string
	priceListID uint
}

func NewIndexService(catalogRepo repositories.CatalogRepo, indexer Indexer, collection string, priceListID uint) *IndexService {
	return &IndexService{
		catalogRepo: catalogRepo,
		indexer:     indexer,
		collection:  collection,
		priceListID: priceListID,
	}
}

// Reindex embeds every active product and upserts it into the collection.
func (s *IndexService) Reindex(ctx context.Context) error {
	if err := s.indexer.EnsureCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}

	listings, err := s.catalogRepo.ListActiveProducts(s.priceListID)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	promotions, err := s.catalogRepo.ListCurrentPromotions(time.Now())
	if err != nil {
		return fmt.Errorf("failed to list promotions: %w", err)
	}
	promosByProduct := make(map[uuid.UUID][]string)
	for _, promotion := range promotions {
		for _, product := range promotion.Products {
			promosByProduct[product.ID] = append(promosByProduct[product.ID], promotion.Name)
		}
	}

	docs := make([]vector.Document, 0, len(listings))
	for _, listing := range listings {
		card := retrieval.ProductCard{
			ID:          listing.Product.ID.String(),
			Name:        listing.Product.Name,
			Category:    listing.Product.Category.Name,
			Description: listing.Product.Description,
			Price:       amountOrZero(listing.Amount),
			Stock:       listing.Product.Stock,
			Promotions:  promosByProduct[listing.Product.ID],
		}
		docs = append(docs, card.Document())
	}

	if err := s.indexer.AddDocuments(ctx, s.collection, docs); err != nil {
		return fmt.Errorf("failed to upsert documents: %w", err)
	}

	log.Printf("✅ Indexed %d products into '%s'", len(docs), s.collection)
	return nil
}
