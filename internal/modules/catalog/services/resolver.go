package services

import (
	"fmt"
	"strings"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/google/uuid"
)

// ResolverService answers normalized utterances from the catalog
// database, trying tiers in fixed order: exact product, category,
// category summary. Each tier that identifies an entity also records
// the chat's interest in it.
type ResolverService struct {
	catalogRepo repositories.CatalogRepo
	interests   *InterestService
	priceListID uint
}

func NewResolverService(catalogRepo repositories.CatalogRepo, interests *InterestService, priceListID uint) *ResolverService {
	return &ResolverService{
		catalogRepo: catalogRepo,
		interests:   interests,
		priceListID: priceListID,
	}
}

// Resolve returns the catalog answer for the normalized text, or
// ok=false when no tier matches and the caller should fall through to
// semantic resolution. chatID may be uuid.Nil to skip interest tracking.
func (s *ResolverService) Resolve(normalized string, chatID uuid.UUID) (string, bool, error) {
	// Tier 1: exact product name contained in the text. Substring
	// containment is intentional; short names can match inside
	// unrelated text and that trade-off is accepted.
	listings, err := s.catalogRepo.ListActiveProducts(s.priceListID)
	if err != nil {
		return "", false, err
	}
	for _, listing := range listings {
		name := listing.Product.Name
		if !strings.Contains(normalized, strings.ToLower(name)) {
			continue
		}
		if listing.Amount == nil {
			return fmt.Sprintf("No se encontró información para %s.", name), true, nil
		}
		if chatID != uuid.Nil {
			s.interests.RegisterProduct(chatID, listing.Product.ID, "")
		}
		return fmt.Sprintf("%s: Bs. %.2f, stock disponible: %d", name, *listing.Amount, listing.Product.Stock), true, nil
	}

	// Tier 2: category name contained in the text lists its products
	// and fans interest out to every one of them.
	categories, err := s.catalogRepo.ListCategories()
	if err != nil {
		return "", false, err
	}
	for _, category := range categories {
		if !strings.Contains(normalized, strings.ToLower(category.Name)) {
			continue
		}
		products, err := s.catalogRepo.ListProductsByCategoryName(category.Name, s.priceListID)
		if err != nil {
			return "", false, err
		}
		if len(products) == 0 {
			return fmt.Sprintf("No hay productos en la categoría %s.", category.Name), true, nil
		}
		names := make([]string, len(products))
		for i, listing := range products {
			names[i] = listing.Product.Name
			if chatID != uuid.Nil {
				s.interests.RegisterProduct(chatID, listing.Product.ID, "")
			}
		}
		return fmt.Sprintf("Los productos en la categoría %s son:\n- %s", category.Name, strings.Join(names, "\n- ")), true, nil
	}

	// Tier 3: generic category keyword with no specific category
	if strings.Contains(normalized, "categoría") || strings.Contains(normalized, "categorias") {
		counts, err := s.catalogRepo.CategoryCounts()
		if err != nil {
			return "", false, err
		}
		lines := make([]string, len(counts))
		for i, count := range counts {
			lines[i] = fmt.Sprintf("%s: %d productos", count.Name, count.Count)
		}
		return strings.Join(lines, "\n"), true, nil
	}

	return "", false, nil
}
