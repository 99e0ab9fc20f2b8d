package handlers

import (
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler exposes read-only catalog and interest views for the
// store's back office.
type CatalogHandler struct {
	catalogRepo  repositories.CatalogRepo
	interestRepo repositories.InterestRepo
	priceListID  uint
}

func NewCatalogHandler(catalogRepo repositories.CatalogRepo, interestRepo repositories.InterestRepo, priceListID uint) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo:  catalogRepo,
		interestRepo: interestRepo,
		priceListID:  priceListID,
	}
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	listings, err := h.catalogRepo.ListActiveProducts(h.priceListID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list products"})
	}

	products := make([]fiber.Map, len(listings))
	for i, listing := range listings {
		entry := fiber.Map{
			"id":       listing.Product.ID,
			"name":     listing.Product.Name,
			"category": listing.Product.Category.Name,
			"stock":    listing.Product.Stock,
		}
		if listing.Amount != nil {
			entry["price"] = *listing.Amount
		}
		products[i] = entry
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	counts, err := h.catalogRepo.CategoryCounts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list categories"})
	}
	return c.JSON(fiber.Map{"categories": counts})
}

func (h *CatalogHandler) ListPromotions(c *fiber.Ctx) error {
	promotions, err := h.catalogRepo.ListCurrentPromotions(time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list promotions"})
	}
	return c.JSON(fiber.Map{"promotions": promotions})
}

// ListPendingInterests returns every interest still waiting for delivery.
func (h *CatalogHandler) ListPendingInterests(c *fiber.Ctx) error {
	products, err := h.interestRepo.ListPendingProductInterests()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list pending interests"})
	}
	categories, err := h.interestRepo.ListPendingCategoryInterests()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list pending interests"})
	}
	promotions, err := h.interestRepo.ListPendingPromotionInterests()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list pending interests"})
	}

	return c.JSON(fiber.Map{
		"products":   products,
		"categories": categories,
		"promotions": promotions,
	})
}
