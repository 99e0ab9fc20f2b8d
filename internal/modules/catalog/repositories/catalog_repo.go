package repositories

import (
	"strings"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"gorm.io/gorm"
)

// ProductListing is a product with its amount under one price list.
// Amount is nil when the product has no price row on that list.
type ProductListing struct {
	Product models.Product
	Amount  *float64
}

// CategoryCount is the number of active products in a category.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type CatalogRepo interface {
	ListActiveProducts(priceListID uint) ([]ProductListing, error)
	ListProductsByCategoryName(name string, priceListID uint) ([]ProductListing, error)
	ListProductsByCategoryLike(filter string, priceListID uint) ([]ProductListing, error)
	ListCategories() ([]models.Category, error)
	CategoryCounts() ([]CategoryCount, error)
	FindProductByName(name string) (*models.Product, error)
	FindCategoryByName(name string) (*models.Category, error)
	FindCategoryLike(filter string) (*models.Category, error)
	FindPromotionByName(name string) (*models.Promotion, error)
	ListCurrentPromotions(now time.Time) ([]models.Promotion, error)
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepo {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) ListActiveProducts(priceListID uint) ([]ProductListing, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Preload("Prices", "price_list_id = ?", priceListID).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return toListings(products), nil
}

func (r *catalogRepo) ListProductsByCategoryName(name string, priceListID uint) ([]ProductListing, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Preload("Prices", "price_list_id = ?", priceListID).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("LOWER(categories.name) = LOWER(?) AND products.is_active = ?", name, true).
		Order("products.name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return toListings(products), nil
}

// ListProductsByCategoryLike matches the category loosely, for tokens
// extracted from free text ("cuaderno" finds "Cuadernos").
func (r *catalogRepo) ListProductsByCategoryLike(filter string, priceListID uint) ([]ProductListing, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Preload("Prices", "price_list_id = ?", priceListID).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("LOWER(categories.name) LIKE ? AND products.is_active = ?", "%"+strings.ToLower(filter)+"%", true).
		Order("products.name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return toListings(products), nil
}

func (r *catalogRepo) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *catalogRepo) CategoryCounts() ([]CategoryCount, error) {
	var counts []CategoryCount
	err := r.db.Model(&models.Category{}).
		Select("categories.name AS name, COUNT(products.id) AS count").
		Joins("LEFT JOIN products ON products.category_id = categories.id AND products.is_active = ?", true).
		Group("categories.name").
		Order("categories.name ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *catalogRepo) FindProductByName(name string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").
		Where("LOWER(name) = LOWER(?)", name).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepo) FindCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindCategoryLike matches the category loosely, like
// ListProductsByCategoryLike does, so a singular token still resolves
// the plural category name.
func (r *catalogRepo) FindCategoryLike(filter string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter)+"%").
		Order("name ASC").
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepo) FindPromotionByName(name string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&promotion).Error; err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *catalogRepo) ListCurrentPromotions(now time.Time) ([]models.Promotion, error) {
	var promotions []models.Promotion
	err := r.db.Preload("Products").
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("name ASC").
		Find(&promotions).Error
	return promotions, err
}

func toListings(products []models.Product) []ProductListing {
	listings := make([]ProductListing, len(products))
	for i, product := range products {
		listing := ProductListing{Product: product}
		if len(product.Prices) > 0 {
			amount := product.Prices[0].Amount
			listing.Amount = &amount
		}
		listings[i] = listing
	}
	return listings
}
