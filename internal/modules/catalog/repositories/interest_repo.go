package repositories

import (
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InterestRepo interface {
	RegisterProductInterest(chatID, productID uuid.UUID, day time.Time, observation string) (bool, error)
	RegisterCategoryInterest(chatID, categoryID uuid.UUID, day time.Time, observation string) (bool, error)
	RegisterPromotionInterest(chatID, promotionID uuid.UUID, day time.Time, observation string) (bool, error)

	ListPendingProductInterests() ([]models.ProductInterest, error)
	ListPendingCategoryInterests() ([]models.CategoryInterest, error)
	ListPendingPromotionInterests() ([]models.PromotionInterest, error)

	MarkProductInterestsSent(ids []uint) error
	MarkCategoryInterestsSent(ids []uint) error
	MarkPromotionInterestsSent(ids []uint) error

	CreateDeliveryRecord(record *models.DeliveryRecord) error
}

type interestRepo struct {
	db *gorm.DB
}

func NewInterestRepo(db *gorm.DB) InterestRepo {
	return &interestRepo{db: db}
}

// RegisterProductInterest inserts the (chat, product, day) row if it is
// not there yet. The unique index plus ON CONFLICT DO NOTHING makes the
// operation atomic; the return value reports whether a row was inserted.
func (r *interestRepo) RegisterProductInterest(chatID, productID uuid.UUID, day time.Time, observation string) (bool, error) {
	interest := models.ProductInterest{
		ChatID:      chatID,
		ProductID:   productID,
		RecordedOn:  models.Day(day),
		Status:      models.InterestPending,
		Observation: observation,
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "product_id"}, {Name: "recorded_on"}},
		DoNothing: true,
	}).Create(&interest)
	return result.RowsAffected > 0, result.Error
}

func (r *interestRepo) RegisterCategoryInterest(chatID, categoryID uuid.UUID, day time.Time, observation string) (bool, error) {
	interest := models.CategoryInterest{
		ChatID:      chatID,
		CategoryID:  categoryID,
		RecordedOn:  models.Day(day),
		Status:      models.InterestPending,
		Observation: observation,
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "category_id"}, {Name: "recorded_on"}},
		DoNothing: true,
	}).Create(&interest)
	return result.RowsAffected > 0, result.Error
}

func (r *interestRepo) RegisterPromotionInterest(chatID, promotionID uuid.UUID, day time.Time, observation string) (bool, error) {
	interest := models.PromotionInterest{
		ChatID:      chatID,
		PromotionID: promotionID,
		RecordedOn:  models.Day(day),
		Status:      models.InterestPending,
		Observation: observation,
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "promotion_id"}, {Name: "recorded_on"}},
		DoNothing: true,
	}).Create(&interest)
	return result.RowsAffected > 0, result.Error
}

func (r *interestRepo) ListPendingProductInterests() ([]models.ProductInterest, error) {
	var interests []models.ProductInterest
	err := r.db.Preload("Product").Preload("Product.Category").Preload("Chat").Preload("Chat.Customer").
		Where("status = ?", models.InterestPending).
		Order("recorded_on ASC, id ASC").
		Find(&interests).Error
	return interests, err
}

func (r *interestRepo) ListPendingCategoryInterests() ([]models.CategoryInterest, error) {
	var interests []models.CategoryInterest
	err := r.db.Preload("Category").Preload("Chat").Preload("Chat.Customer").
		Where("status = ?", models.InterestPending).
		Order("recorded_on ASC, id ASC").
		Find(&interests).Error
	return interests, err
}

func (r *interestRepo) ListPendingPromotionInterests() ([]models.PromotionInterest, error) {
	var interests []models.PromotionInterest
	err := r.db.Preload("Promotion").Preload("Chat").Preload("Chat.Customer").
		Where("status = ?", models.InterestPending).
		Order("recorded_on ASC, id ASC").
		Find(&interests).Error
	return interests, err
}

func (r *interestRepo) MarkProductInterestsSent(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.ProductInterest{}).
		Where("id IN ?", ids).
		Update("status", models.InterestSent).Error
}

func (r *interestRepo) MarkCategoryInterestsSent(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.CategoryInterest{}).
		Where("id IN ?", ids).
		Update("status", models.InterestSent).Error
}

func (r *interestRepo) MarkPromotionInterestsSent(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.PromotionInterest{}).
		Where("id IN ?", ids).
		Update("status", models.InterestSent).Error
}

func (r *interestRepo) CreateDeliveryRecord(record *models.DeliveryRecord) error {
	return r.db.Create(record).Error
}
