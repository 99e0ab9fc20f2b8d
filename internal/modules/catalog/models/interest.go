package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Interest statuses
const (
	InterestPending = "pending"
	InterestSent    = "sent"
)

// Interest kinds, used in delivery records and report sections
const (
	InterestKindProduct   = "producto"
	InterestKindCategory  = "categoria"
	InterestKindPromotion = "promocion"
)

// Day truncates a timestamp to its UTC date, the granularity at which
// interests are deduplicated.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ProductInterest records that a chat mentioned a product on a given
// day. At most one row per (chat, product, day).
type ProductInterest struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_interest_day" json:"chat_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_interest_day" json:"product_id"`
	RecordedOn  time.Time `gorm:"type:date;not null;uniqueIndex:idx_product_interest_day" json:"recorded_on"`
	Status      string    `gorm:"type:text;not null;default:'pending'" json:"status"`
	Observation string    `gorm:"type:text" json:"observation,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Chat    Chat    `gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;references:ID" json:"product"`
}

// TableName specifies the table name
func (ProductInterest) TableName() string {
	return "product_interests"
}

// CategoryInterest records that a chat mentioned a category on a given day.
type CategoryInterest struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_category_interest_day" json:"chat_id"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_category_interest_day" json:"category_id"`
	RecordedOn  time.Time `gorm:"type:date;not null;uniqueIndex:idx_category_interest_day" json:"recorded_on"`
	Status      string    `gorm:"type:text;not null;default:'pending'" json:"status"`
	Observation string    `gorm:"type:text" json:"observation,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Chat     Chat     `gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID;references:ID" json:"category"`
}

// TableName specifies the table name
func (CategoryInterest) TableName() string {
	return "category_interests"
}

// PromotionInterest records that a chat mentioned a promotion on a given day.
type PromotionInterest struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_promotion_interest_day" json:"chat_id"`
	PromotionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_promotion_interest_day" json:"promotion_id"`
	RecordedOn  time.Time `gorm:"type:date;not null;uniqueIndex:idx_promotion_interest_day" json:"recorded_on"`
	Status      string    `gorm:"type:text;not null;default:'pending'" json:"status"`
	Observation string    `gorm:"type:text" json:"observation,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Chat      Chat      `gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Promotion Promotion `gorm:"foreignKey:PromotionID;references:ID" json:"promotion"`
}

// TableName specifies the table name
func (PromotionInterest) TableName() string {
	return "promotion_interests"
}

// DeliveryRecord logs one interest catalog sent to a customer by email.
// Items is the JSON list of interests included in the PDF.
type DeliveryRecord struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Email      string         `gorm:"type:text;not null" json:"email"`
	Items      datatypes.JSON `gorm:"type:jsonb" json:"items"`
	SentAt     time.Time      `gorm:"autoCreateTime" json:"sent_at"`

	// Relationship
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (DeliveryRecord) TableName() string {
	return "delivery_records"
}
