package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceList is a named pricing tier. The default list (retail) is
// configured via DEFAULT_PRICE_LIST_ID.
type PriceList struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:text;not null;uniqueIndex" json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (PriceList) TableName() string {
	return "price_lists"
}

// ProductPrice is a product's amount under one price list, in Bs.
type ProductPrice struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_price_list" json:"product_id"`
	PriceListID uint      `gorm:"not null;uniqueIndex:idx_product_price_list" json:"price_list_id"`
	Amount      float64   `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	PriceList PriceList `gorm:"foreignKey:PriceListID;references:ID" json:"-"`
}

// TableName specifies the table name
func (ProductPrice) TableName() string {
	return "product_prices"
}
