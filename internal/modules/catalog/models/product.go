package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups catalog products (cuadernos, stickers, marcadores...)
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate sets UUID before creating
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Product represents a stationery product in the catalog
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Stock       int       `gorm:"type:integer;not null;default:0" json:"stock"`
	IsActive    bool      `gorm:"type:boolean;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Category Category       `gorm:"foreignKey:CategoryID;references:ID" json:"category"`
	Prices   []ProductPrice `gorm:"foreignKey:ProductID" json:"prices,omitempty"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// BeforeCreate sets UUID before creating
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsAvailable checks if product is available for sale
func (p *Product) IsAvailable() bool {
	return p.IsActive && p.Stock > 0
}
