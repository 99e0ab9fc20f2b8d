package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Promotion is a discount campaign, optionally tied to specific
// products. Either a percentage or an absolute amount applies.
type Promotion struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name            string     `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description     string     `gorm:"type:text" json:"description,omitempty"`
	DiscountPercent float64    `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	DiscountAmount  float64    `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	IsActive        bool       `gorm:"type:boolean;default:true" json:"is_active"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationship
	Products []Product `gorm:"many2many:promotion_products" json:"products,omitempty"`
}

// TableName specifies the table name
func (Promotion) TableName() string {
	return "promotions"
}

// BeforeCreate sets UUID before creating
func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsCurrent reports whether the promotion applies at the given time.
func (p *Promotion) IsCurrent(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	return true
}
