package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a WhatsApp contact of the store
type Customer struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"type:text;not null;default:'Invitado'" json:"name"`
	Phone string    `gorm:"type:text;not null;uniqueIndex" json:"phone"`
	Email string    `gorm:"type:text" json:"email,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate sets UUID before creating
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Name == "" {
		c.Name = "Invitado"
	}
	return nil
}
