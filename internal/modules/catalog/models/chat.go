package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat states
const (
	ChatStateOpen   = "open"
	ChatStateClosed = "closed"
)

// Chat represents an ongoing conversation with a customer
type Chat struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	State      string    `gorm:"type:text;not null;default:'open'" json:"state"`

	// LastGreetedAt gates the once-a-day greeting
	LastGreetedAt *time.Time `json:"last_greeted_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationship
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Chat) TableName() string {
	return "chats"
}

// BeforeCreate sets UUID before creating
func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// GreetedOn reports whether the chat was already greeted on the given day (UTC).
func (c *Chat) GreetedOn(day time.Time) bool {
	if c.LastGreetedAt == nil {
		return false
	}
	y1, m1, d1 := c.LastGreetedAt.UTC().Date()
	y2, m2, d2 := day.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
