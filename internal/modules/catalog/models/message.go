package models

import (
	"time"

	"github.com/google/uuid"
)

// Message senders
const (
	SenderCustomer = "customer"
	SenderSystem   = "system"
	SenderAgent    = "agent"
)

// Message kinds
const (
	KindText  = "text"
	KindOther = "other"
)

// Message represents one turn in a chat. The integer primary key
// preserves append order even when timestamps collide.
type Message struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID  uuid.UUID `gorm:"type:uuid;not null;index" json:"chat_id"`
	Sender  string    `gorm:"type:text;not null" json:"sender"`
	Kind    string    `gorm:"type:text;not null;default:'text'" json:"kind"`
	Content string    `gorm:"type:text" json:"content"`
	SentAt  time.Time `gorm:"autoCreateTime;index" json:"sent_at"`

	// Relationship
	Chat Chat `gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Message) TableName() string {
	return "messages"
}
