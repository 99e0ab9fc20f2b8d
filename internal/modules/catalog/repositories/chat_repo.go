package repositories

import (
	"errors"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepo interface {
	EnsureOpenChat(customerID uuid.UUID) (*models.Chat, error)
	GetByID(id uuid.UUID) (*models.Chat, error)
	UpdateLastGreeted(id uuid.UUID, at time.Time) error
	Close(id uuid.UUID) error
	ListWithMessagesOn(day time.Time) ([]models.Chat, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepo(db *gorm.DB) ChatRepo {
	return &chatRepo{db: db}
}

// EnsureOpenChat returns the customer's open chat, creating one if none exists.
func (r *chatRepo) EnsureOpenChat(customerID uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.Where("customer_id = ? AND state = ?", customerID, models.ChatStateOpen).
		Order("created_at DESC").
		First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chat = models.Chat{CustomerID: customerID, State: models.ChatStateOpen}
	if err := r.db.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepo) GetByID(id uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.Preload("Customer").First(&chat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepo) UpdateLastGreeted(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.Chat{}).Where("id = ?", id).Update("last_greeted_at", at).Error
}

func (r *chatRepo) Close(id uuid.UUID) error {
	return r.db.Model(&models.Chat{}).Where("id = ?", id).Update("state", models.ChatStateClosed).Error
}

// ListWithMessagesOn returns chats that received customer messages on
// the given day (UTC), with their customers preloaded. Used by the
// nightly interest extraction.
func (r *chatRepo) ListWithMessagesOn(day time.Time) ([]models.Chat, error) {
	start := models.Day(day)
	end := start.Add(24 * time.Hour)

	var chats []models.Chat
	err := r.db.Preload("Customer").
		Where("id IN (?)", r.db.Model(&models.Message{}).
			Select("DISTINCT chat_id").
			Where("sender = ? AND sent_at >= ? AND sent_at < ?", models.SenderCustomer, start, end)).
		Find(&chats).Error
	return chats, err
}
