package repositories

import (
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepo interface {
	Append(message *models.Message) error
	ListByChat(chatID uuid.UUID, limit int) ([]models.Message, error)
	ListByChatOn(chatID uuid.UUID, day time.Time) ([]models.Message, error)
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepo{db: db}
}

func (r *messageRepo) Append(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListByChat returns the most recent messages in append order, oldest
// first. limit <= 0 returns all.
func (r *messageRepo) ListByChat(chatID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := r.db.Where("chat_id = ?", chatID).Order("sent_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	// Reverse to chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ListByChatOn returns the chat's messages for one day (UTC), oldest first.
func (r *messageRepo) ListByChatOn(chatID uuid.UUID, day time.Time) ([]models.Message, error) {
	start := models.Day(day)
	end := start.Add(24 * time.Hour)

	var messages []models.Message
	err := r.db.Where("chat_id = ? AND sent_at >= ? AND sent_at < ?", chatID, start, end).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}
