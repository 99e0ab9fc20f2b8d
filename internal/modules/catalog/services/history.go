package services

import (
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/google/uuid"
)

// HistoryService rebuilds a chat's conversation as role-tagged turns
// for the LLM: the business context first, then the most recent turns
// up to the configured window.
type HistoryService struct {
	messageRepo     repositories.MessageRepo
	businessContext string
	maxTurns        int
}

func NewHistoryService(messageRepo repositories.MessageRepo, businessContext string, maxTurns int) *HistoryService {
	return &HistoryService{
		messageRepo:     messageRepo,
		businessContext: businessContext,
		maxTurns:        maxTurns,
	}
}

// Build returns the chat's windowed history with the business context
// as the system turn. Customer turns map to the user role; system and
// agent turns map to the assistant role.
func (s *HistoryService) Build(chatID uuid.UUID) ([]llm.Message, error) {
	messages, err := s.messageRepo.ListByChat(chatID, s.maxTurns)
	if err != nil {
		return nil, err
	}
	return s.assemble(s.businessContext, messages), nil
}

// BuildDay returns the chat's turns for one day (UTC) under a custom
// system turn, windowed like Build. Used by the nightly interest
// extraction, which replays the day under its own instruction.
func (s *HistoryService) BuildDay(chatID uuid.UUID, day time.Time, systemPrompt string) ([]llm.Message, error) {
	messages, err := s.messageRepo.ListByChatOn(chatID, day)
	if err != nil {
		return nil, err
	}
	if s.maxTurns > 0 && len(messages) > s.maxTurns {
		messages = messages[len(messages)-s.maxTurns:]
	}
	return s.assemble(systemPrompt, messages), nil
}

func (s *HistoryService) assemble(systemPrompt string, messages []models.Message) []llm.Message {
	history := make([]llm.Message, 0, len(messages)+1)
	history = append(history, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, message := range messages {
		switch message.Sender {
		case models.SenderCustomer:
			history = append(history, llm.Message{Role: llm.RoleUser, Content: message.Content})
		case models.SenderSystem, models.SenderAgent:
			history = append(history, llm.Message{Role: llm.RoleAssistant, Content: message.Content})
		}
	}
	return history
}
