package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/intent"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/normalizer"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const fallbackApology = "Lo siento, no entendí tu mensaje. ¿Podrías reformularlo?"

// Retriever is the semantic search collaborator behind the last
// deterministic tier.
type Retriever interface {
	Query(ctx context.Context, text string) ([]string, error)
}

// MessageService runs the full resolution pipeline for one inbound
// customer message: greeting gate, synonym normalization, tiered
// catalog resolution, intent-based general answers, then semantic
// retrieval with a generative fallback.
type MessageService struct {
	customerRepo repositories.CustomerRepo
	chatRepo     repositories.ChatRepo
	messageRepo  repositories.MessageRepo
	catalogRepo  repositories.CatalogRepo
	normalizer   *normalizer.Normalizer
	resolver     *ResolverService
	answers      *AnswerService
	interests    *InterestService
	history      *HistoryService
	retriever    Retriever
	llmService   *llm.Service
}

func NewMessageService(
	customerRepo repositories.CustomerRepo,
	chatRepo repositories.ChatRepo,
	messageRepo repositories.MessageRepo,
	catalogRepo repositories.CatalogRepo,
	norm *normalizer.Normalizer,
	resolver *ResolverService,
	answers *AnswerService,
	interests *InterestService,
	history *HistoryService,
	retriever Retriever,
	llmService *llm.Service,
) *MessageService {
	return &MessageService{
		customerRepo: customerRepo,
		chatRepo:     chatRepo,
		messageRepo:  messageRepo,
		catalogRepo:  catalogRepo,
		normalizer:   norm,
		resolver:     resolver,
		answers:      answers,
		interests:    interests,
		history:      history,
		retriever:    retriever,
		llmService:   llmService,
	}
}

// HandleIncoming processes one customer utterance and returns the
// reply text. The reply is never empty.
func (s *MessageService) HandleIncoming(ctx context.Context, phone, text string) (string, error) {
	text = strings.TrimSpace(text)

	customer, err := s.customerRepo.GetOrCreateByPhone(phone)
	if err != nil {
		return "", fmt.Errorf("failed to resolve customer: %w", err)
	}
	chat, err := s.chatRepo.EnsureOpenChat(customer.ID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve chat: %w", err)
	}

	log.Printf("📩 Message from %s (chat %s): %s", phone, chat.ID, text)

	if err := s.messageRepo.Append(&models.Message{
		ChatID:  chat.ID,
		Sender:  models.SenderCustomer,
		Kind:    models.KindText,
		Content: text,
	}); err != nil {
		return "", fmt.Errorf("failed to store message: %w", err)
	}

	// Greet once per day; the greeting turn skips catalog resolution
	now := time.Now()
	if !chat.GreetedOn(now) {
		greeting := fmt.Sprintf("¡Hola %s! 😊 ¿En qué podemos ayudarte hoy?", customer.Name)
		if err := s.chatRepo.UpdateLastGreeted(chat.ID, now); err != nil {
			return "", fmt.Errorf("failed to update greeting state: %w", err)
		}
		if err := s.reply(chat.ID, greeting); err != nil {
			return "", err
		}
		log.Printf("👋 Sent initial greeting to %s", phone)
		return greeting, nil
	}

	normalized := s.normalizer.Apply(text)

	// Deterministic catalog tiers
	answer, ok, err := s.resolver.Resolve(normalized, chat.ID)
	if err != nil {
		return "", fmt.Errorf("catalog resolution failed: %w", err)
	}
	if ok {
		if err := s.reply(chat.ID, answer); err != nil {
			return "", err
		}
		log.Printf("📦 Answered from catalog database.")
		return answer, nil
	}

	// General questions about the whole catalog
	var reply string
	if result := intent.Classify(normalized); result.Intent != intent.IntentNone {
		if result.Intent == intent.IntentCategoryFiltered {
			s.trackCategoryInterest(chat.ID, result.Category)
		}
		reply, err = s.answers.GeneralAnswer(ctx, result)
		if err != nil {
			return "", fmt.Errorf("general answer failed: %w", err)
		}
	} else {
		reply, err = s.semanticFallback(ctx, chat.ID, normalized, text)
		if err != nil {
			return "", err
		}
	}

	if reply == "" {
		reply = fallbackApology
	}
	if err := s.reply(chat.ID, reply); err != nil {
		return "", err
	}
	return reply, nil
}

func (s *MessageService) semanticFallback(ctx context.Context, chatID uuid.UUID, normalized, raw string) (string, error) {
	docs, err := s.retriever.Query(ctx, normalized)
	if err != nil {
		return "", fmt.Errorf("semantic retrieval failed: %w", err)
	}
	log.Printf("🔍 No catalog match. Falling back to semantic retrieval (%d docs).", len(docs))

	prompt := "Responde como un vendedor de papelería basado en los siguientes productos encontrados:\n\n" +
		strings.Join(docs, "\n---\n") +
		fmt.Sprintf("\n\nCliente: %s\nRespuesta:", raw)

	// Business context plus the windowed conversation, then the
	// retrieval prompt as the final user turn.
	messages, err := s.history.Build(chatID)
	if err != nil {
		return "", fmt.Errorf("history reconstruction failed: %w", err)
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	reply, err := s.llmService.Complete(ctx, messages, 0)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func (s *MessageService) trackCategoryInterest(chatID uuid.UUID, categoryName string) {
	if categoryName == "" {
		return
	}
	// The answer path matches the category loosely, so registration must
	// use the same loose lookup or a singular keyword records nothing.
	category, err := s.catalogRepo.FindCategoryLike(categoryName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("❌ Category lookup failed for %q: %v", categoryName, err)
		}
		return
	}
	s.interests.RegisterCategory(chatID, category.ID, "")
}

func (s *MessageService) reply(chatID uuid.UUID, content string) error {
	if err := s.messageRepo.Append(&models.Message{
		ChatID:  chatID,
		Sender:  models.SenderSystem,
		Kind:    models.KindText,
		Content: content,
	}); err != nil {
		return fmt.Errorf("failed to store reply: %w", err)
	}
	return nil
}
