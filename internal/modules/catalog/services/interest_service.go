package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/models"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const extractionSystemPrompt = "Eres un asistente que detecta intereses de productos, promociones o categorías mencionadas en los chats de clientes."

const extractionFinalPrompt = "Con base en la conversación anterior, dime los productos, promociones y categorías mencionadas. " +
	"Devuélvelo en formato JSON con estas claves: 'productos', 'categorias', 'promociones'. " +
	`Ejemplo: {"productos": ["Sticker Retro"], "categorias": ["Stickers"], "promociones": ["Vuelta al cole"]}`

// InterestService records which catalog entities a chat showed
// interest in. Synchronous registration runs inline with resolution;
// ExtractDay replays a day's conversations through the LLM.
type InterestService struct {
	interestRepo repositories.InterestRepo
	catalogRepo  repositories.CatalogRepo
	chatRepo     repositories.ChatRepo
	history      *HistoryService
	llmService   *llm.Service
}

func NewInterestService(
	interestRepo repositories.InterestRepo,
	catalogRepo repositories.CatalogRepo,
	chatRepo repositories.ChatRepo,
	history *HistoryService,
	llmService *llm.Service,
) *InterestService {
	return &InterestService{
		interestRepo: interestRepo,
		catalogRepo:  catalogRepo,
		chatRepo:     chatRepo,
		history:      history,
		llmService:   llmService,
	}
}

// RegisterProduct records a product interest for today, logging dedup hits.
func (s *InterestService) RegisterProduct(chatID, productID uuid.UUID, observation string) {
	inserted, err := s.interestRepo.RegisterProductInterest(chatID, productID, time.Now(), observation)
	if err != nil {
		log.Printf("❌ Failed to register product interest for chat %s: %v", chatID, err)
		return
	}
	if !inserted {
		log.Printf("⏭️ Product interest already recorded today (chat %s, product %s)", chatID, productID)
	}
}

// RegisterCategory records a category interest for today.
func (s *InterestService) RegisterCategory(chatID, categoryID uuid.UUID, observation string) {
	inserted, err := s.interestRepo.RegisterCategoryInterest(chatID, categoryID, time.Now(), observation)
	if err != nil {
		log.Printf("❌ Failed to register category interest for chat %s: %v", chatID, err)
		return
	}
	if !inserted {
		log.Printf("⏭️ Category interest already recorded today (chat %s, category %s)", chatID, categoryID)
	}
}

// RegisterPromotion records a promotion interest for today.
func (s *InterestService) RegisterPromotion(chatID, promotionID uuid.UUID, observation string) {
	inserted, err := s.interestRepo.RegisterPromotionInterest(chatID, promotionID, time.Now(), observation)
	if err != nil {
		log.Printf("❌ Failed to register promotion interest for chat %s: %v", chatID, err)
		return
	}
	if !inserted {
		log.Printf("⏭️ Promotion interest already recorded today (chat %s, promotion %s)", chatID, promotionID)
	}
}

// extractedInterests is the JSON shape the extraction prompt asks for.
type extractedInterests struct {
	Productos   []string `json:"productos"`
	Categorias  []string `json:"categorias"`
	Promociones []string `json:"promociones"`
}

// ExtractDay replays every chat active on the given day through the
// LLM and stores the interests it names. Malformed LLM output skips
// the chat; unmatched names are dropped and counted.
func (s *InterestService) ExtractDay(ctx context.Context, day time.Time) error {
	chats, err := s.chatRepo.ListWithMessagesOn(day)
	if err != nil {
		return fmt.Errorf("failed to list day's chats: %w", err)
	}
	log.Printf("🧠 Processing %d chats for %s...", len(chats), models.Day(day).Format("2006-01-02"))

	for _, chat := range chats {
		if err := s.extractChat(ctx, chat, day); err != nil {
			log.Printf("❌ Interest extraction failed for chat %s: %v", chat.ID, err)
		}
	}
	return nil
}

func (s *InterestService) extractChat(ctx context.Context, chat models.Chat, day time.Time) error {
	history, err := s.history.BuildDay(chat.ID, day, extractionSystemPrompt)
	if err != nil {
		return err
	}
	if len(history) <= 1 {
		// Only the system turn: nothing said that day
		return nil
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: extractionFinalPrompt})

	raw, err := s.llmService.Complete(ctx, history, 0.2)
	if err != nil {
		return err
	}

	var extracted extractedInterests
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &extracted); err != nil {
		log.Printf("⚠️ Could not decode interests JSON for chat %s: %s", chat.ID, raw)
		return nil
	}

	dropped := 0
	for _, name := range extracted.Productos {
		product, err := s.catalogRepo.FindProductByName(name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			dropped++
			continue
		}
		if _, err := s.interestRepo.RegisterProductInterest(chat.ID, product.ID, day, ""); err != nil {
			return err
		}
	}
	for _, name := range extracted.Categorias {
		category, err := s.catalogRepo.FindCategoryByName(name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			dropped++
			continue
		}
		if _, err := s.interestRepo.RegisterCategoryInterest(chat.ID, category.ID, day, ""); err != nil {
			return err
		}
	}
	for _, name := range extracted.Promociones {
		promotion, err := s.catalogRepo.FindPromotionByName(name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			dropped++
			continue
		}
		if _, err := s.interestRepo.RegisterPromotionInterest(chat.ID, promotion.ID, day, ""); err != nil {
			return err
		}
	}

	if dropped > 0 {
		log.Printf("⚠️ Dropped %d extracted names not found in catalog (chat %s)", dropped, chat.ID)
	}
	return nil
}
