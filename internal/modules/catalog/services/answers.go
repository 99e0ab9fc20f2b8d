package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/intent"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
)

const salesExpertSystemPrompt = "Eres un asistente conversacional experto en ventas de papelería."

const generalAnswerTemplate = `Eres un asistente amigable de una tienda de papelería. Responde con tono cálido y profesional lo siguiente, basado en la información de abajo:

%s

La respuesta debe ser clara, en español, con viñetas o listas si es necesario. No inventes nada fuera de lo mostrado.`

// AnswerService builds catalog-wide answers for classified general
// questions. The queried context is the only data the LLM sees.
type AnswerService struct {
	catalogRepo repositories.CatalogRepo
	llmService  *llm.Service
	priceListID uint
}

func NewAnswerService(catalogRepo repositories.CatalogRepo, llmService *llm.Service, priceListID uint) *AnswerService {
	return &AnswerService{
		catalogRepo: catalogRepo,
		llmService:  llmService,
		priceListID: priceListID,
	}
}

// GeneralAnswer queries the catalog for the classified intent and has
// the LLM rephrase the result.
func (s *AnswerService) GeneralAnswer(ctx context.Context, result intent.Result) (string, error) {
	contexto, err := s.buildContext(result)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(generalAnswerTemplate, contexto)
	reply, err := s.llmService.GenerateResponse(ctx, salesExpertSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (s *AnswerService) buildContext(result intent.Result) (string, error) {
	var sb strings.Builder

	switch result.Intent {
	case intent.IntentCategoryFiltered:
		listings, err := s.catalogRepo.ListProductsByCategoryLike(result.Category, s.priceListID)
		if err != nil {
			return "", err
		}
		for _, listing := range listings {
			fmt.Fprintf(&sb, "- %s (Precio: Bs. %.2f, Stock: %d)\n",
				listing.Product.Name, amountOrZero(listing.Amount), listing.Product.Stock)
		}

	case intent.IntentProducts:
		listings, err := s.catalogRepo.ListActiveProducts(s.priceListID)
		if err != nil {
			return "", err
		}
		for _, listing := range listings {
			fmt.Fprintf(&sb, "- %s (Categoría: %s, Precio: Bs. %.2f, Stock: %d)\n",
				listing.Product.Name, listing.Product.Category.Name,
				amountOrZero(listing.Amount), listing.Product.Stock)
		}

	case intent.IntentCategories:
		counts, err := s.catalogRepo.CategoryCounts()
		if err != nil {
			return "", err
		}
		for _, count := range counts {
			fmt.Fprintf(&sb, "- %s: %d productos\n", count.Name, count.Count)
		}

	case intent.IntentPromotions:
		promotions, err := s.catalogRepo.ListCurrentPromotions(time.Now())
		if err != nil {
			return "", err
		}
		if len(promotions) == 0 {
			return "Actualmente no hay promociones activas.", nil
		}
		for _, promotion := range promotions {
			until := ""
			if promotion.EndsAt != nil {
				until = promotion.EndsAt.Format("2006-01-02")
			}
			fmt.Fprintf(&sb, "📣 %s (%.0f%% hasta %s):\n", promotion.Name, promotion.DiscountPercent, until)
			for _, product := range promotion.Products {
				fmt.Fprintf(&sb, "   - %s\n", product.Name)
			}
		}
	}

	return sb.String(), nil
}

func amountOrZero(amount *float64) float64 {
	if amount == nil {
		return 0
	}
	return *amount
}
