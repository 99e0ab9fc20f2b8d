package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/normalizer"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/retrieval"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/vector"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/handlers"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/services"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/config"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/database"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)

	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	customerRepo := repositories.NewCustomerRepo(db.GORM)
	chatRepo := repositories.NewChatRepo(db.GORM)
	messageRepo := repositories.NewMessageRepo(db.GORM)
	catalogRepo := repositories.NewCatalogRepo(db.GORM)
	interestRepo := repositories.NewInterestRepo(db.GORM)

	llmService := llm.NewService(cfg)

	vectorService, err := vector.NewService(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize vector store: %v", err)
	}
	defer vectorService.Close()
	retriever := retrieval.NewRetriever(vectorService, cfg.VectorCollection, cfg.RetrievalTopK)

	historyService := services.NewHistoryService(messageRepo, cfg.BusinessContext, cfg.MaxHistoryTurns)
	interestService := services.NewInterestService(interestRepo, catalogRepo, chatRepo, historyService, llmService)
	resolverService := services.NewResolverService(catalogRepo, interestService, uint(cfg.DefaultPriceListID))
	answerService := services.NewAnswerService(catalogRepo, llmService, uint(cfg.DefaultPriceListID))
	messageService := services.NewMessageService(
		customerRepo, chatRepo, messageRepo, catalogRepo,
		normalizer.NewDefault(), resolverService, answerService, interestService,
		historyService, retriever, llmService,
	)

	webhookHandler := handlers.NewWebhookHandler(messageService)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, interestRepo, uint(cfg.DefaultPriceListID))
	healthHandler := handlers.NewHealthHandler(llmService)

	app := fiber.New()

	app.Get("/health", healthHandler.GetHealth)
	app.Post("/whatsapp", webhookHandler.HandleWhatsApp)
	app.Get("/products", catalogHandler.ListProducts)
	app.Get("/categories", catalogHandler.ListCategories)
	app.Get("/promotions", catalogHandler.ListPromotions)
	app.Get("/interests/pending", catalogHandler.ListPendingInterests)

	log.Printf("🚀 API running at :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
