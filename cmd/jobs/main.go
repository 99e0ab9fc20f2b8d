package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/email"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/export"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/services"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/config"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/database"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/jobs"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/utils"
)

// Runs the nightly jobs: interest extraction over the day's chats,
// then PDF/email delivery of pending interests.
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)

	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	chatRepo := repositories.NewChatRepo(db.GORM)
	messageRepo := repositories.NewMessageRepo(db.GORM)
	catalogRepo := repositories.NewCatalogRepo(db.GORM)
	interestRepo := repositories.NewInterestRepo(db.GORM)

	llmService := llm.NewService(cfg)
	historyService := services.NewHistoryService(messageRepo, cfg.BusinessContext, cfg.MaxHistoryTurns)
	interestService := services.NewInterestService(interestRepo, catalogRepo, chatRepo, historyService, llmService)

	emailService := email.NewService(email.NewBrevoProvider(cfg.BrevoAPIKey, cfg.EmailFrom, cfg.EmailName))
	deliveryService := services.NewDeliveryService(interestRepo, export.NewPDFExporter(), emailService)

	scheduler := jobs.NewScheduler()
	if err := scheduler.Add("interest-extraction", cfg.IntentCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := interestService.ExtractDay(ctx, time.Now()); err != nil {
			log.Printf("❌ Interest extraction run failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := scheduler.Add("interest-delivery", cfg.DeliveryCronSpec, func() {
		if err := deliveryService.DeliverPending(); err != nil {
			log.Printf("❌ Interest delivery run failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("❌ %v", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("👋 Shutting down jobs runner...")
}
