package main

import (
	"context"
	"log"
	"time"

	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/vector"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/repositories"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/modules/catalog/services"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/config"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/database"
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/shared/utils"
)

// Rebuilds the semantic product index from the catalog database.
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)

	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	vectorService, err := vector.NewService(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize vector store: %v", err)
	}
	defer vectorService.Close()

	catalogRepo := repositories.NewCatalogRepo(db.GORM)
	indexService := services.NewIndexService(catalogRepo, vectorService, cfg.VectorCollection, uint(cfg.DefaultPriceListID))

	if err := indexService.Reindex(ctx); err != nil {
		log.Fatalf("❌ Reindex failed: %v", err)
	}
}
