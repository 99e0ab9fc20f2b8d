package handlers

import (
	"github.com/libreria-vinta/catalog-ai-agent-be/internal/core/llm"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	llmService *llm.Service
}

func NewHealthHandler(llmService *llm.Service) *HealthHandler {
	return &HealthHandler{llmService: llmService}
}

func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "catalog-api",
		"provider": h.llmService.GetProviderName(),
	})
}
