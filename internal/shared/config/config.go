package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string

	// LLM
	LLMProvider string
	OpenAIKey   string
	GroqKey     string
	DeepSeekKey string
	LLMModel    string

	// Vector store
	QdrantMode       string // "cloud" or "self_hosted"
	QdrantURL        string
	QdrantAPIKey     string
	QdrantHost       string
	QdrantPort       int
	VectorCollection string
	EmbeddingModel   string

	// Email delivery
	BrevoAPIKey string
	EmailFrom   string
	EmailName   string

	// Catalog behavior
	DefaultPriceListID int
	MaxHistoryTurns    int
	RetrievalTopK      int
	BusinessContext    string

	// Jobs
	IntentCronSpec   string
	DeliveryCronSpec string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        os.Getenv("PORT"),
		Env:         os.Getenv("ENV"),

		LLMProvider: os.Getenv("LLM_PROVIDER"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		GroqKey:     os.Getenv("GROQ_API_KEY"),
		DeepSeekKey: os.Getenv("DEEPSEEK_API_KEY"),
		LLMModel:    os.Getenv("LLM_MODEL"),

		QdrantMode:       os.Getenv("QDRANT_MODE"),
		QdrantURL:        os.Getenv("QDRANT_URL"),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		QdrantHost:       os.Getenv("QDRANT_HOST"),
		QdrantPort:       getEnvInt("QDRANT_PORT", 6334),
		VectorCollection: os.Getenv("VECTOR_COLLECTION"),
		EmbeddingModel:   os.Getenv("EMBEDDING_MODEL"),

		BrevoAPIKey: os.Getenv("BREVO_API_KEY"),
		EmailFrom:   os.Getenv("EMAIL_FROM"),
		EmailName:   os.Getenv("EMAIL_FROM_NAME"),

		DefaultPriceListID: getEnvInt("DEFAULT_PRICE_LIST_ID", 1),
		MaxHistoryTurns:    getEnvInt("MAX_HISTORY_TURNS", 40),
		RetrievalTopK:      getEnvInt("RETRIEVAL_TOP_K", 3),
		BusinessContext:    os.Getenv("BUSINESS_CONTEXT"),

		IntentCronSpec:   os.Getenv("INTENT_CRON_SPEC"),
		DeliveryCronSpec: os.Getenv("DELIVERY_CRON_SPEC"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "openai"
	}
	if cfg.QdrantMode == "" {
		cfg.QdrantMode = "self_hosted"
	}
	if cfg.VectorCollection == "" {
		cfg.VectorCollection = "productos_marketing"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.EmailName == "" {
		cfg.EmailName = "Librería Vinta"
	}
	if cfg.BusinessContext == "" {
		cfg.BusinessContext = "Eres el asistente virtual de Librería Vinta, una tienda de papelería. " +
			"Atiendes consultas sobre cuadernos, stickers, marcadores, hojas y otros artículos, siempre en español y con amabilidad."
	}
	if cfg.IntentCronSpec == "" {
		cfg.IntentCronSpec = "0 0 21 * * *"
	}
	if cfg.DeliveryCronSpec == "" {
		cfg.DeliveryCronSpec = "0 30 21 * * *"
	}

	return cfg
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
