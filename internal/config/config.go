package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Omim   string
	Ncbi   string
	OpenAI string
}

type AIConfig struct {
	OllamaBaseURL string
	LLMProvider   string // "ollama" or "openai"
	LLMModel      string // e.g. "llama3", "gpt-4o-mini"
}

type PipelineConfig struct {
	SessionStore         string // "memory" or "redis"
	SessionTTLMinutes    int
	SourceTimeoutSeconds int
	TurnTopic            string
	Mim2GenePath         string // optional local mim2gene.txt for OMIM symbol resolution
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:3001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Omim:   getEnv("OMIM_API_KEY", ""),
			Ncbi:   getEnv("NCBI_API_KEY", ""),
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", ""),
		},
		Pipeline: PipelineConfig{
			SessionStore:         getEnv("SESSION_STORE", "memory"),
			SessionTTLMinutes:    getEnvAsInt("SESSION_TTL_MINUTES", 60),
			SourceTimeoutSeconds: getEnvAsInt("SOURCE_TIMEOUT_SECONDS", 12),
			TurnTopic:            getEnv("TURN_COMPLETED_TOPIC_NAME", "TURN_COMPLETED"),
			Mim2GenePath:         getEnv("OMIM_MIM2GENE_PATH", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
