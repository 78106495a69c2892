package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	OtelEnabled        bool
	OtelEndpoint       string
	OtelSampleRatio    float64
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production")
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	LLMProvider     string // "gemini", "ollama", "huggingface"
	LLMModel        string
	LLMBaseURL      string // optional override for the chosen provider
	OllamaBaseURL   string
	CallTimeout     time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
	KeywordCacheTTL time.Duration
}

type AssistantConfig struct {
	CatalogCallTimeout time.Duration
	CategoryFanout     int
	ChatEventsTopic    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/websocket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			OtelSampleRatio:    getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:        getEnv("LLM_MODEL", "gemini-1.5-flash"),
			LLMBaseURL:      getEnv("LLM_BASE_URL", ""),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			CallTimeout:     getEnvAsDuration("AI_CALL_TIMEOUT", 30*time.Second),
			RateLimitRPS:    getEnvAsFloat("AI_RATE_LIMIT_RPS", 5),
			RateLimitBurst:  getEnvAsInt("AI_RATE_LIMIT_BURST", 10),
			KeywordCacheTTL: getEnvAsDuration("KEYWORD_CACHE_TTL", 10*time.Minute),
		},
		Assistant: AssistantConfig{
			CatalogCallTimeout: getEnvAsDuration("CATALOG_CALL_TIMEOUT", 10*time.Second),
			CategoryFanout:     getEnvAsInt("CATEGORY_FANOUT", 4),
			ChatEventsTopic:    getEnv("CHAT_EVENTS_TOPIC", "CHAT_MESSAGE_PROCESSED"),
		},
	}
}

// ProviderAPIKey picks the credential matching the configured provider.
func (c *Config) ProviderAPIKey() string {
	switch strings.ToLower(c.Ai.LLMProvider) {
	case "huggingface":
		return c.Keys.HuggingFace
	case "ollama":
		return ""
	default:
		return c.Keys.GoogleGemini
	}
}

// ProviderBaseURL falls back to OLLAMA_BASE_URL for the ollama provider.
func (c *Config) ProviderBaseURL() string {
	if c.Ai.LLMBaseURL != "" {
		return c.Ai.LLMBaseURL
	}
	if strings.EqualFold(c.Ai.LLMProvider, "ollama") {
		return c.Ai.OllamaBaseURL
	}
	return ""
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
