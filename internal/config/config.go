package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Ai         AIConfig
	Generation GenerationConfig
	Relay      RelayConfig
	Tracing    TracingConfig
}

type AppConfig struct {
	Port               string
	ServiceName        string
	Environment        string
	LogFilePath        string
	EventLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type AIConfig struct {
	LLMProvider   string // "openai" or "ollama"
	LLMModel      string // e.g. "gpt-4o-mini", "llama3"
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaBaseURL string
}

type GenerationConfig struct {
	Timeout       time.Duration
	MaxConcurrent int64
}

type RelayConfig struct {
	Backend string // "memory" or "redis"
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string  // OTLP HTTP host:port
	SampleRatio float64 // fraction of root traces kept, 0..1
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// BaseURL returns the provider base URL matching the selected provider.
func (c AIConfig) BaseURL() string {
	if c.LLMProvider == "ollama" {
		return c.OllamaBaseURL
	}
	return c.OpenAIBaseURL
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			ServiceName:        getEnv("SERVICE_NAME", "vetscribe"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			EventLogFilePath:   getEnv("EVENT_LOG_FILE_PATH", "logs/generation_events.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Generation: GenerationConfig{
			Timeout:       time.Duration(getEnvAsInt("GENERATION_TIMEOUT_SECONDS", 60)) * time.Second,
			MaxConcurrent: int64(getEnvAsInt("GENERATION_MAX_CONCURRENT", 8)),
		},
		Relay: RelayConfig{
			Backend: getEnv("RELAY_BACKEND", "memory"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsRatio("OTEL_SAMPLE_RATIO", 1),
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
	if value, err := strconv.Atoi(strValue); err == nil && value > 0 {
		return value
	}
	return fallback
}

func getEnvAsRatio(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil && value >= 0 && value <= 1 {
		return value
	}
	return fallback
}
