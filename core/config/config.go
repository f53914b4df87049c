package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/faizanfirdousi/roast-my-gpa/common/llm"
)

type Config struct {
	OTel           OTelConfig
	LLM            LLMConfig
	Cache          CacheConfig
	Env            string
	Port           string
	FrontendURL    string
	MaxUploadBytes int64
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	Provider    string // "openai" (also Gemini via BaseURL) or "anthropic"
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	MaxAttempts int
	Timeout     time.Duration
}

type CacheConfig struct {
	RedisURL  string // empty disables the roast cache
	KeyPrefix string
	TTL       time.Duration
}

type ServiceType string

const (
	ServiceTypeServer ServiceType = "server"
	ServiceTypeCLI    ServiceType = "cli"
)

// Load loads configuration from environment variables.
// In development, it loads a service-specific .env file (.env.server) and
// falls back to .env if that file doesn't exist.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("APP_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	cfg := Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "3002"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "roast-my-gpa"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		LLM: LLMConfig{
			Provider:    getEnv("LLM_PROVIDER", "openai"),
			APIKey:      getEnv("LLM_API_KEY", getEnv("GEMINI_API_KEY", "")),
			BaseURL:     getEnv("LLM_BASE_URL", llm.GeminiOpenAIBaseURL),
			Model:       getEnv("LLM_MODEL", "gemini-2.0-flash"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 1024),
			MaxAttempts: getEnvInt("LLM_MAX_ATTEMPTS", 3),
			Timeout:     getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Cache: CacheConfig{
			RedisURL:  getEnv("REDIS_URL", ""),
			KeyPrefix: getEnv("ROAST_CACHE_PREFIX", "roast:"),
			TTL:       getEnvDuration("ROAST_CACHE_TTL", 24*time.Hour),
		},
	}

	if cfg.LLM.Provider != llm.ProviderOpenAI && cfg.LLM.Provider != llm.ProviderAnthropic {
		return Config{}, fmt.Errorf("LLM_PROVIDER must be openai or anthropic, got %q", cfg.LLM.Provider)
	}

	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	if serviceType == ServiceTypeServer && !cfg.LLM.Enabled() {
		return Config{}, fmt.Errorf("LLM_API_KEY or GEMINI_API_KEY is required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
