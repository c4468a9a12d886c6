package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderAzure  = "azure"
)

type Config struct {
	Provider string
	Gemini   GeminiConfig
	Azure    AzureConfig

	RequestTimeout time.Duration
	MaxRPS         float64
	Burst          int
	Workers        int
	CacheSize      int

	OutputDir string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type AzureConfig struct {
	APIKey     string
	APIBase    string
	APIVersion string
	Deployment string
}

// Load reads configuration from the environment, loading a .env file first
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Provider: firstNonEmpty(strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))), ProviderGemini),
		Gemini: GeminiConfig{
			APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Model:  firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.0-flash"),
		},
		Azure: AzureConfig{
			APIKey:     strings.TrimSpace(os.Getenv("AZURE_API_KEY")),
			APIBase:    strings.TrimRight(strings.TrimSpace(os.Getenv("AZURE_API_BASE")), "/"),
			APIVersion: firstNonEmpty(strings.TrimSpace(os.Getenv("AZURE_API_VERSION")), "2024-06-01"),
			Deployment: firstNonEmpty(strings.TrimSpace(os.Getenv("AZURE_DEPLOYMENT")), "gpt-4o"),
		},
		RequestTimeout: durationEnv("LLM_TIMEOUT", 30*time.Second),
		MaxRPS:         floatEnv("LLM_MAX_RPS", 2),
		Burst:          intEnv("LLM_BURST", 2),
		Workers:        intEnv("WORKERS", 3),
		CacheSize:      intEnv("LLM_CACHE_SIZE", 128),
		OutputDir:      firstNonEmpty(strings.TrimSpace(os.Getenv("OUTPUT_DIR")), "."),
	}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is not set")
		}
	case ProviderAzure:
		if cfg.Azure.APIKey == "" {
			return nil, errors.New("AZURE_API_KEY is not set")
		}
		if cfg.Azure.APIBase == "" {
			return nil, errors.New("AZURE_API_BASE is not set")
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
	return cfg, nil
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func intEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func floatEnv(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
