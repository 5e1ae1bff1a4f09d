package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	StaticDir       string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Language-model provider configuration.
	LLMProvider    string
	LLMAPIKey      string
	LLMEnabled     bool
	LLMModel       string
	LLMTimeout     time.Duration
	LLMTemperature float64
	LLMMaxTokens   int
	LLMCacheSize   int
	LLMCacheTTL    time.Duration

	SanitizerMode string
}

// Default recommendation models per provider.
const (
	DefaultTogetherModel  = "meta-llama/Meta-Llama-3-8B-Instruct-Lite"
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	llmTimeout, err := parseDuration("LLM_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("LLM_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}

	temperature, err := parseFloat("LLM_TEMPERATURE", 0.3)
	if err != nil {
		return nil, err
	}
	maxTokens, err := parseInt("LLM_MAX_TOKENS", 500)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseInt("LLM_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("LLM_API_KEY")
	llmEnabled := apiKey != ""
	if v := os.Getenv("LLM_ENABLED"); v != "" {
		llmEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		StaticDir:       os.Getenv("STATIC_DIR"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		LLMProvider:    envOrDefault("LLM_PROVIDER", "together"),
		LLMAPIKey:      apiKey,
		LLMEnabled:     llmEnabled,
		LLMModel:       os.Getenv("LLM_MODEL"),
		LLMTimeout:     llmTimeout,
		LLMTemperature: temperature,
		LLMMaxTokens:   maxTokens,
		LLMCacheSize:   cacheSize,
		LLMCacheTTL:    cacheTTL,

		SanitizerMode: envOrDefault("SANITIZER_MODE", "minimal"),
	}

	if cfg.LLMModel == "" {
		switch cfg.LLMProvider {
		case "anthropic":
			cfg.LLMModel = DefaultAnthropicModel
		default:
			cfg.LLMModel = DefaultTogetherModel
		}
	}

	switch cfg.LLMProvider {
	case "together", "anthropic":
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
	switch cfg.SanitizerMode {
	case "minimal", "denylist":
	default:
		return nil, fmt.Errorf("unknown SANITIZER_MODE %q", cfg.SanitizerMode)
	}
	// The credential must come from the environment; there is no compiled-in fallback.
	if cfg.LLMEnabled && cfg.LLMAPIKey == "" {
		return nil, errors.New("LLM_ENABLED is true but LLM_API_KEY is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}
