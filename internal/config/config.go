package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds the server settings, loaded from the environment.
type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Upstream credentials
	YelpAPIKey      string
	AnthropicAPIKey string
	// LLM Configuration
	Model string
	// Throttling
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the configuration from the environment. Missing or
// placeholder credentials fail fast rather than at the first request.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "dev"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		YelpAPIKey:      os.Getenv("YELP_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		Model:           getEnv("MODEL", "claude-sonnet-4-20250514"),
	}

	var err error
	cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 5)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that required settings are present and usable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.YelpAPIKey, validation.Required, validation.By(notPlaceholder)),
		validation.Field(&c.AnthropicAPIKey, validation.Required, validation.By(notPlaceholder)),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.RateLimitRPS, validation.Min(0.1)),
		validation.Field(&c.RateLimitBurst, validation.Min(1)),
	)
}

// notPlaceholder rejects keys copied straight from a .env template.
func notPlaceholder(value interface{}) error {
	s, _ := value.(string)
	lowered := strings.ToLower(s)
	for _, marker := range []string{"your_", "your-", "changeme", "<", "placeholder"} {
		if strings.Contains(lowered, marker) {
			return fmt.Errorf("looks like a placeholder, set a real key")
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}
