// ABOUTME: Configuration loader for backend service
// ABOUTME: Loads settings from an optional .env file and environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, for computed combination results
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	ShutdownTimeout    int      // seconds to drain in-flight requests

	// Rate Limiting
	RateLimitEnabled bool    // Enable rate limiting (default: true)
	RateLimitRPS     float64 // Sustained requests per second per client (default: 10)
	RateLimitBurst   int     // Burst allowance per client (default: 20)

	// Pricing
	PricingCatalogPath string // YAML catalog file; empty uses the embedded catalog
}

// LoadEnvFile loads variables from the file named by ENV_FILE (default .env).
// Variables already set in the environment win. A missing file is not an error.
func LoadEnvFile() error {
	path := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func Load() (*Config, error) {
	if err := LoadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		ShutdownTimeout:    getEnvInt("SHUTDOWN_TIMEOUT", 10),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 20),

		PricingCatalogPath: os.Getenv("PRICING_CATALOG_PATH"),
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}
	if cfg.ShutdownTimeout < 1 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be at least 1, got %d", cfg.ShutdownTimeout)
	}

	// Validate rate limit values
	if cfg.RateLimitEnabled {
		if cfg.RateLimitRPS <= 0 || cfg.RateLimitRPS > 10000 {
			return nil, fmt.Errorf("RATE_LIMIT_RPS must be between 0 and 10000, got %g", cfg.RateLimitRPS)
		}
		if cfg.RateLimitBurst < 1 || cfg.RateLimitBurst > 10000 {
			return nil, fmt.Errorf("RATE_LIMIT_BURST must be between 1 and 10000, got %d", cfg.RateLimitBurst)
		}
	}

	return cfg, nil
}

// CacheDuration returns CacheTTL as a duration
func (c *Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// ShutdownDuration returns ShutdownTimeout as a duration
func (c *Config) ShutdownDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
