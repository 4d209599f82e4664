package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey string

	// Stats persistence (optional; in-memory store when unset)
	RedisURL string

	// Frontend
	FrontendURL string

	// Limits
	RateLimitPerMinute int
	MaxImageSizeMB     int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "3000"),
		Env:                getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:       mustGetEnv("GEMINI_API_KEY"),
		RedisURL:           getEnvOrDefault("REDIS_URL", ""),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		RateLimitPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
		MaxImageSizeMB:     getEnvAsIntOrDefault("MAX_IMAGE_SIZE_MB", 5),
	}

	return cfg
}

// APIKeySet reports whether a Gemini key is configured, for /api/test.
func (c *Config) APIKeySet() bool {
	return c.GeminiAPIKey != ""
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// MaxImageSizeBytes converts the configured megabyte limit for uploads.
func (c *Config) MaxImageSizeBytes() int64 {
	return int64(c.MaxImageSizeMB) << 20
}
