package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPHost  string
	HTTPPort  string
	KeyFile   string
	KeyTTL    time.Duration
	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	return &Config{
		HTTPHost:  getEnv("HTTP_HOST", ""),
		HTTPPort:  getEnv("PORT", "5000"),
		KeyFile:   getEnv("KEY_FILE", "keys.json"),
		KeyTTL:    getDurationEnv("KEY_TTL", 24*time.Hour),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
