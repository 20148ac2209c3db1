package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram Bot
	BotToken string

	// Database
	DatabaseURL string

	// Web Server
	WebBind string

	// API auth
	JWTSecret string
	APIKey    string
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		WebBind:     getEnvDefault("WEB_BIND", "0.0.0.0:3000"),
		JWTSecret:   getEnvDefault("JWT_SECRET", "dev-only-change-me"),
		APIKey:      os.Getenv("API_KEY"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
