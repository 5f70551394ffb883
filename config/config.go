package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	APP_URL     string
	CORS_ORIGIN string

	STRIPE_SECRET_KEY string

	TELEGRAM_BOT_TOKEN string
	TELEGRAM_CHAT_ID   string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	APP_URL = getEnv("APP_URL", "http://localhost:8080")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")

	// Notifications are best-effort; the app runs without a bot configured.
	TELEGRAM_BOT_TOKEN = getEnv("TELEGRAM_BOT_TOKEN", "")
	TELEGRAM_CHAT_ID = getEnv("TELEGRAM_CHAT_ID", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
