package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBURL string

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail        string
	AdminPasswordHash string

	UploadDir  string
	CORSOrigin string

	TelegramBotToken string
	TelegramChatID   int64
}

// Load reads the .env file (if present) and the process environment.
// Missing required variables are fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		DBURL: mustEnv("DB_URL"),

		JWTSecret: mustEnv("JWT_SECRET"),
		JWTTTL:    24 * time.Hour,

		AdminEmail:        mustEnv("ADMIN_EMAIL"),
		AdminPasswordHash: mustEnv("ADMIN_PASSWORD_HASH"),

		UploadDir:  getEnv("UPLOAD_DIR", "./uploads"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}

	if hours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "")); err == nil && hours > 0 {
		cfg.JWTTTL = time.Duration(hours) * time.Hour
	}

	if raw := getEnv("TELEGRAM_CHAT_ID", ""); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = chatID
	}

	return cfg
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
