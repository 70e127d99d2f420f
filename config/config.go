package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	BaseURL         string
	CacheSize       int
	LogLevel        string
	WebhookURL      string
	DefaultLogoPath string
	EventsLogPath   string
	DailyRateLimit  int
}

func LoadConfig() Config {
	// Optional .env file; real env vars win
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheSize, _ := strconv.Atoi(getEnv("CACHE_SIZE", "1000"))
	dailyLimit, _ := strconv.Atoi(getEnv("DAILY_RATE_LIMIT", "200"))

	return Config{
		Port:            port,
		DatabaseURL:     getEnv("DATABASE_URL", "qrforge.db"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		CacheSize:       cacheSize,
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		WebhookURL:      getEnv("WEBHOOK_URL", ""),
		DefaultLogoPath: getEnv("DEFAULT_LOGO_PATH", ""),
		EventsLogPath:   getEnv("EVENTS_LOG_PATH", "events.log"),
		DailyRateLimit:  dailyLimit,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
