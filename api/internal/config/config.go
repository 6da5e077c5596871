package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string

	TelegramBotToken string

	DatabaseURL string

	// ChordSeed drives the synthetic chord/stacked-area randomness; a fixed
	// seed makes projections reproducible across restarts.
	ChordSeed int64
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// MustEnv returns the value of k, exiting when it is unset. For keys a binary
// cannot start without.
func MustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("%s is not set", k)
	}
	return v
}

func getEnvInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		ChordSeed: getEnvInt64("CHORD_SEED", 1),
	}
}
