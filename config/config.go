package config

import (
	"os"
	"strings"

	"github.com/notelytics/notelytics-api/gemini"
)

// Config holds service configuration read from the environment.
type Config struct {
	Port   string
	AppEnv string

	// GeminiAPIKey may be empty; AI endpoints then answer with a
	// configuration error instead of calling upstream.
	GeminiAPIKey  string
	ChatModel     string
	AnalysisModel string

	// StorageBackend is one of sqlite, postgres, badger, memory.
	StorageBackend string
	DatabaseURL    string // postgres DSN, or the sqlite file path
	DataDir        string // badger directory

	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "production"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		ChatModel:      getEnv("GEMINI_CHAT_MODEL", gemini.DefaultChatModel),
		AnalysisModel:  getEnv("GEMINI_ANALYSIS_MODEL", gemini.DefaultAnalysisModel),
		StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),
		DatabaseURL:    getEnv("DB_URL", "notelytics.db"),
		DataDir:        getEnv("DATA_DIR", "notelytics-data"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
