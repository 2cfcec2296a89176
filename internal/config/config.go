package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultGeminiAPIURL is the generateContent endpoint used when GEMINI_API_URL is unset.
const DefaultGeminiAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// QuizMode selects how generated quizzes are served.
type QuizMode string

const (
	// QuizModeSession strips answers and keeps them server-side under a quiz id.
	QuizModeSession QuizMode = "session"
	// QuizModeInline returns answers together with the questions, no server state.
	QuizModeInline QuizMode = "inline"
)

// Store backends for quiz sessions.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string

	GeminiAPIKey  string
	GeminiAPIURL  string
	GeminiTimeout time.Duration

	QuizMode        QuizMode
	QuizStore       string
	QuizSessionTTL  time.Duration
	QuizMaxSessions int
	RedisURL        string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),

		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiAPIURL:  getEnv("GEMINI_API_URL", DefaultGeminiAPIURL),
		GeminiTimeout: time.Duration(getEnvInt("GEMINI_TIMEOUT_SECONDS", 60)) * time.Second,

		QuizMode:        parseQuizMode(getEnv("QUIZ_MODE", string(QuizModeSession))),
		QuizStore:       strings.ToLower(getEnv("QUIZ_STORE", StoreMemory)),
		QuizSessionTTL:  time.Duration(getEnvInt("QUIZ_SESSION_TTL_MINUTES", 120)) * time.Minute,
		QuizMaxSessions: getEnvInt("QUIZ_MAX_SESSIONS", 10000),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// parseQuizMode falls back to session mode for anything it does not recognise.
func parseQuizMode(raw string) QuizMode {
	if QuizMode(strings.ToLower(strings.TrimSpace(raw))) == QuizModeInline {
		return QuizModeInline
	}
	return QuizModeSession
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
