package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting, loaded from the environment with
// optional .env support for local development.
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// StorageBackend selects "memory" or "postgres". The in-memory backend
	// is the default and needs no external services.
	StorageBackend string
	DatabaseURL    string
	RedisURL       string

	// EventPublisher selects "gochannel", "kafka" or "none".
	EventPublisher string
	KafkaBrokers   []string
	EventTopic     string

	RecomputeInterval time.Duration
	RecomputeOnStart  bool
}

// Load reads configuration from the environment. A missing .env file is
// fine; real deployments set variables directly.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StorageBackend:    getEnv("STORAGE_BACKEND", "memory"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		EventPublisher:    getEnv("EVENT_PUBLISHER", "gochannel"),
		KafkaBrokers:      getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
		EventTopic:        getEnv("EVENT_TOPIC", "platform.events"),
		RecomputeInterval: getEnvDuration("RECOMPUTE_INTERVAL", 30*24*time.Hour),
		RecomputeOnStart:  getEnvBool("RECOMPUTE_ON_START", true),
	}
}

// SlogLevel maps the configured log level onto slog's levels.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvSlice(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
