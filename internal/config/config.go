package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported stats backends.
const (
	StatsStoreSQLite = "sqlite"
	StatsStoreMongo  = "mongo"
	StatsStoreMemory = "memory"
)

// DefaultVxAPIEndpoint is the metadata endpoint template; %s is replaced by the tweet ID.
const DefaultVxAPIEndpoint = "https://api.vxtwitter.com/Twitter/status/%s"

// Config holds the application configuration.
type Config struct {
	AppEnv          string
	Debug           bool
	Version         string
	BotToken        string
	DeveloperID     int64 // Operator chat: receives error reports and may use admin commands.
	IsBotPrivate    bool  // When set, only DeveloperID may talk to the bot.
	SentryDSN       string
	DefaultLanguage string

	StatsStore         string
	SQLitePath         string
	MongoDBURI         string
	MongoDBDatabase    string
	StatsFlushInterval time.Duration

	RateLimit     int
	HTTPTimeout   time.Duration // Zero keeps the http.Client default (no timeout).
	VxAPIEndpoint string
	HealthAddr    string // Empty disables the health HTTP server.
}

// LoadConfig loads configuration from environment variables.
// It attempts to load a .env file if present but prioritizes
// actual environment variables set in the system (e.g., by Docker).
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	debug, _ := strconv.ParseBool(getEnv("DEBUG", "false"))

	private, err := strconv.ParseBool(getEnv("IS_BOT_PRIVATE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid IS_BOT_PRIVATE: %w", err)
	}

	developerIDStr := getEnv("DEVELOPER_ID", "")
	developerID, err := strconv.ParseInt(developerIDStr, 10, 64)
	if err != nil && developerIDStr != "" {
		return nil, fmt.Errorf("invalid DEVELOPER_ID: %w", err)
	}

	flushInterval, err := time.ParseDuration(getEnv("STATS_FLUSH_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_FLUSH_INTERVAL: %w", err)
	}

	httpTimeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Debug:              debug,
		Version:            getEnv("VERSION", "dev"),
		BotToken:           getEnv("TELEGRAM_BOT_TOKEN", ""),
		DeveloperID:        developerID,
		IsBotPrivate:       private,
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		DefaultLanguage:    getEnv("DEFAULT_LANGUAGE", "en"),
		StatsStore:         getEnv("STATS_STORE", StatsStoreSQLite),
		SQLitePath:         getEnv("SQLITE_PATH", "data/stats.db"),
		MongoDBURI:         getEnv("MONGODB_URI", ""),
		MongoDBDatabase:    getEnv("MONGODB_DATABASE", ""),
		StatsFlushInterval: flushInterval,
		RateLimit:          rateLimit,
		HTTPTimeout:        httpTimeout,
		VxAPIEndpoint:      getEnv("VX_API_ENDPOINT", DefaultVxAPIEndpoint),
		HealthAddr:         getEnv("HEALTH_ADDR", ""),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.DeveloperID == 0 {
		return nil, fmt.Errorf("DEVELOPER_ID is required")
	}
	if cfg.SentryDSN == "" {
		log.Println("Warning: SENTRY_DSN is not set. Error tracking disabled.")
	}
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	if cfg.StatsFlushInterval <= 0 {
		return nil, fmt.Errorf("STATS_FLUSH_INTERVAL must be positive")
	}

	switch cfg.StatsStore {
	case StatsStoreSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required for the sqlite stats store")
		}
	case StatsStoreMongo:
		if cfg.MongoDBURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required for the mongo stats store")
		}
		if cfg.MongoDBDatabase == "" {
			return nil, fmt.Errorf("MONGODB_DATABASE is required for the mongo stats store")
		}
	case StatsStoreMemory:
		log.Println("Warning: STATS_STORE=memory, stats will not survive restarts")
	default:
		return nil, fmt.Errorf("unknown STATS_STORE %q", cfg.StatsStore)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
