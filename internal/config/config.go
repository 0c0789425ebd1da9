package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	BotToken       string
	NewsAPIKey     string
	NewsLanguage   string
	NewsLimit      int
	RequestTimeout time.Duration
	ReplyLocale    string
	NewsAPIURL     string
	TelegramAPIURL string
	MetricsAddr    string
	HeartbeatCron  string
	LogLevel       string
}

const (
	defaultLanguage       = "ru"
	defaultLimit          = 3
	defaultTimeout        = 30 * time.Second
	defaultReplyLocale    = "en"
	defaultNewsAPIURL     = "https://newsapi.org"
	defaultTelegramAPIURL = "https://api.telegram.org"
	defaultHeartbeatCron  = "@hourly"
	defaultLogLevel       = "info"

	// NewsAPI rejects pageSize above 100.
	maxLimit = 100
)

// Load builds the bot Config from environment variables and an optional .env file.
// BOT_TOKEN and API_NEWS are required.
func Load() (*Config, error) {
	cfg, err := LoadSearch()
	if err != nil {
		return nil, err
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	return cfg, nil
}

// LoadSearch builds a Config for tools that only talk to the news provider.
// Only API_NEWS is required.
func LoadSearch() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		NewsAPIKey:     os.Getenv("API_NEWS"),
		NewsLanguage:   getenvDefault("NEWS_LANGUAGE", defaultLanguage),
		NewsLimit:      parseIntDefault("NEWS_LIMIT", defaultLimit),
		RequestTimeout: parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout),
		ReplyLocale:    getenvDefault("REPLY_LOCALE", defaultReplyLocale),
		NewsAPIURL:     getenvDefault("NEWSAPI_URL", defaultNewsAPIURL),
		TelegramAPIURL: getenvDefault("TELEGRAM_API_URL", defaultTelegramAPIURL),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
		HeartbeatCron:  getenvDefault("HEARTBEAT_CRON", defaultHeartbeatCron),
		LogLevel:       getenvDefault("LOG_LEVEL", defaultLogLevel),
	}

	if cfg.NewsAPIKey == "" {
		return nil, fmt.Errorf("API_NEWS is required")
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	cfg.NewsLimit = ClampLimit(cfg.NewsLimit)

	return cfg, nil
}

// ClampLimit bounds a requested article count to what the provider serves in one page.
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
