// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken  string
	DatabasePath      string
	LogLevel          string
	MarketplaceAPIURL string
	NotifySpec        string
	SendDelay         time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	// Hourly, matching the marketplace's publish cadence.
	notifySpec := os.Getenv("NOTIFY_CRON")
	if notifySpec == "" {
		notifySpec = "0 * * * *"
	}

	sendDelay := 100 * time.Millisecond
	if raw := os.Getenv("SEND_DELAY_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid SEND_DELAY_MS %q", raw)
		}
		sendDelay = time.Duration(ms) * time.Millisecond
	}

	return &Config{
		TelegramBotToken:  token,
		DatabasePath:      dbPath,
		LogLevel:          logLevel,
		MarketplaceAPIURL: os.Getenv("MARKETPLACE_API_URL"),
		NotifySpec:        notifySpec,
		SendDelay:         sendDelay,
	}, nil
}
