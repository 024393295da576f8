package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"earnbot/internal/bot"
	"earnbot/internal/config"
	"earnbot/internal/notify"
	"earnbot/internal/scheduler"
	"earnbot/internal/source"
	"earnbot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	cache := notify.NewCache()

	b, err := bot.New(cfg.TelegramBotToken, store, cache, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	var listings notify.ListingSource
	if cfg.MarketplaceAPIURL != "" {
		listings = source.New(http.DefaultClient, cfg.MarketplaceAPIURL)
	} else {
		log.Warn("MARKETPLACE_API_URL not set, using mock listings")
		listings = source.NewMock()
	}

	dispatcher := notify.NewDispatcher(
		listings, store, b, cache,
		notify.NewIntervalLimiter(cfg.SendDelay), log,
	)
	b.SetDispatcher(dispatcher)

	sched := scheduler.New(dispatcher, store, cfg.NotifySpec, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot")

	if err := sched.Start(ctx); err != nil {
		log.Error("start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	b.Run(ctx)

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
