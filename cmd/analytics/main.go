package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"finhub/internal/analytics"
	"finhub/internal/auth"
	"finhub/internal/config"
	"finhub/internal/log"
	"finhub/internal/storage"
	"finhub/internal/web"
)

func main() {
	_ = godotenv.Load()

	logger := log.New("analytics-service", slog.LevelInfo)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open store", log.FieldError, err)
		os.Exit(1)
	}
	defer stores.Close()

	resolver := auth.NewJWTResolver(cfg.JWTSecret)
	engine := analytics.NewEngine(stores.Analytics)

	srv := web.NewServer(":"+cfg.Port, analytics.Handler(engine, resolver, logger))
	logger.Info("Starting analytics service", "port", cfg.Port, "backend", cfg.StoreBackend)
	if err := web.Run(ctx, srv, logger); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
}
