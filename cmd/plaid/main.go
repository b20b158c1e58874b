package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"finhub/internal/auth"
	"finhub/internal/config"
	"finhub/internal/log"
	"finhub/internal/plaid"
	"finhub/internal/web"
)

func main() {
	_ = godotenv.Load()

	logger := log.New("plaid-service", slog.LevelInfo)
	log.SetDefault(logger)

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Error("Configuration validation failed", log.FieldError, "JWT_SECRET is required")
		os.Exit(1)
	}

	resolver := auth.NewJWTResolver(cfg.JWTSecret)

	srv := web.NewServer(":"+cfg.Port, plaid.Handler(resolver, logger))
	logger.Info("Starting plaid service", "port", cfg.Port)
	if err := web.Run(context.Background(), srv, logger); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
}
