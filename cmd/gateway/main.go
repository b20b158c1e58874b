package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"finhub/internal/config"
	"finhub/internal/gateway"
	"finhub/internal/log"
	"finhub/internal/web"
)

func main() {
	_ = godotenv.Load()

	logger := log.New("gateway", slog.LevelInfo)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.ValidateGateway(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	gw := gateway.New(cfg, logger)

	srv := web.NewServer(":"+cfg.Port, gw.Handler())
	logger.Info("Starting gateway", "port", cfg.Port)
	if err := web.Run(context.Background(), srv, logger); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
}
