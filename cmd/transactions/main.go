package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"finhub/internal/amqp"
	"finhub/internal/auth"
	"finhub/internal/config"
	"finhub/internal/log"
	"finhub/internal/resource"
	"finhub/internal/storage"
	"finhub/internal/web"
)

func main() {
	_ = godotenv.Load()

	logger := log.New("transaction-service", slog.LevelInfo)
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

	var events *amqp.Publisher
	if cfg.AMQPURL != "" {
		events, err = amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error("Failed to connect to AMQP", log.FieldError, err)
			os.Exit(1)
		}
		defer events.Close()
	}

	resolver := auth.NewJWTResolver(cfg.JWTSecret)
	handlers := resource.NewTransactionHandlers(stores.Transactions, logger, events)

	srv := web.NewServer(":"+cfg.Port, handlers.Router(resolver))
	logger.Info("Starting transaction service", "port", cfg.Port, "backend", cfg.StoreBackend)
	if err := web.Run(ctx, srv, logger); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
}
