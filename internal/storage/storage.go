// Package storage selects a store backend from configuration and hands
// the services their ports. The postgres backend is the production
// path; the memory backend serves local development without a database.
package storage

import (
	"context"
	"fmt"

	"finhub/internal/analytics"
	"finhub/internal/config"
	"finhub/internal/resource"
	"finhub/internal/storage/memory"
	"finhub/internal/storage/postgres"
)

// Stores bundles every port a service might need; each binary picks the
// ones it serves.
type Stores struct {
	Accounts      resource.AccountStore
	Categories    resource.CategoryStore
	Transactions  resource.TransactionStore
	Subscriptions resource.SubscriptionStore
	Analytics     analytics.Store

	closeFn func()
}

// Close releases the underlying backend. Safe to call on any Stores.
func (s *Stores) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// Open builds the configured backend. The postgres backend connects,
// migrates and pings before returning.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreBackend {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBIdleTimeout, cfg.QueryTimeout)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return &Stores{
			Accounts:      db.Accounts(),
			Categories:    db.Categories(),
			Transactions:  db.Transactions(),
			Subscriptions: db.Subscriptions(),
			Analytics:     db.Analytics(),
			closeFn:       db.Close,
		}, nil
	case "memory":
		mem := memory.New()
		return &Stores{
			Accounts:      mem.Accounts(),
			Categories:    mem.Categories(),
			Transactions:  mem.Transactions(),
			Subscriptions: mem.Subscriptions(),
			Analytics:     mem.Analytics(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
