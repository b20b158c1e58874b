// Package postgres implements the resource and analytics stores on a
// shared PostgreSQL database through a bounded pgx connection pool.
// Every query is parameterized and owner-scoped; every call carries a
// bounded timeout so an exhausted pool fails instead of blocking.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// Open connects the pool, applies pending migrations and verifies the
// database is reachable.
func Open(ctx context.Context, databaseURL string, maxConns int, idleTimeout, queryTimeout time.Duration) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MaxConnIdleTime = idleTimeout

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(databaseURL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{pool: pool, queryTimeout: queryTimeout}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Accounts returns the account store backed by this pool.
func (s *Store) Accounts() *AccountStore {
	return &AccountStore{db: s}
}

// Categories returns the category store backed by this pool.
func (s *Store) Categories() *CategoryStore {
	return &CategoryStore{db: s}
}

// Transactions returns the transaction store backed by this pool.
func (s *Store) Transactions() *TransactionStore {
	return &TransactionStore{db: s}
}

// Subscriptions returns the subscription store backed by this pool.
func (s *Store) Subscriptions() *SubscriptionStore {
	return &SubscriptionStore{db: s}
}

// Analytics returns the read-only summary store backed by this pool.
func (s *Store) Analytics() *AnalyticsStore {
	return &AnalyticsStore{db: s}
}

// withTimeout bounds a store call; pool acquisition waits on the same
// context, so a saturated pool surfaces as a timeout error rather than
// an indefinite block.
func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}
