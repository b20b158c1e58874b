// Package memory implements every store port on plain maps guarded by
// a mutex. It backs the memory backend for local development and is the
// test double for handler and engine tests. Semantics mirror the
// postgres package: ownership scoping, ordering and the bulk-delete
// skip rules behave identically.
package memory

import (
	"sync"
	"time"

	"finhub/internal/core"
)

type Store struct {
	mu            sync.Mutex
	accounts      map[string]core.Account
	categories    map[string]core.Category
	transactions  map[string]core.Transaction
	subscriptions map[string]core.Subscription
	clock         func() time.Time
}

func New() *Store {
	return &Store{
		accounts:      make(map[string]core.Account),
		categories:    make(map[string]core.Category),
		transactions:  make(map[string]core.Transaction),
		subscriptions: make(map[string]core.Subscription),
		clock:         time.Now,
	}
}

// Accounts returns the account store view.
func (s *Store) Accounts() *AccountStore {
	return &AccountStore{s: s}
}

// Categories returns the category store view.
func (s *Store) Categories() *CategoryStore {
	return &CategoryStore{s: s}
}

// Transactions returns the transaction store view.
func (s *Store) Transactions() *TransactionStore {
	return &TransactionStore{s: s}
}

// Subscriptions returns the subscription store view.
func (s *Store) Subscriptions() *SubscriptionStore {
	return &SubscriptionStore{s: s}
}

// Analytics returns the summary aggregation view.
func (s *Store) Analytics() *AnalyticsStore {
	return &AnalyticsStore{s: s}
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}
