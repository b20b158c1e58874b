// Package resource implements the ownership-enforcing CRUD contract
// shared by the account, category, transaction and subscription
// services. The HTTP surface is written once; each family contributes
// its store, field parsing and validation rules.
package resource

import (
	"context"

	"finhub/internal/core"
)

// TransactionFilter narrows a transaction listing. Zero values mean
// "no filter"; all present filters are ANDed together.
type TransactionFilter struct {
	AccountID string
	From      core.Date
	To        core.Date
}

// TransactionPatch carries a partial update; nil fields stay unchanged.
// Setting CategoryID to the empty string clears the category reference.
type TransactionPatch struct {
	Amount     *core.Money
	Payee      *string
	Notes      *string
	Date       *core.Date
	AccountID  *string
	CategoryID *string
}

// Stores are the outbound ports of each resource family. Every method
// is owner-scoped: rows belonging to another principal behave exactly
// like rows that do not exist (core.ErrNotFound), and BulkDelete
// silently skips ids it cannot delete.
type (
	AccountStore interface {
		List(ctx context.Context, owner string) ([]core.Account, error)
		Get(ctx context.Context, id, owner string) (core.Account, error)
		Create(ctx context.Context, a core.Account) (core.Account, error)
		Rename(ctx context.Context, id, owner, name string) (core.Account, error)
		Delete(ctx context.Context, id, owner string) (string, error)
		BulkDelete(ctx context.Context, ids []string, owner string) ([]string, error)
	}

	CategoryStore interface {
		List(ctx context.Context, owner string) ([]core.Category, error)
		Get(ctx context.Context, id, owner string) (core.Category, error)
		Create(ctx context.Context, c core.Category) (core.Category, error)
		Rename(ctx context.Context, id, owner, name string) (core.Category, error)
		Delete(ctx context.Context, id, owner string) (string, error)
		BulkDelete(ctx context.Context, ids []string, owner string) ([]string, error)
	}

	TransactionStore interface {
		List(ctx context.Context, owner string, f TransactionFilter) ([]core.Transaction, error)
		Get(ctx context.Context, id, owner string) (core.Transaction, error)
		Create(ctx context.Context, t core.Transaction) (core.Transaction, error)
		Update(ctx context.Context, id, owner string, p TransactionPatch) (core.Transaction, error)
		Delete(ctx context.Context, id, owner string) (string, error)
		BulkDelete(ctx context.Context, ids []string, owner string) ([]string, error)
	}

	SubscriptionStore interface {
		List(ctx context.Context, owner string) ([]core.Subscription, error)
		Get(ctx context.Context, id, owner string) (core.Subscription, error)
		Create(ctx context.Context, s core.Subscription) (core.Subscription, error)
		Update(ctx context.Context, id, owner string, fields core.Subscription) (core.Subscription, error)
		Delete(ctx context.Context, id, owner string) (string, error)
		BulkDelete(ctx context.Context, ids []string, owner string) ([]string, error)
	}
)
