// Package analytics computes filtered financial summaries. All
// aggregation happens in integer minor units; nothing in this package
// touches floating point.
package analytics

import (
	"context"
	"fmt"

	"finhub/internal/core"
)

const (
	// topCategoryLimit caps the per-category expense breakdown.
	topCategoryLimit = 5
	// dailyWindowDays is the trailing window of the daily series. The
	// series ignores the date-range filter on purpose; it always shows
	// recent activity even when the totals are scoped to another period.
	dailyWindowDays = 30
)

// Filter scopes a summary. Zero values mean "no filter". Owner is set
// by the engine, never by the caller.
type Filter struct {
	Owner     string
	AccountID string
	From      core.Date
	To        core.Date
}

// Store is the aggregation port the engine reads from.
type Store interface {
	// Totals returns the income sum and the absolute expense sum for
	// the filtered transactions.
	Totals(ctx context.Context, f Filter) (income, expenses core.Money, err error)

	// CategoryTotals returns absolute expense totals grouped by
	// category name, largest first, at most limit rows. Uncategorized
	// expenses are excluded.
	CategoryTotals(ctx context.Context, f Filter, limit int) ([]core.CategoryTotal, error)

	// DailyTotals returns per-day income and absolute expense subtotals
	// between from and to inclusive, ascending by date. Days with no
	// transactions are absent.
	DailyTotals(ctx context.Context, owner, accountID string, from, to core.Date) ([]core.DayTotal, error)
}

// Engine assembles summaries from a Store.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Summarize builds the summary for one principal. The totals and the
// category breakdown honor the full filter; the daily series always
// covers the trailing thirty days, narrowed only by the account filter.
func (e *Engine) Summarize(ctx context.Context, owner string, f Filter) (core.Summary, error) {
	f.Owner = owner

	income, expenses, err := e.store.Totals(ctx, f)
	if err != nil {
		return core.Summary{}, fmt.Errorf("totals: %w", err)
	}

	categories, err := e.store.CategoryTotals(ctx, f, topCategoryLimit)
	if err != nil {
		return core.Summary{}, fmt.Errorf("category totals: %w", err)
	}
	if categories == nil {
		categories = []core.CategoryTotal{}
	}

	// Both bounds are inclusive, so the window starts 29 days back to
	// span exactly dailyWindowDays distinct days ending today.
	to := core.Today()
	from := to.AddDays(-(dailyWindowDays - 1))
	days, err := e.store.DailyTotals(ctx, owner, f.AccountID, from, to)
	if err != nil {
		return core.Summary{}, fmt.Errorf("daily totals: %w", err)
	}
	if days == nil {
		days = []core.DayTotal{}
	}

	return core.Summary{
		IncomeAmount:    income,
		ExpensesAmount:  expenses,
		RemainingAmount: income.Sub(expenses),
		Categories:      categories,
		Days:            days,
	}, nil
}
