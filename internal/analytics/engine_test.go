package analytics_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhub/internal/analytics"
	"finhub/internal/core"
	"finhub/internal/storage/memory"
)

const owner = "alice"

func seedTransaction(t *testing.T, store *memory.Store, amount int64, date core.Date, accountID, categoryID string) {
	t.Helper()
	tx := core.Transaction{
		ID:        uuid.NewString(),
		Amount:    core.Money{Cents: amount},
		Payee:     "seed",
		Date:      date,
		AccountID: accountID,
		Owner:     owner,
	}
	if categoryID != "" {
		tx.CategoryID = &categoryID
	}
	_, err := store.Transactions().Create(context.Background(), tx)
	require.NoError(t, err)
}

func seedCategory(t *testing.T, store *memory.Store, id, name string) {
	t.Helper()
	_, err := store.Categories().Create(context.Background(), core.Category{ID: id, Name: name, Owner: owner})
	require.NoError(t, err)
}

func TestSummarizeEmpty(t *testing.T) {
	engine := analytics.NewEngine(memory.New().Analytics())
	summary, err := engine.Summarize(context.Background(), owner, analytics.Filter{})
	require.NoError(t, err)

	assert.Zero(t, summary.IncomeAmount.Cents)
	assert.Zero(t, summary.ExpensesAmount.Cents)
	assert.Zero(t, summary.RemainingAmount.Cents)
	assert.NotNil(t, summary.Categories)
	assert.NotNil(t, summary.Days)
	assert.Empty(t, summary.Categories)
	assert.Empty(t, summary.Days)
}

func TestSummarizeTotals(t *testing.T) {
	store := memory.New()
	today := core.Today()
	seedTransaction(t, store, 250000, today.AddDays(-3), "acc-1", "")
	seedTransaction(t, store, -40000, today.AddDays(-2), "acc-1", "")
	seedTransaction(t, store, -10000, today.AddDays(-1), "acc-2", "")

	engine := analytics.NewEngine(store.Analytics())
	summary, err := engine.Summarize(context.Background(), owner, analytics.Filter{})
	require.NoError(t, err)

	assert.Equal(t, int64(250000), summary.IncomeAmount.Cents)
	assert.Equal(t, int64(50000), summary.ExpensesAmount.Cents)
	assert.Equal(t, int64(200000), summary.RemainingAmount.Cents)
}

func TestSummarizeAccountFilter(t *testing.T) {
	store := memory.New()
	today := core.Today()
	seedTransaction(t, store, -40000, today.AddDays(-2), "acc-1", "")
	seedTransaction(t, store, -10000, today.AddDays(-1), "acc-2", "")

	engine := analytics.NewEngine(store.Analytics())
	summary, err := engine.Summarize(context.Background(), owner, analytics.Filter{AccountID: "acc-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(40000), summary.ExpensesAmount.Cents)
	require.Len(t, summary.Days, 1)
	assert.Equal(t, int64(40000), summary.Days[0].Expenses.Cents)
}

func TestSummarizeTopCategories(t *testing.T) {
	store := memory.New()
	today := core.Today()
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("cat-%d", i)
		seedCategory(t, store, id, fmt.Sprintf("Category %d", i))
		seedTransaction(t, store, -int64((i+1)*1000), today.AddDays(-1), "acc-1", id)
	}
	// Income and uncategorized expenses never join the breakdown.
	seedTransaction(t, store, 500000, today.AddDays(-1), "acc-1", "")
	seedTransaction(t, store, -999999, today.AddDays(-1), "acc-1", "")

	engine := analytics.NewEngine(store.Analytics())
	summary, err := engine.Summarize(context.Background(), owner, analytics.Filter{})
	require.NoError(t, err)

	require.Len(t, summary.Categories, 5)
	assert.Equal(t, "Category 6", summary.Categories[0].Name)
	assert.Equal(t, int64(7000), summary.Categories[0].Value.Cents)
	// Descending by value.
	for i := 1; i < len(summary.Categories); i++ {
		assert.GreaterOrEqual(t,
			summary.Categories[i-1].Value.Cents,
			summary.Categories[i].Value.Cents)
	}
}

func TestDailySeriesIgnoresDateFilter(t *testing.T) {
	store := memory.New()
	today := core.Today()
	seedTransaction(t, store, -5000, today.AddDays(-2), "acc-1", "")
	seedTransaction(t, store, -7000, today.AddDays(-60), "acc-1", "")

	engine := analytics.NewEngine(store.Analytics())

	// The date filter excludes the recent transaction from the totals,
	// but the daily series still shows it: the series always covers the
	// trailing thirty days.
	filter := analytics.Filter{
		From: today.AddDays(-90),
		To:   today.AddDays(-30),
	}
	summary, err := engine.Summarize(context.Background(), owner, filter)
	require.NoError(t, err)

	assert.Equal(t, int64(7000), summary.ExpensesAmount.Cents)
	require.Len(t, summary.Days, 1)
	assert.Equal(t, int64(5000), summary.Days[0].Expenses.Cents)
}

func TestDailySeriesWindowBounds(t *testing.T) {
	store := memory.New()
	today := core.Today()
	// 29 days back is the oldest day of a 30-day window ending today.
	seedTransaction(t, store, -5000, today.AddDays(-29), "acc-1", "")
	seedTransaction(t, store, -7000, today.AddDays(-30), "acc-1", "")
	seedTransaction(t, store, -1000, today, "acc-1", "")

	engine := analytics.NewEngine(store.Analytics())
	summary, err := engine.Summarize(context.Background(), owner, analytics.Filter{})
	require.NoError(t, err)

	require.Len(t, summary.Days, 2)
	assert.Equal(t, today.AddDays(-29), summary.Days[0].Date)
	assert.Equal(t, int64(5000), summary.Days[0].Expenses.Cents)
	assert.Equal(t, today, summary.Days[1].Date)
}

func TestDailySeriesGroupsByDay(t *testing.T) {
	store := memory.New()
	today := core.Today()
	seedTransaction(t, store, 10000, today.AddDays(-1), "acc-1", "")
	seedTransaction(t, store, -3000, today.AddDays(-1), "acc-1", "")
	seedTransaction(t, store, -2000, today.AddDays(-5), "acc-1", "")

	engine := analytics.NewEngine(store.Analytics())
	summary, err := engine.Summarize(context.Background(), owner, analytics.Filter{})
	require.NoError(t, err)

	require.Len(t, summary.Days, 2)
	// Ascending by date.
	assert.True(t, summary.Days[0].Date.Before(summary.Days[1].Date))
	assert.Equal(t, int64(2000), summary.Days[0].Expenses.Cents)
	assert.Equal(t, int64(10000), summary.Days[1].Income.Cents)
	assert.Equal(t, int64(3000), summary.Days[1].Expenses.Cents)
}

func TestSummarizeIsOwnerScoped(t *testing.T) {
	store := memory.New()
	today := core.Today()
	_, err := store.Transactions().Create(context.Background(), core.Transaction{
		ID:        uuid.NewString(),
		Amount:    core.Money{Cents: -5000},
		Payee:     "seed",
		Date:      today.AddDays(-1),
		AccountID: "acc-1",
		Owner:     "bob",
	})
	require.NoError(t, err)

	engine := analytics.NewEngine(store.Analytics())
	summary, err := engine.Summarize(context.Background(), owner, analytics.Filter{})
	require.NoError(t, err)

	assert.Zero(t, summary.ExpensesAmount.Cents)
	assert.Empty(t, summary.Days)
}
