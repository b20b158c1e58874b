package postgres

import (
	"context"
	"fmt"

	"finhub/internal/analytics"
	"finhub/internal/core"
	"finhub/internal/query"
)

type AnalyticsStore struct {
	db *Store
}

func analyticsConditions(f analytics.Filter, prefix string) *query.Builder {
	return query.New().
		Where(query.Eq(prefix+"user_id", f.Owner)).
		WhereIf(f.AccountID != "", query.Eq(prefix+"account_id", f.AccountID)).
		WhereIf(!f.From.IsZero(), query.Gte(prefix+"date", f.From.Time)).
		WhereIf(!f.To.IsZero(), query.Lte(prefix+"date", f.To.Time))
}

func (s *AnalyticsStore) Totals(ctx context.Context, f analytics.Filter) (core.Money, core.Money, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	where, args := analyticsConditions(f, "").SQL()
	// SUM over bigint widens to numeric; cast back for int64 scanning.
	q := `SELECT
	        COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0)::bigint,
	        COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0)::bigint
	      FROM transactions ` + where

	var income, expenses core.Money
	if err := s.db.pool.QueryRow(ctx, q, args...).Scan(&income.Cents, &expenses.Cents); err != nil {
		return core.Money{}, core.Money{}, fmt.Errorf("sum totals: %w", err)
	}
	return income, expenses, nil
}

func (s *AnalyticsStore) CategoryTotals(ctx context.Context, f analytics.Filter, limit int) ([]core.CategoryTotal, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	// The inner join drops uncategorized expenses from the breakdown.
	b := analyticsConditions(f, "t.").Where(query.Lt("t.amount", 0))
	where, args := b.SQL()
	q := fmt.Sprintf(`SELECT c.name, SUM(-t.amount)::bigint AS total
	      FROM transactions t
	      JOIN categories c ON c.id = t.category_id
	      %s
	      GROUP BY c.name
	      ORDER BY total DESC
	      LIMIT $%d`, where, len(args)+1)
	args = append(args, limit)

	rows, err := s.db.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sum categories: %w", err)
	}
	defer rows.Close()

	totals := []core.CategoryTotal{}
	for rows.Next() {
		var t core.CategoryTotal
		if err := rows.Scan(&t.Name, &t.Value.Cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sum categories: %w", err)
	}
	return totals, nil
}

func (s *AnalyticsStore) DailyTotals(ctx context.Context, owner, accountID string, from, to core.Date) ([]core.DayTotal, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	b := query.New().
		Where(query.Eq("user_id", owner)).
		WhereIf(accountID != "", query.Eq("account_id", accountID)).
		Where(query.Gte("date", from.Time)).
		Where(query.Lte("date", to.Time))
	where, args := b.SQL()
	q := `SELECT date,
	        COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0)::bigint,
	        COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0)::bigint
	      FROM transactions ` + where + `
	      GROUP BY date
	      ORDER BY date ASC`

	rows, err := s.db.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sum days: %w", err)
	}
	defer rows.Close()

	days := []core.DayTotal{}
	for rows.Next() {
		var d core.DayTotal
		if err := rows.Scan(&d.Date.Time, &d.Income.Cents, &d.Expenses.Cents); err != nil {
			return nil, fmt.Errorf("scan day total: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sum days: %w", err)
	}
	return days, nil
}
