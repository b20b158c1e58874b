package memory

import (
	"context"
	"sort"

	"finhub/internal/analytics"
	"finhub/internal/core"
)

type AnalyticsStore struct {
	s *Store
}

func (st *AnalyticsStore) Totals(_ context.Context, f analytics.Filter) (core.Money, core.Money, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	var income, expenses core.Money
	for _, t := range st.s.transactions {
		if !matchesAnalyticsFilter(t, f) {
			continue
		}
		if t.Amount.IsIncome() {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return income, expenses, nil
}

func (st *AnalyticsStore) CategoryTotals(_ context.Context, f analytics.Filter, limit int) ([]core.CategoryTotal, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	byName := map[string]core.Money{}
	for _, t := range st.s.transactions {
		if !matchesAnalyticsFilter(t, f) || !t.Amount.IsExpense() || t.CategoryID == nil {
			continue
		}
		c, ok := st.s.categories[*t.CategoryID]
		if !ok {
			continue
		}
		byName[c.Name] = byName[c.Name].Add(t.Amount.Abs())
	}

	totals := []core.CategoryTotal{}
	for name, value := range byName {
		totals = append(totals, core.CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Value.Cents != totals[j].Value.Cents {
			return totals[i].Value.Cents > totals[j].Value.Cents
		}
		return totals[i].Name < totals[j].Name
	})
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals, nil
}

func (st *AnalyticsStore) DailyTotals(_ context.Context, owner, accountID string, from, to core.Date) ([]core.DayTotal, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	byDate := map[string]core.DayTotal{}
	for _, t := range st.s.transactions {
		if t.Owner != owner {
			continue
		}
		if accountID != "" && t.AccountID != accountID {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		key := t.Date.String()
		day := byDate[key]
		day.Date = t.Date
		if t.Amount.IsIncome() {
			day.Income = day.Income.Add(t.Amount)
		} else {
			day.Expenses = day.Expenses.Add(t.Amount.Abs())
		}
		byDate[key] = day
	}

	days := []core.DayTotal{}
	for _, day := range byDate {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days, nil
}

func matchesAnalyticsFilter(t core.Transaction, f analytics.Filter) bool {
	if t.Owner != f.Owner {
		return false
	}
	if f.AccountID != "" && t.AccountID != f.AccountID {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}
