package memory

import (
	"context"
	"sort"

	"finhub/internal/core"
	"finhub/internal/resource"
)

type TransactionStore struct {
	s *Store
}

func (st *TransactionStore) List(_ context.Context, owner string, filter resource.TransactionFilter) ([]core.Transaction, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	transactions := []core.Transaction{}
	for _, t := range st.s.transactions {
		if t.Owner != owner || !matchesFilter(t, filter) {
			continue
		}
		transactions = append(transactions, st.resolveNames(t))
	}
	sort.Slice(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date.Time) {
			return transactions[i].Date.After(transactions[j].Date)
		}
		if !transactions[i].CreatedAt.Equal(transactions[j].CreatedAt) {
			return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
		}
		return transactions[i].ID < transactions[j].ID
	})
	return transactions, nil
}

func (st *TransactionStore) Get(_ context.Context, id, owner string) (core.Transaction, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	t, ok := st.s.transactions[id]
	if !ok || t.Owner != owner {
		return core.Transaction{}, core.ErrNotFound
	}
	return st.resolveNames(t), nil
}

func (st *TransactionStore) Create(_ context.Context, transaction core.Transaction) (core.Transaction, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	now := st.s.now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
	transaction.AccountName = nil
	transaction.CategoryName = nil
	st.s.transactions[transaction.ID] = transaction
	return st.resolveNames(transaction), nil
}

func (st *TransactionStore) Update(_ context.Context, id, owner string, patch resource.TransactionPatch) (core.Transaction, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	t, ok := st.s.transactions[id]
	if !ok || t.Owner != owner {
		return core.Transaction{}, core.ErrNotFound
	}

	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Payee != nil {
		t.Payee = *patch.Payee
	}
	if patch.Notes != nil {
		t.Notes = patch.Notes
	}
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if patch.AccountID != nil {
		t.AccountID = *patch.AccountID
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == "" {
			t.CategoryID = nil
		} else {
			t.CategoryID = patch.CategoryID
		}
	}
	t.UpdatedAt = st.s.now()
	st.s.transactions[id] = t
	return st.resolveNames(t), nil
}

func (st *TransactionStore) Delete(_ context.Context, id, owner string) (string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	t, ok := st.s.transactions[id]
	if !ok || t.Owner != owner {
		return "", core.ErrNotFound
	}
	delete(st.s.transactions, id)
	return id, nil
}

func (st *TransactionStore) BulkDelete(_ context.Context, ids []string, owner string) ([]string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	deleted := []string{}
	for _, id := range ids {
		if t, ok := st.s.transactions[id]; ok && t.Owner == owner {
			delete(st.s.transactions, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

func matchesFilter(t core.Transaction, f resource.TransactionFilter) bool {
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

// resolveNames mirrors the left joins of the SQL backend: a dangling
// account or category reference yields a nil name, not an error.
func (st *TransactionStore) resolveNames(t core.Transaction) core.Transaction {
	t.AccountName = nil
	t.CategoryName = nil
	if a, ok := st.s.accounts[t.AccountID]; ok {
		name := a.Name
		t.AccountName = &name
	}
	if t.CategoryID != nil {
		if c, ok := st.s.categories[*t.CategoryID]; ok {
			name := c.Name
			t.CategoryName = &name
		}
	}
	return t
}
