package memory

import (
	"context"
	"sort"

	"finhub/internal/core"
)

type AccountStore struct {
	s *Store
}

func (st *AccountStore) List(_ context.Context, owner string) ([]core.Account, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	accounts := []core.Account{}
	for _, a := range st.s.accounts {
		if a.Owner == owner {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		if !accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
		}
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}

func (st *AccountStore) Get(_ context.Context, id, owner string) (core.Account, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	a, ok := st.s.accounts[id]
	if !ok || a.Owner != owner {
		return core.Account{}, core.ErrNotFound
	}
	return a, nil
}

func (st *AccountStore) Create(_ context.Context, account core.Account) (core.Account, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	now := st.s.now()
	account.CreatedAt = now
	account.UpdatedAt = now
	st.s.accounts[account.ID] = account
	return account, nil
}

func (st *AccountStore) Rename(_ context.Context, id, owner, name string) (core.Account, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	a, ok := st.s.accounts[id]
	if !ok || a.Owner != owner {
		return core.Account{}, core.ErrNotFound
	}
	a.Name = name
	a.UpdatedAt = st.s.now()
	st.s.accounts[id] = a
	return a, nil
}

func (st *AccountStore) Delete(_ context.Context, id, owner string) (string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	a, ok := st.s.accounts[id]
	if !ok || a.Owner != owner {
		return "", core.ErrNotFound
	}
	delete(st.s.accounts, id)
	return id, nil
}

func (st *AccountStore) BulkDelete(_ context.Context, ids []string, owner string) ([]string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	deleted := []string{}
	for _, id := range ids {
		if a, ok := st.s.accounts[id]; ok && a.Owner == owner {
			delete(st.s.accounts, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}
