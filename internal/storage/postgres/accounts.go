package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"finhub/internal/core"
)

type AccountStore struct {
	db *Store
}

const accountColumns = "id, name, plaid_id, user_id, created_at, updated_at"

func (s *AccountStore) List(ctx context.Context, owner string) ([]core.Account, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := "SELECT " + accountColumns + " FROM accounts WHERE user_id = $1 ORDER BY created_at DESC"
	rows, err := s.db.pool.Query(ctx, q, owner)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []core.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountStore) Get(ctx context.Context, id, owner string) (core.Account, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := "SELECT " + accountColumns + " FROM accounts WHERE id = $1 AND user_id = $2"
	a, err := scanAccount(s.db.pool.QueryRow(ctx, q, id, owner))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Account{}, core.ErrNotFound
	}
	if err != nil {
		return core.Account{}, err
	}
	return a, nil
}

func (s *AccountStore) Create(ctx context.Context, account core.Account) (core.Account, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := `INSERT INTO accounts (id, name, plaid_id, user_id)
	      VALUES ($1, $2, $3, $4)
	      RETURNING ` + accountColumns
	a, err := scanAccount(s.db.pool.QueryRow(ctx, q, account.ID, account.Name, account.PlaidID, account.Owner))
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

func (s *AccountStore) Rename(ctx context.Context, id, owner, name string) (core.Account, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := `UPDATE accounts SET name = $1, updated_at = now()
	      WHERE id = $2 AND user_id = $3
	      RETURNING ` + accountColumns
	a, err := scanAccount(s.db.pool.QueryRow(ctx, q, name, id, owner))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Account{}, core.ErrNotFound
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("rename account: %w", err)
	}
	return a, nil
}

func (s *AccountStore) Delete(ctx context.Context, id, owner string) (string, error) {
	return s.db.deleteOwned(ctx, "accounts", id, owner)
}

func (s *AccountStore) BulkDelete(ctx context.Context, ids []string, owner string) ([]string, error) {
	return s.db.bulkDeleteOwned(ctx, "accounts", ids, owner)
}

func scanAccount(row pgx.Row) (core.Account, error) {
	var a core.Account
	err := row.Scan(&a.ID, &a.Name, &a.PlaidID, &a.Owner, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Account{}, err
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}
