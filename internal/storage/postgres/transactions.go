package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"finhub/internal/core"
	"finhub/internal/query"
	"finhub/internal/resource"
)

type TransactionStore struct {
	db *Store
}

// Account and category names are resolved with left joins so a
// transaction pointing at a deleted account or category still lists,
// with the missing name as null.
const transactionSelect = `SELECT t.id, t.amount, t.payee, t.notes, t.date,
	       t.account_id, t.category_id, a.name, c.name,
	       t.user_id, t.created_at, t.updated_at
	FROM transactions t
	LEFT JOIN accounts a ON a.id = t.account_id
	LEFT JOIN categories c ON c.id = t.category_id`

func (s *TransactionStore) List(ctx context.Context, owner string, filter resource.TransactionFilter) ([]core.Transaction, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	b := query.New().
		Where(query.Eq("t.user_id", owner)).
		WhereIf(filter.AccountID != "", query.Eq("t.account_id", filter.AccountID)).
		WhereIf(!filter.From.IsZero(), query.Gte("t.date", filter.From.Time)).
		WhereIf(!filter.To.IsZero(), query.Lte("t.date", filter.To.Time))
	where, args := b.SQL()

	q := transactionSelect + " " + where + " ORDER BY t.date DESC, t.created_at DESC"
	rows, err := s.db.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

func (s *TransactionStore) Get(ctx context.Context, id, owner string) (core.Transaction, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := transactionSelect + " WHERE t.id = $1 AND t.user_id = $2"
	t, err := scanTransaction(s.db.pool.QueryRow(ctx, q, id, owner))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (s *TransactionStore) Create(ctx context.Context, transaction core.Transaction) (core.Transaction, error) {
	qctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := `INSERT INTO transactions (id, amount, payee, notes, date, account_id, category_id, user_id)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.pool.Exec(qctx, q,
		transaction.ID, transaction.Amount.Cents, transaction.Payee, transaction.Notes,
		transaction.Date.Time, transaction.AccountID, transaction.CategoryID, transaction.Owner)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	// Re-read through the joined select so the response carries the
	// resolved account and category names.
	return s.Get(ctx, transaction.ID, transaction.Owner)
}

func (s *TransactionStore) Update(ctx context.Context, id, owner string, patch resource.TransactionPatch) (core.Transaction, error) {
	current, err := s.Get(ctx, id, owner)
	if err != nil {
		return core.Transaction{}, err
	}
	applyPatch(&current, patch)

	qctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := `UPDATE transactions
	      SET amount = $1, payee = $2, notes = $3, date = $4,
	          account_id = $5, category_id = $6, updated_at = now()
	      WHERE id = $7 AND user_id = $8`
	_, err = s.db.pool.Exec(qctx, q,
		current.Amount.Cents, current.Payee, current.Notes, current.Date.Time,
		current.AccountID, current.CategoryID, id, owner)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	return s.Get(ctx, id, owner)
}

func (s *TransactionStore) Delete(ctx context.Context, id, owner string) (string, error) {
	return s.db.deleteOwned(ctx, "transactions", id, owner)
}

func (s *TransactionStore) BulkDelete(ctx context.Context, ids []string, owner string) ([]string, error) {
	return s.db.bulkDeleteOwned(ctx, "transactions", ids, owner)
}

func applyPatch(t *core.Transaction, patch resource.TransactionPatch) {
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
}

func scanTransaction(row pgx.Row) (core.Transaction, error) {
	var t core.Transaction
	err := row.Scan(&t.ID, &t.Amount.Cents, &t.Payee, &t.Notes, &t.Date.Time,
		&t.AccountID, &t.CategoryID, &t.AccountName, &t.CategoryName,
		&t.Owner, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Transaction{}, err
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
