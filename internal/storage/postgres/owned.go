package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"finhub/internal/core"
)

// deleteOwned removes one row from table if it belongs to owner and
// returns the deleted id, or core.ErrNotFound otherwise. A foreign id
// and an id owned by somebody else are indistinguishable to the caller.
func (s *Store) deleteOwned(ctx context.Context, table, id, owner string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2 RETURNING id", table)
	var deleted string
	err := s.pool.QueryRow(ctx, q, id, owner).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", core.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete from %s: %w", table, err)
	}
	return deleted, nil
}

// bulkDeleteOwned removes every listed row that belongs to owner and
// returns the ids actually deleted. Missing and foreign ids are
// silently skipped.
func (s *Store) bulkDeleteOwned(ctx context.Context, table string, ids []string, owner string) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1) AND user_id = $2 RETURNING id", table)
	rows, err := s.pool.Query(ctx, q, ids, owner)
	if err != nil {
		return nil, fmt.Errorf("bulk delete from %s: %w", table, err)
	}
	defer rows.Close()

	deleted := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted id: %w", err)
		}
		deleted = append(deleted, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bulk delete from %s: %w", table, err)
	}
	return deleted, nil
}
