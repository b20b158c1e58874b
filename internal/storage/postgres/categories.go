package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"finhub/internal/core"
)

type CategoryStore struct {
	db *Store
}

const categoryColumns = "id, name, user_id, created_at, updated_at"

func (s *CategoryStore) List(ctx context.Context, owner string) ([]core.Category, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := "SELECT " + categoryColumns + " FROM categories WHERE user_id = $1 ORDER BY name ASC"
	rows, err := s.db.pool.Query(ctx, q, owner)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []core.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryStore) Get(ctx context.Context, id, owner string) (core.Category, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := "SELECT " + categoryColumns + " FROM categories WHERE id = $1 AND user_id = $2"
	c, err := scanCategory(s.db.pool.QueryRow(ctx, q, id, owner))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Category{}, core.ErrNotFound
	}
	if err != nil {
		return core.Category{}, err
	}
	return c, nil
}

func (s *CategoryStore) Create(ctx context.Context, category core.Category) (core.Category, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := `INSERT INTO categories (id, name, user_id)
	      VALUES ($1, $2, $3)
	      RETURNING ` + categoryColumns
	c, err := scanCategory(s.db.pool.QueryRow(ctx, q, category.ID, category.Name, category.Owner))
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *CategoryStore) Rename(ctx context.Context, id, owner, name string) (core.Category, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := `UPDATE categories SET name = $1, updated_at = now()
	      WHERE id = $2 AND user_id = $3
	      RETURNING ` + categoryColumns
	c, err := scanCategory(s.db.pool.QueryRow(ctx, q, name, id, owner))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Category{}, core.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("rename category: %w", err)
	}
	return c, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id, owner string) (string, error) {
	return s.db.deleteOwned(ctx, "categories", id, owner)
}

func (s *CategoryStore) BulkDelete(ctx context.Context, ids []string, owner string) ([]string, error) {
	return s.db.bulkDeleteOwned(ctx, "categories", ids, owner)
}

func scanCategory(row pgx.Row) (core.Category, error) {
	var c core.Category
	err := row.Scan(&c.ID, &c.Name, &c.Owner, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Category{}, err
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("scan category: %w", err)
	}
	return c, nil
}
