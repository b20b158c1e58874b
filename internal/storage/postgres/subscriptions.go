package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"finhub/internal/core"
)

type SubscriptionStore struct {
	db *Store
}

const subscriptionColumns = "id, name, amount, status, billing_date, user_id, created_at, updated_at"

func (s *SubscriptionStore) List(ctx context.Context, owner string) ([]core.Subscription, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := "SELECT " + subscriptionColumns + " FROM subscriptions WHERE user_id = $1 ORDER BY billing_date ASC, created_at DESC"
	rows, err := s.db.pool.Query(ctx, q, owner)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subscriptions := []core.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subscriptions, nil
}

func (s *SubscriptionStore) Get(ctx context.Context, id, owner string) (core.Subscription, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := "SELECT " + subscriptionColumns + " FROM subscriptions WHERE id = $1 AND user_id = $2"
	sub, err := scanSubscription(s.db.pool.QueryRow(ctx, q, id, owner))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Subscription{}, core.ErrNotFound
	}
	if err != nil {
		return core.Subscription{}, err
	}
	return sub, nil
}

func (s *SubscriptionStore) Create(ctx context.Context, subscription core.Subscription) (core.Subscription, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := `INSERT INTO subscriptions (id, name, amount, status, billing_date, user_id)
	      VALUES ($1, $2, $3, $4, $5, $6)
	      RETURNING ` + subscriptionColumns
	sub, err := scanSubscription(s.db.pool.QueryRow(ctx, q,
		subscription.ID, subscription.Name, subscription.Amount.Cents,
		subscription.Status, subscription.BillingDate.Time, subscription.Owner))
	if err != nil {
		return core.Subscription{}, fmt.Errorf("create subscription: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionStore) Update(ctx context.Context, id, owner string, fields core.Subscription) (core.Subscription, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	q := `UPDATE subscriptions
	      SET name = $1, amount = $2, status = $3, billing_date = $4, updated_at = now()
	      WHERE id = $5 AND user_id = $6
	      RETURNING ` + subscriptionColumns
	sub, err := scanSubscription(s.db.pool.QueryRow(ctx, q,
		fields.Name, fields.Amount.Cents, fields.Status,
		fields.BillingDate.Time, id, owner))
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Subscription{}, core.ErrNotFound
	}
	if err != nil {
		return core.Subscription{}, fmt.Errorf("update subscription: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionStore) Delete(ctx context.Context, id, owner string) (string, error) {
	return s.db.deleteOwned(ctx, "subscriptions", id, owner)
}

func (s *SubscriptionStore) BulkDelete(ctx context.Context, ids []string, owner string) ([]string, error) {
	return s.db.bulkDeleteOwned(ctx, "subscriptions", ids, owner)
}

func scanSubscription(row pgx.Row) (core.Subscription, error) {
	var sub core.Subscription
	err := row.Scan(&sub.ID, &sub.Name, &sub.Amount.Cents, &sub.Status,
		&sub.BillingDate.Time, &sub.Owner, &sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Subscription{}, err
	}
	if err != nil {
		return core.Subscription{}, fmt.Errorf("scan subscription: %w", err)
	}
	return sub, nil
}
