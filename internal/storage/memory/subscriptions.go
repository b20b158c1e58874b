package memory

import (
	"context"
	"sort"

	"finhub/internal/core"
)

type SubscriptionStore struct {
	s *Store
}

func (st *SubscriptionStore) List(_ context.Context, owner string) ([]core.Subscription, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	subscriptions := []core.Subscription{}
	for _, sub := range st.s.subscriptions {
		if sub.Owner == owner {
			subscriptions = append(subscriptions, sub)
		}
	}
	sort.Slice(subscriptions, func(i, j int) bool {
		if !subscriptions[i].BillingDate.Equal(subscriptions[j].BillingDate.Time) {
			return subscriptions[i].BillingDate.Before(subscriptions[j].BillingDate)
		}
		if !subscriptions[i].CreatedAt.Equal(subscriptions[j].CreatedAt) {
			return subscriptions[i].CreatedAt.After(subscriptions[j].CreatedAt)
		}
		return subscriptions[i].ID < subscriptions[j].ID
	})
	return subscriptions, nil
}

func (st *SubscriptionStore) Get(_ context.Context, id, owner string) (core.Subscription, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	sub, ok := st.s.subscriptions[id]
	if !ok || sub.Owner != owner {
		return core.Subscription{}, core.ErrNotFound
	}
	return sub, nil
}

func (st *SubscriptionStore) Create(_ context.Context, subscription core.Subscription) (core.Subscription, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	now := st.s.now()
	subscription.CreatedAt = now
	subscription.UpdatedAt = now
	st.s.subscriptions[subscription.ID] = subscription
	return subscription, nil
}

func (st *SubscriptionStore) Update(_ context.Context, id, owner string, fields core.Subscription) (core.Subscription, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	sub, ok := st.s.subscriptions[id]
	if !ok || sub.Owner != owner {
		return core.Subscription{}, core.ErrNotFound
	}
	sub.Name = fields.Name
	sub.Amount = fields.Amount
	sub.Status = fields.Status
	sub.BillingDate = fields.BillingDate
	sub.UpdatedAt = st.s.now()
	st.s.subscriptions[id] = sub
	return sub, nil
}

func (st *SubscriptionStore) Delete(_ context.Context, id, owner string) (string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	sub, ok := st.s.subscriptions[id]
	if !ok || sub.Owner != owner {
		return "", core.ErrNotFound
	}
	delete(st.s.subscriptions, id)
	return id, nil
}

func (st *SubscriptionStore) BulkDelete(_ context.Context, ids []string, owner string) ([]string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	deleted := []string{}
	for _, id := range ids {
		if sub, ok := st.s.subscriptions[id]; ok && sub.Owner == owner {
			delete(st.s.subscriptions, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}
