package resource

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"finhub/internal/amqp"
	"finhub/internal/core"
	"finhub/internal/log"
)

// subscriptionInput is used for both create and update: a subscription
// record is always written whole.
type subscriptionInput struct {
	Name        string     `json:"name"`
	Amount      core.Money `json:"amount"`
	Status      string     `json:"status"`
	BillingDate core.Date  `json:"billing_date"`
}

// NewSubscriptionHandlers wires the subscription family onto the shared
// contract.
func NewSubscriptionHandlers(store SubscriptionStore, logger *log.Logger, events *amqp.Publisher) *Handlers[core.Subscription] {
	return NewHandlers("subscriptions", Ops[core.Subscription]{
		ID: func(s core.Subscription) string { return s.ID },
		List: func(ctx context.Context, owner string, _ url.Values) ([]core.Subscription, error) {
			return store.List(ctx, owner)
		},
		Get: store.Get,
		Create: func(ctx context.Context, owner string, r *http.Request) (core.Subscription, error) {
			sub, err := parseSubscription(r)
			if err != nil {
				return core.Subscription{}, err
			}
			sub.ID = uuid.NewString()
			sub.Owner = owner
			return store.Create(ctx, sub)
		},
		Update: func(ctx context.Context, id, owner string, r *http.Request) (core.Subscription, error) {
			fields, err := parseSubscription(r)
			if err != nil {
				return core.Subscription{}, err
			}
			return store.Update(ctx, id, owner, fields)
		},
		Delete:     store.Delete,
		BulkDelete: store.BulkDelete,
	}, logger, events)
}

func parseSubscription(r *http.Request) (core.Subscription, error) {
	var in subscriptionInput
	if err := decodeBody(r, &in); err != nil {
		return core.Subscription{}, err
	}
	sub := core.Subscription{
		Name:        strings.TrimSpace(in.Name),
		Amount:      in.Amount,
		Status:      in.Status,
		BillingDate: in.BillingDate,
	}
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}
	return sub, nil
}
