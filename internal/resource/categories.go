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

type categoryInput struct {
	Name string `json:"name"`
}

// NewCategoryHandlers wires the category family onto the shared
// contract. Listing sorts by name ascending, unlike the other families.
func NewCategoryHandlers(store CategoryStore, logger *log.Logger, events *amqp.Publisher) *Handlers[core.Category] {
	return NewHandlers("categories", Ops[core.Category]{
		ID: func(c core.Category) string { return c.ID },
		List: func(ctx context.Context, owner string, _ url.Values) ([]core.Category, error) {
			return store.List(ctx, owner)
		},
		Get: store.Get,
		Create: func(ctx context.Context, owner string, r *http.Request) (core.Category, error) {
			var in categoryInput
			if err := decodeBody(r, &in); err != nil {
				return core.Category{}, err
			}
			category := core.Category{
				ID:    uuid.NewString(),
				Name:  strings.TrimSpace(in.Name),
				Owner: owner,
			}
			if err := category.Validate(); err != nil {
				return core.Category{}, err
			}
			return store.Create(ctx, category)
		},
		Update: func(ctx context.Context, id, owner string, r *http.Request) (core.Category, error) {
			var in categoryInput
			if err := decodeBody(r, &in); err != nil {
				return core.Category{}, err
			}
			name := strings.TrimSpace(in.Name)
			if name == "" {
				return core.Category{}, core.ErrEmptyName
			}
			return store.Rename(ctx, id, owner, name)
		},
		Delete:     store.Delete,
		BulkDelete: store.BulkDelete,
	}, logger, events)
}
