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

// accountInput is the account create payload. Only the name is mutable
// afterwards; the provider link is set at creation.
type accountInput struct {
	Name    string  `json:"name"`
	PlaidID *string `json:"plaidId"`
}

// accountRename is the account update payload.
type accountRename struct {
	Name string `json:"name"`
}

// NewAccountHandlers wires the account family onto the shared contract.
func NewAccountHandlers(store AccountStore, logger *log.Logger, events *amqp.Publisher) *Handlers[core.Account] {
	return NewHandlers("accounts", Ops[core.Account]{
		ID: func(a core.Account) string { return a.ID },
		List: func(ctx context.Context, owner string, _ url.Values) ([]core.Account, error) {
			return store.List(ctx, owner)
		},
		Get: store.Get,
		Create: func(ctx context.Context, owner string, r *http.Request) (core.Account, error) {
			var in accountInput
			if err := decodeBody(r, &in); err != nil {
				return core.Account{}, err
			}
			account := core.Account{
				ID:      uuid.NewString(),
				Name:    strings.TrimSpace(in.Name),
				PlaidID: in.PlaidID,
				Owner:   owner,
			}
			if err := account.Validate(); err != nil {
				return core.Account{}, err
			}
			return store.Create(ctx, account)
		},
		Update: func(ctx context.Context, id, owner string, r *http.Request) (core.Account, error) {
			var in accountRename
			if err := decodeBody(r, &in); err != nil {
				return core.Account{}, err
			}
			name := strings.TrimSpace(in.Name)
			if name == "" {
				return core.Account{}, core.ErrEmptyName
			}
			return store.Rename(ctx, id, owner, name)
		},
		Delete:     store.Delete,
		BulkDelete: store.BulkDelete,
	}, logger, events)
}
