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
	"finhub/internal/web"
)

// transactionInput is the transaction create payload. Amount is in
// integer minor units; date is YYYY-MM-DD.
type transactionInput struct {
	Amount     *core.Money `json:"amount"`
	Payee      string      `json:"payee"`
	Notes      *string     `json:"notes"`
	Date       core.Date   `json:"date"`
	AccountID  string      `json:"accountId"`
	CategoryID *string     `json:"categoryId"`
}

// transactionUpdate allows partial updates; absent fields stay
// unchanged, and an empty categoryId clears the reference.
type transactionUpdate struct {
	Amount     *core.Money `json:"amount"`
	Payee      *string     `json:"payee"`
	Notes      *string     `json:"notes"`
	Date       *core.Date  `json:"date"`
	AccountID  *string     `json:"accountId"`
	CategoryID *string     `json:"categoryId"`
}

// NewTransactionHandlers wires the transaction family onto the shared
// contract. Listing accepts optional accountId/from/to query filters.
func NewTransactionHandlers(store TransactionStore, logger *log.Logger, events *amqp.Publisher) *Handlers[core.Transaction] {
	return NewHandlers("transactions", Ops[core.Transaction]{
		ID: func(t core.Transaction) string { return t.ID },
		List: func(ctx context.Context, owner string, q url.Values) ([]core.Transaction, error) {
			filter, err := parseTransactionFilter(q)
			if err != nil {
				return nil, err
			}
			return store.List(ctx, owner, filter)
		},
		Get: store.Get,
		Create: func(ctx context.Context, owner string, r *http.Request) (core.Transaction, error) {
			var in transactionInput
			if err := decodeBody(r, &in); err != nil {
				return core.Transaction{}, err
			}
			if in.Amount == nil {
				return core.Transaction{}, core.ErrMissingAmount
			}
			tx := core.Transaction{
				ID:         uuid.NewString(),
				Amount:     *in.Amount,
				Payee:      strings.TrimSpace(in.Payee),
				Notes:      in.Notes,
				Date:       in.Date,
				AccountID:  strings.TrimSpace(in.AccountID),
				CategoryID: in.CategoryID,
				Owner:      owner,
			}
			if err := tx.Validate(); err != nil {
				return core.Transaction{}, err
			}
			return store.Create(ctx, tx)
		},
		Update: func(ctx context.Context, id, owner string, r *http.Request) (core.Transaction, error) {
			var in transactionUpdate
			if err := decodeBody(r, &in); err != nil {
				return core.Transaction{}, err
			}
			patch := TransactionPatch{
				Amount:     in.Amount,
				Payee:      in.Payee,
				Notes:      in.Notes,
				Date:       in.Date,
				AccountID:  in.AccountID,
				CategoryID: in.CategoryID,
			}
			if patch.Payee != nil && strings.TrimSpace(*patch.Payee) == "" {
				return core.Transaction{}, core.ErrEmptyPayee
			}
			if patch.AccountID != nil && strings.TrimSpace(*patch.AccountID) == "" {
				return core.Transaction{}, core.ErrMissingAccount
			}
			return store.Update(ctx, id, owner, patch)
		},
		Delete:     store.Delete,
		BulkDelete: store.BulkDelete,
	}, logger, events)
}

// parseTransactionFilter reads the optional accountId/from/to query
// parameters; a malformed date is a validation error, not a silent skip.
func parseTransactionFilter(q url.Values) (TransactionFilter, error) {
	var f TransactionFilter
	f.AccountID = strings.TrimSpace(q.Get("accountId"))
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		from, err := core.ParseDate(v)
		if err != nil {
			return TransactionFilter{}, err
		}
		f.From = from
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		to, err := core.ParseDate(v)
		if err != nil {
			return TransactionFilter{}, err
		}
		f.To = to
	}
	return f, nil
}

// decodeBody delegates to the shared JSON decoding with validation
// mapping.
func decodeBody(r *http.Request, dst any) error {
	return web.DecodeJSON(r, dst)
}
