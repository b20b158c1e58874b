package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Subscription statuses accepted by the subscription service.
const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
)

// Sentinel errors shared across all services. Handlers map these onto
// the HTTP taxonomy: ErrValidation -> 400, ErrUnauthorized -> 401,
// ErrNotFound -> 404, anything else -> 500.
var (
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers both a missing row and a row owned by a
	// different principal; callers must not be able to tell them apart.
	ErrNotFound = errors.New("not found")

	ErrEmptyName      = fmt.Errorf("%w: name must not be empty", ErrValidation)
	ErrEmptyPayee     = fmt.Errorf("%w: payee must not be empty", ErrValidation)
	ErrMissingAccount = fmt.Errorf("%w: accountId is required", ErrValidation)
	ErrMissingDate    = fmt.Errorf("%w: date is required", ErrValidation)
	ErrMissingAmount  = fmt.Errorf("%w: amount is required", ErrValidation)
	ErrBadStatus      = fmt.Errorf("%w: status must be active, canceled or past_due", ErrValidation)
)

type (
	// Account is a bank account owned by a single principal.
	// PlaidID links it to a bank-aggregation provider item, if any.
	Account struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		PlaidID   *string   `json:"plaid_id"`
		Owner     string    `json:"-"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// Category is a spending category owned by a single principal.
	Category struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Owner     string    `json:"-"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// Transaction references an account and optionally a category by id
	// only. The references are not enforced: a dangling CategoryID is
	// tolerated and surfaces as a null CategoryName on reads.
	Transaction struct {
		ID           string    `json:"id"`
		Amount       Money     `json:"amount"`
		Payee        string    `json:"payee"`
		Notes        *string   `json:"notes"`
		Date         Date      `json:"date"`
		AccountID    string    `json:"account_id"`
		CategoryID   *string   `json:"category_id"`
		AccountName  *string   `json:"account_name,omitempty"`
		CategoryName *string   `json:"category_name,omitempty"`
		Owner        string    `json:"-"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	// Subscription is a paid-subscription record gating premium
	// features, owned like any other resource.
	Subscription struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Amount      Money     `json:"amount"`
		Status      string    `json:"status"`
		BillingDate Date      `json:"billing_date"`
		Owner       string    `json:"-"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}
)

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Payee) == "" {
		return ErrEmptyPayee
	}
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrMissingAccount
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	switch s.Status {
	case SubscriptionActive, SubscriptionCanceled, SubscriptionPastDue:
	default:
		return ErrBadStatus
	}
	if s.BillingDate.IsZero() {
		return ErrMissingDate
	}
	return nil
}
