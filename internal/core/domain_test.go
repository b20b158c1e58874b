package core

import (
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Amount:    Money{Cents: -1200},
		Payee:     "Grocer",
		Date:      NewDate(2025, 6, 1),
		AccountID: "acc-1",
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"blank payee", func(tx *Transaction) { tx.Payee = "  " }, ErrEmptyPayee},
		{"missing account", func(tx *Transaction) { tx.AccountID = "" }, ErrMissingAccount},
		{"missing date", func(tx *Transaction) { tx.Date = Date{} }, ErrMissingDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("%v should wrap ErrValidation", err)
			}
		})
	}
}

func TestSubscriptionValidate(t *testing.T) {
	valid := Subscription{
		Name:        "Streaming",
		Amount:      Money{Cents: 1500},
		Status:      SubscriptionActive,
		BillingDate: NewDate(2025, 7, 1),
	}

	tests := []struct {
		name    string
		mutate  func(*Subscription)
		wantErr error
	}{
		{"valid", func(*Subscription) {}, nil},
		{"canceled is valid", func(s *Subscription) { s.Status = SubscriptionCanceled }, nil},
		{"blank name", func(s *Subscription) { s.Name = "" }, ErrEmptyName},
		{"unknown status", func(s *Subscription) { s.Status = "trialing" }, ErrBadStatus},
		{"missing billing date", func(s *Subscription) { s.BillingDate = Date{} }, ErrMissingDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAccountValidate(t *testing.T) {
	if err := (Account{Name: "Checking"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Account{Name: " "}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("got %v, want ErrEmptyName", err)
	}
}
