// Package core holds the domain model shared by every service: money in
// integer minor units, day-granular dates, the owned resource types and
// their validation rules. It performs no I/O.
package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Money is a signed amount in integer minor units (e.g. cents).
// All arithmetic on amounts stays in int64; floats are display-only.
type Money struct {
	Cents int64
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m minus o.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// IsIncome reports whether the amount is positive.
func (m Money) IsIncome() bool {
	return m.Cents > 0
}

// IsExpense reports whether the amount is negative.
func (m Money) IsExpense() bool {
	return m.Cents < 0
}

// MarshalJSON encodes the amount as a bare integer so the wire format
// stays `"amount": -1250` rather than a nested object.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Cents, 10)), nil
}

// UnmarshalJSON accepts a bare integer number of minor units.
func (m *Money) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: amount must be a number", ErrValidation)
	}
	cents, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: amount must be an integer of minor units", ErrValidation)
	}
	m.Cents = cents
	return nil
}

func (m Money) String() string {
	return strconv.FormatInt(m.Cents, 10)
}
