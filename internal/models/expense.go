package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultDescription is used when an expense is recorded without one.
const DefaultDescription = "Expense"

// Expense is an amount fronted by one person and owed by a set of participants.
//
// When Shares is nil the amount is split equally among Participants.
// Otherwise it is a custom split and Shares has exactly one entry per participant.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is a human-readable label (e.g., "Dinner", "Taxi").
	Description string

	// Amount is the total paid, always positive with two fractional digits.
	Amount decimal.Decimal

	// Payer is the name of the person who fronted the money.
	Payer string

	// Participants are the names of the people sharing the cost, in the
	// order they were given. Each name appears at most once.
	Participants []string

	// Shares maps participant name to the amount they owe.
	// Nil for an equal split.
	Shares map[string]decimal.Decimal

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// IsCustomSplit reports whether the expense carries explicit shares.
func (e Expense) IsCustomSplit() bool {
	return e.Shares != nil
}

// HasParticipant reports whether name shares in the expense.
func (e Expense) HasParticipant(name string) bool {
	return slices.Contains(e.Participants, name)
}

// Clone returns a deep copy that shares no slices or maps with e.
func (e Expense) Clone() Expense {
	e.Participants = slices.Clone(e.Participants)
	if e.Shares != nil {
		shares := make(map[string]decimal.Decimal, len(e.Shares))
		for name, amount := range e.Shares {
			shares[name] = amount
		}
		e.Shares = shares
	}
	return e
}
