package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrValidation matches every error returned by a rejected mutation.
// Use errors.As with the concrete types below for details.
var ErrValidation = errors.New("invalid ledger mutation")

// Roles reported by UnknownPersonError.
const (
	RolePayer       = "payer"
	RoleParticipant = "participant"
)

// EmptyNameError is returned when a person name is empty or whitespace-only.
type EmptyNameError struct{}

func (e *EmptyNameError) Error() string { return "name must not be empty" }

func (e *EmptyNameError) Is(target error) bool { return target == ErrValidation }

// DuplicateNameError is returned when a person with the same name exists.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("person %q already exists", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrValidation }

// InvalidAmountError is returned for unparseable, non-positive or
// oversized amounts.
// Person is set when the amount was a custom share.
type InvalidAmountError struct {
	Input  string
	Person string
}

func (e *InvalidAmountError) Error() string {
	if e.Person != "" {
		return fmt.Sprintf("invalid amount %q for %s", e.Input, e.Person)
	}
	return fmt.Sprintf("amount must be a positive number up to %s, got %q", MaxAmount.StringFixed(2), e.Input)
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrValidation }

// UnknownPersonError is returned when a payer or participant is not in the ledger.
// An empty Name with RoleParticipant means no participants were given.
type UnknownPersonError struct {
	Role string
	Name string
}

func (e *UnknownPersonError) Error() string {
	if e.Name == "" {
		if e.Role == RolePayer {
			return "payer is required"
		}
		return "select at least one participant"
	}
	return fmt.Sprintf("unknown %s %q", e.Role, e.Name)
}

func (e *UnknownPersonError) Is(target error) bool { return target == ErrValidation }

// ShareMismatchError is returned when custom shares do not cover the
// participants exactly or do not add up to the expense amount.
type ShareMismatchError struct {
	// Person is set when a single share is at fault.
	Person string
	// Reason describes a per-person fault; empty for a sum mismatch.
	Reason   string
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func (e *ShareMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("share for %s: %s", e.Person, e.Reason)
	}
	return fmt.Sprintf("custom shares must sum to %s, current sum: %s",
		e.Expected.StringFixed(2), e.Actual.StringFixed(2))
}

func (e *ShareMismatchError) Is(target error) bool { return target == ErrValidation }
