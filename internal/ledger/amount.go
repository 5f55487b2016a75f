package ledger

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ShareTolerance is the rounding slack allowed between the sum of custom
// shares and the expense amount.
var ShareTolerance = decimal.New(1, -2)

// MaxAmount is the largest amount or share the ledger accepts. It matches
// the NUMERIC(12,2) columns of the Postgres schema.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// maxIntegerDigits is the number of integer digits of MaxAmount.
const maxIntegerDigits = 10

// Round2 rounds to two fractional digits, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// quantize rounds d to two fractional digits. It reports false when the
// magnitude exceeds MaxAmount, deciding from the coefficient length and
// exponent so that inputs like "1e1000000" are never expanded.
func quantize(d decimal.Decimal) (decimal.Decimal, bool) {
	if d.IsZero() {
		return decimal.Zero, true
	}
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	switch magnitude := digits + int(d.Exponent()); {
	case magnitude > maxIntegerDigits:
		return decimal.Zero, false
	case magnitude < -2:
		// Below 0.001, which rounds to zero.
		return decimal.Zero, true
	}
	d = Round2(d)
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, false
	}
	return d, true
}

// ParseAmount parses a user-supplied expense amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &InvalidAmountError{Input: s}
	}
	amount, ok := quantize(amount)
	if !ok || !amount.IsPositive() {
		return decimal.Zero, &InvalidAmountError{Input: s}
	}
	return amount, nil
}

// ParseShare parses a custom share for person. Zero is allowed;
// negative values are rejected when the expense is added.
func ParseShare(person, s string) (decimal.Decimal, error) {
	share, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &InvalidAmountError{Input: s, Person: person}
	}
	share, ok := quantize(share)
	if !ok {
		return decimal.Zero, &InvalidAmountError{Input: s, Person: person}
	}
	return share, nil
}
