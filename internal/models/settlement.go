package models

import "github.com/shopspring/decimal"

// Settlement is a suggested payment from a debtor to a creditor.
// Settlements are computed, never recorded.
type Settlement struct {
	// From is the person who owes money and should pay.
	From string

	// To is the person who is owed money and should receive it.
	To string

	// Amount is the payment amount, rounded to two fractional digits.
	Amount decimal.Decimal
}
