package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// Share is one participant's part of an expense.
type Share struct {
	Participant string
	Amount      decimal.Decimal
}

// SplitShares computes what each participant owes for one expense, in
// participant order.
//
// A custom split returns the recorded shares. An equal split gives every
// participant amount / n rounded to two places, half away from zero, so
// the shares may not add up to the amount exactly (100 / 3 = 3 × 33.33).
// The residue is kept rather than assigned to anyone.
func SplitShares(e models.Expense) []Share {
	if len(e.Participants) == 0 {
		return nil
	}

	shares := make([]Share, len(e.Participants))
	if e.IsCustomSplit() {
		for i, p := range e.Participants {
			shares[i] = Share{Participant: p, Amount: e.Shares[p]}
		}
		return shares
	}

	perPerson := e.Amount.DivRound(decimal.NewFromInt(int64(len(e.Participants))), 2)
	for i, p := range e.Participants {
		shares[i] = Share{Participant: p, Amount: perPerson}
	}
	return shares
}
