// Package calculator is the balance and settlement engine. Every function
// is pure: it reads a ledger snapshot and returns freshly computed values.
package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
)

// settledEpsilon is the remainder below which a party counts as settled.
var settledEpsilon = decimal.New(1, -4)

// MemberBalance represents the balance information for one person.
type MemberBalance struct {
	MemberName string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal // Total amount fronted across all expenses
	TotalOwed  decimal.Decimal // Total of this person's shares
}

// Result is the output of Recompute.
type Result struct {
	// Balances has one entry per person, in ledger order.
	Balances []MemberBalance

	// Settlements are the suggested payments, in matching order.
	Settlements []models.Settlement
}

// NoSettlementsNeeded reports whether nobody has to pay anybody.
// Front ends should say so instead of rendering an empty list.
func (r Result) NoSettlementsNeeded() bool {
	return len(r.Settlements) == 0
}

// Balance returns the net balance of name, zero if unknown.
func (r Result) Balance(name string) decimal.Decimal {
	for _, b := range r.Balances {
		if b.MemberName == name {
			return b.NetBalance
		}
	}
	return decimal.Zero
}

// Residual returns the sum of all net balances. It is zero unless an equal
// split left rounding residue behind.
func (r Result) Residual() decimal.Decimal {
	sum := decimal.Zero
	for _, b := range r.Balances {
		sum = sum.Add(b.NetBalance)
	}
	return sum
}

// Recompute derives balances and settlements from a snapshot.
func Recompute(snap ledger.Snapshot) Result {
	balances := CalculateBalances(snap)
	return Result{
		Balances:    balances,
		Settlements: Settle(balances),
	}
}

// CalculateBalances computes every person's net balance from scratch.
//
// Algorithm:
// - Every person starts at zero
// - For each expense: the payer gains the amount, each participant loses their share
// - Net balances are rounded to two places at the end
func CalculateBalances(snap ledger.Snapshot) []MemberBalance {
	balances := make([]MemberBalance, len(snap.People))
	index := make(map[string]int, len(snap.People))
	for i, name := range snap.People {
		balances[i] = MemberBalance{MemberName: name}
		index[name] = i
	}

	// Names outside the people list only appear in hand-built snapshots;
	// they are appended so that money is still conserved.
	member := func(name string) *MemberBalance {
		i, ok := index[name]
		if !ok {
			i = len(balances)
			balances = append(balances, MemberBalance{MemberName: name})
			index[name] = i
		}
		return &balances[i]
	}

	for _, e := range snap.Expenses {
		shares := SplitShares(e)
		if len(shares) == 0 {
			continue
		}

		payer := member(e.Payer)
		payer.TotalPaid = payer.TotalPaid.Add(e.Amount)

		for _, s := range shares {
			m := member(s.Participant)
			m.TotalOwed = m.TotalOwed.Add(s.Amount)
		}
	}

	for i := range balances {
		b := &balances[i]
		b.NetBalance = ledger.Round2(b.TotalPaid.Sub(b.TotalOwed))
	}
	return balances
}

type party struct {
	name   string
	amount decimal.Decimal
}

// Settle turns net balances into suggested payments using greedy matching:
// the largest debtor pays the largest creditor as much as both allow, and
// whoever is fully settled drops out. Ties keep the order of balances.
//
// Each step settles at least one party, so there are at most
// len(debtors) + len(creditors) - 1 payments.
func Settle(balances []MemberBalance) []models.Settlement {
	var creditors, debtors []party
	for _, b := range balances {
		switch b.NetBalance.Sign() {
		case 1:
			creditors = append(creditors, party{name: b.MemberName, amount: b.NetBalance})
		case -1:
			debtors = append(debtors, party{name: b.MemberName, amount: b.NetBalance.Neg()})
		}
	}

	byAmountDesc := func(a, b party) int { return b.amount.Cmp(a.amount) }
	slices.SortStableFunc(creditors, byAmountDesc)
	slices.SortStableFunc(debtors, byAmountDesc)

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		pay := decimal.Min(d.amount, c.amount)
		settlements = append(settlements, models.Settlement{
			From:   d.name,
			To:     c.name,
			Amount: ledger.Round2(pay),
		})

		d.amount = d.amount.Sub(pay)
		c.amount = c.amount.Sub(pay)

		if d.amount.LessThanOrEqual(settledEpsilon) {
			i++
		}
		if c.amount.LessThanOrEqual(settledEpsilon) {
			j++
		}
	}
	return settlements
}
