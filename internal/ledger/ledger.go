// Package ledger holds the authoritative set of people and expenses and
// enforces their invariants on every mutation.
//
// A Ledger is not safe for concurrent use. Callers that share one across
// goroutines must serialize mutations themselves (see package book).
package ledger

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// Ledger is an ordered set of people and an ordered list of expenses.
type Ledger struct {
	people   []string
	known    map[string]struct{}
	expenses []models.Expense

	newID func() string
	now   func() time.Time
}

// ExpenseInput carries the caller-supplied fields of a new expense.
// A nil Shares and RawShares requests an equal split.
type ExpenseInput struct {
	Description  string
	Amount       decimal.Decimal
	Payer        string
	Participants []string
	Shares       map[string]decimal.Decimal

	// RawShares holds custom shares as typed by a user. They are parsed with
	// ParseShare after the payer and participants are checked. Set at most
	// one of Shares and RawShares.
	RawShares map[string]string
}

// Snapshot is an immutable copy of the ledger handed to the calculator.
type Snapshot struct {
	People   []string
	Expenses []models.Expense
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		known: make(map[string]struct{}),
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Restore rebuilds a Ledger from persisted people and expenses.
// Referential integrity is re-checked; share sums are not, since expenses
// stripped of a participant legitimately no longer add up.
func Restore(people []string, expenses []models.Expense) (*Ledger, error) {
	l := New()
	for _, name := range people {
		if err := l.AddPerson(name); err != nil {
			return nil, fmt.Errorf("restore person: %w", err)
		}
	}
	for _, e := range expenses {
		if err := l.checkReferences(e); err != nil {
			return nil, fmt.Errorf("restore expense %s: %w", e.ID, err)
		}
		l.expenses = append(l.expenses, e.Clone())
	}
	return l, nil
}

// People returns the person names in insertion order.
func (l *Ledger) People() []string {
	return slices.Clone(l.people)
}

// Has reports whether name is a person in the ledger.
func (l *Ledger) Has(name string) bool {
	_, ok := l.known[name]
	return ok
}

// Expenses returns copies of the expenses in insertion order.
func (l *Ledger) Expenses() []models.Expense {
	out := make([]models.Expense, len(l.expenses))
	for i, e := range l.expenses {
		out[i] = e.Clone()
	}
	return out
}

// Snapshot returns a deep copy of the current state.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{People: l.People(), Expenses: l.Expenses()}
}

// AddPerson adds a person. Surrounding whitespace is trimmed.
func (l *Ledger) AddPerson(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &EmptyNameError{}
	}
	if l.Has(name) {
		return &DuplicateNameError{Name: name}
	}
	l.people = append(l.people, name)
	l.known[name] = struct{}{}
	return nil
}

// RemovePerson removes a person and cascades to their expenses:
// expenses they paid are dropped, they are stripped from the others, and
// expenses left without participants are dropped as well. The name is
// trimmed like in AddPerson. It reports false when no such person exists.
func (l *Ledger) RemovePerson(name string) (models.PersonRemoval, bool) {
	name = strings.TrimSpace(name)
	idx := slices.Index(l.people, name)
	if idx < 0 {
		return models.PersonRemoval{}, false
	}
	l.people = slices.Delete(l.people, idx, idx+1)
	delete(l.known, name)

	removal := models.PersonRemoval{Name: name}
	kept := make([]models.Expense, 0, len(l.expenses))
	for _, e := range l.expenses {
		if e.Payer == name {
			removal.DroppedExpenseIDs = append(removal.DroppedExpenseIDs, e.ID)
			continue
		}
		if !e.HasParticipant(name) {
			kept = append(kept, e)
			continue
		}
		e = e.Clone()
		e.Participants = slices.DeleteFunc(e.Participants, func(p string) bool { return p == name })
		delete(e.Shares, name)
		if len(e.Participants) == 0 {
			removal.DroppedExpenseIDs = append(removal.DroppedExpenseIDs, e.ID)
			continue
		}
		removal.StrippedExpenseIDs = append(removal.StrippedExpenseIDs, e.ID)
		kept = append(kept, e)
	}
	l.expenses = kept
	return removal, true
}

// AddExpense validates in and appends it as a new expense.
// Validation order: amount, payer, participants, shares. On error the
// ledger is left unchanged.
func (l *Ledger) AddExpense(in ExpenseInput) (models.Expense, error) {
	amount, ok := quantize(in.Amount)
	if !ok || !amount.IsPositive() {
		return models.Expense{}, &InvalidAmountError{Input: formatInput(in.Amount)}
	}

	payer := strings.TrimSpace(in.Payer)
	if !l.Has(payer) {
		return models.Expense{}, &UnknownPersonError{Role: RolePayer, Name: payer}
	}

	participants := make([]string, 0, len(in.Participants))
	for _, raw := range in.Participants {
		p := strings.TrimSpace(raw)
		if p == "" {
			return models.Expense{}, &UnknownPersonError{Role: RoleParticipant, Name: raw}
		}
		if slices.Contains(participants, p) {
			continue
		}
		if !l.Has(p) {
			return models.Expense{}, &UnknownPersonError{Role: RoleParticipant, Name: p}
		}
		participants = append(participants, p)
	}
	if len(participants) == 0 {
		return models.Expense{}, &UnknownPersonError{Role: RoleParticipant}
	}

	requested := in.Shares
	if in.RawShares != nil {
		requested = make(map[string]decimal.Decimal, len(in.RawShares))
		for name, raw := range in.RawShares {
			share, err := ParseShare(strings.TrimSpace(name), raw)
			if err != nil {
				return models.Expense{}, err
			}
			requested[name] = share
		}
	}

	var shares map[string]decimal.Decimal
	if requested != nil {
		var err error
		if shares, err = validateShares(amount, participants, requested); err != nil {
			return models.Expense{}, err
		}
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = models.DefaultDescription
	}

	e := models.Expense{
		ID:           l.newID(),
		Description:  description,
		Amount:       amount,
		Payer:        payer,
		Participants: participants,
		Shares:       shares,
		CreatedAt:    l.now().Unix(),
	}
	l.expenses = append(l.expenses, e)
	return e.Clone(), nil
}

// RemoveExpense removes the expense with the given ID.
// It reports false when no such expense exists.
func (l *Ledger) RemoveExpense(id string) bool {
	idx := slices.IndexFunc(l.expenses, func(e models.Expense) bool { return e.ID == id })
	if idx < 0 {
		return false
	}
	l.expenses = slices.Delete(l.expenses, idx, idx+1)
	return true
}

// RemoveExpenseAt removes the expense at a position in display order.
// It reports false when index is out of range.
func (l *Ledger) RemoveExpenseAt(index int) (models.Expense, bool) {
	if index < 0 || index >= len(l.expenses) {
		return models.Expense{}, false
	}
	e := l.expenses[index]
	l.expenses = slices.Delete(l.expenses, index, index+1)
	return e, true
}

// validateShares checks custom shares against the participants. Share keys
// are trimmed like participant names.
func validateShares(amount decimal.Decimal, participants []string, requested map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	in := make(map[string]decimal.Decimal, len(requested))
	for name, share := range requested {
		name = strings.TrimSpace(name)
		if _, dup := in[name]; dup {
			return nil, &ShareMismatchError{Person: name, Reason: "custom amount given twice"}
		}
		in[name] = share
	}

	shares := make(map[string]decimal.Decimal, len(participants))
	sum := decimal.Zero
	for _, p := range participants {
		share, ok := in[p]
		if !ok {
			return nil, &ShareMismatchError{Person: p, Reason: "missing custom amount"}
		}
		if share, ok = quantize(share); !ok {
			return nil, &InvalidAmountError{Input: formatInput(in[p]), Person: p}
		}
		if share.IsNegative() {
			return nil, &ShareMismatchError{Person: p, Reason: "amount must be non-negative"}
		}
		shares[p] = share
		sum = sum.Add(share)
	}
	for name := range in {
		if !slices.Contains(participants, name) {
			return nil, &ShareMismatchError{Person: name, Reason: "not a participant"}
		}
	}
	if sum.Sub(amount).Abs().GreaterThan(ShareTolerance) {
		return nil, &ShareMismatchError{Expected: amount, Actual: sum}
	}
	return shares, nil
}

// formatInput renders a rejected amount for an error message. Values with
// an extreme exponent are shown as coefficient and exponent instead of
// being expanded.
func formatInput(d decimal.Decimal) string {
	if exp := d.Exponent(); exp >= -20 && exp <= 20 {
		return d.String()
	}
	return d.Coefficient().String() + "e" + strconv.Itoa(int(d.Exponent()))
}

func (l *Ledger) checkReferences(e models.Expense) error {
	if !l.Has(e.Payer) {
		return &UnknownPersonError{Role: RolePayer, Name: e.Payer}
	}
	if len(e.Participants) == 0 {
		return &UnknownPersonError{Role: RoleParticipant}
	}
	for _, p := range e.Participants {
		if !l.Has(p) {
			return &UnknownPersonError{Role: RoleParticipant, Name: p}
		}
		if e.Shares != nil {
			if _, ok := e.Shares[p]; !ok {
				return &ShareMismatchError{Person: p, Reason: "missing custom amount"}
			}
		}
	}
	for name := range e.Shares {
		if !e.HasParticipant(name) {
			return &ShareMismatchError{Person: name, Reason: "not a participant"}
		}
	}
	return nil
}
