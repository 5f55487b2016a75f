// Package book is a ledger persisted through a storage.Store.
//
// Every mutation loads the current state into a ledger.Ledger, lets it
// validate and apply the change, and writes the accepted change through to
// the store. Mutations are serialized so that each one sees the result of
// the previous one.
package book

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Book exposes the ledger operations on top of a store.
type Book struct {
	mu    sync.Mutex
	store storage.Store
}

// New creates a Book backed by store.
func New(store storage.Store) *Book {
	return &Book{store: store}
}

// load rebuilds the ledger from the store. Callers hold b.mu.
func (b *Book) load(ctx context.Context) (*ledger.Ledger, error) {
	people, err := b.store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := b.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name
	}

	l, err := ledger.Restore(names, expenses)
	if err != nil {
		return nil, fmt.Errorf("stored ledger is inconsistent: %w", err)
	}
	return l, nil
}

// Snapshot returns a consistent copy of the current state.
func (b *Book) Snapshot(ctx context.Context) (ledger.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, err := b.load(ctx)
	if err != nil {
		return ledger.Snapshot{}, err
	}
	return l.Snapshot(), nil
}

// ListPeople returns person names in insertion order.
func (b *Book) ListPeople(ctx context.Context) ([]string, error) {
	snap, err := b.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.People, nil
}

// ListExpenses returns expenses in insertion order.
func (b *Book) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	snap, err := b.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Expenses, nil
}

// Recompute derives balances and settlements from the current state.
func (b *Book) Recompute(ctx context.Context) (calculator.Result, error) {
	snap, err := b.Snapshot(ctx)
	if err != nil {
		return calculator.Result{}, err
	}
	return calculator.Recompute(snap), nil
}

// AddPerson adds a person and returns their name as stored.
func (b *Book) AddPerson(ctx context.Context, name string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, err := b.load(ctx)
	if err != nil {
		return "", err
	}
	if err := l.AddPerson(name); err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if err := b.store.CreatePerson(ctx, &models.Person{Name: name}); err != nil {
		return "", err
	}

	slog.Info("Person added", "name", name)
	return name, nil
}

// RemovePerson removes a person and cascades to their expenses.
// It reports false, with no error, when the person does not exist.
func (b *Book) RemovePerson(ctx context.Context, name string) (models.PersonRemoval, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, err := b.load(ctx)
	if err != nil {
		return models.PersonRemoval{}, false, err
	}
	removal, ok := l.RemovePerson(name)
	if !ok {
		return models.PersonRemoval{}, false, nil
	}

	if err := b.store.DeletePerson(ctx, removal); err != nil {
		return models.PersonRemoval{}, false, err
	}

	slog.Info("Person removed",
		"name", removal.Name,
		"dropped_expenses", len(removal.DroppedExpenseIDs),
		"stripped_expenses", len(removal.StrippedExpenseIDs),
	)
	return removal, true, nil
}

// AddExpense validates and records a new expense.
func (b *Book) AddExpense(ctx context.Context, in ledger.ExpenseInput) (models.Expense, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, err := b.load(ctx)
	if err != nil {
		return models.Expense{}, err
	}
	expense, err := l.AddExpense(in)
	if err != nil {
		return models.Expense{}, err
	}

	if err := b.store.CreateExpense(ctx, &expense); err != nil {
		return models.Expense{}, err
	}

	slog.Info("Expense added",
		"expense_id", expense.ID,
		"amount", expense.Amount.StringFixed(2),
		"payer", expense.Payer,
		"participants", len(expense.Participants),
		"custom_split", expense.IsCustomSplit(),
	)
	return expense, nil
}

// RemoveExpense removes an expense by ID.
// It reports false, with no error, when the expense does not exist.
func (b *Book) RemoveExpense(ctx context.Context, expenseID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, err := b.load(ctx)
	if err != nil {
		return false, err
	}
	if !l.RemoveExpense(expenseID) {
		return false, nil
	}
	if err := b.store.DeleteExpense(ctx, expenseID); err != nil {
		return false, err
	}

	slog.Info("Expense removed", "expense_id", expenseID)
	return true, nil
}

// RemoveExpenseAt removes the expense at a position in listing order.
// It reports false, with no error, when index is out of range.
func (b *Book) RemoveExpenseAt(ctx context.Context, index int) (models.Expense, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, err := b.load(ctx)
	if err != nil {
		return models.Expense{}, false, err
	}
	expense, ok := l.RemoveExpenseAt(index)
	if !ok {
		return models.Expense{}, false, nil
	}
	if err := b.store.DeleteExpense(ctx, expense.ID); err != nil {
		return models.Expense{}, false, err
	}

	slog.Info("Expense removed", "expense_id", expense.ID, "index", index)
	return expense, true, nil
}
