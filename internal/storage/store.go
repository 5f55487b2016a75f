// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is returned when a person or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (memory, SQLite, PostgreSQL)
// without changing the book or service layers.
//
// A Store only persists; validation belongs to the ledger package. Callers
// hand it mutations the ledger has already accepted.
type Store interface {
	// ListPeople returns every person in insertion order.
	ListPeople(ctx context.Context) ([]models.Person, error)

	// CreatePerson persists a new person.
	CreatePerson(ctx context.Context, person *models.Person) error

	// DeletePerson removes removal.Name, deletes every expense in
	// removal.DroppedExpenseIDs and strips the person from all other
	// expenses. Returns ErrNotFound if the person does not exist.
	DeletePerson(ctx context.Context, removal models.PersonRemoval) error

	// ListExpenses returns every expense in insertion order, including
	// participants and custom shares.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// CreateExpense persists a new expense. The expense ID must be set.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense by ID.
	// Returns ErrNotFound if the expense does not exist.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
