// Package memory provides an in-process implementation of storage.Store.
// Nothing survives a restart; it backs tests and throwaway sessions.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps people and expenses in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	people   []models.Person
	expenses []models.Expense
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) ListPeople(ctx context.Context) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.people), nil
}

func (s *Store) CreatePerson(ctx context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.personIndex(person.Name) >= 0 {
		return fmt.Errorf("person %q already stored", person.Name)
	}
	s.people = append(s.people, *person)
	return nil
}

func (s *Store) DeletePerson(ctx context.Context, removal models.PersonRemoval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.personIndex(removal.Name)
	if idx < 0 {
		return fmt.Errorf("person %q: %w", removal.Name, storage.ErrNotFound)
	}
	s.people = slices.Delete(s.people, idx, idx+1)

	s.expenses = slices.DeleteFunc(s.expenses, func(e models.Expense) bool {
		return slices.Contains(removal.DroppedExpenseIDs, e.ID)
	})
	for i := range s.expenses {
		e := &s.expenses[i]
		if !e.HasParticipant(removal.Name) {
			continue
		}
		*e = e.Clone()
		e.Participants = slices.DeleteFunc(e.Participants, func(p string) bool { return p == removal.Name })
		delete(e.Shares, removal.Name)
	}
	return nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Expense, len(s.expenses))
	for i, e := range s.expenses {
		out[i] = e.Clone()
	}
	return out, nil
}

func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		return fmt.Errorf("expense ID is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, expense.Clone())
	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.expenses, func(e models.Expense) bool { return e.ID == expenseID })
	if idx < 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	s.expenses = slices.Delete(s.expenses, idx, idx+1)
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) personIndex(name string) int {
	return slices.IndexFunc(s.people, func(p models.Person) bool { return p.Name == name })
}
