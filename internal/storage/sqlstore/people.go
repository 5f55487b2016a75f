package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// ListPeople retrieves all people in insertion order.
func (s *Store) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM people ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}

// CreatePerson inserts a new person.
func (s *Store) CreatePerson(ctx context.Context, person *models.Person) error {
	_, err := s.db.ExecContext(ctx, s.rebind("INSERT INTO people (name) VALUES (?)"), person.Name)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// DeletePerson removes a person together with the expenses the removal
// dropped, and strips them from the participants of the surviving expenses.
func (s *Store) DeletePerson(ctx context.Context, removal models.PersonRemoval) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range removal.DroppedExpenseIDs {
			if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM expense_participants WHERE expense_id = ?"), id); err != nil {
				return fmt.Errorf("failed to delete participants of %s: %w", id, err)
			}
			if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM expenses WHERE id = ?"), id); err != nil {
				return fmt.Errorf("failed to delete expense %s: %w", id, err)
			}
		}

		if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM expense_participants WHERE person = ?"), removal.Name); err != nil {
			return fmt.Errorf("failed to strip participant: %w", err)
		}

		res, err := tx.ExecContext(ctx, s.rebind("DELETE FROM people WHERE name = ?"), removal.Name)
		if err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("person %q: %w", removal.Name, storage.ErrNotFound)
		}
		return nil
	})
}
