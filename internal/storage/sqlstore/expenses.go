package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// ListExpenses retrieves all expenses in insertion order with their
// participants and shares.
func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, payer, split_mode, created_at FROM expenses ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var e models.Expense
		var mode string
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Payer, &mode, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if mode == splitCustom {
			e.Shares = make(map[string]decimal.Decimal)
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	// Participants are read in a second pass so that a single-connection
	// pool never has two result sets open.
	partRows, err := s.db.QueryContext(ctx,
		`SELECT p.expense_id, p.person, p.share
		 FROM expense_participants p
		 JOIN expenses e ON e.id = p.expense_id
		 ORDER BY e.seq, p.position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var expenseID, person string
		var share decimal.NullDecimal
		if err := partRows.Scan(&expenseID, &person, &share); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		i, ok := index[expenseID]
		if !ok {
			continue
		}
		e := &expenses[i]
		e.Participants = append(e.Participants, person)
		if e.Shares != nil && share.Valid {
			e.Shares[person] = share.Decimal
		}
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return expenses, nil
}

// CreateExpense persists a new expense with its participants and shares.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		return fmt.Errorf("expense ID is required")
	}

	mode := splitEqual
	if expense.IsCustomSplit() {
		mode = splitCustom
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			s.rebind(`INSERT INTO expenses (id, description, amount, payer, split_mode, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`),
			expense.ID, expense.Description, expense.Amount.StringFixed(2), expense.Payer, mode, expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for pos, person := range expense.Participants {
			var share any
			if expense.IsCustomSplit() {
				share = expense.Shares[person].StringFixed(2)
			}
			_, err = tx.ExecContext(ctx,
				s.rebind("INSERT INTO expense_participants (expense_id, person, position, share) VALUES (?, ?, ?, ?)"),
				expense.ID, person, pos, share,
			)
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}
		return nil
	})
}

// DeleteExpense removes an expense by ID.
func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM expense_participants WHERE expense_id = ?"), expenseID); err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}

		res, err := tx.ExecContext(ctx, s.rebind("DELETE FROM expenses WHERE id = ?"), expenseID)
		if err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
		}
		return nil
	})
}
