// Package sqlstore implements storage.Store on top of database/sql.
// It is shared by the SQLite and PostgreSQL backends, which only differ in
// how they open the database, migrate it, and write query placeholders.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/splitledger/internal/storage"
)

// Placeholder selects the bind parameter syntax of the driver.
type Placeholder int

const (
	// Question uses ? placeholders (SQLite, MySQL).
	Question Placeholder = iota
	// Dollar uses $1, $2, ... placeholders (PostgreSQL).
	Dollar
)

// Split modes stored in expenses.split_mode.
const (
	splitEqual  = "equal"
	splitCustom = "custom"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using a SQL database migrated with the
// ledger schema.
type Store struct {
	db          *sql.DB
	placeholder Placeholder
}

// New wraps an open, migrated database.
func New(db *sql.DB, placeholder Placeholder) *Store {
	return &Store{db: db, placeholder: placeholder}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders for the configured driver.
func (s *Store) rebind(query string) string {
	if s.placeholder != Dollar {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// withTx runs fn in a transaction, committing on success.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
