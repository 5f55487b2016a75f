package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/storetest"
)

// TestPostgresStore runs against a live server and is skipped unless
// SPLITLEDGER_TEST_POSTGRES_DSN points at a disposable database.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SPLITLEDGER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SPLITLEDGER_TEST_POSTGRES_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) storage.Store {
		ctx := context.Background()
		store, err := New(ctx, dsn)
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		if _, err := store.DB().ExecContext(ctx, "TRUNCATE expense_participants, expenses, people"); err != nil {
			t.Fatalf("Failed to reset tables: %v", err)
		}
		return store
	})
}
