// Package storetest is a conformance suite shared by the storage backends.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Run exercises a storage.Store implementation. newStore must return an
// empty store; Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("PeopleKeepInsertionOrder", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()
		ctx := context.Background()

		for _, name := range []string{"Charlie", "Alice", "Bob"} {
			if err := store.CreatePerson(ctx, &models.Person{Name: name}); err != nil {
				t.Fatalf("CreatePerson(%s) failed: %v", name, err)
			}
		}

		people, err := store.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if got := names(people); got != "[Charlie Alice Bob]" {
			t.Errorf("ListPeople = %s, want [Charlie Alice Bob]", got)
		}
	})

	t.Run("ExpenseRoundTrip", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()
		ctx := context.Background()
		l := seed(t, store, "Alice", "Bob", "Charlie")

		equal := addExpense(t, store, l, ledger.ExpenseInput{
			Description: "Dinner", Amount: dec("90"), Payer: "Alice",
			Participants: []string{"Charlie", "Alice", "Bob"},
		})
		custom := addExpense(t, store, l, ledger.ExpenseInput{
			Description: "Taxi", Amount: dec("100"), Payer: "Bob",
			Participants: []string{"Alice", "Bob"},
			Shares:       map[string]decimal.Decimal{"Alice": dec("20"), "Bob": dec("80")},
		})

		got, err := store.ListExpenses(ctx)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d expenses, want 2", len(got))
		}
		assertExpense(t, got[0], equal)
		assertExpense(t, got[1], custom)
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()
		ctx := context.Background()
		l := seed(t, store, "Alice", "Bob")

		e := addExpense(t, store, l, ledger.ExpenseInput{Amount: dec("10"), Payer: "Alice", Participants: []string{"Bob"}})

		if err := store.DeleteExpense(ctx, e.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, e.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteExpense error = %v, want ErrNotFound", err)
		}

		got, err := store.ListExpenses(ctx)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %d expenses after delete, want 0", len(got))
		}
	})

	t.Run("DeletePersonMatchesLedger", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()
		ctx := context.Background()
		l := seed(t, store, "Alice", "Bob", "Charlie")

		addExpense(t, store, l, ledger.ExpenseInput{Amount: dec("30"), Payer: "Bob", Participants: []string{"Alice", "Bob"}})
		addExpense(t, store, l, ledger.ExpenseInput{
			Amount: dec("60"), Payer: "Alice", Participants: []string{"Alice", "Bob", "Charlie"},
			Shares: map[string]decimal.Decimal{"Alice": dec("10"), "Bob": dec("20"), "Charlie": dec("30")},
		})
		addExpense(t, store, l, ledger.ExpenseInput{Amount: dec("5"), Payer: "Charlie", Participants: []string{"Bob"}})
		addExpense(t, store, l, ledger.ExpenseInput{Amount: dec("12"), Payer: "Charlie", Participants: []string{"Alice", "Bob", "Charlie"}})

		removal, ok := l.RemovePerson("Bob")
		if !ok {
			t.Fatal("ledger did not find Bob")
		}
		if err := store.DeletePerson(ctx, removal); err != nil {
			t.Fatalf("DeletePerson failed: %v", err)
		}

		people, err := store.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if got := names(people); got != "[Alice Charlie]" {
			t.Errorf("ListPeople = %s, want [Alice Charlie]", got)
		}

		got, err := store.ListExpenses(ctx)
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		want := l.Expenses()
		if len(got) != len(want) {
			t.Fatalf("store has %d expenses, ledger has %d", len(got), len(want))
		}
		for i := range want {
			assertExpense(t, got[i], want[i])
		}

		restored, err := ledger.Restore(personNames(people), got)
		if err != nil {
			t.Fatalf("Restore failed: %v", err)
		}
		fromStore := calculator.Recompute(restored.Snapshot())
		fromLedger := calculator.Recompute(l.Snapshot())
		if fmt.Sprint(fromStore) != fmt.Sprint(fromLedger) {
			t.Errorf("recompute differs:\nstore:  %v\nledger: %v", fromStore, fromLedger)
		}
	})

	t.Run("DeleteUnknownPerson", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		err := store.DeletePerson(context.Background(), models.PersonRemoval{Name: "Nobody"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeletePerson error = %v, want ErrNotFound", err)
		}
	})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func names(people []models.Person) string {
	return fmt.Sprint(personNames(people))
}

func personNames(people []models.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.Name
	}
	return out
}

func seed(t *testing.T, store storage.Store, people ...string) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	for _, name := range people {
		if err := l.AddPerson(name); err != nil {
			t.Fatalf("AddPerson(%s) failed: %v", name, err)
		}
		if err := store.CreatePerson(context.Background(), &models.Person{Name: name}); err != nil {
			t.Fatalf("CreatePerson(%s) failed: %v", name, err)
		}
	}
	return l
}

func addExpense(t *testing.T, store storage.Store, l *ledger.Ledger, in ledger.ExpenseInput) models.Expense {
	t.Helper()
	e, err := l.AddExpense(in)
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if err := store.CreateExpense(context.Background(), &e); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return e
}

func assertExpense(t *testing.T, got, want models.Expense) {
	t.Helper()
	if got.ID != want.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, want.ID)
	}
	if got.Description != want.Description {
		t.Errorf("Description mismatch: got %s, want %s", got.Description, want.Description)
	}
	if !got.Amount.Equal(want.Amount) {
		t.Errorf("Amount mismatch: got %s, want %s", got.Amount, want.Amount)
	}
	if got.Payer != want.Payer {
		t.Errorf("Payer mismatch: got %s, want %s", got.Payer, want.Payer)
	}
	if got.CreatedAt != want.CreatedAt {
		t.Errorf("CreatedAt mismatch: got %d, want %d", got.CreatedAt, want.CreatedAt)
	}
	if fmt.Sprint(got.Participants) != fmt.Sprint(want.Participants) {
		t.Errorf("Participants mismatch: got %v, want %v", got.Participants, want.Participants)
	}
	if got.IsCustomSplit() != want.IsCustomSplit() {
		t.Fatalf("split mode mismatch: got custom=%v, want custom=%v", got.IsCustomSplit(), want.IsCustomSplit())
	}
	for name, share := range want.Shares {
		if !got.Shares[name].Equal(share) {
			t.Errorf("share[%s] mismatch: got %s, want %s", name, got.Shares[name], share)
		}
	}
	if len(got.Shares) != len(want.Shares) {
		t.Errorf("got %d shares, want %d", len(got.Shares), len(want.Shares))
	}
}
