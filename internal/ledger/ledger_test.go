package ledger

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestLedger returns a ledger with deterministic IDs and the given people.
func newTestLedger(t *testing.T, people ...string) *Ledger {
	t.Helper()
	l := New()
	n := 0
	l.newID = func() string {
		n++
		return fmt.Sprintf("exp-%d", n)
	}
	for _, p := range people {
		if err := l.AddPerson(p); err != nil {
			t.Fatalf("AddPerson(%q) failed: %v", p, err)
		}
	}
	return l
}

func TestAddPerson(t *testing.T) {
	l := newTestLedger(t, "Alice")

	tests := []struct {
		name    string
		input   string
		wantErr any
	}{
		{name: "new person", input: "Bob"},
		{name: "names are case-sensitive", input: "alice"},
		{name: "duplicate", input: "Alice", wantErr: &DuplicateNameError{}},
		{name: "duplicate after trimming", input: "  Alice ", wantErr: &DuplicateNameError{}},
		{name: "empty", input: "", wantErr: &EmptyNameError{}},
		{name: "whitespace only", input: " \t ", wantErr: &EmptyNameError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.AddPerson(tt.input)
			switch want := tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("AddPerson(%q) error = %v, want nil", tt.input, err)
				}
			case *DuplicateNameError:
				if !errors.As(err, &want) {
					t.Fatalf("AddPerson(%q) error = %v, want DuplicateNameError", tt.input, err)
				}
			case *EmptyNameError:
				if !errors.As(err, &want) {
					t.Fatalf("AddPerson(%q) error = %v, want EmptyNameError", tt.input, err)
				}
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error %v should match ErrValidation", err)
			}
		})
	}

	got := strings.Join(l.People(), ",")
	if got != "Alice,Bob,alice" {
		t.Errorf("People() = %s, want insertion order Alice,Bob,alice", got)
	}
}

func TestAddExpense_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input ExpenseInput
		check func(t *testing.T, err error)
	}{
		{
			name:  "zero amount",
			input: ExpenseInput{Amount: decimal.Zero, Payer: "Alice", Participants: []string{"Alice"}},
			check: wantErrAs[*InvalidAmountError],
		},
		{
			name:  "negative amount",
			input: ExpenseInput{Amount: dec("-5"), Payer: "Alice", Participants: []string{"Alice"}},
			check: wantErrAs[*InvalidAmountError],
		},
		{
			name:  "amount rounding to zero",
			input: ExpenseInput{Amount: dec("0.004"), Payer: "Alice", Participants: []string{"Alice"}},
			check: wantErrAs[*InvalidAmountError],
		},
		{
			name:  "amount checked before payer",
			input: ExpenseInput{Amount: decimal.Zero, Payer: "Nobody", Participants: []string{"Nobody"}},
			check: wantErrAs[*InvalidAmountError],
		},
		{
			name:  "amount above maximum",
			input: ExpenseInput{Amount: dec("10000000000"), Payer: "Alice", Participants: []string{"Alice"}},
			check: wantErrAs[*InvalidAmountError],
		},
		{
			name:  "amount with huge exponent",
			input: ExpenseInput{Amount: decimal.New(1, 1000000), Payer: "Alice", Participants: []string{"Alice"}},
			check: func(t *testing.T, err error) {
				wantErrAs[*InvalidAmountError](t, err)
				if n := len(err.Error()); n > 200 {
					t.Errorf("error message is %d bytes, want the amount left unexpanded", n)
				}
			},
		},
		{
			name:  "unknown payer",
			input: ExpenseInput{Amount: dec("10"), Payer: "Mallory", Participants: []string{"Alice"}},
			check: func(t *testing.T, err error) {
				var upe *UnknownPersonError
				if !errors.As(err, &upe) {
					t.Fatalf("error = %v, want UnknownPersonError", err)
				}
				if upe.Role != RolePayer || upe.Name != "Mallory" {
					t.Errorf("got role=%s name=%s, want payer Mallory", upe.Role, upe.Name)
				}
			},
		},
		{
			name:  "no participants",
			input: ExpenseInput{Amount: dec("10"), Payer: "Alice"},
			check: func(t *testing.T, err error) {
				var upe *UnknownPersonError
				if !errors.As(err, &upe) {
					t.Fatalf("error = %v, want UnknownPersonError", err)
				}
				if upe.Role != RoleParticipant || upe.Name != "" {
					t.Errorf("got role=%s name=%q, want participant with empty name", upe.Role, upe.Name)
				}
			},
		},
		{
			name:  "whitespace-only participant",
			input: ExpenseInput{Amount: dec("10"), Payer: "Alice", Participants: []string{"Alice", "  "}},
			check: func(t *testing.T, err error) {
				var upe *UnknownPersonError
				if !errors.As(err, &upe) {
					t.Fatalf("error = %v, want UnknownPersonError", err)
				}
				if upe.Role != RoleParticipant || upe.Name != "  " {
					t.Errorf("got role=%s name=%q, want participant %q", upe.Role, upe.Name, "  ")
				}
				if strings.Contains(err.Error(), "at least one") {
					t.Errorf("message %q should name the blank participant", err.Error())
				}
			},
		},
		{
			name: "payer checked before unparseable share",
			input: ExpenseInput{
				Amount: dec("10"), Payer: "Mallory", Participants: []string{"Alice"},
				RawShares: map[string]string{"Alice": "ten"},
			},
			check: func(t *testing.T, err error) {
				var upe *UnknownPersonError
				if !errors.As(err, &upe) || upe.Role != RolePayer {
					t.Fatalf("error = %v, want UnknownPersonError for the payer", err)
				}
			},
		},
		{
			name: "unparseable share",
			input: ExpenseInput{
				Amount: dec("10"), Payer: "Alice", Participants: []string{"Alice", "Bob"},
				RawShares: map[string]string{"Alice": "5", "Bob": "five"},
			},
			check: func(t *testing.T, err error) {
				var iae *InvalidAmountError
				if !errors.As(err, &iae) {
					t.Fatalf("error = %v, want InvalidAmountError", err)
				}
				if iae.Person != "Bob" {
					t.Errorf("got person %q, want Bob", iae.Person)
				}
			},
		},
		{
			name: "share above maximum",
			input: ExpenseInput{
				Amount: dec("10"), Payer: "Alice", Participants: []string{"Alice", "Bob"},
				Shares: map[string]decimal.Decimal{"Alice": decimal.New(1, 20), "Bob": dec("0")},
			},
			check: wantErrAs[*InvalidAmountError],
		},
		{
			name: "share given twice after trimming",
			input: ExpenseInput{
				Amount: dec("10"), Payer: "Alice", Participants: []string{"Alice"},
				Shares: map[string]decimal.Decimal{"Alice": dec("5"), " Alice": dec("5")},
			},
			check: wantErrAs[*ShareMismatchError],
		},
		{
			name:  "unknown participant",
			input: ExpenseInput{Amount: dec("10"), Payer: "Alice", Participants: []string{"Alice", "Zed"}},
			check: wantErrAs[*UnknownPersonError],
		},
		{
			name: "missing share",
			input: ExpenseInput{
				Amount: dec("10"), Payer: "Alice", Participants: []string{"Alice", "Bob"},
				Shares: map[string]decimal.Decimal{"Alice": dec("10")},
			},
			check: wantErrAs[*ShareMismatchError],
		},
		{
			name: "share for non-participant",
			input: ExpenseInput{
				Amount: dec("10"), Payer: "Alice", Participants: []string{"Alice"},
				Shares: map[string]decimal.Decimal{"Alice": dec("5"), "Bob": dec("5")},
			},
			check: wantErrAs[*ShareMismatchError],
		},
		{
			name: "negative share",
			input: ExpenseInput{
				Amount: dec("10"), Payer: "Alice", Participants: []string{"Alice", "Bob"},
				Shares: map[string]decimal.Decimal{"Alice": dec("15"), "Bob": dec("-5")},
			},
			check: wantErrAs[*ShareMismatchError],
		},
		{
			name: "shares off by two cents",
			input: ExpenseInput{
				Amount: dec("100"), Payer: "Alice", Participants: []string{"Alice", "Bob"},
				Shares: map[string]decimal.Decimal{"Alice": dec("50.01"), "Bob": dec("50.01")},
			},
			check: func(t *testing.T, err error) {
				var sme *ShareMismatchError
				if !errors.As(err, &sme) {
					t.Fatalf("error = %v, want ShareMismatchError", err)
				}
				if !sme.Expected.Equal(dec("100")) || !sme.Actual.Equal(dec("100.02")) {
					t.Errorf("expected=%s actual=%s, want 100 and 100.02", sme.Expected, sme.Actual)
				}
				if !strings.Contains(err.Error(), "100.00") || !strings.Contains(err.Error(), "100.02") {
					t.Errorf("message %q should report expected and actual sums", err.Error())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t, "Alice", "Bob")
			_, err := l.AddExpense(tt.input)
			if err == nil {
				t.Fatal("AddExpense succeeded, want error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error %v should match ErrValidation", err)
			}
			tt.check(t, err)
			if n := len(l.Expenses()); n != 0 {
				t.Errorf("ledger has %d expenses after failed add, want 0", n)
			}
		})
	}
}

func wantErrAs[E error](t *testing.T, err error) {
	t.Helper()
	var target E
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want %T", err, target)
	}
}

func TestAddExpense_ShareTolerance(t *testing.T) {
	for _, sum := range []string{"99.99", "100.00", "100.01"} {
		t.Run(sum, func(t *testing.T) {
			l := newTestLedger(t, "Alice", "Bob")
			bob := dec(sum).Sub(dec("40"))
			_, err := l.AddExpense(ExpenseInput{
				Amount: dec("100"), Payer: "Alice", Participants: []string{"Alice", "Bob"},
				Shares: map[string]decimal.Decimal{"Alice": dec("40"), "Bob": bob},
			})
			if err != nil {
				t.Fatalf("shares summing to %s should be accepted: %v", sum, err)
			}
		})
	}
}

func TestAddExpense_Defaults(t *testing.T) {
	l := newTestLedger(t, "Alice", "Bob")

	e, err := l.AddExpense(ExpenseInput{
		Description:  "   ",
		Amount:       dec("12.345"),
		Payer:        " Alice ",
		Participants: []string{"Alice", "Bob", "Alice"},
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	if e.ID != "exp-1" {
		t.Errorf("ID = %s, want exp-1", e.ID)
	}
	if e.Description != "Expense" {
		t.Errorf("Description = %q, want default", e.Description)
	}
	if !e.Amount.Equal(dec("12.35")) {
		t.Errorf("Amount = %s, want 12.35", e.Amount)
	}
	if e.Payer != "Alice" {
		t.Errorf("Payer = %q, want trimmed Alice", e.Payer)
	}
	if len(e.Participants) != 2 {
		t.Errorf("Participants = %v, want duplicates collapsed", e.Participants)
	}
	if e.IsCustomSplit() {
		t.Error("expense without shares should be an equal split")
	}
	if e.CreatedAt == 0 {
		t.Error("expected CreatedAt to be set")
	}
}

func TestRemovePerson_Cascade(t *testing.T) {
	l := newTestLedger(t, "Alice", "Bob", "Carol")

	mustAdd := func(in ExpenseInput) string {
		t.Helper()
		e, err := l.AddExpense(in)
		if err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		return e.ID
	}

	paidByBob := mustAdd(ExpenseInput{Amount: dec("30"), Payer: "Bob", Participants: []string{"Alice", "Bob"}})
	bobShares := mustAdd(ExpenseInput{
		Amount: dec("60"), Payer: "Alice", Participants: []string{"Alice", "Bob", "Carol"},
		Shares: map[string]decimal.Decimal{"Alice": dec("10"), "Bob": dec("20"), "Carol": dec("30")},
	})
	onlyBob := mustAdd(ExpenseInput{Amount: dec("5"), Payer: "Carol", Participants: []string{"Bob"}})
	untouched := mustAdd(ExpenseInput{Amount: dec("8"), Payer: "Carol", Participants: []string{"Alice"}})

	removal, ok := l.RemovePerson("Bob")
	if !ok {
		t.Fatal("RemovePerson(Bob) reported not found")
	}

	if got := strings.Join(removal.DroppedExpenseIDs, ","); got != paidByBob+","+onlyBob {
		t.Errorf("DroppedExpenseIDs = %s, want %s,%s", got, paidByBob, onlyBob)
	}
	if got := strings.Join(removal.StrippedExpenseIDs, ","); got != bobShares {
		t.Errorf("StrippedExpenseIDs = %s, want %s", got, bobShares)
	}

	expenses := l.Expenses()
	if len(expenses) != 2 {
		t.Fatalf("got %d expenses, want 2", len(expenses))
	}
	if expenses[0].ID != bobShares || expenses[1].ID != untouched {
		t.Errorf("surviving expenses = %s,%s, want %s,%s", expenses[0].ID, expenses[1].ID, bobShares, untouched)
	}
	stripped := expenses[0]
	if stripped.HasParticipant("Bob") {
		t.Error("Bob should be stripped from participants")
	}
	if _, ok := stripped.Shares["Bob"]; ok {
		t.Error("Bob should be stripped from shares")
	}
	if len(stripped.Shares) != 2 {
		t.Errorf("got %d shares, want 2", len(stripped.Shares))
	}
	if l.Has("Bob") {
		t.Error("Bob should no longer be a person")
	}
}

func TestAddExpense_TrimmedShareKeys(t *testing.T) {
	l := newTestLedger(t, "Alice", "Bob")

	e, err := l.AddExpense(ExpenseInput{
		Amount:       dec("100"),
		Payer:        "Alice",
		Participants: []string{"Alice", " Bob"},
		RawShares:    map[string]string{"Alice": "20", " Bob": " 80"},
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if !e.Shares["Bob"].Equal(dec("80")) || !e.Shares["Alice"].Equal(dec("20")) {
		t.Errorf("shares = %v, want Alice:20 Bob:80", e.Shares)
	}
	if _, ok := e.Shares[" Bob"]; ok {
		t.Error("share keys should be stored trimmed")
	}
}

func TestRemovePerson_TrimsName(t *testing.T) {
	l := newTestLedger(t, "Alice", "Bob")

	removal, ok := l.RemovePerson(" Alice ")
	if !ok {
		t.Fatal("RemovePerson(\" Alice \") should remove Alice")
	}
	if removal.Name != "Alice" {
		t.Errorf("removal.Name = %q, want Alice", removal.Name)
	}
	if got := strings.Join(l.People(), ","); got != "Bob" {
		t.Errorf("People() = %s, want Bob", got)
	}
}

func TestRemovePerson_NotFound(t *testing.T) {
	l := newTestLedger(t, "Alice")
	if _, ok := l.RemovePerson("Bob"); ok {
		t.Error("RemovePerson of unknown name should report false")
	}
	if len(l.People()) != 1 {
		t.Error("ledger should be unchanged")
	}
}

func TestRemoveExpense(t *testing.T) {
	l := newTestLedger(t, "Alice", "Bob")
	for i := 0; i < 3; i++ {
		if _, err := l.AddExpense(ExpenseInput{Amount: dec("10"), Payer: "Alice", Participants: []string{"Bob"}}); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
	}

	t.Run("by id", func(t *testing.T) {
		if !l.RemoveExpense("exp-2") {
			t.Fatal("RemoveExpense(exp-2) reported not found")
		}
		if l.RemoveExpense("exp-2") {
			t.Error("second RemoveExpense(exp-2) should be a no-op")
		}
	})

	t.Run("by index", func(t *testing.T) {
		if _, ok := l.RemoveExpenseAt(5); ok {
			t.Error("out of range index should be a no-op")
		}
		if _, ok := l.RemoveExpenseAt(-1); ok {
			t.Error("negative index should be a no-op")
		}
		e, ok := l.RemoveExpenseAt(1)
		if !ok || e.ID != "exp-3" {
			t.Errorf("RemoveExpenseAt(1) = %s,%v, want exp-3,true", e.ID, ok)
		}
	})

	if got := l.Expenses(); len(got) != 1 || got[0].ID != "exp-1" {
		t.Errorf("remaining expenses = %v, want only exp-1", got)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	l := newTestLedger(t, "Alice", "Bob")
	if _, err := l.AddExpense(ExpenseInput{
		Amount: dec("10"), Payer: "Alice", Participants: []string{"Alice", "Bob"},
		Shares: map[string]decimal.Decimal{"Alice": dec("5"), "Bob": dec("5")},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	snap := l.Snapshot()
	l.RemovePerson("Bob")

	if len(snap.People) != 2 {
		t.Errorf("snapshot people = %v, want both", snap.People)
	}
	if len(snap.Expenses[0].Participants) != 2 || len(snap.Expenses[0].Shares) != 2 {
		t.Error("snapshot expense was mutated by a later removal")
	}
}

func TestRestore(t *testing.T) {
	l := newTestLedger(t, "Alice", "Bob")
	if _, err := l.AddExpense(ExpenseInput{Amount: dec("10"), Payer: "Alice", Participants: []string{"Bob"}}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	restored, err := Restore(l.People(), l.Expenses())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(restored.Expenses()) != 1 || len(restored.People()) != 2 {
		t.Error("restored ledger does not match the original")
	}

	bad := l.Expenses()
	bad[0].Payer = "Zed"
	if _, err := Restore(l.People(), bad); err == nil {
		t.Error("Restore should reject an expense with an unknown payer")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "90", want: "90"},
		{input: " 12.5 ", want: "12.5"},
		{input: "10.005", want: "10.01"},
		{input: "0", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "9999999999.99", want: "9999999999.99"},
		{input: "9999999999.994", want: "9999999999.99"},
		{input: "9999999999.995", wantErr: true},
		{input: "10000000000", wantErr: true},
		{input: "1e1000000", wantErr: true},
		{input: "1e-1000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAmount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var iae *InvalidAmountError
				if !errors.As(err, &iae) {
					t.Errorf("error = %v, want InvalidAmountError", err)
				}
				return
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseShare(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "0", want: "0"},
		{input: "33.333", want: "33.33"},
		{input: "-1", want: "-1"},
		{input: "1e-1000000", want: "0"},
		{input: "9999999999.99", want: "9999999999.99"},
		{input: "1e1000000", wantErr: true},
		{input: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseShare("Bob", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseShare(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var iae *InvalidAmountError
				if !errors.As(err, &iae) || iae.Person != "Bob" {
					t.Errorf("error = %v, want InvalidAmountError for Bob", err)
				}
				return
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ParseShare(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
