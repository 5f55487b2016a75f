package models

// Person is a participant in the shared ledger.
// The name is the identity: it is case-sensitive and unique within a ledger.
type Person struct {
	// Name is the display name and the identity of the person.
	Name string
}

// PersonRemoval describes the cascade caused by removing a person.
type PersonRemoval struct {
	// Name is the removed person.
	Name string

	// DroppedExpenseIDs are expenses deleted entirely, either because the
	// person paid for them or because they were the last participant.
	DroppedExpenseIDs []string

	// StrippedExpenseIDs are expenses that survive with the person removed
	// from their participants and shares.
	StrippedExpenseIDs []string
}
