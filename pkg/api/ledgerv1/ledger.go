// Package ledgerv1 defines the wire messages of splitledger.v1.LedgerService.
//
// Monetary values are decimal strings with exactly two fractional digits,
// for example "90.00".
package ledgerv1

// Share is the amount one participant owes for an expense.
type Share struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Expense is a recorded expense.
type Expense struct {
	Id               string            `json:"id"`
	Description      string            `json:"description"`
	Amount           string            `json:"amount"`
	PayerName        string            `json:"payer_name"`
	ParticipantNames []string          `json:"participant_names"`
	Shares           map[string]string `json:"shares,omitempty"`
	Splits           []*Share          `json:"splits"`
	CreatedAt        int64             `json:"created_at"`
}

// Balance is one person's derived position.
type Balance struct {
	Name       string `json:"name"`
	NetBalance string `json:"net_balance"`
	TotalPaid  string `json:"total_paid"`
	TotalOwed  string `json:"total_owed"`
}

// Settlement is a suggested payment from a debtor to a creditor.
type Settlement struct {
	FromName string `json:"from_name"`
	ToName   string `json:"to_name"`
	Amount   string `json:"amount"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []string `json:"people"`
}

type AddPersonRequest struct {
	Name string `json:"name"`
}

type AddPersonResponse struct {
	Name string `json:"name"`
}

type RemovePersonRequest struct {
	Name string `json:"name"`
}

type RemovePersonResponse struct {
	Removed            bool     `json:"removed"`
	DroppedExpenseIds  []string `json:"dropped_expense_ids,omitempty"`
	StrippedExpenseIds []string `json:"stripped_expense_ids,omitempty"`
}

type ListExpensesRequest struct{}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// AddExpenseRequest creates an expense. A nil Shares map requests an equal
// split among the participants.
type AddExpenseRequest struct {
	Description      string            `json:"description"`
	Amount           string            `json:"amount"`
	PayerName        string            `json:"payer_name"`
	ParticipantNames []string          `json:"participant_names"`
	Shares           map[string]string `json:"shares,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// RemoveExpenseRequest addresses an expense by ID, or by its position in
// listing order when ExpenseId is empty.
type RemoveExpenseRequest struct {
	ExpenseId string `json:"expense_id,omitempty"`
	Index     *int32 `json:"index,omitempty"`
}

type RemoveExpenseResponse struct {
	Removed   bool   `json:"removed"`
	ExpenseId string `json:"expense_id,omitempty"`
}

type GetBalancesRequest struct{}

type GetBalancesResponse struct {
	Balances            []*Balance    `json:"balances"`
	Settlements         []*Settlement `json:"settlements"`
	NoSettlementsNeeded bool          `json:"no_settlements_needed"`
}
