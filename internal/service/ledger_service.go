package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/book"
	"github.com/mmynk/splitledger/internal/ledger"
	ledgerv1 "github.com/mmynk/splitledger/pkg/api/ledgerv1"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1/ledgerv1connect"
)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	ledgerv1connect.UnimplementedLedgerServiceHandler
	book *book.Book
}

var _ ledgerv1connect.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a new LedgerService backed by the given book.
func NewLedgerService(b *book.Book) *LedgerService {
	return &LedgerService{book: b}
}

// ListPeople returns every person in insertion order.
func (s *LedgerService) ListPeople(ctx context.Context, req *connect.Request[ledgerv1.ListPeopleRequest]) (*connect.Response[ledgerv1.ListPeopleResponse], error) {
	people, err := s.book.ListPeople(ctx)
	if err != nil {
		slog.Error("ListPeople failed", "error", err)
		return nil, toConnectError(err)
	}
	if people == nil {
		people = []string{}
	}
	return connect.NewResponse(&ledgerv1.ListPeopleResponse{People: people}), nil
}

// AddPerson adds a person to the ledger.
func (s *LedgerService) AddPerson(ctx context.Context, req *connect.Request[ledgerv1.AddPersonRequest]) (*connect.Response[ledgerv1.AddPersonResponse], error) {
	name, err := s.book.AddPerson(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("AddPerson failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.AddPersonResponse{Name: name}), nil
}

// RemovePerson removes a person and the expenses that depended on them.
// Removing an unknown person succeeds with Removed set to false.
func (s *LedgerService) RemovePerson(ctx context.Context, req *connect.Request[ledgerv1.RemovePersonRequest]) (*connect.Response[ledgerv1.RemovePersonResponse], error) {
	removal, ok, err := s.book.RemovePerson(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("RemovePerson failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.RemovePersonResponse{
		Removed:            ok,
		DroppedExpenseIds:  removal.DroppedExpenseIDs,
		StrippedExpenseIds: removal.StrippedExpenseIDs,
	}), nil
}

// ListExpenses returns every expense in insertion order.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error) {
	expenses, err := s.book.ListExpenses(ctx)
	if err != nil {
		slog.Error("ListExpenses failed", "error", err)
		return nil, toConnectError(err)
	}

	resp := &ledgerv1.ListExpensesResponse{Expenses: make([]*ledgerv1.Expense, len(expenses))}
	for i, e := range expenses {
		resp.Expenses[i] = expenseToProto(e)
	}
	return connect.NewResponse(resp), nil
}

// AddExpense records an expense split equally or by custom shares.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[ledgerv1.AddExpenseRequest]) (*connect.Response[ledgerv1.AddExpenseResponse], error) {
	in, err := expenseInputFromProto(req.Msg)
	if err != nil {
		slog.Error("AddExpense input rejected", "error", err)
		return nil, toConnectError(err)
	}

	expense, err := s.book.AddExpense(ctx, in)
	if err != nil {
		slog.Error("AddExpense failed", "payer", req.Msg.PayerName, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.AddExpenseResponse{Expense: expenseToProto(expense)}), nil
}

// RemoveExpense removes an expense by ID, or by index when no ID is given.
// Removing an unknown expense succeeds with Removed set to false.
func (s *LedgerService) RemoveExpense(ctx context.Context, req *connect.Request[ledgerv1.RemoveExpenseRequest]) (*connect.Response[ledgerv1.RemoveExpenseResponse], error) {
	if req.Msg.ExpenseId != "" {
		ok, err := s.book.RemoveExpense(ctx, req.Msg.ExpenseId)
		if err != nil {
			slog.Error("RemoveExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
			return nil, toConnectError(err)
		}
		resp := &ledgerv1.RemoveExpenseResponse{Removed: ok}
		if ok {
			resp.ExpenseId = req.Msg.ExpenseId
		}
		return connect.NewResponse(resp), nil
	}

	if req.Msg.Index == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("expense_id or index is required"))
	}

	expense, ok, err := s.book.RemoveExpenseAt(ctx, int(*req.Msg.Index))
	if err != nil {
		slog.Error("RemoveExpense failed", "index", *req.Msg.Index, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.RemoveExpenseResponse{Removed: ok, ExpenseId: expense.ID}), nil
}

// GetBalances recomputes balances and the suggested settlements.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error) {
	result, err := s.book.Recompute(ctx)
	if err != nil {
		slog.Error("GetBalances failed", "error", err)
		return nil, toConnectError(err)
	}

	resp := &ledgerv1.GetBalancesResponse{
		Balances:            make([]*ledgerv1.Balance, len(result.Balances)),
		Settlements:         make([]*ledgerv1.Settlement, len(result.Settlements)),
		NoSettlementsNeeded: result.NoSettlementsNeeded(),
	}
	for i, b := range result.Balances {
		resp.Balances[i] = &ledgerv1.Balance{
			Name:       b.MemberName,
			NetBalance: formatMoney(b.NetBalance),
			TotalPaid:  formatMoney(b.TotalPaid),
			TotalOwed:  formatMoney(b.TotalOwed),
		}
	}
	for i, st := range result.Settlements {
		resp.Settlements[i] = &ledgerv1.Settlement{
			FromName: st.From,
			ToName:   st.To,
			Amount:   formatMoney(st.Amount),
		}
	}

	slog.Debug("Balances computed",
		"people", len(resp.Balances),
		"settlements", len(resp.Settlements),
	)
	return connect.NewResponse(resp), nil
}

// toConnectError maps domain and storage errors to Connect codes.
func toConnectError(err error) error {
	var dup *ledger.DuplicateNameError
	if errors.As(err, &dup) {
		return connect.NewError(connect.CodeAlreadyExists, err)
	}
	var unknown *ledger.UnknownPersonError
	if errors.As(err, &unknown) && unknown.Name != "" {
		return connect.NewError(connect.CodeNotFound, err)
	}
	if errors.Is(err, ledger.ErrValidation) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewError(connect.CodeInternal, fmt.Errorf("internal error: %w", err))
}

// formatMoney renders a monetary value with exactly two fractional digits.
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
