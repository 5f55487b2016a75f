// Package ledgerv1connect holds the Connect handler and client for
// splitledger.v1.LedgerService.
package ledgerv1connect

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"connectrpc.com/connect"

	ledgerv1 "github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "splitledger.v1.LedgerService"

// Procedure names, in the form "/<service>/<method>".
const (
	LedgerServiceListPeopleProcedure    = "/splitledger.v1.LedgerService/ListPeople"
	LedgerServiceAddPersonProcedure     = "/splitledger.v1.LedgerService/AddPerson"
	LedgerServiceRemovePersonProcedure  = "/splitledger.v1.LedgerService/RemovePerson"
	LedgerServiceListExpensesProcedure  = "/splitledger.v1.LedgerService/ListExpenses"
	LedgerServiceAddExpenseProcedure    = "/splitledger.v1.LedgerService/AddExpense"
	LedgerServiceRemoveExpenseProcedure = "/splitledger.v1.LedgerService/RemoveExpense"
	LedgerServiceGetBalancesProcedure   = "/splitledger.v1.LedgerService/GetBalances"
)

// LedgerServiceHandler is implemented by the server side of the service.
type LedgerServiceHandler interface {
	ListPeople(context.Context, *connect.Request[ledgerv1.ListPeopleRequest]) (*connect.Response[ledgerv1.ListPeopleResponse], error)
	AddPerson(context.Context, *connect.Request[ledgerv1.AddPersonRequest]) (*connect.Response[ledgerv1.AddPersonResponse], error)
	RemovePerson(context.Context, *connect.Request[ledgerv1.RemovePersonRequest]) (*connect.Response[ledgerv1.RemovePersonResponse], error)
	ListExpenses(context.Context, *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error)
	AddExpense(context.Context, *connect.Request[ledgerv1.AddExpenseRequest]) (*connect.Response[ledgerv1.AddExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[ledgerv1.RemoveExpenseRequest]) (*connect.Response[ledgerv1.RemoveExpenseResponse], error)
	GetBalances(context.Context, *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	readOnly := append(slices.Clone(opts), connect.WithIdempotency(connect.IdempotencyNoSideEffects))

	handlers := map[string]*connect.Handler{
		LedgerServiceListPeopleProcedure:    connect.NewUnaryHandler(LedgerServiceListPeopleProcedure, svc.ListPeople, readOnly...),
		LedgerServiceAddPersonProcedure:     connect.NewUnaryHandler(LedgerServiceAddPersonProcedure, svc.AddPerson, opts...),
		LedgerServiceRemovePersonProcedure:  connect.NewUnaryHandler(LedgerServiceRemovePersonProcedure, svc.RemovePerson, opts...),
		LedgerServiceListExpensesProcedure:  connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, readOnly...),
		LedgerServiceAddExpenseProcedure:    connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...),
		LedgerServiceRemoveExpenseProcedure: connect.NewUnaryHandler(LedgerServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...),
		LedgerServiceGetBalancesProcedure:   connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, readOnly...),
	}

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// LedgerServiceClient is a client for the service.
type LedgerServiceClient interface {
	ListPeople(context.Context, *connect.Request[ledgerv1.ListPeopleRequest]) (*connect.Response[ledgerv1.ListPeopleResponse], error)
	AddPerson(context.Context, *connect.Request[ledgerv1.AddPersonRequest]) (*connect.Response[ledgerv1.AddPersonResponse], error)
	RemovePerson(context.Context, *connect.Request[ledgerv1.RemovePersonRequest]) (*connect.Response[ledgerv1.RemovePersonResponse], error)
	ListExpenses(context.Context, *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error)
	AddExpense(context.Context, *connect.Request[ledgerv1.AddExpenseRequest]) (*connect.Response[ledgerv1.AddExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[ledgerv1.RemoveExpenseRequest]) (*connect.Response[ledgerv1.RemoveExpenseResponse], error)
	GetBalances(context.Context, *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error)
}

// NewLedgerServiceClient constructs a client for the service at baseURL,
// for example "http://localhost:8080".
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ledgerServiceClient{
		listPeople:    connect.NewClient[ledgerv1.ListPeopleRequest, ledgerv1.ListPeopleResponse](httpClient, baseURL+LedgerServiceListPeopleProcedure, opts...),
		addPerson:     connect.NewClient[ledgerv1.AddPersonRequest, ledgerv1.AddPersonResponse](httpClient, baseURL+LedgerServiceAddPersonProcedure, opts...),
		removePerson:  connect.NewClient[ledgerv1.RemovePersonRequest, ledgerv1.RemovePersonResponse](httpClient, baseURL+LedgerServiceRemovePersonProcedure, opts...),
		listExpenses:  connect.NewClient[ledgerv1.ListExpensesRequest, ledgerv1.ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		addExpense:    connect.NewClient[ledgerv1.AddExpenseRequest, ledgerv1.AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		removeExpense: connect.NewClient[ledgerv1.RemoveExpenseRequest, ledgerv1.RemoveExpenseResponse](httpClient, baseURL+LedgerServiceRemoveExpenseProcedure, opts...),
		getBalances:   connect.NewClient[ledgerv1.GetBalancesRequest, ledgerv1.GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	listPeople    *connect.Client[ledgerv1.ListPeopleRequest, ledgerv1.ListPeopleResponse]
	addPerson     *connect.Client[ledgerv1.AddPersonRequest, ledgerv1.AddPersonResponse]
	removePerson  *connect.Client[ledgerv1.RemovePersonRequest, ledgerv1.RemovePersonResponse]
	listExpenses  *connect.Client[ledgerv1.ListExpensesRequest, ledgerv1.ListExpensesResponse]
	addExpense    *connect.Client[ledgerv1.AddExpenseRequest, ledgerv1.AddExpenseResponse]
	removeExpense *connect.Client[ledgerv1.RemoveExpenseRequest, ledgerv1.RemoveExpenseResponse]
	getBalances   *connect.Client[ledgerv1.GetBalancesRequest, ledgerv1.GetBalancesResponse]
}

func (c *ledgerServiceClient) ListPeople(ctx context.Context, req *connect.Request[ledgerv1.ListPeopleRequest]) (*connect.Response[ledgerv1.ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddPerson(ctx context.Context, req *connect.Request[ledgerv1.AddPersonRequest]) (*connect.Response[ledgerv1.AddPersonResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemovePerson(ctx context.Context, req *connect.Request[ledgerv1.RemovePersonRequest]) (*connect.Response[ledgerv1.RemovePersonResponse], error) {
	return c.removePerson.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[ledgerv1.AddExpenseRequest]) (*connect.Response[ledgerv1.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[ledgerv1.RemoveExpenseRequest]) (*connect.Response[ledgerv1.RemoveExpenseResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) ListPeople(context.Context, *connect.Request[ledgerv1.ListPeopleRequest]) (*connect.Response[ledgerv1.ListPeopleResponse], error) {
	return nil, unimplemented("ListPeople")
}

func (UnimplementedLedgerServiceHandler) AddPerson(context.Context, *connect.Request[ledgerv1.AddPersonRequest]) (*connect.Response[ledgerv1.AddPersonResponse], error) {
	return nil, unimplemented("AddPerson")
}

func (UnimplementedLedgerServiceHandler) RemovePerson(context.Context, *connect.Request[ledgerv1.RemovePersonRequest]) (*connect.Response[ledgerv1.RemovePersonResponse], error) {
	return nil, unimplemented("RemovePerson")
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error) {
	return nil, unimplemented("ListExpenses")
}

func (UnimplementedLedgerServiceHandler) AddExpense(context.Context, *connect.Request[ledgerv1.AddExpenseRequest]) (*connect.Response[ledgerv1.AddExpenseResponse], error) {
	return nil, unimplemented("AddExpense")
}

func (UnimplementedLedgerServiceHandler) RemoveExpense(context.Context, *connect.Request[ledgerv1.RemoveExpenseRequest]) (*connect.Response[ledgerv1.RemoveExpenseResponse], error) {
	return nil, unimplemented("RemoveExpense")
}

func (UnimplementedLedgerServiceHandler) GetBalances(context.Context, *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error) {
	return nil, unimplemented("GetBalances")
}

func unimplemented(method string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(LedgerServiceName+"."+method+" is not implemented"))
}
