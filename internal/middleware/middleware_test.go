package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	ledgerv1 "github.com/mmynk/splitledger/pkg/api/ledgerv1"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1/ledgerv1connect"
)

// stubService accepts every name except "taken".
type stubService struct {
	ledgerv1connect.UnimplementedLedgerServiceHandler
}

func (stubService) AddPerson(ctx context.Context, req *connect.Request[ledgerv1.AddPersonRequest]) (*connect.Response[ledgerv1.AddPersonResponse], error) {
	if req.Msg.Name == "taken" {
		return nil, connect.NewError(connect.CodeAlreadyExists, nil)
	}
	return connect.NewResponse(&ledgerv1.AddPersonResponse{Name: req.Msg.Name}), nil
}

func setupServer(t *testing.T, metrics *Metrics) ledgerv1connect.LedgerServiceClient {
	t.Helper()

	interceptors := connect.WithInterceptors(LoggingInterceptor(), metrics.Interceptor())
	path, handler := ledgerv1connect.NewLedgerServiceHandler(stubService{}, interceptors)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(CORS(HTTPLogging(mux)))
	t.Cleanup(server.Close)

	return ledgerv1connect.NewLedgerServiceClient(http.DefaultClient, server.URL)
}

func TestMetricsInterceptor(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	client := setupServer(t, metrics)
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob", "taken"} {
		client.AddPerson(ctx, connect.NewRequest(&ledgerv1.AddPersonRequest{Name: name}))
	}
	client.ListPeople(ctx, connect.NewRequest(&ledgerv1.ListPeopleRequest{}))

	tests := []struct {
		procedure string
		code      string
		want      float64
	}{
		{ledgerv1connect.LedgerServiceAddPersonProcedure, "ok", 2},
		{ledgerv1connect.LedgerServiceAddPersonProcedure, "already_exists", 1},
		{ledgerv1connect.LedgerServiceListPeopleProcedure, "unimplemented", 1},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(metrics.requests.WithLabelValues(tt.procedure, tt.code))
		if got != tt.want {
			t.Errorf("requests{%s,%s} = %v, want %v", tt.procedure, tt.code, got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(metrics.duration); n != 2 {
		t.Errorf("Expected duration series for 2 procedures, got %d", n)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight request should not reach the wrapped handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/splitledger.v1.LedgerService/AddPerson", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin '*', got %q", got)
	}
}
