package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(server.URL, "key_test", "secret_test", time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, server
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "k", "s", 0, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "k", "s", 0, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCreateOrderConvertsToMinorUnits(t *testing.T) {
	var got createOrderPayload
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/orders" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "key_test" || pass != "secret_test" {
			t.Fatal("expected basic auth with key pair")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(RemoteOrder{
			ID: "order_abc", Amount: got.Amount, Currency: got.Currency, Receipt: got.Receipt, Status: RemoteStatusCreated,
		})
	}))

	remote, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		Amount: decimal.RequireFromString("499.50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != 49950 {
		t.Fatalf("expected 49950 minor units, got %d", got.Amount)
	}
	if got.Currency != "INR" {
		t.Fatalf("expected INR default, got %s", got.Currency)
	}
	if got.Receipt == "" {
		t.Fatal("expected generated receipt")
	}
	if remote.ID != "order_abc" {
		t.Fatalf("unexpected remote order id %s", remote.ID)
	}
}

func TestCreateOrderRoundsFractionalMinorUnits(t *testing.T) {
	var got createOrderPayload
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(RemoteOrder{ID: "order_abc"})
	}))

	if _, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		Amount: decimal.RequireFromString("10.004"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != 1000 {
		t.Fatalf("expected sub-half paise to be dropped, got %d", got.Amount)
	}
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("gateway must not be called for invalid input")
	}))

	cases := []CreateOrderRequest{
		{Amount: decimal.Zero},
		{Amount: decimal.NewFromInt(-5)},
		{Amount: decimal.NewFromInt(10), Currency: "NOPE"},
	}
	for _, req := range cases {
		if _, err := client.CreateOrder(context.Background(), req); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("expected invalid amount error for %+v, got %v", req, err)
		}
	}
}

func TestCreateOrderSurfacesGatewayRejection(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
	}))

	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{Amount: decimal.NewFromInt(10)})
	if !errors.Is(err, domainErrors.ErrGatewayRejected) {
		t.Fatalf("expected gateway rejected error, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "amount exceeds maximum") {
		t.Fatalf("expected raw gateway message in error, got %v", err)
	}
}

func TestCreateOrderClassifiesServerFaults(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{Amount: decimal.NewFromInt(10)})
	if !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected gateway unavailable error, got %v", err)
	}
}

func TestCreateOrderClassifiesTimeout(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))

	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{Amount: decimal.NewFromInt(10)})
	if !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected gateway unavailable on timeout, got %v", err)
	}
}

func TestFetchOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders/order_abc" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(RemoteOrder{ID: "order_abc", Status: RemoteStatusPaid})
	}))

	remote, err := client.FetchOrder(context.Background(), "order_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remote.Status != RemoteStatusPaid {
		t.Fatalf("expected paid status, got %s", remote.Status)
	}

	if _, err := client.FetchOrder(context.Background(), ""); !errors.Is(err, domainErrors.ErrMissingParameter) {
		t.Fatalf("expected missing parameter error, got %v", err)
	}
}
