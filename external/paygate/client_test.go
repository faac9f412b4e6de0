package paygate

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/northcourt/club-api/internal/platform/resilience"
	"github.com/northcourt/club-api/internal/usecase"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:   serverURL,
		AccountID: "acct-test",
		APIToken:  "token-test",
	})
}

func chargeInput() usecase.GatewayChargeInput {
	return usecase.GatewayChargeInput{
		AmountCents:   25000,
		Currency:      "cad",
		CardToken:     "card-token-1",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
	}
}

func TestClient_ChargeApproved(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/charge" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-test" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":0,"transaction_id":"txn-9","approval_code":"OK123"}`))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Charge(t.Context(), chargeInput())
	if err != nil {
		t.Fatalf("charge failed: %v", err)
	}
	if result.Status != usecase.GatewayApproved {
		t.Fatalf("expected approved, got %s", result.Status)
	}
	if result.TransactionID != "txn-9" {
		t.Fatalf("unexpected transaction id: %s", result.TransactionID)
	}
	if result.ApprovalCode != "OK123" {
		t.Fatalf("unexpected approval code: %s", result.ApprovalCode)
	}
	if len(result.Raw) == 0 {
		t.Fatal("expected raw response body to be retained")
	}
}

func TestClient_ChargeDeclineCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   int
		reason string
	}{
		{1, "declined"},
		{2, "insufficient funds"},
		{3, "expired card"},
		{4, "invalid card number"},
		{5, "card not supported"},
	}
	for _, tc := range cases {
		t.Run(tc.reason, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"response_code":` + strconv.Itoa(tc.code) + `}`))
			}))
			defer server.Close()

			result, err := newTestClient(server.URL).Charge(t.Context(), chargeInput())
			if err != nil {
				t.Fatalf("decline must not be an error: %v", err)
			}
			if result.Status != usecase.GatewayDeclined {
				t.Fatalf("expected declined, got %s", result.Status)
			}
			if result.DeclineReason != tc.reason {
				t.Fatalf("code %d mapped to %q, want %q", tc.code, result.DeclineReason, tc.reason)
			}
		})
	}
}

func TestClient_ChargeUnknownDeclineCodeUsesMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":42,"response_message":"velocity limit"}`))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Charge(t.Context(), chargeInput())
	if err != nil {
		t.Fatalf("decline must not be an error: %v", err)
	}
	if result.DeclineReason != "velocity limit" {
		t.Fatalf("unexpected reason: %s", result.DeclineReason)
	}
}

func TestClient_ChargeServerErrorNoRetry(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Charge(t.Context(), chargeInput())
	if !errors.Is(err, usecase.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	// A failed charge attempt must hit the wire exactly once.
	if got := requests.Load(); got != 1 {
		t.Fatalf("expected a single request, saw %d", got)
	}
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:   server.URL,
		AccountID: "acct-test",
		APIToken:  "token-test",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.Charge(t.Context(), chargeInput()); !errors.Is(err, usecase.ErrGatewayUnavailable) {
			t.Fatalf("attempt %d: expected ErrGatewayUnavailable, got %v", i, err)
		}
	}

	before := requests.Load()
	if _, err := client.Charge(t.Context(), chargeInput()); !errors.Is(err, usecase.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable while open, got %v", err)
	}
	if requests.Load() != before {
		t.Fatal("open circuit must not reach the gateway")
	}
}

func TestClient_ChargeValidation(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://gateway.invalid")

	if _, err := client.Charge(t.Context(), usecase.GatewayChargeInput{Currency: "CAD", CardToken: "x"}); err == nil {
		t.Fatal("expected error for non-positive amount")
	}
	if _, err := client.Charge(t.Context(), usecase.GatewayChargeInput{AmountCents: 100, CardToken: "x"}); err == nil {
		t.Fatal("expected error for missing currency")
	}
	if _, err := client.Charge(t.Context(), usecase.GatewayChargeInput{AmountCents: 100, Currency: "CAD"}); err == nil {
		t.Fatal("expected error for missing card and token")
	}
}

func TestClient_ListSavedCards(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("customer_email"); got != "jane@example.com" {
			t.Errorf("unexpected customer_email: %s", got)
		}
		_, _ = w.Write([]byte(`{"response_code":0,"cards":[{"token":"tok-1","brand":"visa","last4":"4242","expiry":"12/27"}]}`))
	}))
	defer server.Close()

	cards, err := newTestClient(server.URL).ListSavedCards(t.Context(), "jane@example.com")
	if err != nil {
		t.Fatalf("list saved cards failed: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected one card, got %d", len(cards))
	}
	if cards[0].Token != "tok-1" || cards[0].Last4 != "4242" {
		t.Fatalf("unexpected card: %+v", cards[0])
	}
}

func TestClient_ListSavedCardsRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":2}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListSavedCards(t.Context(), "jane@example.com")
	var declined *usecase.DeclinedError
	if !errors.As(err, &declined) {
		t.Fatalf("expected DeclinedError, got %v", err)
	}
	if declined.Reason != "insufficient funds" {
		t.Fatalf("unexpected reason: %s", declined.Reason)
	}
}

func TestClient_DeleteSavedCardRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":1,"response_message":"unknown token"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).DeleteSavedCard(t.Context(), "tok-gone")
	var declined *usecase.DeclinedError
	if !errors.As(err, &declined) {
		t.Fatalf("expected DeclinedError, got %v", err)
	}
	if declined.Reason != "declined" {
		t.Fatalf("unexpected reason: %s", declined.Reason)
	}
}
