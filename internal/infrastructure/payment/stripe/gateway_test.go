package stripe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/riskibarqy/squadup/internal/platform/resilience"
)

func testParams() checkout.SessionParams {
	return checkout.SessionParams{
		Title:          "Request: Lamport Stadium",
		Description:    checkout.DefaultDescription,
		Currency:       "cad",
		UnitAmount:     15000,
		Quantity:       1,
		SuccessURL:     "https://squadup.example/dashboard?success=true&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      "https://squadup.example/dashboard?canceled=true",
		CustomerEmail:  "sam@example.com",
		Metadata:       map[string]string{"type": "booking", "venueId": "to_13"},
		IdempotencyKey: "idem-1",
	}
}

func newTestGateway(srv *httptest.Server, breaker resilience.CircuitBreakerConfig) *Gateway {
	return NewGateway(Config{
		SecretKey:      "sk_test_123",
		APIURL:         srv.URL,
		HTTPClient:     srv.Client(),
		CircuitBreaker: breaker,
	}, logging.NewNop())
}

func TestGatewayCreateSession_SendsLineItemAndMetadata(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "idem-1" {
			t.Errorf("unexpected idempotency key: %s", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		checks := [][2]string{
			{"mode", "payment"},
			{"line_items[0][price_data][unit_amount]", "15000"},
			{"line_items[0][price_data][currency]", "cad"},
			{"line_items[0][price_data][product_data][name]", "Request: Lamport Stadium"},
			{"line_items[0][quantity]", "1"},
			{"metadata[type]", "booking"},
			{"metadata[venueId]", "to_13"},
			{"customer_email", "sam@example.com"},
		}
		for _, check := range checks {
			key, want := check[0], check[1]
			if got := r.PostForm.Get(key); got != want {
				t.Errorf("unexpected %s: got=%q want=%q", key, got, want)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_123","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_123"}`))
	}))
	defer srv.Close()

	gateway := newTestGateway(srv, resilience.CircuitBreakerConfig{})

	session, err := gateway.CreateSession(context.Background(), testParams())
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if session.ID != "cs_test_123" || session.URL != "https://checkout.stripe.com/c/pay/cs_test_123" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestGatewayCreateSession_ClassifiesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        int
		wantTransient bool
	}{
		{name: "server error", status: http.StatusInternalServerError, wantTransient: true},
		{name: "rate limited", status: http.StatusTooManyRequests, wantTransient: true},
		{name: "bad request", status: http.StatusBadRequest, wantTransient: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"nope"}}`))
			}))
			defer srv.Close()

			_, err := newTestGateway(srv, resilience.CircuitBreakerConfig{}).CreateSession(context.Background(), testParams())
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := isTransient(err); got != tc.wantTransient {
				t.Fatalf("unexpected transient classification: got=%v want=%v err=%v", got, tc.wantTransient, err)
			}
		})
	}
}

func TestGatewayCreateSession_BreakerOpens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"down"}}`))
	}))
	defer srv.Close()

	gateway := newTestGateway(srv, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	if _, err := gateway.CreateSession(context.Background(), testParams()); err == nil {
		t.Fatalf("expected first call to fail")
	}
	_, err := gateway.CreateSession(context.Background(), testParams())
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("unexpected upstream calls: got=%d want=1", got)
	}
}
