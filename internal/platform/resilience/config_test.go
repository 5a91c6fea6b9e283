package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithDefaults_FillsFromUpstream(t *testing.T) {
	tests := []struct {
		name     string
		cfg      CircuitBreakerConfig
		defaults CircuitBreakerConfig
		want     CircuitBreakerConfig
	}{
		{
			name:     "identity zero value",
			cfg:      CircuitBreakerConfig{Enabled: true},
			defaults: IdentityBreakerDefaults(),
			want:     CircuitBreakerConfig{Enabled: true, FailureThreshold: 5, OpenTimeout: 10 * time.Second, HalfOpenMaxReq: 2},
		},
		{
			name:     "payment zero value",
			cfg:      CircuitBreakerConfig{Enabled: true},
			defaults: PaymentBreakerDefaults(),
			want:     CircuitBreakerConfig{Enabled: true, FailureThreshold: 3, OpenTimeout: 30 * time.Second, HalfOpenMaxReq: 1},
		},
		{
			name:     "explicit knobs kept",
			cfg:      CircuitBreakerConfig{FailureThreshold: 7, OpenTimeout: time.Second, HalfOpenMaxReq: 4},
			defaults: PaymentBreakerDefaults(),
			want:     CircuitBreakerConfig{FailureThreshold: 7, OpenTimeout: time.Second, HalfOpenMaxReq: 4},
		},
		{
			name:     "invalid knobs replaced",
			cfg:      CircuitBreakerConfig{Enabled: true, FailureThreshold: -1, OpenTimeout: -time.Second},
			defaults: PaymentBreakerDefaults(),
			want:     CircuitBreakerConfig{Enabled: true, FailureThreshold: 3, OpenTimeout: 30 * time.Second, HalfOpenMaxReq: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.WithDefaults(tt.defaults); got != tt.want {
				t.Fatalf("WithDefaults: got=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestPaymentBreaker_OpensAfterThreeFailures(t *testing.T) {
	b := NewOptionalCircuitBreaker(CircuitBreakerConfig{Enabled: true}.WithDefaults(PaymentBreakerDefaults()))
	errDown := errors.New("stripe unavailable")
	always := func(error) bool { return true }

	for i := range 3 {
		if state := b.State(); state != CircuitStateClosed {
			t.Fatalf("expected closed before failure %d, got %s", i+1, state)
		}
		_, _ = Execute(context.Background(), b, always, func(context.Context) (string, error) {
			return "", errDown
		})
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after three failures, got %s", state)
	}
}
