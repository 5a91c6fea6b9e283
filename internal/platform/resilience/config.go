package resilience

import "time"

// CircuitBreakerConfig tunes the breaker in front of one outbound client.
// Zero values are filled from the defaults of the upstream it guards.
type CircuitBreakerConfig struct {
	Enabled bool
	// FailureThreshold is the number of consecutive transient failures that
	// opens the breaker.
	FailureThreshold int
	// OpenTimeout is how long calls fail fast before trial calls resume.
	OpenTimeout time.Duration
	// HalfOpenMaxReq caps the trial calls let through while half open.
	HalfOpenMaxReq int
}

// IdentityBreakerDefaults guards token introspection. It runs on every
// signed-in request, so it tolerates a few blips and retries soon.
func IdentityBreakerDefaults() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      10 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// PaymentBreakerDefaults guards checkout session creation. The Stripe client
// already retries each call, so a short run of failures means an outage.
func PaymentBreakerDefaults() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

// DefaultCircuitBreakerConfig is used when a breaker is built without naming
// its upstream.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return IdentityBreakerDefaults()
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	return cfg.WithDefaults(DefaultCircuitBreakerConfig())
}

// WithDefaults fills unset or invalid knobs from defaults. Enabled is kept.
func (cfg CircuitBreakerConfig) WithDefaults(defaults CircuitBreakerConfig) CircuitBreakerConfig {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// NewOptionalCircuitBreaker returns nil when the breaker is disabled. All
// breaker methods accept a nil receiver.
func NewOptionalCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	return NewCircuitBreaker(cfg)
}
