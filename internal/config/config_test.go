package config

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/squadup/internal/platform/logging"
)

// baseEnv resets the variables the tests below depend on so values from the
// surrounding shell do not leak in.
func baseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "STORE_BACKEND", "MONGO_URI", "DB_URL", "STRIPE_ENABLED", "STRIPE_SECRET_KEY",
		"RESEND_ENABLED", "RESEND_API_KEY", "UPTRACE_ENABLED", "UPTRACE_DSN", "OTEL_EXPORTER_OTLP_HEADERS",
		"PYROSCOPE_ENABLED", "PYROSCOPE_SERVER_ADDRESS", "PYROSCOPE_APP_NAME", "APP_SERVICE_NAME",
		"PPROF_ENABLED", "PPROF_ADDR", "CORS_ALLOWED_ORIGINS", "CACHE_ENABLED", "CACHE_TTL",
		"APP_TIMEZONE", "CHECKOUT_CURRENCY", "CHECKOUT_BASE_URL", "SEED_WORKERS", "APP_LOG_LEVEL",
		"DASHBOARD_INCLUDE_LEAGUE_MATCHES", "STRIPE_CIRCUIT_FAILURE_COUNT", "IDENTITY_CIRCUIT_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	baseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env, got %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "squadup-api" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Fatalf("expected memory store by default, got %q", cfg.StoreBackend)
	}
	if cfg.CheckoutCurrency != "cad" {
		t.Fatalf("expected cad currency, got %q", cfg.CheckoutCurrency)
	}
	if cfg.StripeEnabled || cfg.ResendEnabled {
		t.Fatalf("expected outbound integrations disabled by default")
	}
	if !cfg.DashboardIncludeLeagueMatches {
		t.Fatalf("expected league matches included in the dashboard by default")
	}
	if cfg.Location().String() != "America/Toronto" {
		t.Fatalf("unexpected location %s", cfg.Location())
	}
	if !cfg.IdentityCircuit.Enabled || cfg.IdentityCircuit.FailureCount != 5 || cfg.IdentityCircuit.OpenTimeout != 10*time.Second {
		t.Fatalf("unexpected identity circuit defaults: %+v", cfg.IdentityCircuit)
	}
	if !cfg.StripeCircuit.Enabled || cfg.StripeCircuit.FailureCount != 3 ||
		cfg.StripeCircuit.OpenTimeout != 30*time.Second || cfg.StripeCircuit.HalfOpenMaxReq != 1 {
		t.Fatalf("unexpected stripe circuit defaults: %+v", cfg.StripeCircuit)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("expected info log level, got %s", cfg.LogLevel)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "invalid app env", env: map[string]string{"APP_ENV": "qa"}, wantErr: "APP_ENV"},
		{name: "unknown store", env: map[string]string{"STORE_BACKEND": "redis"}, wantErr: "STORE_BACKEND"},
		{name: "mongo without uri", env: map[string]string{"STORE_BACKEND": "mongo"}, wantErr: "MONGO_URI"},
		{name: "stripe without key", env: map[string]string{"STRIPE_ENABLED": "true"}, wantErr: "STRIPE_SECRET_KEY"},
		{name: "resend without key", env: map[string]string{"RESEND_ENABLED": "true"}, wantErr: "RESEND_API_KEY"},
		{name: "uptrace without dsn", env: map[string]string{"UPTRACE_ENABLED": "true"}, wantErr: "UPTRACE_DSN"},
		{name: "pyroscope without address", env: map[string]string{"PYROSCOPE_ENABLED": "true"}, wantErr: "PYROSCOPE_SERVER_ADDRESS"},
		{name: "bad bool", env: map[string]string{"CACHE_ENABLED": "sometimes"}, wantErr: "CACHE_ENABLED"},
		{name: "non positive ttl", env: map[string]string{"CACHE_TTL": "0s"}, wantErr: "CACHE_TTL must be > 0"},
		{name: "circuit threshold", env: map[string]string{"STRIPE_CIRCUIT_FAILURE_COUNT": "0"}, wantErr: "STRIPE_CIRCUIT_FAILURE_COUNT"},
		{name: "seed workers", env: map[string]string{"SEED_WORKERS": "0"}, wantErr: "SEED_WORKERS"},
		{name: "bad timezone", env: map[string]string{"APP_TIMEZONE": "Mars/Olympus"}, wantErr: "APP_TIMEZONE"},
		{name: "bad currency", env: map[string]string{"CHECKOUT_CURRENCY": "dollars"}, wantErr: "CHECKOUT_CURRENCY"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			baseEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoad_StoreAndIntegrations(t *testing.T) {
	baseEnv(t)
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	t.Setenv("STRIPE_ENABLED", "true")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("CHECKOUT_BASE_URL", "https://squadup.example.com/")
	t.Setenv("CHECKOUT_CURRENCY", "USD")
	t.Setenv("DASHBOARD_INCLUDE_LEAGUE_MATCHES", "false")
	t.Setenv("IDENTITY_CIRCUIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreBackend != StoreMongo || cfg.MongoDB != "squadup" {
		t.Fatalf("unexpected store settings: %q %q", cfg.StoreBackend, cfg.MongoDB)
	}
	if cfg.CheckoutBaseURL != "https://squadup.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.CheckoutBaseURL)
	}
	if cfg.CheckoutCurrency != "usd" {
		t.Fatalf("expected lower-cased currency, got %q", cfg.CheckoutCurrency)
	}
	if cfg.DashboardIncludeLeagueMatches {
		t.Fatalf("expected league matches excluded")
	}
	if cfg.IdentityCircuit.Enabled {
		t.Fatalf("expected identity circuit disabled")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	baseEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	baseEnv(t)
	t.Setenv("APP_SERVICE_NAME", "squadup-worker")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://pyroscope:4040")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "squadup-worker" {
		t.Fatalf("unexpected app name %q", cfg.PyroscopeAppName)
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example.com , ,https://b.example.com,")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("unexpected split: %v", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"WARNING": logging.LevelWarn,
		"error":   logging.LevelError,
		"":        logging.LevelInfo,
		"verbose": logging.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
