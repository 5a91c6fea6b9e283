package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/squadup/internal/config"
	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/riskibarqy/squadup/internal/usecase"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                        config.EnvDev,
		ServiceName:                   "squadup-api",
		HTTPAddr:                      ":0",
		StoreBackend:                  config.StoreMemory,
		CacheEnabled:                  true,
		CacheTTL:                      time.Minute,
		SeedWorkers:                   2,
		IdentityBaseURL:               "http://127.0.0.1:1",
		IdentityIntrospectPath:        "/v1/auth/introspect",
		IdentityTimeout:               time.Second,
		CheckoutBaseURL:               "http://localhost:3000",
		CheckoutCurrency:              "cad",
		DashboardIncludeLeagueMatches: true,
		AppTimezone:                   "America/Toronto",
		CORSAllowedOrigins:            []string{"*"},
		InternalJobToken:              "job-token",
	}
}

func TestNewHTTPServer_MemoryBackendServesCatalogue(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	t.Cleanup(func() { _ = cleanup(context.Background()) })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/venues?sport=soccer", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"sport":"Soccer"`) {
		t.Fatalf("expected seeded soccer venues, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/seed", nil)
	req.Header.Set("X-Internal-Job-Token", "job-token")
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected seed to succeed, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewHTTPServer_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestPaymentProvider_DisabledGatewayReportsUpstream(t *testing.T) {
	gateway, events := paymentProvider(memoryConfig(), logging.NewNop())
	if events != nil {
		t.Fatalf("expected no webhook verifier when stripe is disabled")
	}
	_, err := gateway.CreateSession(context.Background(), checkout.SessionParams{})
	if !errors.Is(err, usecase.ErrUpstreamService) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestBuyerNotifier_DisabledIsNop(t *testing.T) {
	n, err := buyerNotifier(memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build notifier: %v", err)
	}
	if _, ok := n.(usecase.NopNotifier); !ok {
		t.Fatalf("expected nop notifier, got %T", n)
	}
}
