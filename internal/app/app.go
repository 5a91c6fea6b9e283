package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/squadup/internal/config"
	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/infrastructure/account/identity"
	"github.com/riskibarqy/squadup/internal/infrastructure/notify"
	"github.com/riskibarqy/squadup/internal/infrastructure/payment/stripe"
	"github.com/riskibarqy/squadup/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/squadup/internal/platform/id"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/riskibarqy/squadup/internal/platform/resilience"
	"github.com/riskibarqy/squadup/internal/usecase"
)

// NewHTTPServer assembles the service for cfg. The returned cleanup closes
// the document store connection.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	s, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := s.close

	handler, seeder, err := newHandler(cfg, s, logger)
	if err != nil {
		_ = cleanup(context.Background())
		return nil, nil, err
	}
	if err := seedIfEmpty(ctx, cfg, s, seeder, logger); err != nil {
		_ = cleanup(context.Background())
		return nil, nil, err
	}

	verifier := identity.NewClient(nil, identity.Config{
		BaseURL:        cfg.IdentityBaseURL,
		IntrospectPath: cfg.IdentityIntrospectPath,
		AdminKey:       cfg.IdentityAdminKey,
		Timeout:        cfg.IdentityTimeout,
		CacheTTL:       cfg.IdentityCacheTTL,
		CircuitBreaker: breakerConfig(cfg.IdentityCircuit),
	}, logger.Named("identity"))

	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, cleanup, nil
}

func newHandler(cfg config.Config, s *stores, logger *logging.Logger) (*httpapi.Handler, *usecase.SeedService, error) {
	ids := idgen.NewRandomGenerator()
	location := cfg.Location()

	gateway, events := paymentProvider(cfg, logger)
	notifier, err := buyerNotifier(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	bookingSvc := usecase.NewBookingService(s.bookings, s.venues, ids, location, logger)
	seedSvc := usecase.NewSeedService(s.venues, s.leagues, s.pickups, s.matches, seedCatalog, cfg.SeedWorkers, logger)

	handler := httpapi.NewHandler(
		usecase.NewVenueService(s.venues),
		usecase.NewSquadService(s.squads, ids, logger),
		bookingSvc,
		usecase.NewPickupService(s.pickups, logger),
		usecase.NewLeagueService(s.leagues, s.matches, s.squads, logger),
		usecase.NewCheckoutService(gateway, s.venues, s.pickups, s.leagues, s.squads, checkout.Settings{
			BaseURL:  cfg.CheckoutBaseURL,
			Currency: cfg.CheckoutCurrency,
		}, nil, logger),
		usecase.NewReconcileService(bookingSvc, s.pickups, s.leagues, notifier, logger),
		usecase.NewDashboardService(s.bookings, s.pickups, s.squads, s.matches, usecase.DashboardOptions{
			IncludeLeagueMatches: cfg.DashboardIncludeLeagueMatches,
			Location:             location,
		}, logger),
		seedSvc,
		events,
		logger,
	)
	return handler, seedSvc, nil
}

// paymentProvider returns the Stripe gateway and webhook verifier. With
// Stripe disabled checkout answers an upstream error; without a webhook
// secret the webhook route rejects every call.
func paymentProvider(cfg config.Config, logger *logging.Logger) (checkout.Gateway, checkout.EventVerifier) {
	if !cfg.StripeEnabled {
		logger.Info("stripe disabled", "reason", "STRIPE_ENABLED=false")
		return unavailableGateway{}, nil
	}

	gateway := stripe.NewGateway(stripe.Config{
		SecretKey:         cfg.StripeSecretKey,
		Timeout:           cfg.StripeTimeout,
		MaxNetworkRetries: int64(cfg.StripeMaxRetries),
		CircuitBreaker:    breakerConfig(cfg.StripeCircuit),
	}, logger.Named("stripe"))

	if cfg.StripeWebhookSecret == "" {
		logger.Warn("stripe webhook secret empty, webhook route disabled")
		return gateway, nil
	}
	return gateway, stripe.NewWebhookVerifier(cfg.StripeWebhookSecret, cfg.StripeWebhookTolerance)
}

func buyerNotifier(cfg config.Config, logger *logging.Logger) (usecase.Notifier, error) {
	if !cfg.ResendEnabled {
		logger.Info("resend disabled", "reason", "RESEND_ENABLED=false")
		return usecase.NopNotifier{}, nil
	}
	notifier, err := notify.NewEmailNotifier(notify.Config{
		APIKey: cfg.ResendAPIKey,
		From:   cfg.ResendFrom,
	}, logger.Named("notify"))
	if err != nil {
		return nil, fmt.Errorf("build email notifier: %w", err)
	}
	return notifier, nil
}

func breakerConfig(c config.CircuitConfig) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.Enabled,
		FailureThreshold: c.FailureCount,
		OpenTimeout:      c.OpenTimeout,
		HalfOpenMaxReq:   c.HalfOpenMaxReq,
	}
}

var errPaymentsDisabled = errors.New("payments are not configured")

type unavailableGateway struct{}

func (unavailableGateway) CreateSession(context.Context, checkout.SessionParams) (checkout.Session, error) {
	return checkout.Session{}, fmt.Errorf("%w: %w", usecase.ErrUpstreamService, errPaymentsDisabled)
}
