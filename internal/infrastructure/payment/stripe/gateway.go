package stripe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/riskibarqy/squadup/internal/platform/resilience"
	stripeapi "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

var errStripeTransient = crerr.New("stripe transient failure")

type Config struct {
	SecretKey         string
	Timeout           time.Duration
	MaxNetworkRetries int64
	// APIURL overrides the API base URL; tests point it at a local server.
	APIURL         string
	HTTPClient     *http.Client
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Gateway creates hosted checkout sessions with a per-instance API client.
type Gateway struct {
	api     *client.API
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewGateway(cfg Config, logger *logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	backendCfg := &stripeapi.BackendConfig{
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripeapi.Int64(cfg.MaxNetworkRetries),
		LeveledLogger:     leveledLogger{logger: logger.Named("stripe")},
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripeapi.String(cfg.APIURL)
	}
	backends := &stripeapi.Backends{
		API:     stripeapi.GetBackendWithConfig(stripeapi.APIBackend, backendCfg),
		Connect: stripeapi.GetBackendWithConfig(stripeapi.ConnectBackend, backendCfg),
		Uploads: stripeapi.GetBackendWithConfig(stripeapi.UploadsBackend, backendCfg),
	}

	return &Gateway{
		api:     client.New(cfg.SecretKey, backends),
		breaker: resilience.NewOptionalCircuitBreaker(cfg.CircuitBreaker.WithDefaults(resilience.PaymentBreakerDefaults())),
		logger:  logger,
	}
}

func (g *Gateway) CreateSession(ctx context.Context, params checkout.SessionParams) (checkout.Session, error) {
	session, err := resilience.Execute(ctx, g.breaker, isTransient, func(ctx context.Context) (checkout.Session, error) {
		created, err := g.api.CheckoutSessions.New(sessionParams(ctx, params))
		if err != nil {
			return checkout.Session{}, classify(err)
		}
		return checkout.Session{ID: created.ID, URL: created.URL}, nil
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		g.logger.WarnContext(ctx, "stripe circuit breaker rejected request", "state", g.breaker.State())
		return checkout.Session{}, crerr.Wrap(err, "stripe is temporarily unavailable")
	}
	if err != nil {
		return checkout.Session{}, err
	}
	return session, nil
}

func sessionParams(ctx context.Context, p checkout.SessionParams) *stripeapi.CheckoutSessionParams {
	quantity := p.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	out := &stripeapi.CheckoutSessionParams{
		Mode:               stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		SuccessURL:         stripeapi.String(p.SuccessURL),
		CancelURL:          stripeapi.String(p.CancelURL),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripeapi.String(p.Currency),
					UnitAmount: stripeapi.Int64(p.UnitAmount),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripeapi.String(p.Title),
						Description: stripeapi.String(p.Description),
					},
				},
				Quantity: stripeapi.Int64(quantity),
			},
		},
	}
	if p.CustomerEmail != "" {
		out.CustomerEmail = stripeapi.String(p.CustomerEmail)
	}
	for k, v := range p.Metadata {
		out.AddMetadata(k, v)
	}
	if p.IdempotencyKey != "" {
		out.SetIdempotencyKey(p.IdempotencyKey)
	}
	out.Context = ctx
	return out
}

// classify marks network failures, rate limits and 5xx answers as transient
// so they count against the breaker.
func classify(err error) error {
	var apiErr *stripeapi.Error
	if crerr.As(err, &apiErr) {
		wrapped := crerr.Wrapf(err, "create checkout session status=%d code=%s", apiErr.HTTPStatusCode, apiErr.Code)
		if apiErr.HTTPStatusCode >= http.StatusInternalServerError || apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return crerr.Mark(wrapped, errStripeTransient)
		}
		return wrapped
	}
	return crerr.Mark(crerr.Wrap(err, "create checkout session"), errStripeTransient)
}

func isTransient(err error) bool {
	return crerr.Is(err, errStripeTransient)
}

// leveledLogger routes the SDK's own logging into the service logger.
type leveledLogger struct {
	logger *logging.Logger
}

func (l leveledLogger) Debugf(format string, v ...any) { l.logger.Debug(fmt.Sprintf(format, v...)) }
func (l leveledLogger) Infof(format string, v ...any)  { l.logger.Debug(fmt.Sprintf(format, v...)) }
func (l leveledLogger) Warnf(format string, v ...any)  { l.logger.Warn(fmt.Sprintf(format, v...)) }
func (l leveledLogger) Errorf(format string, v ...any) { l.logger.Warn(fmt.Sprintf(format, v...)) }
