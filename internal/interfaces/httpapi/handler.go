package httpapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/riskibarqy/squadup/internal/usecase"
)

const defaultStreamHeartbeat = 25 * time.Second

type Handler struct {
	venueService     *usecase.VenueService
	squadService     *usecase.SquadService
	bookingService   *usecase.BookingService
	pickupService    *usecase.PickupService
	leagueService    *usecase.LeagueService
	checkoutService  *usecase.CheckoutService
	reconcileService *usecase.ReconcileService
	dashboardService *usecase.DashboardService
	seedService      *usecase.SeedService
	eventVerifier    checkout.EventVerifier
	logger           *logging.Logger
	validator        *validator.Validate
	streamHeartbeat  time.Duration
}

// NewHandler wires the HTTP surface. A nil eventVerifier disables the
// payment webhook.
func NewHandler(
	venueService *usecase.VenueService,
	squadService *usecase.SquadService,
	bookingService *usecase.BookingService,
	pickupService *usecase.PickupService,
	leagueService *usecase.LeagueService,
	checkoutService *usecase.CheckoutService,
	reconcileService *usecase.ReconcileService,
	dashboardService *usecase.DashboardService,
	seedService *usecase.SeedService,
	eventVerifier checkout.EventVerifier,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		venueService:     venueService,
		squadService:     squadService,
		bookingService:   bookingService,
		pickupService:    pickupService,
		leagueService:    leagueService,
		checkoutService:  checkoutService,
		reconcileService: reconcileService,
		dashboardService: dashboardService,
		seedService:      seedService,
		eventVerifier:    eventVerifier,
		logger:           logger.Named("httpapi"),
		validator:        validator.New(),
		streamHeartbeat:  defaultStreamHeartbeat,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetDashboard returns the caller's next event plus the post-payment
// banner derived from the redirect query.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	upcoming, err := h.dashboardService.NextEvent(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toDashboardDTO(upcoming, checkout.ParseReturn(r.URL.Query())))
}
