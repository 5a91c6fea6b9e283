package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/usecase"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	signatureHeader      = "Stripe-Signature"
	maxWebhookBodyBytes  = 64 << 10
)

// checkoutRequest is the /api/checkout body. Data carries the fields of
// the item named by Type; client names and prices are informational only.
type checkoutRequest struct {
	Type      string       `json:"type" validate:"required,oneof=booking pickup league"`
	Data      checkoutData `json:"data"`
	UserID    string       `json:"userId" validate:"omitempty,max=128"`
	UserEmail string       `json:"userEmail" validate:"omitempty,email"`
}

type checkoutData struct {
	VenueID    string  `json:"venueId" validate:"required_if=Kind booking,max=128"`
	VenueName  string  `json:"venueName"`
	VenuePrice float64 `json:"venuePrice"`
	Date       string  `json:"date" validate:"required_if=Kind booking,max=64"`
	Time       string  `json:"time" validate:"required_if=Kind booking,max=64"`
	SessionID  string  `json:"sessionId" validate:"required_if=Kind pickup,max=128"`
	Sport      string  `json:"sport"`
	Price      float64 `json:"price"`
	LeagueID   string  `json:"leagueId" validate:"required_if=Kind league,max=128"`
	LeagueName string  `json:"leagueName"`
	Fee        float64 `json:"fee"`
	SquadID    string  `json:"squadId" validate:"max=128"`
	Kind       string  `json:"-"`
}

func (c checkoutRequest) toDomain(idempotencyKey string) checkout.Request {
	out := checkout.Request{
		Type:           checkout.Type(c.Type),
		UserID:         strings.TrimSpace(c.UserID),
		UserEmail:      strings.TrimSpace(c.UserEmail),
		IdempotencyKey: idempotencyKey,
	}
	switch out.Type {
	case checkout.TypeBooking:
		out.Booking = &checkout.BookingItem{
			VenueID:     strings.TrimSpace(c.Data.VenueID),
			VenueName:   c.Data.VenueName,
			HourlyPrice: c.Data.VenuePrice,
			Date:        strings.TrimSpace(c.Data.Date),
			Time:        strings.TrimSpace(c.Data.Time),
		}
	case checkout.TypePickup:
		out.Pickup = &checkout.PickupItem{
			SessionID: strings.TrimSpace(c.Data.SessionID),
			Sport:     c.Data.Sport,
			Price:     c.Data.Price,
		}
	case checkout.TypeLeague:
		out.League = &checkout.LeagueItem{
			LeagueID:   strings.TrimSpace(c.Data.LeagueID),
			LeagueName: c.Data.LeagueName,
			EntryFee:   c.Data.Fee,
			SquadID:    strings.TrimSpace(c.Data.SquadID),
		}
	}
	return out
}

// CreateCheckoutSession answers {url} on success and {error} otherwise.
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCheckoutSession")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeCheckoutError(ctx, w, err)
		return
	}

	var req checkoutRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeCheckoutError(ctx, w, err)
		return
	}
	req.Data.Kind = req.Type
	if err := h.validateRequest(ctx, &req.Data); err != nil {
		writeCheckoutError(ctx, w, err)
		return
	}

	idempotencyKey := strings.TrimSpace(r.Header.Get(idempotencyKeyHeader))
	session, err := h.checkoutService.CreateSession(ctx, principal, req.toDomain(idempotencyKey))
	if err != nil {
		writeCheckoutError(ctx, w, err)
		return
	}

	writeCheckoutURL(ctx, w, session.URL)
}

type webhookAck struct {
	Received bool   `json:"received"`
	Ignored  bool   `json:"ignored,omitempty"`
	Applied  bool   `json:"applied,omitempty"`
	Type     string `json:"type,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HandleCheckoutWebhook verifies and reconciles a payment provider event.
// Events that can never succeed are acknowledged so the provider stops
// retrying; transient failures answer 5xx.
func (h *Handler) HandleCheckoutWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HandleCheckoutWebhook")
	defer span.End()

	if h.eventVerifier == nil {
		writeCheckoutError(ctx, w, fmt.Errorf("%w: payment webhooks are not configured", usecase.ErrUpstreamService))
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		writeCheckoutError(ctx, w, fmt.Errorf("%w: read webhook body: %v", usecase.ErrValidation, err))
		return
	}

	event, err := h.eventVerifier.VerifyEvent(payload, r.Header.Get(signatureHeader))
	if err != nil {
		h.logger.WarnContext(ctx, "rejected payment webhook", "error", err)
		writeCheckoutError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrValidation, err))
		return
	}

	result, err := h.reconcileService.HandleEvent(ctx, event)
	switch {
	case err == nil:
		writeJSON(ctx, w, http.StatusOK, webhookAck{
			Received: true,
			Ignored:  result.Ignored,
			Applied:  result.Applied,
			Type:     string(result.Type),
		})
	case isPermanent(err):
		h.logger.ErrorContext(ctx, "payment event cannot be reconciled",
			"event_id", event.ID,
			"checkout_session_id", event.SessionID,
			"error", err,
		)
		writeJSON(ctx, w, http.StatusOK, webhookAck{Received: true, Error: err.Error()})
	default:
		h.logger.ErrorContext(ctx, "payment event reconciliation failed",
			"event_id", event.ID,
			"checkout_session_id", event.SessionID,
			"error", err,
		)
		writeCheckoutError(ctx, w, err)
	}
}

func isPermanent(err error) bool {
	return errors.Is(err, usecase.ErrValidation) ||
		errors.Is(err, usecase.ErrNotFound) ||
		errors.Is(err, usecase.ErrConflict) ||
		errors.Is(err, usecase.ErrForbidden)
}
