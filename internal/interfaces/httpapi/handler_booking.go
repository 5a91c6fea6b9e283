package httpapi

import (
	"net/http"

	"github.com/riskibarqy/squadup/internal/usecase"
)

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBooking")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createBookingRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.bookingService.CreateBooking(ctx, usecase.CreateBookingInput{
		RequesterID: principal.UserID,
		VenueID:     req.VenueID,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toBookingDTO(item))
}

func (h *Handler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyBookings")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.bookingService.ListMyBookings(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list bookings failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toBookingDTOs(items))
}

// UpdateMyBooking lets the requester cancel their own booking.
func (h *Handler) UpdateMyBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyBooking")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	h.updateBookingStatus(w, r, principal.UserID, false)
}

// UpdateBookingInternal is the admin path used to confirm or cancel any
// booking.
func (h *Handler) UpdateBookingInternal(w http.ResponseWriter, r *http.Request) {
	h.updateBookingStatus(w, r, "", true)
}

func (h *Handler) updateBookingStatus(w http.ResponseWriter, r *http.Request, actorID string, internal bool) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.updateBookingStatus")
	defer span.End()

	bookingID, err := pathValue(r, "bookingID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateBookingStatusRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.bookingService.UpdateStatus(ctx, usecase.UpdateBookingStatusInput{
		BookingID: bookingID,
		Status:    req.Status,
		ActorID:   actorID,
		Internal:  internal,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toBookingDTO(item))
}
