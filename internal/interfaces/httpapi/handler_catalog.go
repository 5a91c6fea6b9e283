package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/usecase"
)

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVenues")
	defer span.End()

	items, err := h.venueService.ListVenues(ctx, r.URL.Query().Get("sport"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list venues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toVenueDTOs(items))
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVenue")
	defer span.End()

	venueID, err := pathValue(r, "venueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.venueService.GetVenue(ctx, venueID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toVenueDTO(item))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	limit, err := queryInt(r, "limit", squad.LeaderboardLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.squadService.Leaderboard(ctx, r.URL.Query().Get("sport"), limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeaderboardDTOs(items))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	activeOnly, err := queryBool(r, "active", false)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leagueService.ListLeagues(ctx, r.URL.Query().Get("sport"), activeOnly)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueDTOs(items))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID, err := pathValue(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueDTO(item))
}

func (h *Handler) ListLeagueMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMatches")
	defer span.End()

	leagueID, err := pathValue(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leagueService.ListMatches(ctx, leagueID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toMatchDTOs(items))
}

// RegisterLeague enters the caller's squad when squad_id is given,
// otherwise the caller joins as a free agent.
func (h *Handler) RegisterLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterLeague")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID, err := pathValue(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req registerLeagueRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.Register(ctx, usecase.RegisterLeagueInput{
		LeagueID: leagueID,
		UserID:   principal.UserID,
		SquadID:  req.SquadID,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueDTO(item))
}

func (h *Handler) ListPickups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPickups")
	defer span.End()

	items, err := h.pickupService.ListUpcoming(ctx, r.URL.Query().Get("sport"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list pickups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPickupDTOs(items))
}

func (h *Handler) GetPickup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPickup")
	defer span.End()

	sessionID, err := pathValue(r, "sessionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.pickupService.GetSession(ctx, sessionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPickupDTO(item))
}

func (h *Handler) JoinPickup(w http.ResponseWriter, r *http.Request) {
	h.changePickupRoster(w, r, "httpapi.Handler.JoinPickup", h.pickupService.Join)
}

func (h *Handler) LeavePickup(w http.ResponseWriter, r *http.Request) {
	h.changePickupRoster(w, r, "httpapi.Handler.LeavePickup", h.pickupService.Leave)
}

func (h *Handler) changePickupRoster(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	change func(ctx context.Context, sessionID, userID string) (pickup.Session, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	sessionID, err := pathValue(r, "sessionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := change(ctx, sessionID, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPickupDTO(item))
}
