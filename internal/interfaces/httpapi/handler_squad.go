package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/usecase"
)

func (h *Handler) CreateSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSquad")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createSquadRequest
	if err := h.decodeAndValidate(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.squadService.CreateSquad(ctx, usecase.CreateSquadInput{
		Captain: principal,
		Name:    req.Name,
		Sport:   req.Sport,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create squad failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toSquadDTO(item))
}

func (h *Handler) ListMySquads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMySquads")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.squadService.ListMySquads(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSquadDTOs(items))
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	squadID, err := pathValue(r, "squadID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.squadService.GetSquad(ctx, squadID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSquadDTO(item))
}

func (h *Handler) JoinSquad(w http.ResponseWriter, r *http.Request) {
	h.changeSquadMembership(w, r, "httpapi.Handler.JoinSquad", h.squadService.JoinSquad)
}

func (h *Handler) LeaveSquad(w http.ResponseWriter, r *http.Request) {
	h.changeSquadMembership(w, r, "httpapi.Handler.LeaveSquad", h.squadService.LeaveSquad)
}

func (h *Handler) changeSquadMembership(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	change func(ctx context.Context, squadID, userID string) (squad.Squad, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	squadID, err := pathValue(r, "squadID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := change(ctx, squadID, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSquadDTO(item))
}

func (h *Handler) DeleteSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSquad")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	squadID, err := pathValue(r, "squadID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.squadService.DeleteSquad(ctx, squadID, principal.UserID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": squadID, "status": "deleted"})
}

// StreamMySquads pushes the caller's squads as server-sent events: one
// "squads" event on connect and one after every membership change.
func (h *Handler) StreamMySquads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamMySquads")
	defer span.End()

	principal, err := mustPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updates, err := h.squadService.WatchMySquads(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "watch squads failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	rc := http.NewResponseController(w)
	// Streams outlive the server write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.WarnContext(ctx, "squad stream flush unsupported", "error", err)
		return
	}

	heartbeat := time.NewTicker(h.streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case items, ok := <-updates:
			if !ok {
				return
			}
			payload, err := sonic.Marshal(toSquadDTOs(items))
			if err != nil {
				h.logger.ErrorContext(ctx, "encode squad stream event failed", "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: squads\ndata: %s\n\n", payload); err != nil {
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
