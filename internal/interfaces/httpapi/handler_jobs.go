package httpapi

import "net/http"

// RunSeed upserts the curated catalogue. It is safe to run repeatedly.
func (h *Handler) RunSeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSeed")
	defer span.End()

	result, err := h.seedService.Seed(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "seed job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seedResultDTO{
		Venues:     result.Venues,
		Leagues:    result.Leagues,
		Pickups:    result.Pickups,
		Matches:    result.Matches,
		DurationMs: result.DurationMs,
	})
}
