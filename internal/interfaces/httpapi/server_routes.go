package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCheckoutRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /api/checkout", RequireAuth(verifier, http.HandlerFunc(handler.CreateCheckoutSession)))
	// Authenticated by the payment provider signature, not a bearer token.
	mux.HandleFunc("POST /api/checkout/webhook", handler.HandleCheckoutWebhook)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/venues", handler.ListVenues)
	mux.HandleFunc("GET /v1/venues/{venueID}", handler.GetVenue)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/matches", handler.ListLeagueMatches)
	mux.HandleFunc("GET /v1/pickups", handler.ListPickups)
	mux.HandleFunc("GET /v1/pickups/{sessionID}", handler.GetPickup)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	auth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, h)
	}

	mux.Handle("GET /v1/dashboard", auth(handler.GetDashboard))

	mux.Handle("POST /v1/leagues/{leagueID}/registrations", auth(handler.RegisterLeague))

	mux.Handle("POST /v1/pickups/{sessionID}/join", auth(handler.JoinPickup))
	mux.Handle("POST /v1/pickups/{sessionID}/leave", auth(handler.LeavePickup))

	mux.Handle("POST /v1/squads", auth(handler.CreateSquad))
	mux.Handle("GET /v1/squads/me", auth(handler.ListMySquads))
	mux.Handle("GET /v1/squads/me/stream", auth(handler.StreamMySquads))
	mux.Handle("GET /v1/squads/{squadID}", auth(handler.GetSquad))
	mux.Handle("POST /v1/squads/{squadID}/join", auth(handler.JoinSquad))
	mux.Handle("POST /v1/squads/{squadID}/leave", auth(handler.LeaveSquad))
	mux.Handle("DELETE /v1/squads/{squadID}", auth(handler.DeleteSquad))

	mux.Handle("POST /v1/bookings", auth(handler.CreateBooking))
	mux.Handle("GET /v1/bookings/me", auth(handler.ListMyBookings))
	mux.Handle("PATCH /v1/bookings/{bookingID}", auth(handler.UpdateMyBooking))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/seed", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSeed)))
	mux.Handle("PATCH /v1/internal/bookings/{bookingID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdateBookingInternal)))
}
