package checkout

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/riskibarqy/squadup/internal/domain/venue"
	"github.com/riskibarqy/squadup/internal/platform/id"
)

// ToMinorUnits converts a major-unit amount to cents, rounding half away
// from zero.
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: %v is negative", ErrInvalidAmount, amount)
	}
	cents := math.Round(amount * 100)
	if cents > math.MaxInt64/2 {
		return 0, fmt.Errorf("%w: %v is too large", ErrInvalidAmount, amount)
	}
	return int64(cents), nil
}

// Normalize turns a checkout request into session parameters. It never
// produces a session for an unknown type.
func Normalize(req Request, settings Settings) (SessionParams, error) {
	if _, err := ParseType(string(req.Type)); err != nil {
		return SessionParams{}, err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return SessionParams{}, fmt.Errorf("%w: userId", ErrMissingField)
	}
	base := strings.TrimRight(strings.TrimSpace(settings.BaseURL), "/")
	if base == "" {
		return SessionParams{}, fmt.Errorf("%w: base url", ErrMissingField)
	}

	metadata := map[string]string{
		MetaStatus:    StatusPendingApproval,
		MetaUserID:    req.UserID,
		MetaUserEmail: req.UserEmail,
		MetaType:      string(req.Type),
	}

	var (
		title  string
		amount float64
	)
	switch req.Type {
	case TypeBooking:
		item := req.Booking
		if item == nil {
			return SessionParams{}, fmt.Errorf("%w: booking data", ErrMissingField)
		}
		if item.VenueID == "" || item.Date == "" || item.Time == "" {
			return SessionParams{}, fmt.Errorf("%w: venueId, date and time", ErrMissingField)
		}
		amount = item.HourlyPrice
		if amount == 0 {
			amount = venue.DefaultHourlyPrice
		}
		title = "Request: " + item.VenueName
		metadata[MetaVenueID] = item.VenueID
		metadata[MetaVenueName] = item.VenueName
		metadata[MetaDate] = item.Date
		metadata[MetaTime] = item.Time
	case TypePickup:
		item := req.Pickup
		if item == nil || item.SessionID == "" {
			return SessionParams{}, fmt.Errorf("%w: sessionId", ErrMissingField)
		}
		amount = item.Price
		title = "Join Request: " + item.Sport
		metadata[MetaSessionID] = item.SessionID
		metadata[MetaSport] = item.Sport
	case TypeLeague:
		item := req.League
		if item == nil || item.LeagueID == "" {
			return SessionParams{}, fmt.Errorf("%w: leagueId", ErrMissingField)
		}
		amount = item.EntryFee
		title = "League Application: " + item.LeagueName
		metadata[MetaLeagueID] = item.LeagueID
		metadata[MetaSquadID] = IndividualEntry
		if item.SquadID != "" {
			metadata[MetaSquadID] = item.SquadID
		}
	}

	unitAmount, err := ToMinorUnits(amount)
	if err != nil {
		return SessionParams{}, err
	}

	currency := strings.ToLower(strings.TrimSpace(settings.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	description := settings.Description
	if description == "" {
		description = DefaultDescription
	}

	return SessionParams{
		Title:          title,
		Description:    description,
		Currency:       currency,
		UnitAmount:     unitAmount,
		Quantity:       1,
		SuccessURL:     base + "/dashboard?success=true&session_id=" + SessionIDPlaceholder + "&type=" + url.QueryEscape(string(req.Type)),
		CancelURL:      base + "/dashboard?canceled=true",
		CustomerEmail:  req.UserEmail,
		Metadata:       metadata,
		IdempotencyKey: IdempotencyKey(req),
	}, nil
}

// IdempotencyKey returns a UUIDv5 derived from the type, the buyer and the
// item being bought. A caller-supplied key is folded in, so it only
// deduplicates retries of the same purchase by the same buyer.
func IdempotencyKey(req Request) string {
	parts := []string{"checkout", string(req.Type), req.UserID}
	if key := strings.TrimSpace(req.IdempotencyKey); key != "" {
		parts = append(parts, "client:"+key)
	}
	switch {
	case req.Type == TypeBooking && req.Booking != nil:
		parts = append(parts, req.Booking.VenueID, req.Booking.Date, req.Booking.Time)
	case req.Type == TypePickup && req.Pickup != nil:
		parts = append(parts, req.Pickup.SessionID)
	case req.Type == TypeLeague && req.League != nil:
		squadID := req.League.SquadID
		if squadID == "" {
			squadID = IndividualEntry
		}
		parts = append(parts, req.League.LeagueID, squadID)
	}
	return id.Derive(strings.Join(parts, "\x1f"))
}

// RequestFromMetadata rebuilds the purchased item from the metadata of a
// completed session. Prices are not carried in metadata and stay zero.
func RequestFromMetadata(md map[string]string) (Request, error) {
	t, err := ParseType(md[MetaType])
	if err != nil {
		return Request{}, err
	}
	req := Request{Type: t, UserID: md[MetaUserID], UserEmail: md[MetaUserEmail]}
	if req.UserID == "" {
		return Request{}, fmt.Errorf("%w: metadata %s", ErrMissingField, MetaUserID)
	}

	switch t {
	case TypeBooking:
		req.Booking = &BookingItem{
			VenueID:   md[MetaVenueID],
			VenueName: md[MetaVenueName],
			Date:      md[MetaDate],
			Time:      md[MetaTime],
		}
		if req.Booking.VenueID == "" {
			return Request{}, fmt.Errorf("%w: metadata %s", ErrMissingField, MetaVenueID)
		}
	case TypePickup:
		req.Pickup = &PickupItem{SessionID: md[MetaSessionID], Sport: md[MetaSport]}
		if req.Pickup.SessionID == "" {
			return Request{}, fmt.Errorf("%w: metadata %s", ErrMissingField, MetaSessionID)
		}
	case TypeLeague:
		squadID := md[MetaSquadID]
		if squadID == IndividualEntry {
			squadID = ""
		}
		req.League = &LeagueItem{LeagueID: md[MetaLeagueID], SquadID: squadID}
		if req.League.LeagueID == "" {
			return Request{}, fmt.Errorf("%w: metadata %s", ErrMissingField, MetaLeagueID)
		}
	}
	return req, nil
}
