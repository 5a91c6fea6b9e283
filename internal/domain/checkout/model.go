package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownType   = errors.New("unknown checkout type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrMissingField  = errors.New("missing field")
)

type Type string

const (
	TypeBooking Type = "booking"
	TypePickup  Type = "pickup"
	TypeLeague  Type = "league"
)

func ParseType(raw string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(raw))); t {
	case TypeBooking, TypePickup, TypeLeague:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
}

const (
	DefaultCurrency    = "cad"
	DefaultDescription = "Concierge Booking: We will confirm this slot manually."
	// IndividualEntry marks a league application without a squad.
	IndividualEntry = "individual"
	// StatusPendingApproval is attached to every session; reconciliation
	// writes documents in this status.
	StatusPendingApproval = "pending_approval"
	// SessionIDPlaceholder is expanded by the payment provider on redirect.
	SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"
)

// Metadata keys attached to a checkout session.
const (
	MetaStatus    = "status"
	MetaUserID    = "userId"
	MetaUserEmail = "userEmail"
	MetaType      = "type"
	MetaVenueID   = "venueId"
	MetaVenueName = "venueName"
	MetaDate      = "date"
	MetaTime      = "time"
	MetaSessionID = "sessionId"
	MetaSport     = "sport"
	MetaLeagueID  = "leagueId"
	MetaSquadID   = "squadId"
)

type BookingItem struct {
	VenueID     string
	VenueName   string
	HourlyPrice float64
	Date        string
	Time        string
}

type PickupItem struct {
	SessionID string
	Sport     string
	Price     float64
}

type LeagueItem struct {
	LeagueID   string
	LeagueName string
	EntryFee   float64
	SquadID    string
}

// Request is the tagged union a buyer submits. Exactly the item matching
// Type is set.
type Request struct {
	Type           Type
	UserID         string
	UserEmail      string
	Booking        *BookingItem
	Pickup         *PickupItem
	League         *LeagueItem
	IdempotencyKey string
}

type Settings struct {
	BaseURL     string
	Currency    string
	Description string
}

// SessionParams describes one hosted checkout session with a single line
// item.
type SessionParams struct {
	Title          string
	Description    string
	Currency       string
	UnitAmount     int64
	Quantity       int64
	SuccessURL     string
	CancelURL      string
	CustomerEmail  string
	Metadata       map[string]string
	IdempotencyKey string
}

// Session is a created hosted checkout session.
type Session struct {
	ID  string
	URL string
}
