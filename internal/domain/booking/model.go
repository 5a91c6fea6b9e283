package booking

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusConfirmed       Status = "confirmed"
	StatusCancelled       Status = "cancelled"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPendingApproval, StatusConfirmed, StatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
}

// CanTransition reports whether a booking may move from one status to
// another. Cancelled is terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPendingApproval:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	default:
		return false
	}
}

// Booking is a venue reservation request. Date and Time keep the submitted
// text; StartsAt is their parsed form and stays zero when they could not be
// parsed.
type Booking struct {
	ID                string
	VenueID           string
	VenueName         string
	VenueAddress      string
	Date              string
	Time              string
	StartsAt          time.Time
	RequesterID       string
	Status            Status
	CheckoutSessionID string
	CreatedAt         time.Time
}

func (b Booking) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("booking id is required")
	}
	if b.VenueID == "" {
		return fmt.Errorf("booking venue is required")
	}
	if b.RequesterID == "" {
		return fmt.Errorf("booking requester is required")
	}
	if b.Date == "" || b.Time == "" {
		return fmt.Errorf("booking date and time are required")
	}
	if _, err := ParseStatus(string(b.Status)); err != nil {
		return err
	}
	return nil
}
