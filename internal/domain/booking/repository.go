package booking

import (
	"context"
	"time"
)

// Repository describes booking persistence needs from use cases.
type Repository interface {
	// Create inserts b unless a booking with the same id exists; created
	// reports whether a new document was written.
	Create(ctx context.Context, b Booking) (created bool, err error)
	GetByID(ctx context.Context, bookingID string) (Booking, bool, error)
	// ListByRequester returns bookings starting after the given instant and
	// bookings whose start could not be parsed at write time.
	ListByRequester(ctx context.Context, requesterID string, after time.Time) ([]Booking, error)
	// UpdateStatus moves a booking from one status to another. It reports
	// false when the booking is missing or no longer in the from status.
	UpdateStatus(ctx context.Context, bookingID string, from, to Status) (Booking, bool, error)
}
