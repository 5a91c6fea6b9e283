package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/booking"
)

type BookingRepository struct {
	mu    sync.RWMutex
	items map[string]booking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[string]booking.Booking)}
}

func (r *BookingRepository) Create(_ context.Context, b booking.Booking) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[b.ID]; exists {
		return false, nil
	}
	r.items[b.ID] = b
	return true, nil
}

func (r *BookingRepository) GetByID(_ context.Context, bookingID string) (booking.Booking, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[bookingID]
	return b, ok, nil
}

func (r *BookingRepository) ListByRequester(_ context.Context, requesterID string, after time.Time) ([]booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]booking.Booking, 0)
	for _, b := range r.items {
		if b.RequesterID != requesterID {
			continue
		}
		if !b.StartsAt.IsZero() && !b.StartsAt.After(after) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, bookingID string, from, to booking.Status) (booking.Booking, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[bookingID]
	if !ok || b.Status != from {
		return booking.Booking{}, false, nil
	}
	b.Status = to
	r.items[bookingID] = b
	return b, true, nil
}
