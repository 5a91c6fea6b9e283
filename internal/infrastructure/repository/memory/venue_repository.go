package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/squadup/internal/domain/venue"
)

type VenueRepository struct {
	mu     sync.RWMutex
	items  map[string]venue.Venue
	orders []string
}

func NewVenueRepository(venues []venue.Venue) *VenueRepository {
	r := &VenueRepository{items: make(map[string]venue.Venue, len(venues))}
	_ = r.UpsertMany(context.Background(), venues)
	return r
}

func (r *VenueRepository) List(_ context.Context, filter venue.Filter) ([]venue.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]venue.Venue, 0, len(r.orders))
	for _, id := range r.orders {
		v := r.items[id]
		if filter.Sport != "" && v.Sport != filter.Sport {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *VenueRepository) GetByID(_ context.Context, venueID string) (venue.Venue, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[venueID]
	return v, ok, nil
}

func (r *VenueRepository) UpsertMany(_ context.Context, venues []venue.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range venues {
		if _, exists := r.items[v.ID]; !exists {
			r.orders = append(r.orders, v.ID)
		}
		r.items[v.ID] = v
	}
	return nil
}
