package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/pickup"
)

type PickupRepository struct {
	mu    sync.RWMutex
	items map[string]pickup.Session
}

func NewPickupRepository(sessions []pickup.Session) *PickupRepository {
	r := &PickupRepository{items: make(map[string]pickup.Session, len(sessions))}
	for _, s := range sessions {
		r.items[s.ID] = clonePickup(s)
	}
	return r
}

func (r *PickupRepository) ListUpcoming(_ context.Context, after time.Time, filter pickup.Filter) ([]pickup.Session, error) {
	return r.list(func(s pickup.Session) bool {
		if filter.Sport != "" && s.Sport != filter.Sport {
			return false
		}
		return s.StartsAt.After(after)
	}), nil
}

func (r *PickupRepository) ListUpcomingByPlayer(_ context.Context, playerID string, after time.Time) ([]pickup.Session, error) {
	return r.list(func(s pickup.Session) bool {
		return s.HasPlayer(playerID) && s.StartsAt.After(after)
	}), nil
}

func (r *PickupRepository) GetByID(_ context.Context, sessionID string) (pickup.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[sessionID]
	if !ok {
		return pickup.Session{}, false, nil
	}
	return clonePickup(s), true, nil
}

func (r *PickupRepository) Join(_ context.Context, sessionID, playerID string) (pickup.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[sessionID]
	if !ok {
		return pickup.Session{}, false, nil
	}
	if s.HasPlayer(playerID) {
		return clonePickup(s), true, nil
	}
	if s.IsFull() {
		return clonePickup(s), true, pickup.ErrFull
	}

	s = clonePickup(s)
	s.PlayerIDs = append(s.PlayerIDs, playerID)
	r.items[sessionID] = s
	return clonePickup(s), true, nil
}

func (r *PickupRepository) Leave(_ context.Context, sessionID, playerID string) (pickup.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[sessionID]
	if !ok {
		return pickup.Session{}, false, nil
	}
	if s.HasPlayer(playerID) {
		s = clonePickup(s)
		s.PlayerIDs = slices.DeleteFunc(s.PlayerIDs, func(id string) bool { return id == playerID })
		r.items[sessionID] = s
	}
	return clonePickup(s), true, nil
}

// UpsertMany refreshes session details and keeps existing rosters.
func (r *PickupRepository) UpsertMany(_ context.Context, sessions []pickup.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range sessions {
		s = clonePickup(s)
		if existing, ok := r.items[s.ID]; ok {
			s.PlayerIDs = existing.PlayerIDs
			s.Capacity = max(s.Capacity, len(existing.PlayerIDs))
		}
		r.items[s.ID] = s
	}
	return nil
}

func (r *PickupRepository) list(keep func(pickup.Session) bool) []pickup.Session {
	r.mu.RLock()
	out := make([]pickup.Session, 0, len(r.items))
	for _, s := range r.items {
		if keep(s) {
			out = append(out, clonePickup(s))
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b pickup.Session) int {
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func clonePickup(s pickup.Session) pickup.Session {
	copied := s
	copied.PlayerIDs = slices.Clone(s.PlayerIDs)
	return copied
}
