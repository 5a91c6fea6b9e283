package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/squadup/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[string]league.League
	orders []string
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))

	for _, l := range leagues {
		items[l.ID] = cloneLeague(l)
		orders = append(orders, l.ID)
	}

	return &LeagueRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueRepository) List(_ context.Context, filter league.Filter) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		l := r.items[id]
		if filter.Sport != "" && l.Sport != filter.Sport {
			continue
		}
		if filter.ActiveOnly && !l.Active {
			continue
		}
		out = append(out, cloneLeague(l))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return cloneLeague(l), true, nil
}

func (r *LeagueRepository) Register(_ context.Context, leagueID string, reg league.Registration) (league.League, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}
	if l.IsRegistered(reg) {
		return cloneLeague(l), true, nil
	}
	if l.SpotsRemaining <= 0 {
		return cloneLeague(l), true, league.ErrFull
	}

	l = cloneLeague(l)
	if reg.Individual() {
		l.FreeAgentIDs = append(l.FreeAgentIDs, reg.UserID)
	} else {
		l.SquadIDs = append(l.SquadIDs, reg.SquadID)
	}
	l.SpotsRemaining--
	r.items[leagueID] = l

	return cloneLeague(l), true, nil
}

// UpsertMany refreshes league details. Registrations and spot counts of
// existing leagues are kept.
func (r *LeagueRepository) UpsertMany(_ context.Context, leagues []league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range leagues {
		l = cloneLeague(l)
		if existing, exists := r.items[l.ID]; exists {
			l.SpotsRemaining = existing.SpotsRemaining
			l.SquadIDs = existing.SquadIDs
			l.FreeAgentIDs = existing.FreeAgentIDs
		} else {
			r.orders = append(r.orders, l.ID)
		}
		r.items[l.ID] = l
	}
	return nil
}

func cloneLeague(l league.League) league.League {
	copied := l
	copied.SquadIDs = slices.Clone(l.SquadIDs)
	copied.FreeAgentIDs = slices.Clone(l.FreeAgentIDs)
	return copied
}
