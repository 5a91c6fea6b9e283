package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	r := &MatchRepository{items: make(map[string]match.Match, len(matches))}
	for _, m := range matches {
		r.items[m.ID] = m
	}
	return r
}

func (r *MatchRepository) ListByLeague(_ context.Context, leagueID string) ([]match.Match, error) {
	return r.list(func(m match.Match) bool { return m.LeagueID == leagueID }), nil
}

func (r *MatchRepository) ListUpcomingForSquads(_ context.Context, squadIDs []string, after time.Time) ([]match.Match, error) {
	if len(squadIDs) == 0 {
		return []match.Match{}, nil
	}
	return r.list(func(m match.Match) bool {
		if !m.StartsAt.After(after) {
			return false
		}
		return slices.Contains(squadIDs, m.HomeSquadID) || slices.Contains(squadIDs, m.AwaySquadID)
	}), nil
}

func (r *MatchRepository) UpsertMany(_ context.Context, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range matches {
		r.items[m.ID] = m
	}
	return nil
}

func (r *MatchRepository) list(keep func(match.Match) bool) []match.Match {
	r.mu.RLock()
	out := make([]match.Match, 0)
	for _, m := range r.items {
		if keep(m) {
			out = append(out, m)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b match.Match) int {
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
