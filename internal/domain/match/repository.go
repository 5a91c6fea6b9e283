package match

import (
	"context"
	"time"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Match, error)
	// ListUpcomingForSquads returns matches after the given instant where
	// either side is one of squadIDs.
	ListUpcomingForSquads(ctx context.Context, squadIDs []string, after time.Time) ([]Match, error)
	UpsertMany(ctx context.Context, matches []Match) error
}
