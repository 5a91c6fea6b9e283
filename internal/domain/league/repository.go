package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	// Register records r and decrements the spots in one atomic step. An
	// existing registration is returned unchanged. ErrFull is returned when
	// no spots remain.
	Register(ctx context.Context, leagueID string, r Registration) (League, bool, error)
	UpsertMany(ctx context.Context, leagues []League) error
}
