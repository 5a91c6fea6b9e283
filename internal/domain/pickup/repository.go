package pickup

import (
	"context"
	"time"
)

// Repository describes pickup persistence needs from use cases. Join and
// Leave are atomic with respect to other writers; the bool result reports
// whether the session exists.
type Repository interface {
	ListUpcoming(ctx context.Context, after time.Time, filter Filter) ([]Session, error)
	ListUpcomingByPlayer(ctx context.Context, playerID string, after time.Time) ([]Session, error)
	GetByID(ctx context.Context, sessionID string) (Session, bool, error)
	// Join adds playerID unless already present. It returns ErrFull when the
	// roster is at capacity.
	Join(ctx context.Context, sessionID, playerID string) (Session, bool, error)
	Leave(ctx context.Context, sessionID, playerID string) (Session, bool, error)
	UpsertMany(ctx context.Context, sessions []Session) error
}
