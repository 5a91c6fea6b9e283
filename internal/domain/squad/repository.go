package squad

import (
	"context"

	"github.com/riskibarqy/squadup/internal/domain/sport"
)

// Repository describes squad persistence needs from use cases. Membership
// changes are applied atomically by the backend.
type Repository interface {
	Create(ctx context.Context, squad Squad) error
	GetByID(ctx context.Context, squadID string) (Squad, bool, error)
	ListByMember(ctx context.Context, userID string) ([]Squad, error)
	ListByCaptain(ctx context.Context, userID string) ([]Squad, error)
	ListLeaderboard(ctx context.Context, s sport.Sport, limit int) ([]Squad, error)
	AddMember(ctx context.Context, squadID, userID string) (Squad, bool, error)
	RemoveMember(ctx context.Context, squadID, userID string) (Squad, bool, error)
	Delete(ctx context.Context, squadID string) (bool, error)
}

// Watcher is implemented by backends that can push membership changes. Each
// value on the channel is the full list of squads the member belongs to. The
// channel closes when ctx is done.
type Watcher interface {
	Watch(ctx context.Context, memberID string) (<-chan []Squad, error)
}
