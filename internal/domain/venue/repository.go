package venue

import "context"

// Repository describes venue persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Venue, error)
	GetByID(ctx context.Context, venueID string) (Venue, bool, error)
	UpsertMany(ctx context.Context, venues []Venue) error
}
