package mongostore

import (
	"context"
	"fmt"

	"github.com/riskibarqy/squadup/internal/domain/venue"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VenueRepository struct {
	c *mongo.Collection
}

func NewVenueRepository(db *mongo.Database) *VenueRepository {
	return &VenueRepository{c: db.Collection(CollectionVenues)}
}

func (r *VenueRepository) List(ctx context.Context, filter venue.Filter) ([]venue.Venue, error) {
	query := bson.M{}
	if filter.Sport != "" {
		query["sport"] = string(filter.Sport)
	}

	items, err := findAll[venueDocument, venue.Venue](ctx, r.c, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return items, nil
}

func (r *VenueRepository) GetByID(ctx context.Context, venueID string) (venue.Venue, bool, error) {
	v, ok, err := findOne[venueDocument, venue.Venue](ctx, r.c, venueID)
	if err != nil {
		return venue.Venue{}, false, fmt.Errorf("get venue by id: %w", err)
	}
	return v, ok, nil
}

func (r *VenueRepository) UpsertMany(ctx context.Context, venues []venue.Venue) error {
	models := make([]mongo.WriteModel, 0, len(venues))
	for _, v := range venues {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": v.ID}).
			SetReplacement(venueToDocument(v)).
			SetUpsert(true))
	}
	if err := bulkUpsert(ctx, r.c, models); err != nil {
		return fmt.Errorf("upsert venues: %w", err)
	}
	return nil
}
