package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PickupRepository struct {
	c *mongo.Collection
}

func NewPickupRepository(db *mongo.Database) *PickupRepository {
	return &PickupRepository{c: db.Collection(CollectionPickups)}
}

func (r *PickupRepository) ListUpcoming(ctx context.Context, after time.Time, filter pickup.Filter) ([]pickup.Session, error) {
	query := bson.M{"startsAt": bson.M{"$gt": after.UTC()}}
	if filter.Sport != "" {
		query["sport"] = string(filter.Sport)
	}

	items, err := findAll[pickupDocument, pickup.Session](ctx, r.c, query, byStart())
	if err != nil {
		return nil, fmt.Errorf("list upcoming pickups: %w", err)
	}
	return items, nil
}

func (r *PickupRepository) ListUpcomingByPlayer(ctx context.Context, playerID string, after time.Time) ([]pickup.Session, error) {
	query := bson.M{
		"startsAt": bson.M{"$gt": after.UTC()},
		"players":  playerID,
	}

	items, err := findAll[pickupDocument, pickup.Session](ctx, r.c, query, byStart())
	if err != nil {
		return nil, fmt.Errorf("list upcoming pickups by player: %w", err)
	}
	return items, nil
}

func (r *PickupRepository) GetByID(ctx context.Context, sessionID string) (pickup.Session, bool, error) {
	s, ok, err := findOne[pickupDocument, pickup.Session](ctx, r.c, sessionID)
	if err != nil {
		return pickup.Session{}, false, fmt.Errorf("get pickup session: %w", err)
	}
	return s, ok, nil
}

// Join pushes playerID only while the roster has room and does not already
// hold them. When the guarded update matches nothing the current document
// tells which guard failed.
func (r *PickupRepository) Join(ctx context.Context, sessionID, playerID string) (pickup.Session, bool, error) {
	s, ok, err := findAndUpdate[pickupDocument, pickup.Session](ctx, r.c,
		joinFilter(sessionID, playerID),
		bson.M{"$push": bson.M{"players": playerID}},
	)
	if err != nil {
		return pickup.Session{}, false, fmt.Errorf("join pickup session: %w", err)
	}
	if ok {
		return s, true, nil
	}

	current, exists, err := r.GetByID(ctx, sessionID)
	if err != nil || !exists {
		return pickup.Session{}, exists, err
	}
	if current.HasPlayer(playerID) {
		return current, true, nil
	}
	return current, true, pickup.ErrFull
}

func (r *PickupRepository) Leave(ctx context.Context, sessionID, playerID string) (pickup.Session, bool, error) {
	s, ok, err := findAndUpdate[pickupDocument, pickup.Session](ctx, r.c,
		bson.M{"_id": sessionID},
		bson.M{"$pull": bson.M{"players": playerID}},
	)
	if err != nil {
		return pickup.Session{}, false, fmt.Errorf("leave pickup session: %w", err)
	}
	return s, ok, nil
}

// UpsertMany writes session details but keeps the roster of sessions that
// already exist; capacity never drops below the current roster size.
func (r *PickupRepository) UpsertMany(ctx context.Context, sessions []pickup.Session) error {
	models := make([]mongo.WriteModel, 0, len(sessions))
	for _, s := range sessions {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": s.ID}).
			SetUpdate(pickupUpsertPipeline(pickupToDocument(s))).
			SetUpsert(true))
	}
	if err := bulkUpsert(ctx, r.c, models); err != nil {
		return fmt.Errorf("upsert pickup sessions: %w", err)
	}
	return nil
}

func joinFilter(sessionID, playerID string) bson.M {
	return bson.M{
		"_id":     sessionID,
		"players": bson.M{"$ne": playerID},
		"$expr": bson.M{"$lt": bson.A{
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$players", bson.A{}}}},
			"$maxPlayers",
		}},
	}
}

// pickupUpsertPipeline is an update pipeline: within one $set stage field
// paths refer to the stored document, so players falls back to the seeded
// roster only on insert.
func pickupUpsertPipeline(doc pickupDocument) mongo.Pipeline {
	roster := bson.M{"$ifNull": bson.A{"$players", doc.PlayerIDs}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"sport":      doc.Sport,
			"venue":      doc.VenueLabel,
			"startsAt":   doc.StartsAt,
			"level":      doc.Level,
			"price":      doc.Price,
			"hostName":   doc.HostName,
			"players":    roster,
			"maxPlayers": bson.M{"$max": bson.A{doc.Capacity, bson.M{"$size": roster}}},
		}}},
	}
}

func byStart() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}, {Key: "_id", Value: 1}})
}
