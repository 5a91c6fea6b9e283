package mongostore

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/squadup/internal/domain/sport"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SquadRepository keeps one document per squad with the roster embedded.
// Watch needs a replica set; change streams are unavailable on standalone
// servers.
type SquadRepository struct {
	c      *mongo.Collection
	logger *logging.Logger
}

func NewSquadRepository(db *mongo.Database, logger *logging.Logger) *SquadRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &SquadRepository{c: db.Collection(CollectionSquads), logger: logger}
}

func (r *SquadRepository) Create(ctx context.Context, s squad.Squad) error {
	if _, err := r.c.InsertOne(ctx, squadToDocument(s)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("squad %s already exists: %w", s.ID, err)
		}
		return fmt.Errorf("insert squad: %w", err)
	}
	return nil
}

func (r *SquadRepository) GetByID(ctx context.Context, squadID string) (squad.Squad, bool, error) {
	s, ok, err := findOne[squadDocument, squad.Squad](ctx, r.c, squadID)
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("get squad by id: %w", err)
	}
	return s, ok, nil
}

func (r *SquadRepository) ListByMember(ctx context.Context, userID string) ([]squad.Squad, error) {
	items, err := findAll[squadDocument, squad.Squad](ctx, r.c, bson.M{"members": userID}, byCreated())
	if err != nil {
		return nil, fmt.Errorf("list squads by member: %w", err)
	}
	return items, nil
}

func (r *SquadRepository) ListByCaptain(ctx context.Context, userID string) ([]squad.Squad, error) {
	items, err := findAll[squadDocument, squad.Squad](ctx, r.c, bson.M{"captainId": userID}, byCreated())
	if err != nil {
		return nil, fmt.Errorf("list squads by captain: %w", err)
	}
	return items, nil
}

func (r *SquadRepository) ListLeaderboard(ctx context.Context, sp sport.Sport, limit int) ([]squad.Squad, error) {
	filter := bson.M{}
	if sp != "" {
		filter["sport"] = string(sp)
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "wins", Value: -1},
		{Key: "losses", Value: 1},
		{Key: "name", Value: 1},
	})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	items, err := findAll[squadDocument, squad.Squad](ctx, r.c, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list squad leaderboard: %w", err)
	}
	return items, nil
}

func (r *SquadRepository) AddMember(ctx context.Context, squadID, userID string) (squad.Squad, bool, error) {
	s, ok, err := findAndUpdate[squadDocument, squad.Squad](ctx, r.c,
		bson.M{"_id": squadID},
		bson.M{"$addToSet": bson.M{"members": userID}},
	)
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("add squad member: %w", err)
	}
	return s, ok, nil
}

// RemoveMember pulls userID unless they captain the squad; the captain's
// membership is left unchanged.
func (r *SquadRepository) RemoveMember(ctx context.Context, squadID, userID string) (squad.Squad, bool, error) {
	s, ok, err := findAndUpdate[squadDocument, squad.Squad](ctx, r.c,
		bson.M{"_id": squadID, "captainId": bson.M{"$ne": userID}},
		bson.M{"$pull": bson.M{"members": userID}},
	)
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("remove squad member: %w", err)
	}
	if ok {
		return s, true, nil
	}
	return r.GetByID(ctx, squadID)
}

func (r *SquadRepository) Delete(ctx context.Context, squadID string) (bool, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": squadID})
	if err != nil {
		return false, fmt.Errorf("delete squad: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Watch opens a change stream on the collection and re-reads the member's
// squads after each write. Only snapshots that differ from the previous one
// are sent, and a slow reader only sees the latest.
func (r *SquadRepository) Watch(ctx context.Context, memberID string) (<-chan []squad.Squad, error) {
	stream, err := r.c.Watch(ctx, squadChangePipeline())
	if err != nil {
		return nil, fmt.Errorf("open squad change stream: %w", err)
	}

	initial, err := r.ListByMember(ctx, memberID)
	if err != nil {
		_ = stream.Close(context.Background())
		return nil, err
	}

	out := make(chan []squad.Squad, 1)
	out <- initial

	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		last := initial
		for stream.Next(ctx) {
			items, err := r.ListByMember(ctx, memberID)
			if err != nil {
				if ctx.Err() == nil {
					r.logger.WarnContext(ctx, "squad watch refresh failed", "member_id", memberID, "error", err)
				}
				return
			}
			if sameSquads(last, items) {
				continue
			}
			last = items
			select {
			case <-out:
			default:
			}
			out <- items
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			r.logger.WarnContext(ctx, "squad change stream stopped", "member_id", memberID, "error", err)
		}
	}()

	return out, nil
}

func squadChangePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace", "delete"}},
		}}},
	}
}

func sameSquads(a, b []squad.Squad) bool {
	return slices.EqualFunc(a, b, func(x, y squad.Squad) bool {
		return x.ID == y.ID &&
			x.Name == y.Name &&
			x.CaptainID == y.CaptainID &&
			x.Wins == y.Wins &&
			x.Losses == y.Losses &&
			slices.Equal(x.MemberIDs, y.MemberIDs)
	})
}

func byCreated() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}
