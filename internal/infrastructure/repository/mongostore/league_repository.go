package mongostore

import (
	"context"
	"fmt"

	"github.com/riskibarqy/squadup/internal/domain/league"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LeagueRepository struct {
	c *mongo.Collection
}

func NewLeagueRepository(db *mongo.Database) *LeagueRepository {
	return &LeagueRepository{c: db.Collection(CollectionLeagues)}
}

func (r *LeagueRepository) List(ctx context.Context, filter league.Filter) ([]league.League, error) {
	query := bson.M{}
	if filter.Sport != "" {
		query["sport"] = string(filter.Sport)
	}
	if filter.ActiveOnly {
		query["active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}, {Key: "_id", Value: 1}})
	items, err := findAll[leagueDocument, league.League](ctx, r.c, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	l, ok, err := findOne[leagueDocument, league.League](ctx, r.c, leagueID)
	if err != nil {
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}
	return l, ok, nil
}

// Register pushes the entry and decrements spotsRemaining in one guarded
// update, so the count can never go negative.
func (r *LeagueRepository) Register(ctx context.Context, leagueID string, reg league.Registration) (league.League, bool, error) {
	field, key := registrationField(reg)

	l, ok, err := findAndUpdate[leagueDocument, league.League](ctx, r.c,
		bson.M{
			"_id":            leagueID,
			"spotsRemaining": bson.M{"$gt": 0},
			field:            bson.M{"$ne": key},
		},
		bson.M{
			"$push": bson.M{field: key},
			"$inc":  bson.M{"spotsRemaining": -1},
		},
	)
	if err != nil {
		return league.League{}, false, fmt.Errorf("register league entry: %w", err)
	}
	if ok {
		return l, true, nil
	}

	current, exists, err := r.GetByID(ctx, leagueID)
	if err != nil || !exists {
		return league.League{}, exists, err
	}
	if current.IsRegistered(reg) {
		return current, true, nil
	}
	return current, true, league.ErrFull
}

// UpsertMany writes league details. Spots and registrations of existing
// leagues are left as they are.
func (r *LeagueRepository) UpsertMany(ctx context.Context, leagues []league.League) error {
	models := make([]mongo.WriteModel, 0, len(leagues))
	for _, l := range leagues {
		doc := leagueToDocument(l)
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetUpdate(bson.M{
				"$set": bson.M{
					"name":     doc.Name,
					"sport":    doc.Sport,
					"season":   doc.Season,
					"region":   doc.Region,
					"entryFee": doc.EntryFee,
					"prize":    doc.Prize,
					"startsAt": doc.StartsAt,
					"active":   doc.Active,
				},
				"$setOnInsert": bson.M{
					"spotsRemaining": doc.SpotsRemaining,
					"squads":         doc.SquadIDs,
					"freeAgents":     doc.FreeAgentIDs,
				},
			}).
			SetUpsert(true))
	}
	if err := bulkUpsert(ctx, r.c, models); err != nil {
		return fmt.Errorf("upsert leagues: %w", err)
	}
	return nil
}

func registrationField(reg league.Registration) (string, string) {
	if reg.Individual() {
		return "freeAgents", reg.UserID
	}
	return "squads", reg.SquadID
}
