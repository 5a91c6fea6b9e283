package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/match"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MatchRepository flattens the per-league match lists into one collection
// keyed by leagueId.
type MatchRepository struct {
	c *mongo.Collection
}

func NewMatchRepository(db *mongo.Database) *MatchRepository {
	return &MatchRepository{c: db.Collection(CollectionMatches)}
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	items, err := findAll[matchDocument, match.Match](ctx, r.c, bson.M{"leagueId": leagueID}, byStart())
	if err != nil {
		return nil, fmt.Errorf("list matches by league: %w", err)
	}
	return items, nil
}

func (r *MatchRepository) ListUpcomingForSquads(ctx context.Context, squadIDs []string, after time.Time) ([]match.Match, error) {
	if len(squadIDs) == 0 {
		return []match.Match{}, nil
	}

	filter := bson.M{
		"startsAt": bson.M{"$gt": after.UTC()},
		"$or": bson.A{
			bson.M{"homeSquadId": bson.M{"$in": squadIDs}},
			bson.M{"awaySquadId": bson.M{"$in": squadIDs}},
		},
	}
	items, err := findAll[matchDocument, match.Match](ctx, r.c, filter, byStart())
	if err != nil {
		return nil, fmt.Errorf("list upcoming matches for squads: %w", err)
	}
	return items, nil
}

func (r *MatchRepository) UpsertMany(ctx context.Context, matches []match.Match) error {
	models := make([]mongo.WriteModel, 0, len(matches))
	for _, m := range matches {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": m.ID}).
			SetReplacement(matchToDocument(m)).
			SetUpsert(true))
	}
	if err := bulkUpsert(ctx, r.c, models); err != nil {
		return fmt.Errorf("upsert matches: %w", err)
	}
	return nil
}
