package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client against uri and pings the primary.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	if timeout > 0 {
		opts.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the secondary indexes the repositories query by.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		CollectionVenues: {
			{Keys: bson.D{{Key: "sport", Value: 1}}, Options: options.Index().SetName("idx_venues_sport")},
		},
		CollectionSquads: {
			{Keys: bson.D{{Key: "members", Value: 1}}, Options: options.Index().SetName("idx_squads_members")},
			{Keys: bson.D{{Key: "captainId", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index().SetName("idx_squads_captain")},
			{Keys: bson.D{{Key: "sport", Value: 1}, {Key: "wins", Value: -1}, {Key: "losses", Value: 1}}, Options: options.Index().SetName("idx_squads_leaderboard")},
		},
		CollectionBookings: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "startsAt", Value: 1}}, Options: options.Index().SetName("idx_bookings_user_starts")},
		},
		CollectionPickups: {
			{Keys: bson.D{{Key: "startsAt", Value: 1}}, Options: options.Index().SetName("idx_pickups_starts")},
			{Keys: bson.D{{Key: "players", Value: 1}, {Key: "startsAt", Value: 1}}, Options: options.Index().SetName("idx_pickups_players")},
		},
		CollectionLeagues: {
			{Keys: bson.D{{Key: "sport", Value: 1}, {Key: "active", Value: 1}}, Options: options.Index().SetName("idx_leagues_sport_active")},
		},
		CollectionMatches: {
			{Keys: bson.D{{Key: "leagueId", Value: 1}, {Key: "startsAt", Value: 1}}, Options: options.Index().SetName("idx_matches_league")},
			{Keys: bson.D{{Key: "homeSquadId", Value: 1}, {Key: "startsAt", Value: 1}}, Options: options.Index().SetName("idx_matches_home")},
			{Keys: bson.D{{Key: "awaySquadId", Value: 1}, {Key: "startsAt", Value: 1}}, Options: options.Index().SetName("idx_matches_away")},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

func findAll[D interface{ toDomain() T }, T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		var doc D
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[D interface{ toDomain() T }, T any](ctx context.Context, c *mongo.Collection, id string) (T, bool, error) {
	var doc D
	err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return doc.toDomain(), true, nil
}

// findAndUpdate applies update when filter matches and returns the document
// after the change. matched is false when filter selected nothing.
func findAndUpdate[D interface{ toDomain() T }, T any](ctx context.Context, c *mongo.Collection, filter, update any) (_ T, matched bool, _ error) {
	var doc D
	err := c.FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return doc.toDomain(), true, nil
}

func bulkUpsert(ctx context.Context, c *mongo.Collection, models []mongo.WriteModel) error {
	if len(models) == 0 {
		return nil
	}
	_, err := c.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}
