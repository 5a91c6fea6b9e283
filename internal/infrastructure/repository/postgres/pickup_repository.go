package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/sport"
	qb "github.com/riskibarqy/squadup/internal/platform/querybuilder"
)

type PickupRepository struct {
	db *sqlx.DB
}

func NewPickupRepository(db *sqlx.DB) *PickupRepository {
	return &PickupRepository{db: db}
}

func (r *PickupRepository) ListUpcoming(ctx context.Context, after time.Time, filter pickup.Filter) ([]pickup.Session, error) {
	conds := []qb.Condition{qb.Gt("starts_at", after.UTC())}
	if filter.Sport != "" {
		conds = append(conds, qb.Eq("sport", string(filter.Sport)))
	}
	return r.list(ctx, "list upcoming pickups", conds)
}

func (r *PickupRepository) ListUpcomingByPlayer(ctx context.Context, playerID string, after time.Time) ([]pickup.Session, error) {
	return r.list(ctx, "list upcoming pickups by player", []qb.Condition{
		qb.Gt("starts_at", after.UTC()),
		qb.Contains("player_ids", playerID),
	})
}

func (r *PickupRepository) GetByID(ctx context.Context, sessionID string) (pickup.Session, bool, error) {
	query, args, err := qb.Select(pickupColumns...).From("pickup_sessions").
		Where(qb.Eq("public_id", sessionID)).
		ToSQL()
	if err != nil {
		return pickup.Session{}, false, fmt.Errorf("build get pickup session query: %w", err)
	}

	var row pickupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pickup.Session{}, false, nil
		}
		return pickup.Session{}, false, fmt.Errorf("get pickup session: %w", err)
	}
	return pickupFromRow(row), true, nil
}

// Join appends playerID only while the roster has room and does not already
// hold them, so concurrent joins cannot overfill a session.
func (r *PickupRepository) Join(ctx context.Context, sessionID, playerID string) (pickup.Session, bool, error) {
	query, args, err := qb.Update("pickup_sessions").
		SetExpr("player_ids", "array_append(player_ids, ?)", playerID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", sessionID),
			qb.Expr("NOT (? = ANY(player_ids))", playerID),
			qb.Expr("cardinality(player_ids) < capacity"),
		).
		Suffix(returning(pickupColumns)).
		ToSQL()
	if err != nil {
		return pickup.Session{}, false, fmt.Errorf("build join pickup query: %w", err)
	}

	var row pickupTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if err == nil {
		return pickupFromRow(row), true, nil
	}
	if !isNotFound(err) {
		return pickup.Session{}, false, fmt.Errorf("join pickup session: %w", err)
	}

	current, exists, err := r.GetByID(ctx, sessionID)
	if err != nil || !exists {
		return current, exists, err
	}
	if current.HasPlayer(playerID) {
		return current, true, nil
	}
	return current, true, pickup.ErrFull
}

func (r *PickupRepository) Leave(ctx context.Context, sessionID, playerID string) (pickup.Session, bool, error) {
	query, args, err := qb.Update("pickup_sessions").
		SetExpr("player_ids", "array_remove(player_ids, ?)", playerID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", sessionID),
			qb.Contains("player_ids", playerID),
		).
		Suffix(returning(pickupColumns)).
		ToSQL()
	if err != nil {
		return pickup.Session{}, false, fmt.Errorf("build leave pickup query: %w", err)
	}

	var row pickupTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if err == nil {
		return pickupFromRow(row), true, nil
	}
	if !isNotFound(err) {
		return pickup.Session{}, false, fmt.Errorf("leave pickup session: %w", err)
	}
	return r.GetByID(ctx, sessionID)
}

// UpsertMany refreshes session details and keeps existing rosters.
func (r *PickupRepository) UpsertMany(ctx context.Context, sessions []pickup.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	ins := qb.InsertInto("pickup_sessions").Columns(pickupColumns...)
	for _, s := range sessions {
		ins.Values(s.ID, string(s.Sport), s.VenueLabel, s.StartsAt.UTC(), s.Level, s.Capacity, stringArray(s.PlayerIDs), s.Price, s.HostName)
	}
	query, args, err := ins.Suffix(`ON CONFLICT (public_id) DO UPDATE SET
    sport = EXCLUDED.sport,
    venue_label = EXCLUDED.venue_label,
    starts_at = EXCLUDED.starts_at,
    level = EXCLUDED.level,
    capacity = GREATEST(EXCLUDED.capacity, cardinality(pickup_sessions.player_ids)),
    price = EXCLUDED.price,
    host_name = EXCLUDED.host_name,
    updated_at = NOW()`).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert pickup sessions query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert pickup sessions: %w", err)
	}
	return nil
}

func (r *PickupRepository) list(ctx context.Context, op string, conds []qb.Condition) ([]pickup.Session, error) {
	query, args, err := qb.Select(pickupColumns...).From("pickup_sessions").
		Where(conds...).
		OrderBy("starts_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []pickupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]pickup.Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickupFromRow(row))
	}
	return out, nil
}

func pickupFromRow(row pickupTableModel) pickup.Session {
	return pickup.Session{
		ID:         row.PublicID,
		Sport:      sport.Sport(row.Sport),
		VenueLabel: row.VenueLabel,
		StartsAt:   row.StartsAt.UTC(),
		Level:      row.Level,
		Capacity:   row.Capacity,
		PlayerIDs:  []string(row.PlayerIDs),
		Price:      row.Price,
		HostName:   row.HostName,
	}
}
