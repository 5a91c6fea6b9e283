package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squadup/internal/domain/match"
	qb "github.com/riskibarqy/squadup/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	return r.list(ctx, "list matches by league", qb.Eq("league_public_id", leagueID))
}

func (r *MatchRepository) ListUpcomingForSquads(ctx context.Context, squadIDs []string, after time.Time) ([]match.Match, error) {
	if len(squadIDs) == 0 {
		return []match.Match{}, nil
	}
	ids := stringsToAny(squadIDs)
	return r.list(ctx, "list upcoming matches for squads",
		qb.Gt("starts_at", after.UTC()),
		qb.Or(qb.In("home_squad_id", ids), qb.In("away_squad_id", ids)),
	)
}

func (r *MatchRepository) UpsertMany(ctx context.Context, matches []match.Match) error {
	if len(matches) == 0 {
		return nil
	}

	ins := qb.InsertInto("matches").Columns(matchColumns...)
	for _, m := range matches {
		ins.Values(m.ID, m.LeagueID, m.HomeSquadID, m.AwaySquadID, m.VenueLabel, m.StartsAt.UTC())
	}
	query, args, err := ins.Suffix(`ON CONFLICT (public_id) DO UPDATE SET
    league_public_id = EXCLUDED.league_public_id,
    home_squad_id = EXCLUDED.home_squad_id,
    away_squad_id = EXCLUDED.away_squad_id,
    venue_label = EXCLUDED.venue_label,
    starts_at = EXCLUDED.starts_at,
    updated_at = NOW()`).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert matches query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) list(ctx context.Context, op string, conds ...qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(conds...).
		OrderBy("starts_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Match{
			ID:          row.PublicID,
			LeagueID:    row.LeagueID,
			HomeSquadID: row.HomeSquadID,
			AwaySquadID: row.AwaySquadID,
			VenueLabel:  row.VenueLabel,
			StartsAt:    row.StartsAt.UTC(),
		})
	}
	return out, nil
}
