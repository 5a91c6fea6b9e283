package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/sport"
	qb "github.com/riskibarqy/squadup/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context, filter league.Filter) ([]league.League, error) {
	conds := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.Sport != "" {
		conds = append(conds, qb.Eq("sport", string(filter.Sport)))
	}
	if filter.ActiveOnly {
		conds = append(conds, qb.Eq("active", true))
	}
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		Where(conds...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}
	return leagueFromRow(row), true, nil
}

// Register appends the entry and takes a spot in one statement. The
// spots_remaining > 0 guard and the CHECK constraint keep the count from
// going negative under concurrent registrations.
func (r *LeagueRepository) Register(ctx context.Context, leagueID string, reg league.Registration) (league.League, bool, error) {
	column, value := "squad_ids", reg.SquadID
	if reg.Individual() {
		column, value = "free_agent_ids", reg.UserID
	}

	query, args, err := qb.Update("leagues").
		SetExpr(column, "array_append("+column+", ?)", value).
		SetExpr("spots_remaining", "spots_remaining - 1").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
			qb.Gt("spots_remaining", 0),
			qb.Expr("NOT (? = ANY("+column+"))", value),
		).
		Suffix(returning(leagueColumns)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build register league query: %w", err)
	}

	var row leagueTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if err == nil {
		return leagueFromRow(row), true, nil
	}
	if !isNotFound(err) {
		return league.League{}, false, fmt.Errorf("register league entry: %w", err)
	}

	current, exists, err := r.GetByID(ctx, leagueID)
	if err != nil || !exists {
		return current, exists, err
	}
	if current.IsRegistered(reg) {
		return current, true, nil
	}
	return current, true, league.ErrFull
}

// UpsertMany refreshes league details. Registrations and spot counts of
// existing leagues are kept.
func (r *LeagueRepository) UpsertMany(ctx context.Context, leagues []league.League) error {
	if len(leagues) == 0 {
		return nil
	}

	ins := qb.InsertInto("leagues").Columns(leagueColumns...)
	for _, l := range leagues {
		ins.Values(
			l.ID,
			l.Name,
			string(l.Sport),
			l.Season,
			l.Region,
			l.EntryFee,
			l.SpotsRemaining,
			l.Prize,
			stringArray(l.SquadIDs),
			stringArray(l.FreeAgentIDs),
			nullableTime(l.StartsAt),
			l.Active,
		)
	}
	query, args, err := ins.Suffix(`ON CONFLICT (public_id) DO UPDATE SET
    name = EXCLUDED.name,
    sport = EXCLUDED.sport,
    season = EXCLUDED.season,
    region = EXCLUDED.region,
    entry_fee = EXCLUDED.entry_fee,
    prize = EXCLUDED.prize,
    starts_at = EXCLUDED.starts_at,
    active = EXCLUDED.active,
    updated_at = NOW(),
    deleted_at = NULL`).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert leagues query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert leagues: %w", err)
	}
	return nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:             row.PublicID,
		Name:           row.Name,
		Sport:          sport.Sport(row.Sport),
		Season:         row.Season,
		Region:         row.Region,
		EntryFee:       row.EntryFee,
		SpotsRemaining: row.SpotsRemaining,
		Prize:          row.Prize,
		SquadIDs:       []string(row.SquadIDs),
		FreeAgentIDs:   []string(row.FreeAgentIDs),
		StartsAt:       timeOrZero(row.StartsAt),
		Active:         row.Active,
	}
}
