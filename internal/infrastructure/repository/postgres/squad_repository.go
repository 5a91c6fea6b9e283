package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squadup/internal/domain/sport"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	qb "github.com/riskibarqy/squadup/internal/platform/querybuilder"
)

// SquadRepository stores rosters in a text[] column. Membership changes are
// single UPDATE statements guarded in the WHERE clause.
type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) Create(ctx context.Context, s squad.Squad) error {
	query, args, err := qb.InsertInto("squads").
		Columns(squadColumns...).
		Values(s.ID, s.Name, string(s.Sport), s.CaptainID, s.CaptainName, stringArray(s.MemberIDs), s.Wins, s.Losses, s.CreatedAt.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert squad query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("squad %s already exists: %w", s.ID, err)
		}
		return fmt.Errorf("insert squad: %w", err)
	}
	return nil
}

func (r *SquadRepository) GetByID(ctx context.Context, squadID string) (squad.Squad, bool, error) {
	query, args, err := qb.Select(squadColumns...).From("squads").
		Where(
			qb.Eq("public_id", squadID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("build get squad by id query: %w", err)
	}

	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return squad.Squad{}, false, nil
		}
		return squad.Squad{}, false, fmt.Errorf("get squad by id: %w", err)
	}
	return squadFromRow(row), true, nil
}

func (r *SquadRepository) ListByMember(ctx context.Context, userID string) ([]squad.Squad, error) {
	return r.list(ctx, "list squads by member", qb.Select(squadColumns...).From("squads").
		Where(
			qb.Contains("member_ids", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "public_id"))
}

func (r *SquadRepository) ListByCaptain(ctx context.Context, userID string) ([]squad.Squad, error) {
	return r.list(ctx, "list squads by captain", qb.Select(squadColumns...).From("squads").
		Where(
			qb.Eq("captain_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "public_id"))
}

func (r *SquadRepository) ListLeaderboard(ctx context.Context, sp sport.Sport, limit int) ([]squad.Squad, error) {
	conds := []qb.Condition{qb.IsNull("deleted_at")}
	if sp != "" {
		conds = append(conds, qb.Eq("sport", string(sp)))
	}
	return r.list(ctx, "list squad leaderboard", qb.Select(squadColumns...).From("squads").
		Where(conds...).
		OrderBy("wins DESC", "losses ASC", "name ASC").
		Limit(limit))
}

func (r *SquadRepository) AddMember(ctx context.Context, squadID, userID string) (squad.Squad, bool, error) {
	query, args, err := qb.Update("squads").
		SetExpr("member_ids", "array_append(member_ids, ?)", userID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", squadID),
			qb.IsNull("deleted_at"),
			qb.Expr("NOT (? = ANY(member_ids))", userID),
		).
		Suffix(returning(squadColumns)).
		ToSQL()
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("build add squad member query: %w", err)
	}
	return r.applyMembership(ctx, "add squad member", squadID, query, args)
}

// RemoveMember never removes the captain; the guard lives in the statement.
func (r *SquadRepository) RemoveMember(ctx context.Context, squadID, userID string) (squad.Squad, bool, error) {
	query, args, err := qb.Update("squads").
		SetExpr("member_ids", "array_remove(member_ids, ?)", userID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", squadID),
			qb.IsNull("deleted_at"),
			qb.Contains("member_ids", userID),
			qb.Expr("captain_id <> ?", userID),
		).
		Suffix(returning(squadColumns)).
		ToSQL()
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("build remove squad member query: %w", err)
	}
	return r.applyMembership(ctx, "remove squad member", squadID, query, args)
}

func (r *SquadRepository) Delete(ctx context.Context, squadID string) (bool, error) {
	query, args, err := qb.Update("squads").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", squadID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete squad query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete squad: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete squad rows affected: %w", err)
	}
	return affected > 0, nil
}

// applyMembership runs a guarded roster update. When the guard filters the
// row out, the current squad is returned unchanged.
func (r *SquadRepository) applyMembership(ctx context.Context, op, squadID, query string, args []any) (squad.Squad, bool, error) {
	var row squadTableModel
	err := r.db.GetContext(ctx, &row, query, args...)
	if err == nil {
		return squadFromRow(row), true, nil
	}
	if !isNotFound(err) {
		return squad.Squad{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return r.GetByID(ctx, squadID)
}

func (r *SquadRepository) list(ctx context.Context, op string, b *qb.SelectBuilder) ([]squad.Squad, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]squad.Squad, 0, len(rows))
	for _, row := range rows {
		out = append(out, squadFromRow(row))
	}
	return out, nil
}

func squadFromRow(row squadTableModel) squad.Squad {
	return squad.Squad{
		ID:          row.PublicID,
		Name:        row.Name,
		Sport:       sport.Sport(row.Sport),
		CaptainID:   row.CaptainID,
		CaptainName: row.CaptainName,
		MemberIDs:   []string(row.MemberIDs),
		Wins:        row.Wins,
		Losses:      row.Losses,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}
