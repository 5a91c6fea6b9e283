package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squadup/internal/domain/sport"
	"github.com/riskibarqy/squadup/internal/domain/venue"
	qb "github.com/riskibarqy/squadup/internal/platform/querybuilder"
)

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) List(ctx context.Context, filter venue.Filter) ([]venue.Venue, error) {
	conds := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.Sport != "" {
		conds = append(conds, qb.Eq("sport", string(filter.Sport)))
	}
	query, args, err := qb.Select(venueColumns...).From("venues").
		Where(conds...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select venues query: %w", err)
	}

	var rows []venueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}

	out := make([]venue.Venue, 0, len(rows))
	for _, row := range rows {
		out = append(out, venueFromRow(row))
	}
	return out, nil
}

func (r *VenueRepository) GetByID(ctx context.Context, venueID string) (venue.Venue, bool, error) {
	query, args, err := qb.Select(venueColumns...).From("venues").
		Where(
			qb.Eq("public_id", venueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return venue.Venue{}, false, fmt.Errorf("build get venue by id query: %w", err)
	}

	var row venueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return venue.Venue{}, false, nil
		}
		return venue.Venue{}, false, fmt.Errorf("get venue by id: %w", err)
	}
	return venueFromRow(row), true, nil
}

func (r *VenueRepository) UpsertMany(ctx context.Context, venues []venue.Venue) error {
	if len(venues) == 0 {
		return nil
	}

	ins := qb.InsertInto("venues").Columns(venueColumns...)
	for _, v := range venues {
		ins.Values(v.ID, v.Name, v.Address, string(v.Sport), v.HourlyPrice, v.ImageName)
	}
	query, args, err := ins.Suffix(`ON CONFLICT (public_id) DO UPDATE SET
    name = EXCLUDED.name,
    address = EXCLUDED.address,
    sport = EXCLUDED.sport,
    hourly_price = EXCLUDED.hourly_price,
    image_name = EXCLUDED.image_name,
    updated_at = NOW(),
    deleted_at = NULL`).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert venues query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert venues: %w", err)
	}
	return nil
}

func venueFromRow(row venueTableModel) venue.Venue {
	return venue.Venue{
		ID:          row.PublicID,
		Name:        row.Name,
		Address:     row.Address,
		Sport:       sport.Sport(row.Sport),
		HourlyPrice: row.HourlyPrice,
		ImageName:   row.ImageName,
	}
}
