package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/squadup/internal/domain/booking"
	qb "github.com/riskibarqy/squadup/internal/platform/querybuilder"
)

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b booking.Booking) (bool, error) {
	query, args, err := qb.InsertInto("bookings").
		Columns(bookingColumns...).
		Values(
			b.ID,
			b.VenueID,
			b.VenueName,
			b.VenueAddress,
			b.Date,
			b.Time,
			nullableTime(b.StartsAt),
			b.RequesterID,
			string(b.Status),
			b.CheckoutSessionID,
			b.CreatedAt.UTC(),
		).
		Suffix("ON CONFLICT (public_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build insert booking query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert booking rows affected: %w", err)
	}
	return affected == 1, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID string) (booking.Booking, bool, error) {
	query, args, err := qb.Select(bookingColumns...).From("bookings").
		Where(qb.Eq("public_id", bookingID)).
		ToSQL()
	if err != nil {
		return booking.Booking{}, false, fmt.Errorf("build get booking by id query: %w", err)
	}

	var row bookingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return booking.Booking{}, false, nil
		}
		return booking.Booking{}, false, fmt.Errorf("get booking by id: %w", err)
	}
	return bookingFromRow(row), true, nil
}

func (r *BookingRepository) ListByRequester(ctx context.Context, requesterID string, after time.Time) ([]booking.Booking, error) {
	query, args, err := qb.Select(bookingColumns...).From("bookings").
		Where(
			qb.Eq("requester_id", requesterID),
			qb.Or(qb.IsNull("starts_at"), qb.Gt("starts_at", after.UTC())),
		).
		OrderBy("starts_at ASC NULLS LAST", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list bookings by requester query: %w", err)
	}

	var rows []bookingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings by requester: %w", err)
	}

	out := make([]booking.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, bookingFromRow(row))
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID string, from, to booking.Status) (booking.Booking, bool, error) {
	query, args, err := qb.Update("bookings").
		Set("status", string(to)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", bookingID),
			qb.Eq("status", string(from)),
		).
		Suffix(returning(bookingColumns)).
		ToSQL()
	if err != nil {
		return booking.Booking{}, false, fmt.Errorf("build update booking status query: %w", err)
	}

	var row bookingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return booking.Booking{}, false, nil
		}
		return booking.Booking{}, false, fmt.Errorf("update booking status: %w", err)
	}
	return bookingFromRow(row), true, nil
}

func bookingFromRow(row bookingTableModel) booking.Booking {
	return booking.Booking{
		ID:                row.PublicID,
		VenueID:           row.VenueID,
		VenueName:         row.VenueName,
		VenueAddress:      row.VenueAddress,
		Date:              row.Date,
		Time:              row.Time,
		StartsAt:          timeOrZero(row.StartsAt),
		RequesterID:       row.RequesterID,
		Status:            booking.Status(row.Status),
		CheckoutSessionID: row.CheckoutSessionID,
		CreatedAt:         row.CreatedAt.UTC(),
	}
}
