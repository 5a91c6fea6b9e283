package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/booking"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepository struct {
	c *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{c: db.Collection(CollectionBookings)}
}

// Create inserts b only when its id is new. A duplicate key is not an error:
// the webhook may deliver the same session more than once.
func (r *BookingRepository) Create(ctx context.Context, b booking.Booking) (bool, error) {
	if _, err := r.c.InsertOne(ctx, bookingToDocument(b)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert booking: %w", err)
	}
	return true, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID string) (booking.Booking, bool, error) {
	b, ok, err := findOne[bookingDocument, booking.Booking](ctx, r.c, bookingID)
	if err != nil {
		return booking.Booking{}, false, fmt.Errorf("get booking by id: %w", err)
	}
	return b, ok, nil
}

func (r *BookingRepository) ListByRequester(ctx context.Context, requesterID string, after time.Time) ([]booking.Booking, error) {
	filter := bson.M{
		"userId": requesterID,
		"$or": bson.A{
			bson.M{"startsAt": nil},
			bson.M{"startsAt": bson.M{"$gt": after.UTC()}},
		},
	}
	// Missing starts sort first in mongo; callers order by parsed start.
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}, {Key: "_id", Value: 1}})

	items, err := findAll[bookingDocument, booking.Booking](ctx, r.c, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings by requester: %w", err)
	}
	return items, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID string, from, to booking.Status) (booking.Booking, bool, error) {
	b, ok, err := findAndUpdate[bookingDocument, booking.Booking](ctx, r.c,
		bson.M{"_id": bookingID, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to)}},
	)
	if err != nil {
		return booking.Booking{}, false, fmt.Errorf("update booking status: %w", err)
	}
	return b, ok, nil
}
