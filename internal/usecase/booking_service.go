package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/booking"
	"github.com/riskibarqy/squadup/internal/domain/schedule"
	"github.com/riskibarqy/squadup/internal/domain/venue"
	idgen "github.com/riskibarqy/squadup/internal/platform/id"
	"github.com/riskibarqy/squadup/internal/platform/logging"
)

// CreateBookingInput is a direct booking request.
type CreateBookingInput struct {
	RequesterID string
	VenueID     string
	Date        string
	Time        string
}

// UpdateBookingStatusInput changes a booking status. Requesters may only
// cancel their own bookings; internal callers may confirm or cancel any.
type UpdateBookingStatusInput struct {
	BookingID string
	Status    string
	ActorID   string
	Internal  bool
}

type BookingService struct {
	bookingRepo booking.Repository
	venueRepo   venue.Repository
	idGen       idgen.Generator
	location    *time.Location
	logger      *logging.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo booking.Repository,
	venueRepo venue.Repository,
	idGen idgen.Generator,
	location *time.Location,
	logger *logging.Logger,
) *BookingService {
	if logger == nil {
		logger = logging.Default()
	}
	if location == nil {
		location = time.UTC
	}

	return &BookingService{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		idGen:       idGen,
		location:    location,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (_ booking.Booking, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BookingService.CreateBooking")
	defer finishSpan(span, &err)

	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	startsAt, err := schedule.ParseDateTime(input.Date, input.Time, s.location)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !startsAt.After(s.now()) {
		return booking.Booking{}, fmt.Errorf("%w: booking must start in the future", ErrValidation)
	}

	bookingID, err := s.idGen.NewID()
	if err != nil {
		return booking.Booking{}, fmt.Errorf("generate booking id: %w", err)
	}

	item, _, err := s.create(ctx, bookingID, "", input, startsAt)
	return item, err
}

// CreateFromCheckout records the booking paid through a checkout session.
// The session id is the document id, so repeated calls are no-ops. A
// date/time that cannot be parsed is stored as submitted.
func (s *BookingService) CreateFromCheckout(ctx context.Context, sessionID string, input CreateBookingInput) (_ booking.Booking, created bool, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BookingService.CreateFromCheckout")
	defer finishSpan(span, &err)

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return booking.Booking{}, false, fmt.Errorf("%w: checkout session id is required", ErrValidation)
	}

	startsAt, parseErr := schedule.ParseDateTime(input.Date, input.Time, s.location)
	if parseErr != nil {
		s.logger.WarnContext(ctx, "checkout booking has unparsable start",
			"session_id", sessionID,
			"date", input.Date,
			"time", input.Time,
			"error", parseErr,
		)
		startsAt = time.Time{}
	}

	return s.create(ctx, sessionID, sessionID, input, startsAt)
}

func (s *BookingService) create(ctx context.Context, bookingID, sessionID string, input CreateBookingInput, startsAt time.Time) (booking.Booking, bool, error) {
	requesterID := strings.TrimSpace(input.RequesterID)
	if requesterID == "" {
		return booking.Booking{}, false, fmt.Errorf("%w: requester is required", ErrUnauthorized)
	}
	venueID := strings.TrimSpace(input.VenueID)
	if venueID == "" {
		return booking.Booking{}, false, fmt.Errorf("%w: venue id is required", ErrValidation)
	}

	v, exists, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return booking.Booking{}, false, fmt.Errorf("get venue by id: %w", err)
	}
	if !exists {
		return booking.Booking{}, false, fmt.Errorf("%w: venue=%s", ErrNotFound, venueID)
	}

	item := booking.Booking{
		ID:                bookingID,
		VenueID:           v.ID,
		VenueName:         v.Name,
		VenueAddress:      v.Address,
		Date:              input.Date,
		Time:              input.Time,
		StartsAt:          startsAt,
		RequesterID:       requesterID,
		Status:            booking.StatusPendingApproval,
		CheckoutSessionID: sessionID,
		CreatedAt:         s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return booking.Booking{}, false, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	created, err := s.bookingRepo.Create(ctx, item)
	if err != nil {
		return booking.Booking{}, false, fmt.Errorf("create booking: %w", err)
	}
	if !created {
		existing, found, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return booking.Booking{}, false, fmt.Errorf("get existing booking: %w", err)
		}
		if found {
			item = existing
		}
		return item, false, nil
	}

	s.logger.InfoContext(ctx, "booking created",
		"booking_id", item.ID,
		"venue_id", item.VenueID,
		"requester_id", requesterID,
		"from_checkout", sessionID != "",
	)
	return item, true, nil
}

// ListMyBookings returns the caller's upcoming bookings, earliest first.
// Bookings without a parsed start are listed last.
func (s *BookingService) ListMyBookings(ctx context.Context, userID string) ([]booking.Booking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BookingService.ListMyBookings")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	items, err := s.bookingRepo.ListByRequester(ctx, userID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list bookings by requester: %w", err)
	}

	slices.SortStableFunc(items, func(a, b booking.Booking) int {
		switch {
		case a.StartsAt.IsZero() && b.StartsAt.IsZero():
			return strings.Compare(a.ID, b.ID)
		case a.StartsAt.IsZero():
			return 1
		case b.StartsAt.IsZero():
			return -1
		}
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return items, nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, input UpdateBookingStatusInput) (_ booking.Booking, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BookingService.UpdateStatus")
	defer finishSpan(span, &err)

	bookingID := strings.TrimSpace(input.BookingID)
	if bookingID == "" {
		return booking.Booking{}, fmt.Errorf("%w: booking id is required", ErrValidation)
	}
	next, err := booking.ParseStatus(strings.TrimSpace(input.Status))
	if err != nil {
		return booking.Booking{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !input.Internal {
		if strings.TrimSpace(input.ActorID) == "" {
			return booking.Booking{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
		}
		if next != booking.StatusCancelled {
			return booking.Booking{}, fmt.Errorf("%w: requesters may only cancel bookings", ErrForbidden)
		}
	}

	current, exists, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("get booking by id: %w", err)
	}
	if !exists {
		return booking.Booking{}, fmt.Errorf("%w: booking=%s", ErrNotFound, bookingID)
	}
	if !input.Internal && current.RequesterID != input.ActorID {
		return booking.Booking{}, fmt.Errorf("%w: booking=%s belongs to another user", ErrForbidden, bookingID)
	}
	if current.Status == next {
		return current, nil
	}
	if !booking.CanTransition(current.Status, next) {
		return booking.Booking{}, fmt.Errorf("%w: booking=%s cannot move from %s to %s", ErrConflict, bookingID, current.Status, next)
	}

	updated, ok, err := s.bookingRepo.UpdateStatus(ctx, bookingID, current.Status, next)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("update booking status: %w", err)
	}
	if !ok {
		return booking.Booking{}, fmt.Errorf("%w: booking=%s changed concurrently", ErrConflict, bookingID)
	}

	s.logger.InfoContext(ctx, "booking status updated",
		"booking_id", bookingID,
		"from", string(current.Status),
		"to", string(next),
		"internal", input.Internal,
	)
	return updated, nil
}
