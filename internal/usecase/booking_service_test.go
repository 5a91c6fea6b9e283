package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/booking"
	"github.com/riskibarqy/squadup/internal/infrastructure/repository/memory"
	bookingmock "github.com/riskibarqy/squadup/internal/mocks/domain/booking"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func newTestBookingService(repo booking.Repository) *BookingService {
	service := NewBookingService(
		repo,
		memory.NewVenueRepository(memory.SeedVenues()),
		staticIDGenerator{id: "bk-001"},
		time.UTC,
		logging.NewNop(),
	)
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestBookingService_CreateBooking(t *testing.T) {
	service := newTestBookingService(memory.NewBookingRepository())

	got, err := service.CreateBooking(t.Context(), CreateBookingInput{
		RequesterID: "user-1",
		VenueID:     "to_13",
		Date:        "2026-01-20",
		Time:        "7:00 PM",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if got.Status != booking.StatusPendingApproval {
		t.Fatalf("unexpected status: got=%s want=%s", got.Status, booking.StatusPendingApproval)
	}
	want := time.Date(2026, 1, 20, 19, 0, 0, 0, time.UTC)
	if !got.StartsAt.Equal(want) {
		t.Fatalf("unexpected start: got=%v want=%v", got.StartsAt, want)
	}
	if got.VenueName != "Lamport Stadium" {
		t.Fatalf("unexpected venue name: got=%s", got.VenueName)
	}
}

func TestBookingService_CreateBooking_Rejects(t *testing.T) {
	service := newTestBookingService(memory.NewBookingRepository())

	cases := []struct {
		name  string
		input CreateBookingInput
		want  error
	}{
		{name: "past", input: CreateBookingInput{RequesterID: "u", VenueID: "to_1", Date: "2026-01-09", Time: "10:00"}, want: ErrValidation},
		{name: "garbage date", input: CreateBookingInput{RequesterID: "u", VenueID: "to_1", Date: "soon", Time: "10:00"}, want: ErrValidation},
		{name: "unknown venue", input: CreateBookingInput{RequesterID: "u", VenueID: "nope", Date: "2026-01-20", Time: "10:00"}, want: ErrNotFound},
		{name: "anonymous", input: CreateBookingInput{VenueID: "to_1", Date: "2026-01-20", Time: "10:00"}, want: ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateBooking(t.Context(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestBookingService_CreateFromCheckout_IsIdempotent(t *testing.T) {
	service := newTestBookingService(memory.NewBookingRepository())
	input := CreateBookingInput{RequesterID: "user-1", VenueID: "to_5", Date: "Tue Jan 20 2026", Time: "whenever"}

	first, created, err := service.CreateFromCheckout(t.Context(), "cs_123", input)
	if err != nil {
		t.Fatalf("create from checkout: %v", err)
	}
	if !created {
		t.Fatalf("expected first reconciliation to create the booking")
	}
	if first.ID != "cs_123" || first.CheckoutSessionID != "cs_123" {
		t.Fatalf("booking should be keyed by session id: %+v", first)
	}
	if !first.StartsAt.IsZero() {
		t.Fatalf("unparsable time should leave start empty, got %v", first.StartsAt)
	}

	second, created, err := service.CreateFromCheckout(t.Context(), "cs_123", input)
	if err != nil {
		t.Fatalf("repeat create from checkout: %v", err)
	}
	if created {
		t.Fatalf("repeat reconciliation must not create a second booking")
	}
	if second.ID != first.ID {
		t.Fatalf("unexpected booking: got=%s want=%s", second.ID, first.ID)
	}
}

func TestBookingService_ListMyBookings_UnparsedLast(t *testing.T) {
	repo := memory.NewBookingRepository()
	service := newTestBookingService(repo)

	_, _, _ = service.CreateFromCheckout(t.Context(), "cs_b", CreateBookingInput{RequesterID: "u1", VenueID: "to_1", Date: "someday", Time: "later"})
	_, _, _ = service.CreateFromCheckout(t.Context(), "cs_a", CreateBookingInput{RequesterID: "u1", VenueID: "to_1", Date: "2026-01-12", Time: "10:00"})
	_, _, _ = service.CreateFromCheckout(t.Context(), "cs_c", CreateBookingInput{RequesterID: "u1", VenueID: "to_1", Date: "2026-01-11", Time: "10:00"})

	got, err := service.ListMyBookings(t.Context(), "u1")
	if err != nil {
		t.Fatalf("list my bookings: %v", err)
	}
	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	if len(ids) != 3 || ids[0] != "cs_c" || ids[1] != "cs_a" || ids[2] != "cs_b" {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	repo := memory.NewBookingRepository()
	service := newTestBookingService(repo)

	created, err := service.CreateBooking(t.Context(), CreateBookingInput{RequesterID: "user-1", VenueID: "to_1", Date: "2026-01-20", Time: "10:00"})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := service.UpdateStatus(t.Context(), UpdateBookingStatusInput{BookingID: created.ID, Status: "confirmed", ActorID: "user-1"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("requester confirming should be forbidden, got %v", err)
	}
	if _, err := service.UpdateStatus(t.Context(), UpdateBookingStatusInput{BookingID: created.ID, Status: "cancelled", ActorID: "user-2"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("cancelling another user's booking should be forbidden, got %v", err)
	}

	confirmed, err := service.UpdateStatus(t.Context(), UpdateBookingStatusInput{BookingID: created.ID, Status: "confirmed", Internal: true})
	if err != nil {
		t.Fatalf("confirm booking: %v", err)
	}
	if confirmed.Status != booking.StatusConfirmed {
		t.Fatalf("unexpected status: got=%s want=%s", confirmed.Status, booking.StatusConfirmed)
	}

	cancelled, err := service.UpdateStatus(t.Context(), UpdateBookingStatusInput{BookingID: created.ID, Status: "cancelled", ActorID: "user-1"})
	if err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	if cancelled.Status != booking.StatusCancelled {
		t.Fatalf("unexpected status: got=%s want=%s", cancelled.Status, booking.StatusCancelled)
	}

	if _, err := service.UpdateStatus(t.Context(), UpdateBookingStatusInput{BookingID: created.ID, Status: "confirmed", Internal: true}); !errors.Is(err, ErrConflict) {
		t.Fatalf("cancelled booking cannot be confirmed, got %v", err)
	}
}

func TestBookingService_UpdateStatus_ConcurrentChangeUsingMockery(t *testing.T) {
	t.Parallel()

	repo := bookingmock.NewRepository(t)
	service := newTestBookingService(repo)
	current := booking.Booking{ID: "bk-1", RequesterID: "user-1", Status: booking.StatusPendingApproval}

	repo.
		On("GetByID", mock.Anything, "bk-1").
		Return(current, true, nil).
		Once()
	repo.
		On("UpdateStatus", mock.Anything, "bk-1", booking.StatusPendingApproval, booking.StatusCancelled).
		Return(booking.Booking{}, false, nil).
		Once()

	_, err := service.UpdateStatus(t.Context(), UpdateBookingStatusInput{BookingID: "bk-1", Status: "cancelled", ActorID: "user-1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
