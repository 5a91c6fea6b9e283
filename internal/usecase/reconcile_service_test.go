package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/squadup/internal/platform/logging"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []RequestReceived
	err  error
}

func (n *recordingNotifier) NotifyRequestReceived(_ context.Context, msg RequestReceived) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

type reconcileFixture struct {
	service  *ReconcileService
	bookings *memory.BookingRepository
	pickups  *memory.PickupRepository
	leagues  *memory.LeagueRepository
	notifier *recordingNotifier
}

func newReconcileFixture() reconcileFixture {
	f := reconcileFixture{
		bookings: memory.NewBookingRepository(),
		pickups:  memory.NewPickupRepository(memory.SeedPickups(fixedNow)),
		leagues:  memory.NewLeagueRepository(memory.SeedLeagues(fixedNow)),
		notifier: &recordingNotifier{},
	}
	bookingService := NewBookingService(f.bookings, memory.NewVenueRepository(memory.SeedVenues()), staticIDGenerator{id: "unused"}, time.UTC, logging.NewNop())
	bookingService.now = func() time.Time { return fixedNow }
	f.service = NewReconcileService(bookingService, f.pickups, f.leagues, f.notifier, logging.NewNop())
	return f
}

func completedEvent(sessionID string, md map[string]string) checkout.Event {
	return checkout.Event{
		ID:            "evt_" + sessionID,
		Type:          checkout.EventSessionCompleted,
		SessionID:     sessionID,
		PaymentStatus: "paid",
		CustomerEmail: "buyer@example.com",
		Metadata:      md,
	}
}

func TestReconcileService_BookingIsWrittenOnce(t *testing.T) {
	f := newReconcileFixture()
	event := completedEvent("cs_book", map[string]string{
		checkout.MetaType:      "booking",
		checkout.MetaUserID:    "user-1",
		checkout.MetaVenueID:   "to_13",
		checkout.MetaVenueName: "Lamport Stadium",
		checkout.MetaDate:      "2026-01-20",
		checkout.MetaTime:      "19:00",
		checkout.MetaStatus:    checkout.StatusPendingApproval,
	})

	first, err := f.service.HandleEvent(t.Context(), event)
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if !first.Applied || first.Type != checkout.TypeBooking {
		t.Fatalf("unexpected result: %+v", first)
	}

	second, err := f.service.HandleEvent(t.Context(), event)
	if err != nil {
		t.Fatalf("handle repeated event: %v", err)
	}
	if second.Applied {
		t.Fatalf("repeated event must not apply again")
	}

	b, exists, _ := f.bookings.GetByID(t.Context(), "cs_book")
	if !exists {
		t.Fatalf("booking cs_book not written")
	}
	if b.RequesterID != "user-1" {
		t.Fatalf("unexpected requester: got=%s want=user-1", b.RequesterID)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].Email != "buyer@example.com" {
		t.Fatalf("expected exactly one notification to the buyer: %+v", f.notifier.sent)
	}
}

func TestReconcileService_PickupJoin(t *testing.T) {
	f := newReconcileFixture()
	event := completedEvent("cs_pick", map[string]string{
		checkout.MetaType:      "pickup",
		checkout.MetaUserID:    "user-1",
		checkout.MetaUserEmail: "user1@example.com",
		checkout.MetaSessionID: "pk-raptors-court",
	})

	got, err := f.service.HandleEvent(t.Context(), event)
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if !got.Applied {
		t.Fatalf("expected pickup join applied")
	}
	s, _, _ := f.pickups.GetByID(t.Context(), "pk-raptors-court")
	if !s.HasPlayer("user-1") {
		t.Fatalf("user-1 should be on the roster")
	}
	if f.notifier.sent[0].Email != "user1@example.com" {
		t.Fatalf("metadata email should win over customer email: got=%s", f.notifier.sent[0].Email)
	}
}

func TestReconcileService_FullPickupIsConflict(t *testing.T) {
	f := newReconcileFixture()
	event := completedEvent("cs_full", map[string]string{
		checkout.MetaType:      "pickup",
		checkout.MetaUserID:    "user-1",
		checkout.MetaSessionID: "pk-hangar-futsal",
	})

	if _, err := f.service.HandleEvent(t.Context(), event); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(f.notifier.sent) != 0 {
		t.Fatalf("no notification expected for a rejected join")
	}
}

func TestReconcileService_LeagueIndividualEntry(t *testing.T) {
	f := newReconcileFixture()
	f.notifier.err = errors.New("mail provider down")
	event := completedEvent("cs_league", map[string]string{
		checkout.MetaType:     "league",
		checkout.MetaUserID:   "user-1",
		checkout.MetaLeagueID: memory.LeagueIDHoopDome,
		checkout.MetaSquadID:  checkout.IndividualEntry,
	})

	got, err := f.service.HandleEvent(t.Context(), event)
	if err != nil {
		t.Fatalf("notification failure must not fail reconciliation: %v", err)
	}
	if !got.Applied {
		t.Fatalf("expected league registration applied")
	}
	l, _, _ := f.leagues.GetByID(t.Context(), memory.LeagueIDHoopDome)
	if l.SpotsRemaining != 7 {
		t.Fatalf("unexpected spots: got=%d want=7", l.SpotsRemaining)
	}
	if len(l.FreeAgentIDs) != 1 || l.FreeAgentIDs[0] != "user-1" {
		t.Fatalf("unexpected free agents: %+v", l.FreeAgentIDs)
	}
}

func TestReconcileService_IgnoresOtherEvents(t *testing.T) {
	f := newReconcileFixture()

	unpaid := completedEvent("cs_unpaid", map[string]string{
		checkout.MetaType:      "booking",
		checkout.MetaUserID:    "user-1",
		checkout.MetaVenueID:   "to_13",
		checkout.MetaVenueName: "Lamport Stadium",
		checkout.MetaDate:      "2026-01-20",
		checkout.MetaTime:      "19:00",
		checkout.MetaStatus:    checkout.StatusPendingApproval,
	})
	unpaid.PaymentStatus = checkout.PaymentStatusUnpaid
	noStatus := unpaid
	noStatus.ID, noStatus.PaymentStatus = "evt_no_status", ""

	tests := []struct {
		name  string
		event checkout.Event
	}{
		{name: "other type", event: checkout.Event{ID: "evt_1", Type: "payment_intent.created"}},
		{name: "completed but unpaid", event: unpaid},
		{name: "completed without status", event: noStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.service.HandleEvent(t.Context(), tt.event)
			if err != nil {
				t.Fatalf("handle event: %v", err)
			}
			if !got.Ignored || got.Applied {
				t.Fatalf("expected event to be ignored: %+v", got)
			}
		})
	}

	if _, exists, _ := f.bookings.GetByID(t.Context(), "cs_unpaid"); exists {
		t.Fatalf("unpaid session must not write a booking")
	}
	if len(f.notifier.sent) != 0 {
		t.Fatalf("unpaid session must not notify: %+v", f.notifier.sent)
	}
}

func TestReconcileService_RejectsBadMetadata(t *testing.T) {
	f := newReconcileFixture()

	_, err := f.service.HandleEvent(t.Context(), completedEvent("cs_bad", map[string]string{checkout.MetaType: "raffle"}))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
