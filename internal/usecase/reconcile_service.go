package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/platform/logging"
)

// RequestReceived is the buyer-facing summary of a reconciled payment.
type RequestReceived struct {
	Email    string
	Type     checkout.Type
	ItemName string
	Date     string
	Time     string
}

// Notifier tells a buyer that their paid request is being processed.
type Notifier interface {
	NotifyRequestReceived(ctx context.Context, msg RequestReceived) error
}

type NopNotifier struct{}

func (NopNotifier) NotifyRequestReceived(context.Context, RequestReceived) error { return nil }

// ReconcileResult reports what a webhook event changed.
type ReconcileResult struct {
	Ignored bool
	Type    checkout.Type
	// Applied is false when the event had already been reconciled.
	Applied bool
}

type ReconcileService struct {
	bookings   *BookingService
	pickupRepo pickup.Repository
	leagueRepo league.Repository
	notifier   Notifier
	logger     *logging.Logger
}

func NewReconcileService(
	bookings *BookingService,
	pickupRepo pickup.Repository,
	leagueRepo league.Repository,
	notifier Notifier,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &ReconcileService{
		bookings:   bookings,
		pickupRepo: pickupRepo,
		leagueRepo: leagueRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// HandleEvent applies the domain write for a completed and settled checkout
// session. Other events, and sessions still awaiting payment, are
// acknowledged without changes. Every write is
// idempotent so provider retries are safe.
func (s *ReconcileService) HandleEvent(ctx context.Context, event checkout.Event) (_ ReconcileResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.HandleEvent")
	defer finishSpan(span, &err)

	if event.Type != checkout.EventSessionCompleted {
		s.logger.DebugContext(ctx, "ignoring payment event", "event_id", event.ID, "event_type", event.Type)
		return ReconcileResult{Ignored: true}, nil
	}
	if !event.Settled() {
		s.logger.InfoContext(ctx, "ignoring unsettled checkout session",
			"event_id", event.ID,
			"checkout_session_id", event.SessionID,
			"payment_status", event.PaymentStatus,
		)
		return ReconcileResult{Ignored: true}, nil
	}

	req, err := checkout.RequestFromMetadata(event.Metadata)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("%w: checkout metadata: %w", ErrValidation, err)
	}
	if req.UserEmail == "" {
		req.UserEmail = event.CustomerEmail
	}

	result := ReconcileResult{Type: req.Type}
	msg := RequestReceived{Email: req.UserEmail, Type: req.Type}

	switch req.Type {
	case checkout.TypeBooking:
		b, created, err := s.bookings.CreateFromCheckout(ctx, event.SessionID, CreateBookingInput{
			RequesterID: req.UserID,
			VenueID:     req.Booking.VenueID,
			Date:        req.Booking.Date,
			Time:        req.Booking.Time,
		})
		if err != nil {
			return ReconcileResult{}, err
		}
		result.Applied = created
		msg.ItemName, msg.Date, msg.Time = b.VenueName, b.Date, b.Time

	case checkout.TypePickup:
		before, exists, err := s.pickupRepo.GetByID(ctx, req.Pickup.SessionID)
		if err != nil {
			return ReconcileResult{}, fmt.Errorf("get pickup session: %w", err)
		}
		if !exists {
			return ReconcileResult{}, fmt.Errorf("%w: pickup session=%s", ErrNotFound, req.Pickup.SessionID)
		}
		session, _, err := s.pickupRepo.Join(ctx, req.Pickup.SessionID, req.UserID)
		if errors.Is(err, pickup.ErrFull) {
			s.logger.ErrorContext(ctx, "paid pickup join rejected, session full",
				"checkout_session_id", event.SessionID,
				"pickup_session_id", req.Pickup.SessionID,
				"user_id", req.UserID,
			)
			return ReconcileResult{}, fmt.Errorf("%w: pickup session=%s is full", ErrConflict, req.Pickup.SessionID)
		}
		if err != nil {
			return ReconcileResult{}, fmt.Errorf("join pickup session: %w", err)
		}
		result.Applied = !before.HasPlayer(req.UserID)
		msg.ItemName = string(session.Sport) + " pickup at " + session.VenueLabel

	case checkout.TypeLeague:
		reg := league.Registration{SquadID: req.League.SquadID}
		if reg.SquadID == "" {
			reg.UserID = req.UserID
		}
		before, exists, err := s.leagueRepo.GetByID(ctx, req.League.LeagueID)
		if err != nil {
			return ReconcileResult{}, fmt.Errorf("get league by id: %w", err)
		}
		if !exists {
			return ReconcileResult{}, fmt.Errorf("%w: league=%s", ErrNotFound, req.League.LeagueID)
		}
		l, _, err := s.leagueRepo.Register(ctx, req.League.LeagueID, reg)
		if errors.Is(err, league.ErrFull) {
			s.logger.ErrorContext(ctx, "paid league registration rejected, league full",
				"checkout_session_id", event.SessionID,
				"league_id", req.League.LeagueID,
				"user_id", req.UserID,
			)
			return ReconcileResult{}, fmt.Errorf("%w: league=%s is full", ErrConflict, req.League.LeagueID)
		}
		if err != nil {
			return ReconcileResult{}, fmt.Errorf("register league entry: %w", err)
		}
		result.Applied = !before.IsRegistered(reg)
		msg.ItemName = l.Name
	}

	s.logger.InfoContext(ctx, "checkout reconciled",
		"checkout_session_id", event.SessionID,
		"type", string(req.Type),
		"user_id", req.UserID,
		"applied", result.Applied,
	)

	if result.Applied && msg.Email != "" {
		if err := s.notifier.NotifyRequestReceived(ctx, msg); err != nil {
			s.logger.WarnContext(ctx, "send request received notification failed",
				"checkout_session_id", event.SessionID,
				"error", err,
			)
		}
	}
	return result, nil
}
