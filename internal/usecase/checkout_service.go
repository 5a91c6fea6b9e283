package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/domain/user"
	"github.com/riskibarqy/squadup/internal/domain/venue"
	"github.com/riskibarqy/squadup/internal/platform/cache"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultCheckoutDedupeTTL = 10 * time.Minute

type CheckoutService struct {
	gateway    checkout.Gateway
	venueRepo  venue.Repository
	pickupRepo pickup.Repository
	leagueRepo league.Repository
	squadRepo  squad.Repository
	settings   checkout.Settings
	sessions   *cache.Store
	logger     *logging.Logger
}

func NewCheckoutService(
	gateway checkout.Gateway,
	venueRepo venue.Repository,
	pickupRepo pickup.Repository,
	leagueRepo league.Repository,
	squadRepo squad.Repository,
	settings checkout.Settings,
	sessions *cache.Store,
	logger *logging.Logger,
) *CheckoutService {
	if logger == nil {
		logger = logging.Default()
	}
	if sessions == nil {
		sessions = cache.NewStore(defaultCheckoutDedupeTTL)
	}

	return &CheckoutService{
		gateway:    gateway,
		venueRepo:  venueRepo,
		pickupRepo: pickupRepo,
		leagueRepo: leagueRepo,
		squadRepo:  squadRepo,
		settings:   settings,
		sessions:   sessions,
		logger:     logger,
	}
}

// CreateSession prices the request from stored data and opens a hosted
// checkout session. Submissions sharing an idempotency key resolve to the
// same session.
func (s *CheckoutService) CreateSession(ctx context.Context, caller user.Principal, req checkout.Request) (_ checkout.Session, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CheckoutService.CreateSession",
		attribute.String("checkout.type", string(req.Type)),
	)
	defer finishSpan(span, &err)

	t, err := checkout.ParseType(string(req.Type))
	if err != nil {
		return checkout.Session{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	req.Type = t

	if err := s.bindCaller(caller, &req); err != nil {
		return checkout.Session{}, err
	}
	if err := s.resolveItem(ctx, &req); err != nil {
		return checkout.Session{}, err
	}

	params, err := checkout.Normalize(req, s.settings)
	if err != nil {
		return checkout.Session{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	session, err := cache.Load(ctx, s.sessions, "checkout:"+params.IdempotencyKey, func(ctx context.Context) (checkout.Session, error) {
		return s.gateway.CreateSession(ctx, params)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "create checkout session failed",
			"type", string(req.Type),
			"user_id", req.UserID,
			"idempotency_key", params.IdempotencyKey,
			"error", err,
		)
		if errors.Is(err, ErrUpstreamService) || errors.Is(err, context.Canceled) {
			return checkout.Session{}, err
		}
		return checkout.Session{}, fmt.Errorf("%w: create checkout session: %w", ErrUpstreamService, err)
	}

	s.logger.InfoContext(ctx, "checkout session created",
		"type", string(req.Type),
		"user_id", req.UserID,
		"session_id", session.ID,
		"unit_amount", params.UnitAmount,
	)
	return session, nil
}

// bindCaller fills the buyer from the verified principal. A body naming a
// different user is rejected.
func (s *CheckoutService) bindCaller(caller user.Principal, req *checkout.Request) error {
	callerID := strings.TrimSpace(caller.UserID)
	if callerID == "" {
		return fmt.Errorf("%w: caller is required", ErrUnauthorized)
	}
	if bodyID := strings.TrimSpace(req.UserID); bodyID != "" && bodyID != callerID {
		return fmt.Errorf("%w: userId does not match the signed-in user", ErrForbidden)
	}
	req.UserID = callerID
	if strings.TrimSpace(req.UserEmail) == "" {
		req.UserEmail = caller.Email
	}
	return nil
}

// resolveItem replaces client-supplied names and prices with stored values
// and rejects purchases that can no longer be fulfilled.
func (s *CheckoutService) resolveItem(ctx context.Context, req *checkout.Request) error {
	switch req.Type {
	case checkout.TypeBooking:
		if req.Booking == nil || strings.TrimSpace(req.Booking.VenueID) == "" {
			return fmt.Errorf("%w: venueId is required", ErrValidation)
		}
		v, exists, err := s.venueRepo.GetByID(ctx, strings.TrimSpace(req.Booking.VenueID))
		if err != nil {
			return fmt.Errorf("get venue by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: venue=%s", ErrNotFound, req.Booking.VenueID)
		}
		req.Booking.VenueID = v.ID
		req.Booking.VenueName = v.Name
		req.Booking.HourlyPrice = v.Price()

	case checkout.TypePickup:
		if req.Pickup == nil || strings.TrimSpace(req.Pickup.SessionID) == "" {
			return fmt.Errorf("%w: sessionId is required", ErrValidation)
		}
		session, exists, err := s.pickupRepo.GetByID(ctx, strings.TrimSpace(req.Pickup.SessionID))
		if err != nil {
			return fmt.Errorf("get pickup session: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: pickup session=%s", ErrNotFound, req.Pickup.SessionID)
		}
		if session.HasPlayer(req.UserID) {
			return fmt.Errorf("%w: already joined pickup session=%s", ErrConflict, session.ID)
		}
		if session.IsFull() {
			return fmt.Errorf("%w: pickup session=%s is full", ErrConflict, session.ID)
		}
		req.Pickup.SessionID = session.ID
		req.Pickup.Sport = string(session.Sport)
		req.Pickup.Price = session.Price

	case checkout.TypeLeague:
		if req.League == nil || strings.TrimSpace(req.League.LeagueID) == "" {
			return fmt.Errorf("%w: leagueId is required", ErrValidation)
		}
		l, exists, err := s.leagueRepo.GetByID(ctx, strings.TrimSpace(req.League.LeagueID))
		if err != nil {
			return fmt.Errorf("get league by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: league=%s", ErrNotFound, req.League.LeagueID)
		}

		reg := league.Registration{UserID: req.UserID}
		if squadID := strings.TrimSpace(req.League.SquadID); squadID != "" && squadID != checkout.IndividualEntry {
			if _, err := captainedSquad(ctx, s.squadRepo, squadID, req.UserID); err != nil {
				return err
			}
			reg = league.Registration{SquadID: squadID}
		}
		if l.IsRegistered(reg) {
			return fmt.Errorf("%w: already registered in league=%s", ErrConflict, l.ID)
		}
		if l.SpotsRemaining <= 0 {
			return fmt.Errorf("%w: league=%s is full", ErrConflict, l.ID)
		}
		req.League.LeagueID = l.ID
		req.League.LeagueName = l.Name
		req.League.EntryFee = l.EntryFee
		req.League.SquadID = reg.SquadID
	}
	return nil
}
