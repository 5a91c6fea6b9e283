package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/platform/logging"
)

type PickupService struct {
	pickupRepo pickup.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewPickupService(pickupRepo pickup.Repository, logger *logging.Logger) *PickupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PickupService{
		pickupRepo: pickupRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PickupService) ListUpcoming(ctx context.Context, sportFilter string) ([]pickup.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickupService.ListUpcoming")
	defer span.End()

	sp, err := parseSportFilter(sportFilter)
	if err != nil {
		return nil, err
	}

	items, err := s.pickupRepo.ListUpcoming(ctx, s.now().UTC(), pickup.Filter{Sport: sp})
	if err != nil {
		return nil, fmt.Errorf("list upcoming pickups: %w", err)
	}
	return items, nil
}

func (s *PickupService) GetSession(ctx context.Context, sessionID string) (pickup.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickupService.GetSession")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return pickup.Session{}, fmt.Errorf("%w: session id is required", ErrValidation)
	}

	item, exists, err := s.pickupRepo.GetByID(ctx, sessionID)
	if err != nil {
		return pickup.Session{}, fmt.Errorf("get pickup session: %w", err)
	}
	if !exists {
		return pickup.Session{}, fmt.Errorf("%w: pickup session=%s", ErrNotFound, sessionID)
	}
	return item, nil
}

// Join adds the user to the roster. Joining twice is a no-op; a full roster
// is a conflict.
func (s *PickupService) Join(ctx context.Context, sessionID, userID string) (_ pickup.Session, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickupService.Join")
	defer finishSpan(span, &err)

	sessionID, userID, err = requireSessionAndUser(sessionID, userID)
	if err != nil {
		return pickup.Session{}, err
	}

	item, exists, err := s.pickupRepo.Join(ctx, sessionID, userID)
	switch {
	case errors.Is(err, pickup.ErrFull):
		return pickup.Session{}, fmt.Errorf("%w: pickup session=%s is full", ErrConflict, sessionID)
	case err != nil:
		return pickup.Session{}, fmt.Errorf("join pickup session: %w", err)
	case !exists:
		return pickup.Session{}, fmt.Errorf("%w: pickup session=%s", ErrNotFound, sessionID)
	}

	s.logger.InfoContext(ctx, "pickup joined", "session_id", sessionID, "user_id", userID, "players", len(item.PlayerIDs), "capacity", item.Capacity)
	return item, nil
}

func (s *PickupService) Leave(ctx context.Context, sessionID, userID string) (_ pickup.Session, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickupService.Leave")
	defer finishSpan(span, &err)

	sessionID, userID, err = requireSessionAndUser(sessionID, userID)
	if err != nil {
		return pickup.Session{}, err
	}

	item, exists, err := s.pickupRepo.Leave(ctx, sessionID, userID)
	if err != nil {
		return pickup.Session{}, fmt.Errorf("leave pickup session: %w", err)
	}
	if !exists {
		return pickup.Session{}, fmt.Errorf("%w: pickup session=%s", ErrNotFound, sessionID)
	}
	return item, nil
}

func requireSessionAndUser(sessionID, userID string) (string, string, error) {
	sessionID = strings.TrimSpace(sessionID)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", "", fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if sessionID == "" {
		return "", "", fmt.Errorf("%w: session id is required", ErrValidation)
	}
	return sessionID, userID, nil
}
