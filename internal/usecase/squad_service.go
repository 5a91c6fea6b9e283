package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/sport"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/domain/user"
	idgen "github.com/riskibarqy/squadup/internal/platform/id"
	"github.com/riskibarqy/squadup/internal/platform/logging"
)

// CreateSquadInput is the incoming payload for creating a squad.
type CreateSquadInput struct {
	Captain user.Principal
	Name    string
	Sport   string
}

type SquadService struct {
	squadRepo squad.Repository
	idGen     idgen.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewSquadService(squadRepo squad.Repository, idGen idgen.Generator, logger *logging.Logger) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		squadRepo: squadRepo,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *SquadService) CreateSquad(ctx context.Context, input CreateSquadInput) (_ squad.Squad, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.CreateSquad")
	defer finishSpan(span, &err)

	captainID := strings.TrimSpace(input.Captain.UserID)
	if captainID == "" {
		return squad.Squad{}, fmt.Errorf("%w: captain is required", ErrUnauthorized)
	}
	name, err := squad.NormalizeName(input.Name)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	sp, err := sport.Parse(input.Sport)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	squadID, err := s.idGen.NewID()
	if err != nil {
		return squad.Squad{}, fmt.Errorf("generate squad id: %w", err)
	}

	item := squad.Squad{
		ID:          squadID,
		Name:        name,
		Sport:       sp,
		CaptainID:   captainID,
		CaptainName: input.Captain.Name(),
		MemberIDs:   []string{captainID},
		CreatedAt:   s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return squad.Squad{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := s.squadRepo.Create(ctx, item); err != nil {
		return squad.Squad{}, fmt.Errorf("create squad: %w", err)
	}

	s.logger.InfoContext(ctx, "squad created", "squad_id", item.ID, "captain_id", captainID, "sport", string(sp))
	return item, nil
}

func (s *SquadService) ListMySquads(ctx context.Context, userID string) ([]squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ListMySquads")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	items, err := s.squadRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list squads by member: %w", err)
	}
	return items, nil
}

func (s *SquadService) GetSquad(ctx context.Context, squadID string) (squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquad")
	defer span.End()

	return s.getSquad(ctx, squadID)
}

// Leaderboard returns the top squads by wins. limit is clamped to
// squad.LeaderboardLimit.
func (s *SquadService) Leaderboard(ctx context.Context, sportFilter string, limit int) ([]squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Leaderboard")
	defer span.End()

	sp, err := parseSportFilter(sportFilter)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > squad.LeaderboardLimit {
		limit = squad.LeaderboardLimit
	}

	items, err := s.squadRepo.ListLeaderboard(ctx, sp, limit)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	return items, nil
}

func (s *SquadService) JoinSquad(ctx context.Context, squadID, userID string) (_ squad.Squad, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.JoinSquad")
	defer finishSpan(span, &err)

	squadID, userID, err = requireSquadAndUser(squadID, userID)
	if err != nil {
		return squad.Squad{}, err
	}

	item, exists, err := s.squadRepo.AddMember(ctx, squadID, userID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("add squad member: %w", err)
	}
	if !exists {
		return squad.Squad{}, fmt.Errorf("%w: squad=%s", ErrNotFound, squadID)
	}
	return item, nil
}

// LeaveSquad removes a member. The captain cannot leave; they delete the
// squad instead.
func (s *SquadService) LeaveSquad(ctx context.Context, squadID, userID string) (_ squad.Squad, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.LeaveSquad")
	defer finishSpan(span, &err)

	squadID, userID, err = requireSquadAndUser(squadID, userID)
	if err != nil {
		return squad.Squad{}, err
	}

	current, err := s.getSquad(ctx, squadID)
	if err != nil {
		return squad.Squad{}, err
	}
	if current.IsCaptain(userID) {
		return squad.Squad{}, fmt.Errorf("%w: captain cannot leave the squad, delete it instead", ErrConflict)
	}
	if !current.HasMember(userID) {
		return current, nil
	}

	item, exists, err := s.squadRepo.RemoveMember(ctx, squadID, userID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("remove squad member: %w", err)
	}
	if !exists {
		return squad.Squad{}, fmt.Errorf("%w: squad=%s", ErrNotFound, squadID)
	}
	return item, nil
}

func (s *SquadService) DeleteSquad(ctx context.Context, squadID, userID string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.DeleteSquad")
	defer finishSpan(span, &err)

	squadID, userID, err = requireSquadAndUser(squadID, userID)
	if err != nil {
		return err
	}

	current, err := s.getSquad(ctx, squadID)
	if err != nil {
		return err
	}
	if !current.IsCaptain(userID) {
		return fmt.Errorf("%w: only the captain can delete squad=%s", ErrForbidden, squadID)
	}

	deleted, err := s.squadRepo.Delete(ctx, squadID)
	if err != nil {
		return fmt.Errorf("delete squad: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: squad=%s", ErrNotFound, squadID)
	}

	s.logger.InfoContext(ctx, "squad deleted", "squad_id", squadID, "captain_id", userID)
	return nil
}

// WatchMySquads streams the caller's squads whenever membership changes.
func (s *SquadService) WatchMySquads(ctx context.Context, userID string) (<-chan []squad.Squad, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	watcher, ok := s.squadRepo.(squad.Watcher)
	if !ok {
		return nil, fmt.Errorf("%w: squad watch unsupported by store backend", ErrUpstreamService)
	}

	ch, err := watcher.Watch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: watch squads: %w", ErrUpstreamService, err)
	}
	return ch, nil
}

func (s *SquadService) getSquad(ctx context.Context, squadID string) (squad.Squad, error) {
	squadID = strings.TrimSpace(squadID)
	if squadID == "" {
		return squad.Squad{}, fmt.Errorf("%w: squad id is required", ErrValidation)
	}

	item, exists, err := s.squadRepo.GetByID(ctx, squadID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("get squad by id: %w", err)
	}
	if !exists {
		return squad.Squad{}, fmt.Errorf("%w: squad=%s", ErrNotFound, squadID)
	}
	return item, nil
}

func requireSquadAndUser(squadID, userID string) (string, string, error) {
	squadID = strings.TrimSpace(squadID)
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", "", fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if squadID == "" {
		return "", "", fmt.Errorf("%w: squad id is required", ErrValidation)
	}
	return squadID, userID, nil
}
