package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/match"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/platform/logging"
)

// RegisterLeagueInput enters a squad when SquadID is set, otherwise the
// user registers as an individual free agent.
type RegisterLeagueInput struct {
	LeagueID string
	UserID   string
	SquadID  string
}

type LeagueService struct {
	leagueRepo league.Repository
	matchRepo  match.Repository
	squadRepo  squad.Repository
	logger     *logging.Logger
}

func NewLeagueService(leagueRepo league.Repository, matchRepo match.Repository, squadRepo squad.Repository, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		matchRepo:  matchRepo,
		squadRepo:  squadRepo,
		logger:     logger,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context, sportFilter string, activeOnly bool) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	sp, err := parseSportFilter(sportFilter)
	if err != nil {
		return nil, err
	}

	items, err := s.leagueRepo.List(ctx, league.Filter{Sport: sp, ActiveOnly: activeOnly})
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	return s.getLeague(ctx, leagueID)
}

func (s *LeagueService) ListMatches(ctx context.Context, leagueID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMatches")
	defer span.End()

	if _, err := s.getLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListByLeague(ctx, strings.TrimSpace(leagueID))
	if err != nil {
		return nil, fmt.Errorf("list matches by league: %w", err)
	}
	return items, nil
}

func (s *LeagueService) Register(ctx context.Context, input RegisterLeagueInput) (_ league.League, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Register")
	defer finishSpan(span, &err)

	reg, err := s.resolveRegistration(ctx, input)
	if err != nil {
		return league.League{}, err
	}
	leagueID := strings.TrimSpace(input.LeagueID)

	item, exists, err := s.leagueRepo.Register(ctx, leagueID, reg)
	switch {
	case errors.Is(err, league.ErrFull):
		return league.League{}, fmt.Errorf("%w: league=%s is full", ErrConflict, leagueID)
	case err != nil:
		return league.League{}, fmt.Errorf("register league entry: %w", err)
	case !exists:
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	s.logger.InfoContext(ctx, "league registration recorded",
		"league_id", leagueID,
		"squad_id", reg.SquadID,
		"individual", reg.Individual(),
		"spots_remaining", item.SpotsRemaining,
	)
	return item, nil
}

// resolveRegistration checks that a squad entry is made by that squad's
// captain.
func (s *LeagueService) resolveRegistration(ctx context.Context, input RegisterLeagueInput) (league.Registration, error) {
	userID := strings.TrimSpace(input.UserID)
	squadID := strings.TrimSpace(input.SquadID)
	if userID == "" {
		return league.Registration{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if strings.TrimSpace(input.LeagueID) == "" {
		return league.Registration{}, fmt.Errorf("%w: league id is required", ErrValidation)
	}
	if squadID == "" {
		return league.Registration{UserID: userID}, nil
	}

	sq, err := captainedSquad(ctx, s.squadRepo, squadID, userID)
	if err != nil {
		return league.Registration{}, err
	}
	return league.Registration{SquadID: sq.ID}, nil
}

func (s *LeagueService) getLeague(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrValidation)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return item, nil
}

func captainedSquad(ctx context.Context, repo squad.Repository, squadID, userID string) (squad.Squad, error) {
	sq, exists, err := repo.GetByID(ctx, squadID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("get squad by id: %w", err)
	}
	if !exists {
		return squad.Squad{}, fmt.Errorf("%w: squad=%s", ErrNotFound, squadID)
	}
	if !sq.IsCaptain(userID) {
		return squad.Squad{}, fmt.Errorf("%w: only the captain can register squad=%s", ErrForbidden, squadID)
	}
	return sq, nil
}
