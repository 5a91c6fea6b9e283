package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/squadup/internal/domain/sport"
	"github.com/riskibarqy/squadup/internal/domain/venue"
)

type VenueService struct {
	venueRepo venue.Repository
}

func NewVenueService(venueRepo venue.Repository) *VenueService {
	return &VenueService{venueRepo: venueRepo}
}

func (s *VenueService) ListVenues(ctx context.Context, sportFilter string) ([]venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.ListVenues")
	defer span.End()

	sp, err := parseSportFilter(sportFilter)
	if err != nil {
		return nil, err
	}

	items, err := s.venueRepo.List(ctx, venue.Filter{Sport: sp})
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return items, nil
}

func (s *VenueService) GetVenue(ctx context.Context, venueID string) (venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.GetVenue")
	defer span.End()

	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return venue.Venue{}, fmt.Errorf("%w: venue id is required", ErrValidation)
	}

	item, exists, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return venue.Venue{}, fmt.Errorf("get venue by id: %w", err)
	}
	if !exists {
		return venue.Venue{}, fmt.Errorf("%w: venue=%s", ErrNotFound, venueID)
	}
	return item, nil
}

func parseSportFilter(raw string) (sport.Sport, error) {
	sp, err := sport.ParseOptional(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return sp, nil
}
