package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/booking"
	"github.com/riskibarqy/squadup/internal/domain/match"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/schedule"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type EventCategory string

const (
	EventCategoryVenue  EventCategory = "venue"
	EventCategoryPickup EventCategory = "pickup"
	EventCategoryLeague EventCategory = "league"
)

// categoryRank breaks ties between events starting at the same instant.
var categoryRank = map[EventCategory]int{
	EventCategoryVenue:  0,
	EventCategoryPickup: 1,
	EventCategoryLeague: 2,
}

// UpcomingEvent is one scheduled activity of the user.
type UpcomingEvent struct {
	ID       string
	Category EventCategory
	Title    string
	Location string
	StartsAt time.Time
}

// Upcoming is the aggregated view. Next is nil when nothing is scheduled.
type Upcoming struct {
	Next  *UpcomingEvent
	Total int
}

func (u Upcoming) HasUpcoming() bool {
	return u.Next != nil
}

type DashboardOptions struct {
	IncludeLeagueMatches bool
	Location             *time.Location
}

type DashboardService struct {
	bookingRepo booking.Repository
	pickupRepo  pickup.Repository
	squadRepo   squad.Repository
	matchRepo   match.Repository
	options     DashboardOptions
	logger      *logging.Logger
	now         func() time.Time
}

func NewDashboardService(
	bookingRepo booking.Repository,
	pickupRepo pickup.Repository,
	squadRepo squad.Repository,
	matchRepo match.Repository,
	options DashboardOptions,
	logger *logging.Logger,
) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}
	if options.Location == nil {
		options.Location = time.UTC
	}

	return &DashboardService{
		bookingRepo: bookingRepo,
		pickupRepo:  pickupRepo,
		squadRepo:   squadRepo,
		matchRepo:   matchRepo,
		options:     options,
		logger:      logger,
		now:         time.Now,
	}
}

// NextEvent queries bookings, pickups and league matches in parallel and
// returns the earliest upcoming one.
func (s *DashboardService) NextEvent(ctx context.Context, userID string) (_ Upcoming, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.NextEvent")
	defer finishSpan(span, &err)

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Upcoming{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	now := s.now().UTC()
	var venueEvents, pickupEvents, leagueEvents []UpcomingEvent

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.bookingRepo.ListByRequester(ctx, userID, now)
		if err != nil {
			return fmt.Errorf("list bookings by requester: %w", err)
		}
		venueEvents = s.bookingEvents(ctx, items, now)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.pickupRepo.ListUpcomingByPlayer(ctx, userID, now)
		if err != nil {
			return fmt.Errorf("list pickups by player: %w", err)
		}
		pickupEvents = pickupEventsFrom(items, now)
		return nil
	})
	if s.options.IncludeLeagueMatches {
		p.Go(func(ctx context.Context) error {
			events, err := s.matchEvents(ctx, userID, now)
			if err != nil {
				return err
			}
			leagueEvents = events
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return Upcoming{}, err
	}

	events := make([]UpcomingEvent, 0, len(venueEvents)+len(pickupEvents)+len(leagueEvents))
	events = append(events, venueEvents...)
	events = append(events, pickupEvents...)
	events = append(events, leagueEvents...)
	sortEvents(events)

	out := Upcoming{Total: len(events)}
	if len(events) > 0 {
		next := events[0]
		out.Next = &next
	}
	return out, nil
}

func (s *DashboardService) bookingEvents(ctx context.Context, items []booking.Booking, now time.Time) []UpcomingEvent {
	out := make([]UpcomingEvent, 0, len(items))
	for _, b := range items {
		if b.Status == booking.StatusCancelled {
			continue
		}
		startsAt := b.StartsAt
		if startsAt.IsZero() {
			parsed, err := schedule.ParseDateTime(b.Date, b.Time, s.options.Location)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping booking with unparsable start",
					"booking_id", b.ID,
					"date", b.Date,
					"time", b.Time,
					"error", err,
				)
				continue
			}
			startsAt = parsed
		}
		if !startsAt.After(now) {
			continue
		}
		out = append(out, UpcomingEvent{
			ID:       b.ID,
			Category: EventCategoryVenue,
			Title:    b.VenueName,
			Location: b.VenueAddress,
			StartsAt: startsAt.UTC(),
		})
	}
	return out
}

func pickupEventsFrom(items []pickup.Session, now time.Time) []UpcomingEvent {
	out := make([]UpcomingEvent, 0, len(items))
	for _, session := range items {
		if !session.StartsAt.After(now) {
			continue
		}
		out = append(out, UpcomingEvent{
			ID:       session.ID,
			Category: EventCategoryPickup,
			Title:    string(session.Sport) + " pickup",
			Location: session.VenueLabel,
			StartsAt: session.StartsAt.UTC(),
		})
	}
	return out
}

// matchEvents lists upcoming matches of squads the user captains.
func (s *DashboardService) matchEvents(ctx context.Context, userID string, now time.Time) ([]UpcomingEvent, error) {
	owned, err := s.squadRepo.ListByCaptain(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list squads by captain: %w", err)
	}
	if len(owned) == 0 {
		return nil, nil
	}

	names := make(map[string]string, len(owned))
	ids := make([]string, 0, len(owned))
	for _, sq := range owned {
		names[sq.ID] = sq.Name
		ids = append(ids, sq.ID)
	}

	matches, err := s.matchRepo.ListUpcomingForSquads(ctx, ids, now)
	if err != nil {
		return nil, fmt.Errorf("list upcoming matches: %w", err)
	}

	out := make([]UpcomingEvent, 0, len(matches))
	for _, m := range matches {
		if !m.StartsAt.After(now) {
			continue
		}
		own := names[m.HomeSquadID]
		if own == "" {
			own = names[m.AwaySquadID]
		}
		if own == "" {
			continue
		}
		out = append(out, UpcomingEvent{
			ID:       m.ID,
			Category: EventCategoryLeague,
			Title:    own + " league match",
			Location: m.VenueLabel,
			StartsAt: m.StartsAt.UTC(),
		})
	}
	return out, nil
}

func sortEvents(events []UpcomingEvent) {
	slices.SortStableFunc(events, func(a, b UpcomingEvent) int {
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		if ra, rb := categoryRank[a.Category], categoryRank[b.Category]; ra != rb {
			return ra - rb
		}
		return strings.Compare(a.ID, b.ID)
	})
}
