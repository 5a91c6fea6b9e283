package cache

import (
	"context"
	"slices"
	"strconv"

	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/venue"
	basecache "github.com/riskibarqy/squadup/internal/platform/cache"
)

const (
	venuePrefix  = "venue:"
	leaguePrefix = "league:"
)

type VenueRepository struct {
	next  venue.Repository
	cache *basecache.Store
}

func NewVenueRepository(next venue.Repository, cache *basecache.Store) *VenueRepository {
	return &VenueRepository{next: next, cache: cache}
}

func (r *VenueRepository) List(ctx context.Context, filter venue.Filter) ([]venue.Venue, error) {
	key := venuePrefix + "list:" + string(filter.Sport)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]venue.Venue)
	return slices.Clone(items), nil
}

func (r *VenueRepository) GetByID(ctx context.Context, venueID string) (venue.Venue, bool, error) {
	key := venuePrefix + "id:" + venueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, venueID)
		if err != nil {
			return nil, err
		}
		return cachedVenueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return venue.Venue{}, false, err
	}

	cached, _ := v.(cachedVenueByID)
	return cached.value, cached.exists, nil
}

func (r *VenueRepository) UpsertMany(ctx context.Context, venues []venue.Venue) error {
	if err := r.next.UpsertMany(ctx, venues); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, venuePrefix)
	return nil
}

type cachedVenueByID struct {
	value  venue.Venue
	exists bool
}

// LeagueRepository caches league reads. Registrations pass through and drop
// every cached league entry so spot counts are reread.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context, filter league.Filter) ([]league.League, error) {
	key := leaguePrefix + "list:" + string(filter.Sport) + ":" + strconv.FormatBool(filter.ActiveOnly)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return cloneLeagues(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return cloneLeagues(items), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := leaguePrefix + "id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: cloneLeague(item), exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cloneLeague(cached.value), cached.exists, nil
}

func (r *LeagueRepository) Register(ctx context.Context, leagueID string, reg league.Registration) (league.League, bool, error) {
	item, exists, err := r.next.Register(ctx, leagueID, reg)
	r.cache.DeletePrefix(ctx, leaguePrefix)
	return item, exists, err
}

func (r *LeagueRepository) UpsertMany(ctx context.Context, leagues []league.League) error {
	if err := r.next.UpsertMany(ctx, leagues); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, leaguePrefix)
	return nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

func cloneLeague(l league.League) league.League {
	l.SquadIDs = slices.Clone(l.SquadIDs)
	l.FreeAgentIDs = slices.Clone(l.FreeAgentIDs)
	return l
}

func cloneLeagues(items []league.League) []league.League {
	if items == nil {
		return nil
	}
	out := make([]league.League, len(items))
	for i, l := range items {
		out[i] = cloneLeague(l)
	}
	return out
}
