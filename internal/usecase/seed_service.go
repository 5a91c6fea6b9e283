package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/match"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/venue"
	"github.com/riskibarqy/squadup/internal/platform/logging"
)

const (
	defaultSeedWorkers   = 4
	defaultSeedBatchSize = 25
)

// SeedCatalog is the administrative data set written by the seed job.
type SeedCatalog struct {
	Venues  []venue.Venue
	Leagues []league.League
	Pickups []pickup.Session
	Matches []match.Match
}

type SeedResult struct {
	Venues     int
	Leagues    int
	Pickups    int
	Matches    int
	DurationMs int64
}

type SeedService struct {
	venueRepo  venue.Repository
	leagueRepo league.Repository
	pickupRepo pickup.Repository
	matchRepo  match.Repository
	catalog    func(now time.Time) SeedCatalog
	workers    int
	batchSize  int
	logger     *logging.Logger
	now        func() time.Time
}

func NewSeedService(
	venueRepo venue.Repository,
	leagueRepo league.Repository,
	pickupRepo pickup.Repository,
	matchRepo match.Repository,
	catalog func(now time.Time) SeedCatalog,
	workers int,
	logger *logging.Logger,
) *SeedService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultSeedWorkers
	}

	return &SeedService{
		venueRepo:  venueRepo,
		leagueRepo: leagueRepo,
		pickupRepo: pickupRepo,
		matchRepo:  matchRepo,
		catalog:    catalog,
		workers:    workers,
		batchSize:  defaultSeedBatchSize,
		logger:     logger,
		now:        time.Now,
	}
}

// Seed upserts the catalog in batches on a bounded worker pool. Batches
// that fail are reported together; successful batches stay written.
func (s *SeedService) Seed(ctx context.Context) (_ SeedResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeedService.Seed")
	defer finishSpan(span, &err)

	if s.catalog == nil {
		return SeedResult{}, fmt.Errorf("%w: seed catalog is not configured", ErrValidation)
	}
	start := s.now()
	data := s.catalog(start.UTC())

	var venues, leagues, pickups, matches atomic.Int64
	tasks := make([]func(context.Context) error, 0)
	tasks = append(tasks, batches(data.Venues, s.batchSize, func(ctx context.Context, b []venue.Venue) error {
		if err := s.venueRepo.UpsertMany(ctx, b); err != nil {
			return fmt.Errorf("upsert venues: %w", err)
		}
		venues.Add(int64(len(b)))
		return nil
	})...)
	tasks = append(tasks, batches(data.Leagues, s.batchSize, func(ctx context.Context, b []league.League) error {
		if err := s.leagueRepo.UpsertMany(ctx, b); err != nil {
			return fmt.Errorf("upsert leagues: %w", err)
		}
		leagues.Add(int64(len(b)))
		return nil
	})...)
	tasks = append(tasks, batches(data.Pickups, s.batchSize, func(ctx context.Context, b []pickup.Session) error {
		if err := s.pickupRepo.UpsertMany(ctx, b); err != nil {
			return fmt.Errorf("upsert pickup sessions: %w", err)
		}
		pickups.Add(int64(len(b)))
		return nil
	})...)

	if err := s.run(ctx, tasks); err != nil {
		return SeedResult{}, err
	}

	// Matches reference leagues, so they go after the league batches land.
	if err := s.run(ctx, batches(data.Matches, s.batchSize, func(ctx context.Context, b []match.Match) error {
		if err := s.matchRepo.UpsertMany(ctx, b); err != nil {
			return fmt.Errorf("upsert matches: %w", err)
		}
		matches.Add(int64(len(b)))
		return nil
	})); err != nil {
		return SeedResult{}, err
	}

	result := SeedResult{
		Venues:     int(venues.Load()),
		Leagues:    int(leagues.Load()),
		Pickups:    int(pickups.Load()),
		Matches:    int(matches.Load()),
		DurationMs: s.now().Sub(start).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "seed completed",
		"venues", result.Venues,
		"leagues", result.Leagues,
		"pickups", result.Pickups,
		"matches", result.Matches,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *SeedService) run(ctx context.Context, tasks []func(context.Context) error) error {
	if len(tasks) == 0 {
		return nil
	}

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for _, task := range tasks {
		wg.Add(1)
		if err := workerPool.Submit(func() {
			defer wg.Done()
			if err := task(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return fmt.Errorf("submit seed task: %w", err)
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		return fmt.Errorf("%w: seed: %w", ErrUpstreamService, errors.Join(errs...))
	}
	return nil
}

func batches[T any](items []T, size int, write func(context.Context, []T) error) []func(context.Context) error {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(items)
	}
	out := make([]func(context.Context) error, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		chunk := items[start:min(start+size, len(items))]
		out = append(out, func(ctx context.Context) error { return write(ctx, chunk) })
	}
	return out
}
