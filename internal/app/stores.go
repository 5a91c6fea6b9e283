package app

import (
	"context"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/riskibarqy/squadup/internal/config"
	"github.com/riskibarqy/squadup/internal/domain/booking"
	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/match"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/domain/venue"
	cacherepo "github.com/riskibarqy/squadup/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/squadup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/squadup/internal/infrastructure/repository/mongostore"
	"github.com/riskibarqy/squadup/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/squadup/internal/platform/cache"
	"github.com/riskibarqy/squadup/internal/platform/logging"
	"github.com/riskibarqy/squadup/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type stores struct {
	venues   venue.Repository
	squads   squad.Repository
	bookings booking.Repository
	pickups  pickup.Repository
	leagues  league.Repository
	matches  match.Repository
	// preloaded is true when the backend starts with the curated catalogue.
	preloaded bool
	close     func(context.Context) error
}

func openStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (*stores, error) {
	var (
		s   *stores
		err error
	)
	switch cfg.StoreBackend {
	case config.StorePostgres:
		s, err = openPostgresStores(cfg)
	case config.StoreMongo:
		s, err = openMongoStores(ctx, cfg, logger)
	default:
		s = openMemoryStores(time.Now().UTC())
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		s.venues = cacherepo.NewVenueRepository(s.venues, store)
		s.leagues = cacherepo.NewLeagueRepository(s.leagues, store)
	}

	logger.Info("document store ready", "backend", cfg.StoreBackend, "cache_enabled", cfg.CacheEnabled)
	return s, nil
}

func openMemoryStores(now time.Time) *stores {
	return &stores{
		venues:    memory.NewVenueRepository(memory.SeedVenues()),
		squads:    memory.NewSquadRepository(memory.SeedSquads(now)...),
		bookings:  memory.NewBookingRepository(),
		pickups:   memory.NewPickupRepository(memory.SeedPickups(now)),
		leagues:   memory.NewLeagueRepository(memory.SeedLeagues(now)),
		matches:   memory.NewMatchRepository(memory.SeedMatches(now)),
		preloaded: true,
		close:     func(context.Context) error { return nil },
	}
}

func openPostgresStores(cfg config.Config) (*stores, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &stores{
		venues:   postgres.NewVenueRepository(db),
		squads:   postgres.NewSquadRepository(db),
		bookings: postgres.NewBookingRepository(db),
		pickups:  postgres.NewPickupRepository(db),
		leagues:  postgres.NewLeagueRepository(db),
		matches:  postgres.NewMatchRepository(db),
		close:    func(context.Context) error { return db.Close() },
	}, nil
}

func openMongoStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (*stores, error) {
	client, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	if err := mongostore.EnsureIndexes(indexCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &stores{
		venues:   mongostore.NewVenueRepository(db),
		squads:   mongostore.NewSquadRepository(db, logger),
		bookings: mongostore.NewBookingRepository(db),
		pickups:  mongostore.NewPickupRepository(db),
		leagues:  mongostore.NewLeagueRepository(db),
		matches:  mongostore.NewMatchRepository(db),
		close:    client.Disconnect,
	}, nil
}

func seedCatalog(now time.Time) usecase.SeedCatalog {
	return usecase.SeedCatalog{
		Venues:  memory.SeedVenues(),
		Leagues: memory.SeedLeagues(now),
		Pickups: memory.SeedPickups(now),
		Matches: memory.SeedMatches(now),
	}
}

// seedIfEmpty writes the catalogue into a persistent backend on first boot,
// or on every boot when SEED_ON_START is set.
func seedIfEmpty(ctx context.Context, cfg config.Config, s *stores, seeder *usecase.SeedService, logger *logging.Logger) error {
	if s.preloaded {
		return nil
	}
	if !cfg.SeedOnStart {
		existing, err := s.venues.List(ctx, venue.Filter{})
		if err != nil {
			return fmt.Errorf("check venue catalogue: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}
	}

	result, err := seeder.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed catalogue: %w", err)
	}
	logger.Info("catalogue seeded",
		"venues", result.Venues,
		"leagues", result.Leagues,
		"pickups", result.Pickups,
		"matches", result.Matches,
		"duration_ms", result.DurationMs,
	)
	return nil
}
