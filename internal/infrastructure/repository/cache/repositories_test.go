package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/venue"
	"github.com/riskibarqy/squadup/internal/infrastructure/repository/memory"
	venuemock "github.com/riskibarqy/squadup/internal/mocks/domain/venue"
	basecache "github.com/riskibarqy/squadup/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestVenueRepository_GetByIDHitsBackendOnce(t *testing.T) {
	t.Parallel()

	next := venuemock.NewRepository(t)
	repo := NewVenueRepository(next, basecache.NewStore(time.Minute))

	next.
		On("GetByID", mock.Anything, "to_1").
		Return(venue.Venue{ID: "to_1", Name: "Cherry Beach Sports Fields"}, true, nil).
		Once()

	for range 3 {
		got, exists, err := repo.GetByID(context.Background(), "to_1")
		if err != nil || !exists {
			t.Fatalf("get venue: exists=%v err=%v", exists, err)
		}
		if got.Name != "Cherry Beach Sports Fields" {
			t.Fatalf("unexpected venue name: got=%s", got.Name)
		}
	}
}

func TestVenueRepository_UpsertManyInvalidates(t *testing.T) {
	t.Parallel()

	next := venuemock.NewRepository(t)
	repo := NewVenueRepository(next, basecache.NewStore(time.Minute))

	next.
		On("List", mock.Anything, venue.Filter{}).
		Return([]venue.Venue{{ID: "to_1"}}, nil).
		Twice()
	next.
		On("UpsertMany", mock.Anything, mock.Anything).
		Return(nil).
		Once()

	if _, err := repo.List(context.Background(), venue.Filter{}); err != nil {
		t.Fatalf("list venues: %v", err)
	}
	if err := repo.UpsertMany(context.Background(), []venue.Venue{{ID: "to_2"}}); err != nil {
		t.Fatalf("upsert venues: %v", err)
	}
	if _, err := repo.List(context.Background(), venue.Filter{}); err != nil {
		t.Fatalf("list venues after upsert: %v", err)
	}
}

func TestLeagueRepository_RegisterRefreshesSpots(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	repo := NewLeagueRepository(memory.NewLeagueRepository(memory.SeedLeagues(now)), basecache.NewStore(time.Minute))

	before, _, err := repo.GetByID(t.Context(), memory.LeagueIDHoopDome)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if _, _, err := repo.Register(t.Context(), memory.LeagueIDHoopDome, league.Registration{UserID: "user-1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	after, _, err := repo.GetByID(t.Context(), memory.LeagueIDHoopDome)
	if err != nil {
		t.Fatalf("get league after register: %v", err)
	}
	if after.SpotsRemaining != before.SpotsRemaining-1 {
		t.Fatalf("cached spots not refreshed: got=%d want=%d", after.SpotsRemaining, before.SpotsRemaining-1)
	}
}
