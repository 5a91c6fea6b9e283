package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/user"
	"github.com/riskibarqy/squadup/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/squadup/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

var fixedNow = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestSquadService(t *testing.T) (*SquadService, *memory.SquadRepository) {
	t.Helper()

	repo := memory.NewSquadRepository(memory.SeedSquads(fixedNow)...)
	service := NewSquadService(repo, staticIDGenerator{id: "squad-001"}, logging.NewNop())
	service.now = func() time.Time { return fixedNow }
	return service, repo
}

func TestSquadService_CreateSquad_CaptainIsFirstMember(t *testing.T) {
	service, _ := newTestSquadService(t)

	created, err := service.CreateSquad(t.Context(), CreateSquadInput{
		Captain: user.Principal{UserID: "user-1", Email: "dana@example.com"},
		Name:    "  <b>Parkdale</b>   Rovers ",
		Sport:   "Soccer",
	})
	if err != nil {
		t.Fatalf("create squad: %v", err)
	}
	if created.ID != "squad-001" {
		t.Fatalf("unexpected squad id: got=%s want=squad-001", created.ID)
	}
	if created.Name != "Parkdale Rovers" {
		t.Fatalf("unexpected squad name: got=%q want=%q", created.Name, "Parkdale Rovers")
	}
	if created.CaptainName != "dana@example.com" {
		t.Fatalf("unexpected captain name: got=%q", created.CaptainName)
	}
	if len(created.MemberIDs) != 1 || created.MemberIDs[0] != "user-1" {
		t.Fatalf("captain should be the only member: %+v", created.MemberIDs)
	}
	if !created.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected created at: got=%v want=%v", created.CreatedAt, fixedNow)
	}

	mine, err := service.ListMySquads(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list my squads: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "squad-001" {
		t.Fatalf("unexpected squads for captain: %+v", mine)
	}
}

func TestSquadService_CreateSquad_RejectsInvalidInput(t *testing.T) {
	service, _ := newTestSquadService(t)

	cases := []struct {
		name  string
		input CreateSquadInput
		want  error
	}{
		{name: "no caller", input: CreateSquadInput{Name: "A", Sport: "soccer"}, want: ErrUnauthorized},
		{name: "blank name", input: CreateSquadInput{Captain: user.Principal{UserID: "u"}, Name: "  ", Sport: "soccer"}, want: ErrValidation},
		{name: "unknown sport", input: CreateSquadInput{Captain: user.Principal{UserID: "u"}, Name: "A", Sport: "quidditch"}, want: ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateSquad(t.Context(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestSquadService_JoinAndLeave(t *testing.T) {
	service, _ := newTestSquadService(t)

	joined, err := service.JoinSquad(t.Context(), memory.SquadIDNorthYork, "user-9")
	if err != nil {
		t.Fatalf("join squad: %v", err)
	}
	if !joined.HasMember("user-9") {
		t.Fatalf("expected user-9 on the roster")
	}

	again, err := service.JoinSquad(t.Context(), memory.SquadIDNorthYork, "user-9")
	if err != nil {
		t.Fatalf("repeat join: %v", err)
	}
	if len(again.MemberIDs) != len(joined.MemberIDs) {
		t.Fatalf("repeat join changed roster: got=%d want=%d", len(again.MemberIDs), len(joined.MemberIDs))
	}

	left, err := service.LeaveSquad(t.Context(), memory.SquadIDNorthYork, "user-9")
	if err != nil {
		t.Fatalf("leave squad: %v", err)
	}
	if left.HasMember("user-9") {
		t.Fatalf("expected user-9 removed from roster")
	}

	if _, err := service.JoinSquad(t.Context(), "missing", "user-9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSquadService_CaptainCannotLeave(t *testing.T) {
	service, _ := newTestSquadService(t)

	_, err := service.LeaveSquad(t.Context(), memory.SquadIDDanforthFC, memory.SeedCaptainUserID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSquadService_DeleteSquad_OnlyCaptain(t *testing.T) {
	service, repo := newTestSquadService(t)

	if err := service.DeleteSquad(t.Context(), memory.SquadIDDanforthFC, "p-01"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member, got %v", err)
	}
	if err := service.DeleteSquad(t.Context(), memory.SquadIDDanforthFC, memory.SeedCaptainUserID); err != nil {
		t.Fatalf("delete squad: %v", err)
	}
	if _, exists, _ := repo.GetByID(t.Context(), memory.SquadIDDanforthFC); exists {
		t.Fatalf("squad should be deleted")
	}
}

func TestSquadService_Leaderboard(t *testing.T) {
	service, _ := newTestSquadService(t)

	got, err := service.Leaderboard(t.Context(), "basketball", 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(got) != 2 || got[0].ID != memory.SquadIDNorthYork {
		t.Fatalf("unexpected basketball leaderboard: %+v", got)
	}

	if _, err := service.Leaderboard(t.Context(), "chess", 10); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSquadService_WatchMySquads(t *testing.T) {
	service, _ := newTestSquadService(t)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	ch, err := service.WatchMySquads(ctx, "p-01")
	if err != nil {
		t.Fatalf("watch squads: %v", err)
	}
	select {
	case got := <-ch:
		if len(got) != 1 || got[0].ID != memory.SquadIDDanforthFC {
			t.Fatalf("unexpected initial snapshot: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for initial snapshot")
	}
}
