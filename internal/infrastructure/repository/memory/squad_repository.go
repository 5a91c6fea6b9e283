package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/squadup/internal/domain/sport"
	"github.com/riskibarqy/squadup/internal/domain/squad"
)

type squadSubscriber struct {
	memberID string
	ch       chan []squad.Squad
}

// SquadRepository keeps squads in memory and pushes membership changes to
// watchers. Slow watchers only ever see the latest snapshot.
type SquadRepository struct {
	mu     sync.RWMutex
	items  map[string]squad.Squad
	subs   map[int]*squadSubscriber
	nextID int
}

func NewSquadRepository(seed ...squad.Squad) *SquadRepository {
	r := &SquadRepository{
		items: make(map[string]squad.Squad, len(seed)),
		subs:  make(map[int]*squadSubscriber),
	}
	for _, s := range seed {
		r.items[s.ID] = cloneSquad(s)
	}
	return r
}

func (r *SquadRepository) Create(_ context.Context, s squad.Squad) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[s.ID]; exists {
		return fmt.Errorf("squad %s already exists", s.ID)
	}
	r.items[s.ID] = cloneSquad(s)
	r.notifyLocked(s.MemberIDs)
	return nil
}

func (r *SquadRepository) GetByID(_ context.Context, squadID string) (squad.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[squadID]
	if !ok {
		return squad.Squad{}, false, nil
	}
	return cloneSquad(s), true, nil
}

func (r *SquadRepository) ListByMember(_ context.Context, userID string) ([]squad.Squad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listByMemberLocked(userID), nil
}

func (r *SquadRepository) ListByCaptain(_ context.Context, userID string) ([]squad.Squad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]squad.Squad, 0)
	for _, s := range r.items {
		if s.CaptainID == userID {
			out = append(out, cloneSquad(s))
		}
	}
	sortSquadsByCreated(out)
	return out, nil
}

func (r *SquadRepository) ListLeaderboard(_ context.Context, sp sport.Sport, limit int) ([]squad.Squad, error) {
	r.mu.RLock()
	out := make([]squad.Squad, 0, len(r.items))
	for _, s := range r.items {
		if sp != "" && s.Sport != sp {
			continue
		}
		out = append(out, cloneSquad(s))
	}
	r.mu.RUnlock()

	squad.SortLeaderboard(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SquadRepository) AddMember(_ context.Context, squadID, userID string) (squad.Squad, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[squadID]
	if !ok {
		return squad.Squad{}, false, nil
	}
	if !s.HasMember(userID) {
		s.MemberIDs = append(slices.Clone(s.MemberIDs), userID)
		r.items[squadID] = s
		r.notifyLocked([]string{userID})
	}
	return cloneSquad(s), true, nil
}

func (r *SquadRepository) RemoveMember(_ context.Context, squadID, userID string) (squad.Squad, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[squadID]
	if !ok {
		return squad.Squad{}, false, nil
	}
	if s.HasMember(userID) && s.CaptainID != userID {
		s.MemberIDs = slices.DeleteFunc(slices.Clone(s.MemberIDs), func(id string) bool { return id == userID })
		r.items[squadID] = s
		r.notifyLocked([]string{userID})
	}
	return cloneSquad(s), true, nil
}

func (r *SquadRepository) Delete(_ context.Context, squadID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[squadID]
	if !ok {
		return false, nil
	}
	delete(r.items, squadID)
	r.notifyLocked(s.MemberIDs)
	return true, nil
}

// Watch sends the current squads of memberID immediately and again after
// every change touching that member.
func (r *SquadRepository) Watch(ctx context.Context, memberID string) (<-chan []squad.Squad, error) {
	sub := &squadSubscriber{memberID: memberID, ch: make(chan []squad.Squad, 1)}

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = sub
	sub.ch <- r.listByMemberLocked(memberID)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		delete(r.subs, id)
		close(sub.ch)
		r.mu.Unlock()
	}()

	return sub.ch, nil
}

func (r *SquadRepository) notifyLocked(memberIDs []string) {
	for _, sub := range r.subs {
		if !slices.Contains(memberIDs, sub.memberID) {
			continue
		}
		snapshot := r.listByMemberLocked(sub.memberID)
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- snapshot
	}
}

func (r *SquadRepository) listByMemberLocked(userID string) []squad.Squad {
	out := make([]squad.Squad, 0)
	for _, s := range r.items {
		if s.HasMember(userID) {
			out = append(out, cloneSquad(s))
		}
	}
	sortSquadsByCreated(out)
	return out
}

func sortSquadsByCreated(items []squad.Squad) {
	slices.SortFunc(items, func(a, b squad.Squad) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func cloneSquad(s squad.Squad) squad.Squad {
	copied := s
	copied.MemberIDs = slices.Clone(s.MemberIDs)
	return copied
}
