package pickup

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/sport"
)

// ErrFull is returned by Join when the roster has reached capacity.
var ErrFull = errors.New("pickup session is full")

// Session is a drop-in game. len(PlayerIDs) never exceeds Capacity.
type Session struct {
	ID         string
	Sport      sport.Sport
	VenueLabel string
	StartsAt   time.Time
	Level      string
	Capacity   int
	PlayerIDs  []string
	Price      float64
	HostName   string
}

func (s Session) HasPlayer(userID string) bool {
	return slices.Contains(s.PlayerIDs, userID)
}

func (s Session) SpotsLeft() int {
	if left := s.Capacity - len(s.PlayerIDs); left > 0 {
		return left
	}
	return 0
}

func (s Session) IsFull() bool {
	return s.SpotsLeft() == 0
}

func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("pickup session id is required")
	}
	if !s.Sport.Valid() {
		return fmt.Errorf("pickup session sport %q is invalid", s.Sport)
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("pickup session capacity must be positive")
	}
	if len(s.PlayerIDs) > s.Capacity {
		return fmt.Errorf("pickup session has %d players for capacity %d", len(s.PlayerIDs), s.Capacity)
	}
	if s.Price < 0 {
		return fmt.Errorf("pickup session price must not be negative")
	}
	return nil
}

type Filter struct {
	Sport sport.Sport
}
