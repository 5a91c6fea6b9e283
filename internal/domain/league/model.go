package league

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/sport"
)

// ErrFull is returned by Register when no spots remain.
var ErrFull = errors.New("league is full")

// League is a seasonal competition with a bounded number of entries.
// SpotsRemaining never goes below zero.
type League struct {
	ID             string
	Name           string
	Sport          sport.Sport
	Season         string
	Region         string
	EntryFee       float64
	SpotsRemaining int
	Prize          string
	SquadIDs       []string
	FreeAgentIDs   []string
	StartsAt       time.Time
	Active         bool
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if !l.Sport.Valid() {
		return fmt.Errorf("league sport %q is invalid", l.Sport)
	}
	if l.EntryFee < 0 {
		return fmt.Errorf("league entry fee must not be negative")
	}
	if l.SpotsRemaining < 0 {
		return fmt.Errorf("league spots must not be negative")
	}
	return nil
}

// Registration enters either a squad or an individual free agent.
type Registration struct {
	SquadID string
	UserID  string
}

func (r Registration) Individual() bool {
	return r.SquadID == ""
}

func (r Registration) Validate() error {
	if r.SquadID == "" && r.UserID == "" {
		return fmt.Errorf("registration needs a squad or a user")
	}
	if r.SquadID != "" && r.UserID != "" {
		return fmt.Errorf("registration takes a squad or a user, not both")
	}
	return nil
}

func (l League) IsRegistered(r Registration) bool {
	if r.Individual() {
		return slices.Contains(l.FreeAgentIDs, r.UserID)
	}
	return slices.Contains(l.SquadIDs, r.SquadID)
}

type Filter struct {
	Sport      sport.Sport
	ActiveOnly bool
}
