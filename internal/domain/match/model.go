package match

import (
	"fmt"
	"time"
)

// Match is one fixture inside a league.
type Match struct {
	ID          string
	LeagueID    string
	HomeSquadID string
	AwaySquadID string
	VenueLabel  string
	StartsAt    time.Time
}

func (m Match) Involves(squadID string) bool {
	return squadID != "" && (m.HomeSquadID == squadID || m.AwaySquadID == squadID)
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.LeagueID == "" {
		return fmt.Errorf("match league is required")
	}
	if m.HomeSquadID == "" || m.AwaySquadID == "" {
		return fmt.Errorf("match squads are required")
	}
	if m.HomeSquadID == m.AwaySquadID {
		return fmt.Errorf("match squads must differ")
	}
	if m.StartsAt.IsZero() {
		return fmt.Errorf("match start is required")
	}
	return nil
}
