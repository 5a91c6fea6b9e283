package squad

import (
	"fmt"
	"html"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/riskibarqy/squadup/internal/domain/sport"
)

const (
	MaxNameLength    = 60
	LeaderboardLimit = 50
)

// Squad is a user-managed roster. The captain is always a member while the
// squad exists.
type Squad struct {
	ID          string
	Name        string
	Sport       sport.Sport
	CaptainID   string
	CaptainName string
	MemberIDs   []string
	Wins        int
	Losses      int
	CreatedAt   time.Time
}

func (s Squad) HasMember(userID string) bool {
	return slices.Contains(s.MemberIDs, userID)
}

func (s Squad) IsCaptain(userID string) bool {
	return userID != "" && s.CaptainID == userID
}

func (s Squad) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("squad name is required")
	}
	if !s.Sport.Valid() {
		return fmt.Errorf("squad sport %q is invalid", s.Sport)
	}
	if s.CaptainID == "" {
		return fmt.Errorf("squad captain is required")
	}
	if !s.HasMember(s.CaptainID) {
		return fmt.Errorf("squad members must include the captain")
	}
	if s.Wins < 0 || s.Losses < 0 {
		return fmt.Errorf("squad record must not be negative")
	}
	return nil
}

var namePolicy = bluemonday.StrictPolicy()

// NormalizeName strips markup and surrounding space from a user-supplied
// squad name and enforces the length bounds.
func NormalizeName(raw string) (string, error) {
	name := html.UnescapeString(namePolicy.Sanitize(raw))
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", fmt.Errorf("squad name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("squad name must be at most %d characters", MaxNameLength)
	}
	return name, nil
}

// SortLeaderboard orders by wins desc, then losses asc, then name.
func SortLeaderboard(items []Squad) {
	slices.SortStableFunc(items, func(a, b Squad) int {
		if a.Wins != b.Wins {
			return b.Wins - a.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses - b.Losses
		}
		return strings.Compare(a.Name, b.Name)
	})
}
