package httpapi

import (
	"time"

	"github.com/riskibarqy/squadup/internal/domain/booking"
	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/match"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/domain/venue"
	"github.com/riskibarqy/squadup/internal/usecase"
)

type venueDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Sport       string  `json:"sport"`
	HourlyPrice float64 `json:"hourly_price"`
	ImageName   string  `json:"image_name,omitempty"`
}

type squadDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Sport       string    `json:"sport"`
	CaptainID   string    `json:"captain_id"`
	CaptainName string    `json:"captain_name"`
	MemberIDs   []string  `json:"member_ids"`
	MemberCount int       `json:"member_count"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	CreatedAt   time.Time `json:"created_at"`
}

type leaderboardEntryDTO struct {
	Rank        int    `json:"rank"`
	SquadID     string `json:"squad_id"`
	Name        string `json:"name"`
	Sport       string `json:"sport"`
	CaptainName string `json:"captain_name"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

type leagueDTO struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Sport          string     `json:"sport"`
	Season         string     `json:"season"`
	Region         string     `json:"region"`
	EntryFee       float64    `json:"entry_fee"`
	SpotsRemaining int        `json:"spots_remaining"`
	Prize          string     `json:"prize,omitempty"`
	SquadCount     int        `json:"squad_count"`
	FreeAgentCount int        `json:"free_agent_count"`
	StartsAt       *time.Time `json:"starts_at,omitempty"`
	Active         bool       `json:"active"`
}

type matchDTO struct {
	ID          string    `json:"id"`
	LeagueID    string    `json:"league_id"`
	HomeSquadID string    `json:"home_squad_id"`
	AwaySquadID string    `json:"away_squad_id"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
}

type pickupDTO struct {
	ID          string    `json:"id"`
	Sport       string    `json:"sport"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	Level       string    `json:"level"`
	Capacity    int       `json:"capacity"`
	PlayerCount int       `json:"player_count"`
	SpotsLeft   int       `json:"spots_left"`
	Price       float64   `json:"price"`
	HostName    string    `json:"host_name"`
}

type bookingDTO struct {
	ID           string     `json:"id"`
	VenueID      string     `json:"venue_id"`
	VenueName    string     `json:"venue_name"`
	VenueAddress string     `json:"venue_address"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

type upcomingEventDTO struct {
	ID       string    `json:"id"`
	Category string    `json:"category"`
	Title    string    `json:"title"`
	Location string    `json:"location"`
	StartsAt time.Time `json:"starts_at"`
}

type bannerDTO struct {
	Kind      string `json:"kind"`
	Type      string `json:"type,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type dashboardDTO struct {
	HasUpcoming bool              `json:"has_upcoming"`
	Next        *upcomingEventDTO `json:"next,omitempty"`
	Total       int               `json:"total"`
	Banner      *bannerDTO        `json:"banner,omitempty"`
}

type seedResultDTO struct {
	Venues     int   `json:"venues"`
	Leagues    int   `json:"leagues"`
	Pickups    int   `json:"pickups"`
	Matches    int   `json:"matches"`
	DurationMs int64 `json:"duration_ms"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func toVenueDTO(v venue.Venue) venueDTO {
	return venueDTO{
		ID:          v.ID,
		Name:        v.Name,
		Address:     v.Address,
		Sport:       string(v.Sport),
		HourlyPrice: v.Price(),
		ImageName:   v.ImageName,
	}
}

func toVenueDTOs(items []venue.Venue) []venueDTO {
	out := make([]venueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toVenueDTO(item))
	}
	return out
}

func toSquadDTO(s squad.Squad) squadDTO {
	members := s.MemberIDs
	if members == nil {
		members = []string{}
	}
	return squadDTO{
		ID:          s.ID,
		Name:        s.Name,
		Sport:       string(s.Sport),
		CaptainID:   s.CaptainID,
		CaptainName: s.CaptainName,
		MemberIDs:   members,
		MemberCount: len(members),
		Wins:        s.Wins,
		Losses:      s.Losses,
		CreatedAt:   s.CreatedAt.UTC(),
	}
}

func toSquadDTOs(items []squad.Squad) []squadDTO {
	out := make([]squadDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toSquadDTO(item))
	}
	return out
}

func toLeaderboardDTOs(items []squad.Squad) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(items))
	for i, s := range items {
		out = append(out, leaderboardEntryDTO{
			Rank:        i + 1,
			SquadID:     s.ID,
			Name:        s.Name,
			Sport:       string(s.Sport),
			CaptainName: s.CaptainName,
			Wins:        s.Wins,
			Losses:      s.Losses,
		})
	}
	return out
}

func toLeagueDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:             l.ID,
		Name:           l.Name,
		Sport:          string(l.Sport),
		Season:         l.Season,
		Region:         l.Region,
		EntryFee:       l.EntryFee,
		SpotsRemaining: l.SpotsRemaining,
		Prize:          l.Prize,
		SquadCount:     len(l.SquadIDs),
		FreeAgentCount: len(l.FreeAgentIDs),
		StartsAt:       optionalTime(l.StartsAt),
		Active:         l.Active,
	}
}

func toLeagueDTOs(items []league.League) []leagueDTO {
	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toLeagueDTO(item))
	}
	return out
}

func toMatchDTOs(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchDTO{
			ID:          m.ID,
			LeagueID:    m.LeagueID,
			HomeSquadID: m.HomeSquadID,
			AwaySquadID: m.AwaySquadID,
			Venue:       m.VenueLabel,
			StartsAt:    m.StartsAt.UTC(),
		})
	}
	return out
}

func toPickupDTO(s pickup.Session) pickupDTO {
	return pickupDTO{
		ID:          s.ID,
		Sport:       string(s.Sport),
		Venue:       s.VenueLabel,
		StartsAt:    s.StartsAt.UTC(),
		Level:       s.Level,
		Capacity:    s.Capacity,
		PlayerCount: len(s.PlayerIDs),
		SpotsLeft:   s.SpotsLeft(),
		Price:       s.Price,
		HostName:    s.HostName,
	}
}

func toPickupDTOs(items []pickup.Session) []pickupDTO {
	out := make([]pickupDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toPickupDTO(item))
	}
	return out
}

func toBookingDTO(b booking.Booking) bookingDTO {
	return bookingDTO{
		ID:           b.ID,
		VenueID:      b.VenueID,
		VenueName:    b.VenueName,
		VenueAddress: b.VenueAddress,
		Date:         b.Date,
		Time:         b.Time,
		StartsAt:     optionalTime(b.StartsAt),
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt.UTC(),
	}
}

func toBookingDTOs(items []booking.Booking) []bookingDTO {
	out := make([]bookingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toBookingDTO(item))
	}
	return out
}

func toDashboardDTO(upcoming usecase.Upcoming, banner checkout.Banner) dashboardDTO {
	out := dashboardDTO{
		HasUpcoming: upcoming.HasUpcoming(),
		Total:       upcoming.Total,
	}
	if next := upcoming.Next; next != nil {
		out.Next = &upcomingEventDTO{
			ID:       next.ID,
			Category: string(next.Category),
			Title:    next.Title,
			Location: next.Location,
			StartsAt: next.StartsAt.UTC(),
		}
	}
	if banner.Kind != checkout.BannerNone {
		out.Banner = &bannerDTO{
			Kind:      string(banner.Kind),
			Type:      string(banner.Type),
			SessionID: banner.SessionID,
		}
	}
	return out
}
