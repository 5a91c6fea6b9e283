package postgres

import (
	"time"

	"github.com/lib/pq"
)

var venueColumns = []string{"public_id", "name", "address", "sport", "hourly_price", "image_name"}

type venueTableModel struct {
	PublicID    string  `db:"public_id"`
	Name        string  `db:"name"`
	Address     string  `db:"address"`
	Sport       string  `db:"sport"`
	HourlyPrice float64 `db:"hourly_price"`
	ImageName   string  `db:"image_name"`
}

var squadColumns = []string{"public_id", "name", "sport", "captain_id", "captain_name", "member_ids", "wins", "losses", "created_at"}

type squadTableModel struct {
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Sport       string         `db:"sport"`
	CaptainID   string         `db:"captain_id"`
	CaptainName string         `db:"captain_name"`
	MemberIDs   pq.StringArray `db:"member_ids"`
	Wins        int            `db:"wins"`
	Losses      int            `db:"losses"`
	CreatedAt   time.Time      `db:"created_at"`
}

var bookingColumns = []string{
	"public_id", "venue_public_id", "venue_name", "venue_address", "booking_date", "booking_time",
	"starts_at", "requester_id", "status", "checkout_session_id", "created_at",
}

type bookingTableModel struct {
	PublicID          string     `db:"public_id"`
	VenueID           string     `db:"venue_public_id"`
	VenueName         string     `db:"venue_name"`
	VenueAddress      string     `db:"venue_address"`
	Date              string     `db:"booking_date"`
	Time              string     `db:"booking_time"`
	StartsAt          *time.Time `db:"starts_at"`
	RequesterID       string     `db:"requester_id"`
	Status            string     `db:"status"`
	CheckoutSessionID string     `db:"checkout_session_id"`
	CreatedAt         time.Time  `db:"created_at"`
}

var pickupColumns = []string{"public_id", "sport", "venue_label", "starts_at", "level", "capacity", "player_ids", "price", "host_name"}

type pickupTableModel struct {
	PublicID   string         `db:"public_id"`
	Sport      string         `db:"sport"`
	VenueLabel string         `db:"venue_label"`
	StartsAt   time.Time      `db:"starts_at"`
	Level      string         `db:"level"`
	Capacity   int            `db:"capacity"`
	PlayerIDs  pq.StringArray `db:"player_ids"`
	Price      float64        `db:"price"`
	HostName   string         `db:"host_name"`
}

var leagueColumns = []string{
	"public_id", "name", "sport", "season", "region", "entry_fee", "spots_remaining",
	"prize", "squad_ids", "free_agent_ids", "starts_at", "active",
}

type leagueTableModel struct {
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	Sport          string         `db:"sport"`
	Season         string         `db:"season"`
	Region         string         `db:"region"`
	EntryFee       float64        `db:"entry_fee"`
	SpotsRemaining int            `db:"spots_remaining"`
	Prize          string         `db:"prize"`
	SquadIDs       pq.StringArray `db:"squad_ids"`
	FreeAgentIDs   pq.StringArray `db:"free_agent_ids"`
	StartsAt       *time.Time     `db:"starts_at"`
	Active         bool           `db:"active"`
}

var matchColumns = []string{"public_id", "league_public_id", "home_squad_id", "away_squad_id", "venue_label", "starts_at"}

type matchTableModel struct {
	PublicID    string    `db:"public_id"`
	LeagueID    string    `db:"league_public_id"`
	HomeSquadID string    `db:"home_squad_id"`
	AwaySquadID string    `db:"away_squad_id"`
	VenueLabel  string    `db:"venue_label"`
	StartsAt    time.Time `db:"starts_at"`
}
