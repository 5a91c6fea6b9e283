package mongostore

import (
	"slices"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/booking"
	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/match"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/sport"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/domain/venue"
)

// Collection names are shared with other clients of the same database.
const (
	CollectionVenues   = "venues"
	CollectionSquads   = "squads"
	CollectionBookings = "bookings"
	CollectionPickups  = "pickup_sessions"
	CollectionLeagues  = "leagues"
	CollectionMatches  = "matches"
)

type venueDocument struct {
	ID          string  `bson:"_id"`
	Name        string  `bson:"name"`
	Address     string  `bson:"address"`
	Sport       string  `bson:"sport"`
	HourlyPrice float64 `bson:"price"`
	ImageName   string  `bson:"imageName"`
}

func venueToDocument(v venue.Venue) venueDocument {
	return venueDocument{
		ID:          v.ID,
		Name:        v.Name,
		Address:     v.Address,
		Sport:       string(v.Sport),
		HourlyPrice: v.HourlyPrice,
		ImageName:   v.ImageName,
	}
}

func (d venueDocument) toDomain() venue.Venue {
	return venue.Venue{
		ID:          d.ID,
		Name:        d.Name,
		Address:     d.Address,
		Sport:       sport.Sport(d.Sport),
		HourlyPrice: d.HourlyPrice,
		ImageName:   d.ImageName,
	}
}

type squadDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Sport       string    `bson:"sport"`
	CaptainID   string    `bson:"captainId"`
	CaptainName string    `bson:"captainName"`
	MemberIDs   []string  `bson:"members"`
	Wins        int       `bson:"wins"`
	Losses      int       `bson:"losses"`
	CreatedAt   time.Time `bson:"createdAt"`
}

func squadToDocument(s squad.Squad) squadDocument {
	return squadDocument{
		ID:          s.ID,
		Name:        s.Name,
		Sport:       string(s.Sport),
		CaptainID:   s.CaptainID,
		CaptainName: s.CaptainName,
		MemberIDs:   nonNil(s.MemberIDs),
		Wins:        s.Wins,
		Losses:      s.Losses,
		CreatedAt:   s.CreatedAt.UTC(),
	}
}

func (d squadDocument) toDomain() squad.Squad {
	return squad.Squad{
		ID:          d.ID,
		Name:        d.Name,
		Sport:       sport.Sport(d.Sport),
		CaptainID:   d.CaptainID,
		CaptainName: d.CaptainName,
		MemberIDs:   slices.Clone(d.MemberIDs),
		Wins:        d.Wins,
		Losses:      d.Losses,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type bookingDocument struct {
	ID                string     `bson:"_id"`
	VenueID           string     `bson:"venueId"`
	VenueName         string     `bson:"venueName"`
	VenueAddress      string     `bson:"venueAddress"`
	Date              string     `bson:"date"`
	Time              string     `bson:"time"`
	StartsAt          *time.Time `bson:"startsAt"`
	RequesterID       string     `bson:"userId"`
	Status            string     `bson:"status"`
	CheckoutSessionID string     `bson:"checkoutSessionId,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt"`
}

func bookingToDocument(b booking.Booking) bookingDocument {
	doc := bookingDocument{
		ID:                b.ID,
		VenueID:           b.VenueID,
		VenueName:         b.VenueName,
		VenueAddress:      b.VenueAddress,
		Date:              b.Date,
		Time:              b.Time,
		RequesterID:       b.RequesterID,
		Status:            string(b.Status),
		CheckoutSessionID: b.CheckoutSessionID,
		CreatedAt:         b.CreatedAt.UTC(),
	}
	if !b.StartsAt.IsZero() {
		startsAt := b.StartsAt.UTC()
		doc.StartsAt = &startsAt
	}
	return doc
}

func (d bookingDocument) toDomain() booking.Booking {
	b := booking.Booking{
		ID:                d.ID,
		VenueID:           d.VenueID,
		VenueName:         d.VenueName,
		VenueAddress:      d.VenueAddress,
		Date:              d.Date,
		Time:              d.Time,
		RequesterID:       d.RequesterID,
		Status:            booking.Status(d.Status),
		CheckoutSessionID: d.CheckoutSessionID,
		CreatedAt:         d.CreatedAt.UTC(),
	}
	if d.StartsAt != nil {
		b.StartsAt = d.StartsAt.UTC()
	}
	return b
}

type pickupDocument struct {
	ID         string    `bson:"_id"`
	Sport      string    `bson:"sport"`
	VenueLabel string    `bson:"venue"`
	StartsAt   time.Time `bson:"startsAt"`
	Level      string    `bson:"level"`
	Capacity   int       `bson:"maxPlayers"`
	PlayerIDs  []string  `bson:"players"`
	Price      float64   `bson:"price"`
	HostName   string    `bson:"hostName"`
}

func pickupToDocument(s pickup.Session) pickupDocument {
	return pickupDocument{
		ID:         s.ID,
		Sport:      string(s.Sport),
		VenueLabel: s.VenueLabel,
		StartsAt:   s.StartsAt.UTC(),
		Level:      s.Level,
		Capacity:   s.Capacity,
		PlayerIDs:  nonNil(s.PlayerIDs),
		Price:      s.Price,
		HostName:   s.HostName,
	}
}

func (d pickupDocument) toDomain() pickup.Session {
	return pickup.Session{
		ID:         d.ID,
		Sport:      sport.Sport(d.Sport),
		VenueLabel: d.VenueLabel,
		StartsAt:   d.StartsAt.UTC(),
		Level:      d.Level,
		Capacity:   d.Capacity,
		PlayerIDs:  slices.Clone(d.PlayerIDs),
		Price:      d.Price,
		HostName:   d.HostName,
	}
}

type leagueDocument struct {
	ID             string     `bson:"_id"`
	Name           string     `bson:"name"`
	Sport          string     `bson:"sport"`
	Season         string     `bson:"season"`
	Region         string     `bson:"region"`
	EntryFee       float64    `bson:"entryFee"`
	SpotsRemaining int        `bson:"spotsRemaining"`
	Prize          string     `bson:"prize"`
	SquadIDs       []string   `bson:"squads"`
	FreeAgentIDs   []string   `bson:"freeAgents"`
	StartsAt       *time.Time `bson:"startsAt"`
	Active         bool       `bson:"active"`
}

func leagueToDocument(l league.League) leagueDocument {
	doc := leagueDocument{
		ID:             l.ID,
		Name:           l.Name,
		Sport:          string(l.Sport),
		Season:         l.Season,
		Region:         l.Region,
		EntryFee:       l.EntryFee,
		SpotsRemaining: l.SpotsRemaining,
		Prize:          l.Prize,
		SquadIDs:       nonNil(l.SquadIDs),
		FreeAgentIDs:   nonNil(l.FreeAgentIDs),
		Active:         l.Active,
	}
	if !l.StartsAt.IsZero() {
		startsAt := l.StartsAt.UTC()
		doc.StartsAt = &startsAt
	}
	return doc
}

func (d leagueDocument) toDomain() league.League {
	l := league.League{
		ID:             d.ID,
		Name:           d.Name,
		Sport:          sport.Sport(d.Sport),
		Season:         d.Season,
		Region:         d.Region,
		EntryFee:       d.EntryFee,
		SpotsRemaining: d.SpotsRemaining,
		Prize:          d.Prize,
		SquadIDs:       slices.Clone(d.SquadIDs),
		FreeAgentIDs:   slices.Clone(d.FreeAgentIDs),
		Active:         d.Active,
	}
	if d.StartsAt != nil {
		l.StartsAt = d.StartsAt.UTC()
	}
	return l
}

type matchDocument struct {
	ID          string    `bson:"_id"`
	LeagueID    string    `bson:"leagueId"`
	HomeSquadID string    `bson:"homeSquadId"`
	AwaySquadID string    `bson:"awaySquadId"`
	VenueLabel  string    `bson:"venue"`
	StartsAt    time.Time `bson:"startsAt"`
}

func matchToDocument(m match.Match) matchDocument {
	return matchDocument{
		ID:          m.ID,
		LeagueID:    m.LeagueID,
		HomeSquadID: m.HomeSquadID,
		AwaySquadID: m.AwaySquadID,
		VenueLabel:  m.VenueLabel,
		StartsAt:    m.StartsAt.UTC(),
	}
}

func (d matchDocument) toDomain() match.Match {
	return match.Match{
		ID:          d.ID,
		LeagueID:    d.LeagueID,
		HomeSquadID: d.HomeSquadID,
		AwaySquadID: d.AwaySquadID,
		VenueLabel:  d.VenueLabel,
		StartsAt:    d.StartsAt.UTC(),
	}
}

// nonNil keeps empty arrays stored as [] so $size and $push work on them.
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}
