package memory

import (
	"time"

	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/match"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/sport"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"github.com/riskibarqy/squadup/internal/domain/venue"
)

const (
	LeagueIDIndoorSixes     = "jam_soccer_winter_2026"
	LeagueIDHoopDome        = "hoopdome_bball_winter"
	LeagueIDLamportSaturday = "xtsc_soccer_saturday"

	SquadIDDanforthFC  = "sq-danforth-fc"
	SquadIDLiberty     = "sq-liberty-village"
	SquadIDNorthYork   = "sq-north-york-ballers"
	SquadIDBloorWest   = "sq-bloor-west-hoops"
	SeedCaptainUserID  = "seed-captain-1"
	SeedCaptainUserID2 = "seed-captain-2"
)

// SeedVenues returns the curated GTA venue list.
func SeedVenues() []venue.Venue {
	v := func(id, name string, sp sport.Sport, address, img string, price float64) venue.Venue {
		return venue.Venue{ID: id, Name: name, Sport: sp, Address: address, ImageName: img, HourlyPrice: price}
	}

	return []venue.Venue{
		v("to_1", "Cherry Beach Sports Fields", sport.Soccer, "275 Unwin Ave, Toronto, ON", "soccerball", 0),
		v("to_2", "Regent Park Athletic Grounds", sport.Soccer, "480 Shuter St, Toronto, ON", "soccerball", 0),
		v("to_3", "Eglinton Flats", sport.Soccer, "3601 Eglinton Ave W, Toronto, ON", "soccerball", 0),
		v("to_4", "Sunnybrook Park", sport.Soccer, "1132 Leslie St, Toronto, ON", "soccerball", 0),
		v("to_5", "Christie Pits Park", sport.Basketball, "750 Bloor St W, Toronto, ON", "basketball", 40),
		v("to_6", "Underpass Park", sport.Basketball, "29 Lower River St, Toronto, ON", "basketball", 35),
		v("to_7", "Mattamy Athletic Centre", sport.Hockey, "50 Carlton St, Toronto, ON", "hockey.puck", 220),
		v("to_8", "Scotiabank Pond", sport.Hockey, "57 Carl Hall Rd, Toronto, ON", "hockey.puck", 190),
		v("to_9", "Withrow Park", sport.Hockey, "725 Logan Ave, Toronto, ON", "hockey.puck", 0),
		v("to_10", "High Park Tennis Club", sport.Tennis, "1873 Bloor St W, Toronto, ON", "tennisball", 30),
		v("to_11", "Trinity Bellwoods Park", sport.Tennis, "790 Queen St W, Toronto, ON", "tennisball", 0),
		v("to_12", "Downsview Park", sport.Soccer, "35 Carl Hall Rd, Toronto, ON", "soccerball", 120),
		v("to_13", "Lamport Stadium", sport.Soccer, "1155 King St W, Toronto, ON", "soccerball", 150),
		v("to_14", "Varsity Stadium", sport.Soccer, "299 Bloor St W, Toronto, ON", "soccerball", 175),
		v("to_15", "Monarch Park Stadium", sport.Soccer, "1 Parkmount Rd, Toronto, ON", "soccerball", 0),
		v("mis_1", "Paramount Fine Foods Centre", sport.Soccer, "5500 Rose Cherry Pl, Mississauga, ON", "soccerball", 160),
		v("mis_2", "Iceland Mississauga", sport.Hockey, "705 Matheson Blvd E, Mississauga, ON", "hockey.puck", 210),
		v("mis_3", "Hershey Centre Fields", sport.Basketball, "5600 Rose Cherry Pl, Mississauga, ON", "basketball", 0),
		v("mis_4", "Mississauga Valley Community Centre", sport.Tennis, "1275 Mississauga Valley Blvd, Mississauga, ON", "tennisball", 0),
		v("mis_5", "Churchill Meadows Community Centre", sport.Soccer, "5320 Ninth Line, Mississauga, ON", "soccerball", 0),
		v("mis_6", "Courtneypark Athletic Fields", sport.Soccer, "600 Courtneypark Dr W, Mississauga, ON", "soccerball", 0),
		v("bram_1", "Save Max Sports Centre", sport.Soccer, "1495 Sandalwood Pkwy E, Brampton, ON", "soccerball", 140),
		v("bram_2", "CAA Centre", sport.Hockey, "7575 Kennedy Rd S, Brampton, ON", "hockey.puck", 0),
		v("bram_3", "Creditview Sandalwood Park", sport.Soccer, "10530 Creditview Rd, Brampton, ON", "soccerball", 0),
		v("bram_4", "Gore Meadows Community Centre", sport.Basketball, "10150 The Gore Rd, Brampton, ON", "basketball", 0),
		v("vau_1", "The Hangar Sport Events Centre", sport.Soccer, "75 Carl Hall Rd, North York, ON", "soccerball", 180),
		v("vau_2", "Zanchin Automotive Soccer Centre", sport.Soccer, "7601 Martin Grove Rd, Vaughan, ON", "soccerball", 0),
		v("mark_1", "Markham Pan Am Centre", sport.Volleyball, "16 Main St Unionville, Markham, ON", "volleyball", 90),
		v("mark_2", "Angus Glen Community Centre", sport.Tennis, "3990 Major Mackenzie Dr E, Markham, ON", "tennisball", 0),
		v("rich_1", "Richmond Green Sports Centre", sport.Soccer, "1300 Elgin Mills Rd E, Richmond Hill, ON", "soccerball", 0),
		v("rich_2", "Elvis Stojko Arena", sport.Hockey, "350 16th Ave, Richmond Hill, ON", "hockey.puck", 0),
	}
}

func SeedLeagues(now time.Time) []league.League {
	day := func(n int) time.Time { return now.Truncate(24*time.Hour).AddDate(0, 0, n).Add(19 * time.Hour) }

	return []league.League{
		{
			ID:             LeagueIDIndoorSixes,
			Name:           "JAM Toronto: Indoor Turf 6s",
			Sport:          sport.Soccer,
			Season:         "Winter 2026",
			Region:         "Toronto, ON",
			EntryFee:       185,
			SpotsRemaining: 12,
			Prize:          "$5,000",
			StartsAt:       day(14),
			Active:         true,
		},
		{
			ID:             LeagueIDHoopDome,
			Name:           "HoopDome House League",
			Sport:          sport.Basketball,
			Season:         "Winter 2026",
			Region:         "North York, ON",
			EntryFee:       210,
			SpotsRemaining: 8,
			Prize:          "$2,500",
			StartsAt:       day(10),
			Active:         true,
		},
		{
			ID:             LeagueIDLamportSaturday,
			Name:           "XTSC: Lamport Saturdays",
			Sport:          sport.Soccer,
			Season:         "Winter 2026",
			Region:         "Toronto, ON",
			EntryFee:       160,
			SpotsRemaining: 0,
			Prize:          "Trophy + Merch",
			SquadIDs:       []string{SquadIDDanforthFC, SquadIDLiberty},
			StartsAt:       day(20),
			Active:         true,
		},
	}
}

func SeedPickups(now time.Time) []pickup.Session {
	at := func(days, hour int) time.Time {
		return now.Truncate(24*time.Hour).AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}

	return []pickup.Session{
		{
			ID:         "pk-downtown-soccer",
			Sport:      sport.Soccer,
			VenueLabel: "Downtown City Pitch",
			StartsAt:   at(1, 20),
			Level:      "Competitive",
			Capacity:   10,
			PlayerIDs:  []string{"p-01", "p-02", "p-03", "p-04", "p-05", "p-06", "p-07", "p-08"},
			Price:      15,
			HostName:   "Alex M.",
		},
		{
			ID:         "pk-raptors-court",
			Sport:      sport.Basketball,
			VenueLabel: "Raptors Community Court",
			StartsAt:   at(2, 18),
			Level:      "Casual",
			Capacity:   10,
			PlayerIDs:  []string{"p-11", "p-12", "p-13"},
			Price:      10,
			HostName:   "Sarah J.",
		},
		{
			ID:         "pk-hangar-futsal",
			Sport:      sport.Soccer,
			VenueLabel: "The Hangar",
			StartsAt:   at(4, 21),
			Level:      "All Levels",
			Capacity:   10,
			PlayerIDs:  []string{"p-21", "p-22", "p-23", "p-24", "p-25", "p-26", "p-27", "p-28", "p-29", "p-30"},
			Price:      12,
			HostName:   "Mike T.",
		},
	}
}

// SeedSquads returns demo squads for the in-memory backend only; squads are
// otherwise created by users.
func SeedSquads(now time.Time) []squad.Squad {
	return []squad.Squad{
		{ID: SquadIDDanforthFC, Name: "Danforth FC", Sport: sport.Soccer, CaptainID: SeedCaptainUserID, CaptainName: "Jordan P.", MemberIDs: []string{SeedCaptainUserID, "p-01", "p-02"}, Wins: 9, Losses: 2, CreatedAt: now.AddDate(0, -3, 0)},
		{ID: SquadIDLiberty, Name: "Liberty Village United", Sport: sport.Soccer, CaptainID: SeedCaptainUserID2, CaptainName: "Priya K.", MemberIDs: []string{SeedCaptainUserID2, "p-03"}, Wins: 7, Losses: 4, CreatedAt: now.AddDate(0, -2, 0)},
		{ID: SquadIDNorthYork, Name: "North York Ballers", Sport: sport.Basketball, CaptainID: "p-11", CaptainName: "Sarah J.", MemberIDs: []string{"p-11", "p-12"}, Wins: 5, Losses: 5, CreatedAt: now.AddDate(0, -1, 0)},
		{ID: SquadIDBloorWest, Name: "Bloor West Hoops", Sport: sport.Basketball, CaptainID: "p-13", CaptainName: "Devon R.", MemberIDs: []string{"p-13"}, Wins: 3, Losses: 6, CreatedAt: now.AddDate(0, -1, 0)},
	}
}

func SeedMatches(now time.Time) []match.Match {
	at := func(days, hour int) time.Time {
		return now.Truncate(24*time.Hour).AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}

	return []match.Match{
		{ID: "m-lamport-1", LeagueID: LeagueIDLamportSaturday, HomeSquadID: SquadIDDanforthFC, AwaySquadID: SquadIDLiberty, VenueLabel: "Lamport Stadium", StartsAt: at(20, 19)},
		{ID: "m-lamport-2", LeagueID: LeagueIDLamportSaturday, HomeSquadID: SquadIDLiberty, AwaySquadID: SquadIDDanforthFC, VenueLabel: "Lamport Stadium", StartsAt: at(27, 19)},
	}
}
