package mongostore

import (
	"testing"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/booking"
	"github.com/riskibarqy/squadup/internal/domain/league"
	"github.com/riskibarqy/squadup/internal/domain/pickup"
	"github.com/riskibarqy/squadup/internal/domain/squad"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBookingDocument_UnparsedStartStoredAsNull(t *testing.T) {
	doc := bookingToDocument(booking.Booking{ID: "cs_1", Date: "someday", Time: "later", Status: booking.StatusPendingApproval})
	if doc.StartsAt != nil {
		t.Fatalf("expected nil startsAt, got %v", doc.StartsAt)
	}
	if got := doc.toDomain(); !got.StartsAt.IsZero() {
		t.Fatalf("expected zero start after decode, got %v", got.StartsAt)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal booking: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal booking: %v", err)
	}
	if v, ok := m["startsAt"]; !ok || v != nil {
		t.Fatalf("expected explicit null startsAt, got=%v present=%v", v, ok)
	}
	if _, ok := m["checkoutSessionId"]; ok {
		t.Fatalf("expected empty checkout session id to be omitted")
	}
}

func TestBookingDocument_StartInUTC(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	startsAt := time.Date(2026, 1, 10, 19, 0, 0, 0, loc)
	doc := bookingToDocument(booking.Booking{ID: "b1", StartsAt: startsAt})
	if doc.StartsAt == nil || doc.StartsAt.Location() != time.UTC {
		t.Fatalf("expected UTC start, got %v", doc.StartsAt)
	}
	if !doc.toDomain().StartsAt.Equal(startsAt) {
		t.Fatalf("unexpected start: got=%v want=%v", doc.toDomain().StartsAt, startsAt)
	}
}

func TestPickupDocument_EmptyRosterIsArray(t *testing.T) {
	doc := pickupToDocument(pickup.Session{ID: "pk-1", Capacity: 10})
	if doc.PlayerIDs == nil || len(doc.PlayerIDs) != 0 {
		t.Fatalf("expected empty non-nil roster, got %#v", doc.PlayerIDs)
	}
}

func TestJoinFilter(t *testing.T) {
	f := joinFilter("pk-1", "u1")
	if f["_id"] != "pk-1" {
		t.Fatalf("unexpected id: %v", f["_id"])
	}
	players, ok := f["players"].(bson.M)
	if !ok || players["$ne"] != "u1" {
		t.Fatalf("expected players $ne guard, got %v", f["players"])
	}
	expr, ok := f["$expr"].(bson.M)
	if !ok {
		t.Fatalf("expected $expr capacity guard, got %v", f["$expr"])
	}
	lt, ok := expr["$lt"].(bson.A)
	if !ok || len(lt) != 2 || lt[1] != "$maxPlayers" {
		t.Fatalf("unexpected capacity guard: %v", expr)
	}
}

func TestPickupUpsertPipeline_KeepsStoredRoster(t *testing.T) {
	doc := pickupToDocument(pickup.Session{ID: "pk-1", Capacity: 10, PlayerIDs: []string{"p1"}})
	pipeline := pickupUpsertPipeline(doc)
	if len(pipeline) != 1 || pipeline[0][0].Key != "$set" {
		t.Fatalf("unexpected pipeline: %v", pipeline)
	}
	set := pipeline[0][0].Value.(bson.M)
	roster, ok := set["players"].(bson.M)
	if !ok {
		t.Fatalf("expected players expression, got %v", set["players"])
	}
	ifNull := roster["$ifNull"].(bson.A)
	if ifNull[0] != "$players" {
		t.Fatalf("expected stored roster first, got %v", ifNull[0])
	}
	if _, ok := set["maxPlayers"].(bson.M)["$max"]; !ok {
		t.Fatalf("expected capacity to use $max, got %v", set["maxPlayers"])
	}
}

func TestRegistrationField(t *testing.T) {
	field, key := registrationField(league.Registration{UserID: "u1"})
	if field != "freeAgents" || key != "u1" {
		t.Fatalf("unexpected individual field: got=%s/%s", field, key)
	}
	field, key = registrationField(league.Registration{SquadID: "sq-1"})
	if field != "squads" || key != "sq-1" {
		t.Fatalf("unexpected squad field: got=%s/%s", field, key)
	}
}

func TestSameSquads(t *testing.T) {
	a := []squad.Squad{{ID: "sq-1", MemberIDs: []string{"u1", "u2"}}}
	b := []squad.Squad{{ID: "sq-1", MemberIDs: []string{"u1", "u2"}}}
	if !sameSquads(a, b) {
		t.Fatalf("expected equal snapshots")
	}
	b[0].MemberIDs = []string{"u1"}
	if sameSquads(a, b) {
		t.Fatalf("expected roster change to be detected")
	}
	if sameSquads(a, nil) {
		t.Fatalf("expected removal to be detected")
	}
}
