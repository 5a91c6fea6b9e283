package league

import "testing"

func TestRegistration_Validate(t *testing.T) {
	if err := (Registration{}).Validate(); err == nil {
		t.Fatalf("expected error for empty registration")
	}
	if err := (Registration{SquadID: "sq-1", UserID: "u1"}).Validate(); err == nil {
		t.Fatalf("expected error for ambiguous registration")
	}
	if err := (Registration{UserID: "u1"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsRegistered(t *testing.T) {
	l := League{SquadIDs: []string{"sq-1"}, FreeAgentIDs: []string{"u9"}}
	if !l.IsRegistered(Registration{SquadID: "sq-1"}) {
		t.Fatalf("expected squad to be registered")
	}
	if !l.IsRegistered(Registration{UserID: "u9"}) {
		t.Fatalf("expected free agent to be registered")
	}
	if l.IsRegistered(Registration{UserID: "sq-1"}) {
		t.Fatalf("user id must not match squad ids")
	}
}
