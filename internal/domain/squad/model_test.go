package squad

import (
	"strings"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "  Danforth   FC ", want: "Danforth FC"},
		{name: "markup stripped", in: "<b>Night</b> <script>x()</script>Owls", want: "Night Owls"},
		{name: "entity kept readable", in: "Rock & Roll", want: "Rock & Roll"},
		{name: "only markup", in: "<i></i>", wantErr: true},
		{name: "too long", in: strings.Repeat("a", MaxNameLength+1), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeName(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected name: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestValidate_RequiresCaptainMembership(t *testing.T) {
	s := Squad{ID: "sq-1", Name: "Owls", Sport: "Soccer", CaptainID: "u1", MemberIDs: []string{"u2"}}
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error when captain is not a member")
	}
	s.MemberIDs = append(s.MemberIDs, "u1")
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSortLeaderboard(t *testing.T) {
	items := []Squad{
		{Name: "B", Wins: 3, Losses: 2},
		{Name: "A", Wins: 3, Losses: 2},
		{Name: "C", Wins: 5},
		{Name: "D", Wins: 3, Losses: 1},
	}
	SortLeaderboard(items)
	got := []string{items[0].Name, items[1].Name, items[2].Name, items[3].Name}
	want := []string{"C", "D", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got=%v want=%v", got, want)
		}
	}
}
