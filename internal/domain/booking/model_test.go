package booking

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPendingApproval, StatusConfirmed, true},
		{StatusPendingApproval, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPendingApproval, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s): got=%v want=%v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("approved"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	got, err := ParseStatus("confirmed")
	if err != nil || got != StatusConfirmed {
		t.Fatalf("unexpected parse result: got=%s err=%v", got, err)
	}
}
