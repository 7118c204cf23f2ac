package service

import "testing"

func TestFreeBusyCalendarIDFallsBackToPrimary(t *testing.T) {
	// connections saved when the userinfo fetch failed have no email
	if got := freeBusyCalendarID(""); got != "primary" {
		t.Fatalf("empty email resolved to %q, want %q", got, "primary")
	}
	if got := freeBusyCalendarID("host@example.com"); got != "host@example.com" {
		t.Fatalf("stored email resolved to %q, want it unchanged", got)
	}
}
