package service

import (
	"testing"
	"time"

	"meetsync-api/core/errors"
	tzservice "meetsync-api/modules/timezone/service"
)

func newScorer() *MeetingScorer {
	return NewMeetingScorer(tzservice.NewClock())
}

func TestScorePrimeTimeWithinWorkingHours(t *testing.T) {
	scorer := newScorer()
	// 15:00 UTC winter = 10:00 in New York
	start := time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "America/New_York"},
	}
	constraints := MeetingConstraints{RespectWorkingHours: true}

	result, err := scorer.Score(start, end, "UTC", participants, nil, constraints)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	// participant: 100 + 10 prime-time = 110, aggregate (100+110)/2 = 105
	if result.PerParticipant["p1"] != 110 {
		t.Fatalf("per-participant score = %d, want 110", result.PerParticipant["p1"])
	}
	if result.Score != 105 {
		t.Fatalf("aggregate score = %d, want 105", result.Score)
	}
	if result.Conflict {
		t.Fatal("unexpected conflict flag")
	}
}

func TestScoreMinimizeTimezoneImpactBonus(t *testing.T) {
	scorer := newScorer()
	start := time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "America/New_York"},
	}
	constraints := MeetingConstraints{
		RespectWorkingHours:    true,
		MinimizeTimezoneImpact: true,
	}

	result, err := scorer.Score(start, end, "UTC", participants, nil, constraints)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	// 105 + 15 low-impact bonus
	if result.Score != 120 {
		t.Fatalf("aggregate score = %d, want 120", result.Score)
	}
}

func TestScoreEarlyMorningPenaltiesStack(t *testing.T) {
	scorer := newScorer()
	// 20:00 UTC = 05:00 next day in Tokyo (UTC+9)
	start := time.Date(2026, 1, 15, 20, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	participants := []Participant{
		{ID: "p1", Name: "Kenji", Timezone: "Asia/Tokyo"},
	}
	constraints := MeetingConstraints{RespectWorkingHours: true}

	result, err := scorer.Score(start, end, "UTC", participants, nil, constraints)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	// 100 - 50 outside hours - 30 very early = 20, aggregate (100+20)/2 = 60
	if result.PerParticipant["p1"] != 20 {
		t.Fatalf("per-participant score = %d, want 20", result.PerParticipant["p1"])
	}
	if result.Score != 60 {
		t.Fatalf("aggregate score = %d, want 60", result.Score)
	}
}

func TestScoreLunchPenalty(t *testing.T) {
	scorer := newScorer()
	start := time.Date(2026, 1, 15, 12, 30, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "UTC"},
	}

	withLunch, err := scorer.Score(start, end, "UTC", participants, nil,
		MeetingConstraints{AvoidLunchHours: true})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	withoutLunch, err := scorer.Score(start, end, "UTC", participants, nil,
		MeetingConstraints{})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	if withoutLunch.Score-withLunch.Score != 5 {
		// a 10-point participant penalty averaged over host + 1 participant
		t.Fatalf("lunch penalty changed aggregate by %d, want 5",
			withoutLunch.Score-withLunch.Score)
	}
}

func TestScoreRequesterPreferenceBonuses(t *testing.T) {
	scorer := newScorer()
	// 10:00 UTC, requester in UTC: morning window
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "UTC"},
	}

	base, err := scorer.Score(start, end, "UTC", participants, nil, MeetingConstraints{})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	morning, err := scorer.Score(start, end, "UTC", participants, nil,
		MeetingConstraints{PreferMorning: true})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	afternoon, err := scorer.Score(start, end, "UTC", participants, nil,
		MeetingConstraints{PreferAfternoon: true})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	if morning.Score != base.Score+10 {
		t.Fatalf("morning bonus: got %d, want %d", morning.Score, base.Score+10)
	}
	if afternoon.Score != base.Score {
		t.Fatalf("afternoon bonus applied outside its window: got %d, want %d",
			afternoon.Score, base.Score)
	}
}

func TestScoreEmptyParticipantsIsNeutral(t *testing.T) {
	scorer := newScorer()
	start := time.Date(2026, 1, 15, 3, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	result, err := scorer.Score(start, end, "UTC", nil, nil,
		MeetingConstraints{RespectWorkingHours: true, MinimizeTimezoneImpact: true})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if result.Score != 100 {
		t.Fatalf("empty participant set score = %d, want neutral 100", result.Score)
	}
}

func TestScoreConflictForcesZero(t *testing.T) {
	scorer := newScorer()
	start := time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "America/New_York"},
	}
	busy := []BusyInterval{
		{Start: start.Add(30 * time.Minute), End: start.Add(90 * time.Minute), Status: "busy"},
	}

	result, err := scorer.Score(start, end, "UTC", participants, busy, MeetingConstraints{})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if result.Score != 0 || !result.Conflict {
		t.Fatalf("conflicting candidate: score=%d conflict=%v, want 0/true",
			result.Score, result.Conflict)
	}

	// touching intervals do not conflict under the strict test
	touching := []BusyInterval{{Start: end, End: end.Add(time.Hour), Status: "busy"}}
	result, err = scorer.Score(start, end, "UTC", participants, touching, MeetingConstraints{})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if result.Conflict {
		t.Fatal("back-to-back interval flagged as conflict")
	}
}

func TestScoreInvalidTimezoneFailsLoudly(t *testing.T) {
	scorer := newScorer()
	start := time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC)

	participants := []Participant{
		{ID: "p1", Name: "Ghost", Timezone: "Invalid/Timezone"},
	}

	_, err := scorer.Score(start, start.Add(time.Hour), "UTC", participants, nil, MeetingConstraints{})
	if err == nil {
		t.Fatal("expected error for invalid participant timezone")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrInvalidTimezone {
		t.Fatalf("expected INVALID_TIMEZONE app error, got %v", err)
	}
}

func TestClassifyParticipant(t *testing.T) {
	scorer := newScorer()
	// 08:00 UTC winter = 03:00 in New York: outside hours and very early
	start := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	cls, err := scorer.ClassifyParticipant(start, Participant{
		ID: "p1", Name: "Alice", Timezone: "America/New_York",
	})
	if err != nil {
		t.Fatalf("ClassifyParticipant returned error: %v", err)
	}
	if cls.Status != ParticipantOutsideHours {
		t.Fatalf("status = %q, want outside_hours", cls.Status)
	}
	if len(cls.Reasons) != 2 {
		t.Fatalf("reasons = %v, want both working-hours and early/late reasons", cls.Reasons)
	}
	if cls.Reasons[0] != "Outside working hours (9:00-17:00)" {
		t.Fatalf("first reason = %q", cls.Reasons[0])
	}
	if cls.Reasons[1] != "Very early/late local time" {
		t.Fatalf("second reason = %q", cls.Reasons[1])
	}

	// 15:00 UTC = 10:00 New York: available, no reasons
	cls, err = scorer.ClassifyParticipant(start.Add(7*time.Hour), Participant{
		ID: "p1", Name: "Alice", Timezone: "America/New_York",
	})
	if err != nil {
		t.Fatalf("ClassifyParticipant returned error: %v", err)
	}
	if cls.Status != ParticipantAvailable || len(cls.Reasons) != 0 {
		t.Fatalf("status=%q reasons=%v, want available with no reasons", cls.Status, cls.Reasons)
	}
}

func TestExplainBands(t *testing.T) {
	scorer := newScorer()
	cases := []struct {
		score int
		want  string
	}{
		{95, "Optimal time, within working hours for all participants"},
		{90, "Optimal time, within working hours for all participants"},
		{75, "Good time, works well for most participants"},
		{55, "Acceptable time, may be early or late for some participants"},
		{10, "Possible time, outside working hours for some participants"},
	}
	for _, tc := range cases {
		if got := scorer.Explain(tc.score); got != tc.want {
			t.Fatalf("Explain(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
