package service

import (
	"reflect"
	"testing"

	tzservice "meetsync-api/modules/timezone/service"
)

func newFinder() *BestTimeFinder {
	return NewBestTimeFinder(tzservice.NewClock())
}

func TestFindBestHoursSingleUTCParticipant(t *testing.T) {
	finder := newFinder()
	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "UTC"},
	}

	result, err := finder.FindBestHours(participants, "UTC", 1)
	if err != nil {
		t.Fatalf("FindBestHours returned error: %v", err)
	}

	if len(result.Slots) != 5 {
		t.Fatalf("got %d slots, want 5", len(result.Slots))
	}
	// working hours 9-17 score highest; stable sort keeps hour order
	wantHours := []int{9, 10, 11, 12, 13}
	for i, slot := range result.Slots {
		if slot.Hour != wantHours[i] {
			t.Fatalf("slot %d hour = %d, want %d", i, slot.Hour, wantHours[i])
		}
		if slot.Score != 2 {
			t.Fatalf("slot %d score = %d, want 2", i, slot.Score)
		}
	}
	if !result.HasFullOverlap {
		t.Fatal("single participant inside working hours should yield full overlap")
	}
}

func TestFindBestHoursCrossTimezoneScenario(t *testing.T) {
	finder := newFinder()
	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "America/New_York"},
		{ID: "p2", Name: "Kenji", Timezone: "Asia/Tokyo"},
	}

	result, err := finder.FindBestHours(participants, "UTC", 1)
	if err != nil {
		t.Fatalf("FindBestHours returned error: %v", err)
	}

	if len(result.Slots) != 5 {
		t.Fatalf("got %d slots, want 5", len(result.Slots))
	}
	prev := result.Slots[0].Score
	for _, slot := range result.Slots {
		if slot.Score > prev {
			t.Fatalf("slots not sorted descending: %d after %d", slot.Score, prev)
		}
		prev = slot.Score
		if slot.Score < 0 || slot.Score > 4 {
			t.Fatalf("score %d out of range [0,4] for two participants", slot.Score)
		}
		if len(slot.Statuses) != 2 {
			t.Fatalf("slot has %d statuses, want 2", len(slot.Statuses))
		}
	}
}

func TestFindBestHoursIdempotent(t *testing.T) {
	finder := newFinder()
	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "America/New_York"},
		{ID: "p2", Name: "Kenji", Timezone: "Asia/Tokyo"},
		{ID: "p3", Name: "Mia", Timezone: "Europe/London"},
	}

	first, err := finder.FindBestHours(participants, "UTC", 1)
	if err != nil {
		t.Fatalf("FindBestHours returned error: %v", err)
	}
	second, err := finder.FindBestHours(participants, "UTC", 1)
	if err != nil {
		t.Fatalf("FindBestHours returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different ranked output")
	}
}

func TestFindBestHoursCustomWorkingHours(t *testing.T) {
	finder := newFinder()
	// night-shift worker: working 0-8 UTC
	participants := []Participant{
		{
			ID: "p1", Name: "Nox", Timezone: "UTC",
			WorkingHours: &tzservice.TimeRange{Start: 0, End: 8},
		},
	}

	result, err := finder.FindBestHours(participants, "UTC", 1)
	if err != nil {
		t.Fatalf("FindBestHours returned error: %v", err)
	}

	// sleeping (23-7) wins over the 0-8 working range; only hour 7 is working
	if result.Slots[0].Hour != 7 || result.Slots[0].Score != 2 {
		t.Fatalf("top slot = hour %d score %d, want hour 7 score 2",
			result.Slots[0].Hour, result.Slots[0].Score)
	}
	if !result.HasFullOverlap {
		t.Fatal("hour 7 has the only participant working, expected full overlap")
	}
}

func TestFindBestHoursEmptyParticipants(t *testing.T) {
	finder := newFinder()

	result, err := finder.FindBestHours(nil, "UTC", 1)
	if err != nil {
		t.Fatalf("FindBestHours returned error: %v", err)
	}
	if len(result.Slots) != 5 {
		t.Fatalf("got %d slots, want 5", len(result.Slots))
	}
	for _, slot := range result.Slots {
		if slot.Score != 0 {
			t.Fatalf("empty participant set produced score %d, want 0", slot.Score)
		}
	}
	if result.HasFullOverlap {
		t.Fatal("empty participant set cannot have full overlap")
	}
}

func TestFindBestHoursInvalidReferenceTimezone(t *testing.T) {
	finder := newFinder()
	_, err := finder.FindBestHours(nil, "Not/AZone", 1)
	if err == nil {
		t.Fatal("expected error for invalid reference timezone")
	}
}

func TestFindOverlapWindowsSingleUTCParticipant(t *testing.T) {
	finder := newFinder()
	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "UTC"},
	}

	windows, err := finder.FindOverlapWindows(participants, "UTC")
	if err != nil {
		t.Fatalf("FindOverlapWindows returned error: %v", err)
	}

	// default working hours 9-17 in the reference zone
	if len(windows) != 8 {
		t.Fatalf("got %d windows, want 8", len(windows))
	}
	for i, w := range windows {
		if w.Hour != 9+i {
			t.Fatalf("window %d hour = %d, want %d", i, w.Hour, 9+i)
		}
		if w.WorkingCount != 1 || w.Participants != 1 {
			t.Fatalf("window %d counts = %d/%d, want 1/1", i, w.WorkingCount, w.Participants)
		}
	}
}

func TestFindOverlapWindowsHalfThreshold(t *testing.T) {
	finder := newFinder()
	// one standard 9-17 worker and one night shift; a window only needs
	// half the participants working, so both spans qualify
	participants := []Participant{
		{ID: "p1", Name: "Alice", Timezone: "UTC"},
		{
			ID: "p2", Name: "Nox", Timezone: "UTC",
			WorkingHours: &tzservice.TimeRange{Start: 0, End: 8},
		},
	}

	windows, err := finder.FindOverlapWindows(participants, "UTC")
	if err != nil {
		t.Fatalf("FindOverlapWindows returned error: %v", err)
	}

	got := make(map[int]bool, len(windows))
	for _, w := range windows {
		got[w.Hour] = true
	}
	for hour := 0; hour < 8; hour++ {
		if !got[hour] {
			t.Fatalf("hour %d should qualify via the night-shift participant", hour)
		}
	}
	for hour := 9; hour < 17; hour++ {
		if !got[hour] {
			t.Fatalf("hour %d should qualify via the day-shift participant", hour)
		}
	}
	if got[8] || got[17] {
		t.Fatal("hours with nobody working should not qualify")
	}
}

func TestFindOverlapWindowsEmptyParticipants(t *testing.T) {
	finder := newFinder()

	windows, err := finder.FindOverlapWindows(nil, "UTC")
	if err != nil {
		t.Fatalf("FindOverlapWindows returned error: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("empty participant set produced %d windows, want 0", len(windows))
	}
}
