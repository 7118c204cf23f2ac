package service

import (
	"testing"
	"time"

	"meetsync-api/core/errors"
)

func TestClassifyHourPartition(t *testing.T) {
	clock := NewClock()
	working := TimeRange{Start: 9, End: 17}
	sleeping := TimeRange{Start: 23, End: 7}

	for hour := 0; hour < 24; hour++ {
		status := clock.ClassifyHour(hour, working, sleeping)
		if status != StatusWorking && status != StatusSleeping && status != StatusFree {
			t.Fatalf("hour %d: unexpected status %q", hour, status)
		}
	}
}

func TestClassifyHourOvernightRanges(t *testing.T) {
	clock := NewClock()
	working := TimeRange{Start: 9, End: 17}
	sleeping := TimeRange{Start: 23, End: 7}

	cases := []struct {
		hour int
		want Status
	}{
		{0, StatusSleeping},
		{6, StatusSleeping},
		{7, StatusFree},
		{9, StatusWorking},
		{12, StatusWorking},
		{16, StatusWorking},
		{17, StatusFree},
		{20, StatusFree},
		{23, StatusSleeping},
	}
	for _, tc := range cases {
		if got := clock.ClassifyHour(tc.hour, working, sleeping); got != tc.want {
			t.Fatalf("ClassifyHour(%d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}

func TestClassifyHourSleepingWinsOverWorking(t *testing.T) {
	clock := NewClock()
	// overlapping ranges: 6 is both working and sleeping
	working := TimeRange{Start: 5, End: 17}
	sleeping := TimeRange{Start: 23, End: 7}

	if got := clock.ClassifyHour(6, working, sleeping); got != StatusSleeping {
		t.Fatalf("overlapping hour classified as %q, want sleeping", got)
	}
}

func TestLocalHour(t *testing.T) {
	clock := NewClock()
	// 2026-01-15 12:00 UTC = 07:00 in New York (EST, UTC-5)
	instant := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	hour, err := clock.LocalHour(instant, "America/New_York")
	if err != nil {
		t.Fatalf("LocalHour returned error: %v", err)
	}
	if hour != 7 {
		t.Fatalf("LocalHour = %d, want 7", hour)
	}

	hour, err = clock.LocalHour(instant, "Asia/Tokyo")
	if err != nil {
		t.Fatalf("LocalHour returned error: %v", err)
	}
	if hour != 21 {
		t.Fatalf("LocalHour = %d, want 21", hour)
	}
}

func TestLocalHourInvalidTimezoneFailsLoudly(t *testing.T) {
	clock := NewClock()
	_, err := clock.LocalHour(time.Now(), "Invalid/Timezone")
	if err == nil {
		t.Fatal("expected error for invalid timezone")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrInvalidTimezone {
		t.Fatalf("expected INVALID_TIMEZONE app error, got %v", err)
	}
}

func TestOffsetHoursAt(t *testing.T) {
	clock := NewClock()
	winter := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		tz      string
		instant time.Time
		want    int
	}{
		{"UTC", winter, 0},
		{"America/New_York", winter, -5},
		{"America/New_York", summer, -4},
		{"Asia/Tokyo", winter, 9},
		// fractional-hour zone rounds to the nearest whole hour
		{"Asia/Kolkata", winter, 6},
	}
	for _, tc := range cases {
		got, err := clock.OffsetHoursAt(tc.instant, tc.tz)
		if err != nil {
			t.Fatalf("OffsetHoursAt(%s) error: %v", tc.tz, err)
		}
		if got != tc.want {
			t.Fatalf("OffsetHoursAt(%s) = %d, want %d", tc.tz, got, tc.want)
		}
	}
}

func TestIsValidTimezone(t *testing.T) {
	clock := NewClock()
	if clock.IsValidTimezone("") {
		t.Fatal("empty string should be invalid")
	}
	if clock.IsValidTimezone("Invalid/Timezone") {
		t.Fatal("made-up name should be invalid")
	}
	if !clock.IsValidTimezone("Europe/London") {
		t.Fatal("Europe/London should be valid")
	}
	if !clock.IsValidTimezone("UTC") {
		t.Fatal("UTC should be valid")
	}
}

func TestFormatTimezone(t *testing.T) {
	clock := NewClock()
	cases := []struct {
		in   string
		want string
	}{
		{"America/New_York", "New York"},
		{"America/Argentina/Buenos_Aires", "Buenos Aires"},
		{"UTC", "UTC"},
		{"Europe/London", "London"},
	}
	for _, tc := range cases {
		if got := clock.FormatTimezone(tc.in); got != tc.want {
			t.Fatalf("FormatTimezone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
