package service

import (
	"testing"
	"time"

	"meetsync-api/core/errors"
	"meetsync-api/modules/availability/entity"
)

func workWeekTemplate() entity.WeeklySchedule {
	day := entity.DaySchedule{
		Enabled: true,
		Slots:   []entity.SubInterval{{Start: "09:00", End: "17:00"}},
	}
	return entity.WeeklySchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
	}
}

func mondayOnlyTemplate() entity.WeeklySchedule {
	return entity.WeeklySchedule{
		Monday: entity.DaySchedule{
			Enabled: true,
			Slots:   []entity.SubInterval{{Start: "09:00", End: "17:00"}},
		},
	}
}

// 2026-01-05 is a Monday
var (
	testMonday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	longAgo    = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

func TestGenerateSlotsSingleMonday(t *testing.T) {
	gen := NewSlotGenerator()

	slots, err := gen.GenerateSlots(GenerateInput{
		Template:        mondayOnlyTemplate(),
		RangeStart:      testMonday,
		RangeEnd:        testMonday,
		DurationMinutes: 30,
		Now:             longAgo,
		Location:        time.UTC,
	})
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}

	if len(slots) != 16 {
		t.Fatalf("got %d slots, want 16", len(slots))
	}
	first := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	last := time.Date(2026, 1, 5, 16, 30, 0, 0, time.UTC)
	if !slots[0].Start.Equal(first) {
		t.Fatalf("first slot starts %v, want %v", slots[0].Start, first)
	}
	if !slots[len(slots)-1].Start.Equal(last) {
		t.Fatalf("last slot starts %v, want %v", slots[len(slots)-1].Start, last)
	}
}

func TestGenerateSlotsNoTailPartials(t *testing.T) {
	gen := NewSlotGenerator()

	// 09:00-10:45 with 30-minute slots: 09:00, 09:30, 10:00 only
	template := entity.WeeklySchedule{
		Monday: entity.DaySchedule{
			Enabled: true,
			Slots:   []entity.SubInterval{{Start: "09:00", End: "10:45"}},
		},
	}

	slots, err := gen.GenerateSlots(GenerateInput{
		Template:        template,
		RangeStart:      testMonday,
		RangeEnd:        testMonday,
		DurationMinutes: 30,
		Now:             longAgo,
		Location:        time.UTC,
	})
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	wantLast := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	if !slots[2].Start.Equal(wantLast) {
		t.Fatalf("last slot starts %v, want %v", slots[2].Start, wantLast)
	}
}

func TestGenerateSlotsAllDisabledTemplate(t *testing.T) {
	gen := NewSlotGenerator()

	slots, err := gen.GenerateSlots(GenerateInput{
		Template:        entity.WeeklySchedule{},
		RangeStart:      testMonday,
		RangeEnd:        testMonday.AddDate(0, 0, 30),
		DurationMinutes: 30,
		Now:             longAgo,
		Location:        time.UTC,
	})
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("all-disabled template produced %d slots, want 0", len(slots))
	}
}

func TestGenerateSlotsOverrideDisablesDay(t *testing.T) {
	gen := NewSlotGenerator()

	overrides := []entity.AvailabilityOverride{
		{Date: "2026-01-05", Available: false},
	}

	slots, err := gen.GenerateSlots(GenerateInput{
		Template:        mondayOnlyTemplate(),
		Overrides:       overrides,
		RangeStart:      testMonday,
		RangeEnd:        testMonday,
		DurationMinutes: 30,
		Now:             longAgo,
		Location:        time.UTC,
	})
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("disabled override produced %d slots, want 0", len(slots))
	}
}

func TestGenerateSlotsOverrideReplacesSlots(t *testing.T) {
	gen := NewSlotGenerator()

	overrides := []entity.AvailabilityOverride{
		{
			Date:      "2026-01-05",
			Available: true,
			Slots:     entity.SlotList{{Start: "14:00", End: "15:00"}},
		},
	}

	slots, err := gen.GenerateSlots(GenerateInput{
		Template:        mondayOnlyTemplate(),
		Overrides:       overrides,
		RangeStart:      testMonday,
		RangeEnd:        testMonday,
		DurationMinutes: 30,
		Now:             longAgo,
		Location:        time.UTC,
	})
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2 from the override window", len(slots))
	}
	want := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)
	if !slots[0].Start.Equal(want) {
		t.Fatalf("first slot starts %v, want %v", slots[0].Start, want)
	}
}

func TestGenerateSlotsMinimumNotice(t *testing.T) {
	gen := NewSlotGenerator()

	// now is Monday 08:00; 24h notice pushes everything past Monday
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	slots, err := gen.GenerateSlots(GenerateInput{
		Template:        workWeekTemplate(),
		RangeStart:      testMonday,
		RangeEnd:        testMonday.AddDate(0, 0, 1),
		DurationMinutes: 60,
		MinNoticeHours:  24,
		Now:             now,
		Location:        time.UTC,
	})
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}

	for _, slot := range slots {
		if slot.Start.Sub(now) < 24*time.Hour {
			t.Fatalf("slot %v starts within the notice window", slot.Start)
		}
	}
	// Tuesday 09:00-17:00 minus Tuesday slots before 08:00+24h: 09:00..16:00 all >= 24h? Tuesday 09:00 is 25h after now
	if len(slots) != 8 {
		t.Fatalf("got %d slots, want the 8 Tuesday slots", len(slots))
	}
}

func TestGenerateSlotsBufferedConflicts(t *testing.T) {
	gen := NewSlotGenerator()

	busy := []BusyInterval{
		{
			Start:  time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
			End:    time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC),
			Status: "busy",
		},
	}

	noBuffer, err := gen.GenerateSlots(GenerateInput{
		Template:        mondayOnlyTemplate(),
		Busy:            busy,
		RangeStart:      testMonday,
		RangeEnd:        testMonday,
		DurationMinutes: 60,
		Now:             longAgo,
		Location:        time.UTC,
	})
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}
	// 8 hourly slots minus the 10:00 conflict
	if len(noBuffer) != 7 {
		t.Fatalf("got %d slots, want 7", len(noBuffer))
	}
	for _, slot := range noBuffer {
		if slot.Start.Hour() == 10 {
			t.Fatal("conflicting 10:00 slot was not rejected")
		}
	}

	buffered, err := gen.GenerateSlots(GenerateInput{
		Template:            mondayOnlyTemplate(),
		Busy:                busy,
		RangeStart:          testMonday,
		RangeEnd:            testMonday,
		DurationMinutes:     60,
		BufferBeforeMinutes: 30,
		BufferAfterMinutes:  30,
		Now:                 longAgo,
		Location:            time.UTC,
	})
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}
	// buffers also knock out the adjacent 09:00 and 11:00 slots
	if len(buffered) != 5 {
		t.Fatalf("got %d buffered slots, want 5", len(buffered))
	}
	for _, slot := range buffered {
		h := slot.Start.Hour()
		if h == 9 || h == 10 || h == 11 {
			t.Fatalf("slot at %02d:00 should be rejected by buffers", h)
		}
	}
}

func TestGenerateSlotsChronologicalOrder(t *testing.T) {
	gen := NewSlotGenerator()

	slots, err := gen.GenerateSlots(GenerateInput{
		Template:        workWeekTemplate(),
		RangeStart:      testMonday,
		RangeEnd:        testMonday.AddDate(0, 0, 6),
		DurationMinutes: 60,
		Now:             longAgo,
		Location:        time.UTC,
	})
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}

	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.After(slots[i-1].Start) {
			t.Fatalf("slots out of order at %d: %v then %v",
				i, slots[i-1].Start, slots[i].Start)
		}
	}
}

func TestGenerateSlotsFailFast(t *testing.T) {
	gen := NewSlotGenerator()

	cases := []struct {
		name string
		in   GenerateInput
	}{
		{
			"non-positive duration",
			GenerateInput{
				Template:        mondayOnlyTemplate(),
				RangeStart:      testMonday,
				RangeEnd:        testMonday,
				DurationMinutes: 0,
				Now:             longAgo,
				Location:        time.UTC,
			},
		},
		{
			"inverted date range",
			GenerateInput{
				Template:        mondayOnlyTemplate(),
				RangeStart:      testMonday.AddDate(0, 0, 5),
				RangeEnd:        testMonday,
				DurationMinutes: 30,
				Now:             longAgo,
				Location:        time.UTC,
			},
		},
		{
			"malformed time string",
			GenerateInput{
				Template: entity.WeeklySchedule{
					Monday: entity.DaySchedule{
						Enabled: true,
						Slots:   []entity.SubInterval{{Start: "9am", End: "17:00"}},
					},
				},
				RangeStart:      testMonday,
				RangeEnd:        testMonday,
				DurationMinutes: 30,
				Now:             longAgo,
				Location:        time.UTC,
			},
		},
	}

	for _, tc := range cases {
		_, err := gen.GenerateSlots(tc.in)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		appErr, ok := err.(*errors.AppError)
		if !ok || appErr.Code != errors.ErrInvalidScheduleInput {
			t.Fatalf("%s: expected INVALID_SCHEDULE_INPUT, got %v", tc.name, err)
		}
	}
}
