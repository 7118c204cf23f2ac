package service

import (
	"fmt"
	"time"

	"meetsync-api/core/errors"
	"meetsync-api/modules/availability/entity"
)

// BusyInterval is an occupied span checked against generated slots
type BusyInterval struct {
	Start  time.Time
	End    time.Time
	Status string
}

// CandidateSlot is one concretely bookable window
type CandidateSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// daySource tags where a date's effective schedule came from, so the
// override-beats-template rule is resolved once per date and auditable.
type daySource int

const (
	fromTemplate daySource = iota
	fromOverride
)

type effectiveDay struct {
	source   daySource
	enabled  bool
	slots    []entity.SubInterval
	override *entity.AvailabilityOverride
}

// GenerateInput bundles everything GenerateSlots needs. Now is injected so
// minimum-notice filtering stays deterministic under test.
type GenerateInput struct {
	Template            entity.WeeklySchedule
	Overrides           []entity.AvailabilityOverride
	Busy                []BusyInterval
	RangeStart          time.Time // first date, host timezone
	RangeEnd            time.Time // last date, inclusive
	DurationMinutes     int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	MinNoticeHours      int
	Now                 time.Time
	Location            *time.Location
}

// SlotGenerator expands a weekly template plus date overrides into bookable
// slots, subtracting busy intervals with buffers and a minimum-notice cutoff.
type SlotGenerator struct{}

func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{}
}

// GenerateSlots walks every date in the range and emits surviving slots in
// chronological order. Malformed input fails fast rather than producing a
// silently empty result.
func (g *SlotGenerator) GenerateSlots(in GenerateInput) ([]CandidateSlot, error) {
	if in.DurationMinutes <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput,
			"duration must be positive", nil)
	}
	if in.RangeStart.After(in.RangeEnd) {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput,
			"range start is after range end", nil)
	}
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	overridesByDate := make(map[string]*entity.AvailabilityOverride, len(in.Overrides))
	for i := range in.Overrides {
		overridesByDate[in.Overrides[i].Date] = &in.Overrides[i]
	}

	duration := time.Duration(in.DurationMinutes) * time.Minute
	bufferBefore := time.Duration(in.BufferBeforeMinutes) * time.Minute
	bufferAfter := time.Duration(in.BufferAfterMinutes) * time.Minute
	minNotice := time.Duration(in.MinNoticeHours) * time.Hour

	slots := []CandidateSlot{}

	start := dateOnly(in.RangeStart, loc)
	end := dateOnly(in.RangeEnd, loc)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		day := g.resolveDay(in.Template, overridesByDate, date)
		if !day.enabled || len(day.slots) == 0 {
			continue
		}

		for _, sub := range day.slots {
			intervalStart, err := atClock(date, sub.Start, loc)
			if err != nil {
				return nil, err
			}
			intervalEnd, err := atClock(date, sub.End, loc)
			if err != nil {
				return nil, err
			}

			// no partial-duration slot at the interval tail
			for current := intervalStart; !current.Add(duration).After(intervalEnd); current = current.Add(duration) {
				slotEnd := current.Add(duration)

				if current.Sub(in.Now) < minNotice {
					continue
				}
				if g.conflicts(current.Add(-bufferBefore), slotEnd.Add(bufferAfter), in.Busy) {
					continue
				}

				slots = append(slots, CandidateSlot{Start: current, End: slotEnd})
			}
		}
	}

	return slots, nil
}

// resolveDay applies the override-beats-template precedence for one date
func (g *SlotGenerator) resolveDay(template entity.WeeklySchedule, overrides map[string]*entity.AvailabilityOverride, date time.Time) effectiveDay {
	if ov, ok := overrides[date.Format("2006-01-02")]; ok {
		return effectiveDay{
			source:   fromOverride,
			enabled:  ov.Available,
			slots:    ov.Slots,
			override: ov,
		}
	}

	day := template.DayFor(date.Weekday())
	return effectiveDay{
		source:  fromTemplate,
		enabled: day.Enabled,
		slots:   day.Slots,
	}
}

func (g *SlotGenerator) conflicts(windowStart, windowEnd time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if windowStart.Before(b.End) && windowEnd.After(b.Start) {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// atClock combines a date with an "HH:MM" wall-clock string
func atClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidScheduleInput,
			fmt.Sprintf("malformed time %q, want HH:MM", clock), err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}
