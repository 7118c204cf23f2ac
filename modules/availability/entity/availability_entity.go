package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	coreEntity "meetsync-api/core/entity"

	"github.com/google/uuid"
)

// SubInterval is one bookable window inside a day, "HH:MM" in the
// schedule's declared timezone.
type SubInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule is the weekly availability for one weekday
type DaySchedule struct {
	Enabled bool          `json:"enabled"`
	Slots   []SubInterval `json:"slots"`
}

// WeeklySchedule is the recurring template, one entry per weekday.
// Stored as a jsonb column.
type WeeklySchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DayFor returns the template entry for a weekday
func (w WeeklySchedule) DayFor(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

func (w WeeklySchedule) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *WeeklySchedule) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("weekly schedule: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, w)
}

// SlotList is a jsonb list of sub-intervals used by overrides
type SlotList []SubInterval

func (s SlotList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]SubInterval{})
	}
	return json.Marshal(s)
}

func (s *SlotList) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("slot list: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, s)
}

// AvailabilityOverride replaces the weekly template for one calendar date.
// At most one override exists per date within a schedule.
type AvailabilityOverride struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	Available bool     `json:"available"`
	Slots     SlotList `json:"slots"`
}

// OverrideList is the jsonb set of a schedule's date overrides, kept
// sorted by date ascending.
type OverrideList []AvailabilityOverride

// Upsert replaces any override with the same date and keeps the list
// date-sorted.
func (l OverrideList) Upsert(ov AvailabilityOverride) OverrideList {
	out := make(OverrideList, 0, len(l)+1)
	for _, existing := range l {
		if existing.Date != ov.Date {
			out = append(out, existing)
		}
	}
	out = append(out, ov)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Remove drops the override for a date; removing an absent date is a no-op.
func (l OverrideList) Remove(date string) OverrideList {
	out := make(OverrideList, 0, len(l))
	for _, existing := range l {
		if existing.Date != date {
			out = append(out, existing)
		}
	}
	return out
}

func (l OverrideList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]AvailabilityOverride{})
	}
	return json.Marshal(l)
}

func (l *OverrideList) Scan(value any) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("override list: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, l)
}

// AvailabilitySchedule is a named recurring availability owned by a host.
// A host may keep several; exactly one is the default used when a booking
// link does not reference a specific schedule.
type AvailabilitySchedule struct {
	coreEntity.BaseEntity
	UserID    uuid.UUID      `db:"user_id" json:"user_id"`
	Name      string         `db:"name" json:"name"`
	Timezone  string         `db:"timezone" json:"timezone"`
	Weekly    WeeklySchedule `db:"weekly" json:"weekly"`
	Overrides OverrideList   `db:"overrides" json:"overrides"`
	IsDefault bool           `db:"is_default" json:"is_default"`
}
