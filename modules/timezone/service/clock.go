package service

import (
	"fmt"
	"strings"
	"time"

	"meetsync-api/core/errors"
)

// Status classifies an hour of a participant's local day
type Status string

const (
	StatusWorking  Status = "working"
	StatusSleeping Status = "sleeping"
	StatusFree     Status = "free"
)

// TimeRange is a pair of integer hours in [0,24). Start > End denotes an
// overnight span, e.g. sleeping hours 23 -> 7.
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether hour falls inside the range, honouring wrap:
// when Start > End the range means hour >= Start OR hour < End.
func (r TimeRange) Contains(hour int) bool {
	if r.Start > r.End {
		return hour >= r.Start || hour < r.End
	}
	return hour >= r.Start && hour < r.End
}

// Clock converts instants into local wall-clock hours for named IANA
// timezones and classifies hours against working/sleeping ranges.
type Clock struct{}

func NewClock() *Clock {
	return &Clock{}
}

// LocalHour projects an instant into the wall-clock hour for the named
// timezone using full IANA/DST rules. An unrecognized timezone is a fatal
// input error, never silently treated as UTC.
func (c *Clock) LocalHour(instant time.Time, timezone string) (int, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		return 0, errors.NewAppError(errors.ErrInvalidTimezone,
			fmt.Sprintf("unknown timezone %q", timezone), err)
	}
	return instant.In(loc).Hour(), nil
}

// OffsetHoursAt returns the signed whole-hour UTC offset of the timezone at
// the given instant. Fractional-hour zones (e.g. UTC+5:30) round to the
// nearest hour; that precision loss is a documented limitation.
func (c *Clock) OffsetHoursAt(instant time.Time, timezone string) (int, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		return 0, errors.NewAppError(errors.ErrInvalidTimezone,
			fmt.Sprintf("unknown timezone %q", timezone), err)
	}
	_, offsetSec := instant.In(loc).Zone()
	if offsetSec >= 0 {
		return (offsetSec + 1800) / 3600, nil
	}
	return (offsetSec - 1800) / 3600, nil
}

// OffsetHours is OffsetHoursAt evaluated at the current instant.
func (c *Clock) OffsetHours(timezone string) (int, error) {
	return c.OffsetHoursAt(time.Now(), timezone)
}

// ClassifyHour maps an hour onto working/sleeping/free. The sleeping check
// takes precedence over the working check when the ranges overlap.
func (c *Clock) ClassifyHour(hour int, working, sleeping TimeRange) Status {
	if sleeping.Contains(hour) {
		return StatusSleeping
	}
	if working.Contains(hour) {
		return StatusWorking
	}
	return StatusFree
}

// IsValidTimezone reports whether name is a recognized IANA identifier.
// Never panics; empty and malformed names return false.
func (c *Clock) IsValidTimezone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// LocalTimeLabel renders an instant as a participant-facing local time
// string, e.g. "3:04 PM". Unknown timezones fail loudly like LocalHour.
func (c *Clock) LocalTimeLabel(instant time.Time, timezone string) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		return "", errors.NewAppError(errors.ErrInvalidTimezone,
			fmt.Sprintf("unknown timezone %q", timezone), err)
	}
	return instant.In(loc).Format("3:04 PM"), nil
}

// FormatTimezone turns an IANA name into a display label: the last
// "/"-delimited segment with underscores replaced by spaces. Single-segment
// names such as "UTC" pass through unchanged.
func (c *Clock) FormatTimezone(name string) string {
	parts := strings.Split(name, "/")
	city := parts[len(parts)-1]
	return strings.ReplaceAll(city, "_", " ")
}
