package service

import (
	"sort"

	"meetsync-api/core/constants"
	tzservice "meetsync-api/modules/timezone/service"
)

// ParticipantStatus is one participant's local situation for a candidate hour
type ParticipantStatus struct {
	ParticipantID string           `json:"participant_id"`
	Name          string           `json:"name"`
	LocalHour     int              `json:"local_hour"`
	Status        tzservice.Status `json:"status"`
}

// HourSlot is a scored candidate hour in the reference timezone
type HourSlot struct {
	Hour     int                 `json:"hour"`
	Score    int                 `json:"score"`
	Statuses []ParticipantStatus `json:"statuses"`
}

// BestHoursResult is the ranked outcome of a 24-hour scan
type BestHoursResult struct {
	Slots          []HourSlot `json:"slots"`
	HasFullOverlap bool       `json:"has_full_overlap"`
}

// BestTimeFinder scans the 24 hours of a day in a reference timezone and
// ranks them by how many participants are working or at least awake.
//
// Participant local hours come from whole-hour offset deltas against the
// reference timezone, not wall-clock conversion. That is coarser than the
// scorer's projection (fractional-hour zones and DST transitions inside the
// scan window are ignored) and the two are kept separate on purpose.
type BestTimeFinder struct {
	clock *tzservice.Clock
}

func NewBestTimeFinder(clock *tzservice.Clock) *BestTimeFinder {
	return &BestTimeFinder{clock: clock}
}

// FindBestHours returns the top 5 hours plus a flag indicating whether some
// hour has every participant inside working hours.
func (f *BestTimeFinder) FindBestHours(participants []Participant, referenceTimezone string, durationHours int) (*BestHoursResult, error) {
	refOffset, err := f.clock.OffsetHours(referenceTimezone)
	if err != nil {
		return nil, err
	}

	offsets := make([]int, len(participants))
	for i, p := range participants {
		off, err := f.clock.OffsetHours(p.Timezone)
		if err != nil {
			return nil, err
		}
		offsets[i] = off
	}

	sleeping := tzservice.TimeRange{
		Start: constants.DefaultSleepingStart,
		End:   constants.DefaultSleepingEnd,
	}

	slots := make([]HourSlot, 0, 24)
	hasFullOverlap := false

	for hour := 0; hour < 24; hour++ {
		slot := HourSlot{Hour: hour, Statuses: make([]ParticipantStatus, 0, len(participants))}
		allWorking := len(participants) > 0

		for i, p := range participants {
			localHour := ((hour-refOffset+offsets[i])%24 + 24) % 24
			status := f.clock.ClassifyHour(localHour, p.workingHours(), sleeping)

			switch status {
			case tzservice.StatusWorking:
				slot.Score += 2
			case tzservice.StatusFree:
				slot.Score += 1
			}
			if status != tzservice.StatusWorking {
				allWorking = false
			}

			slot.Statuses = append(slot.Statuses, ParticipantStatus{
				ParticipantID: p.ID,
				Name:          p.Name,
				LocalHour:     localHour,
				Status:        status,
			})
		}

		if allWorking {
			hasFullOverlap = true
		}
		slots = append(slots, slot)
	}

	// stable: equal scores keep hour order
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Score > slots[j].Score
	})

	if len(slots) > constants.DefaultMaxSuggestions {
		slots = slots[:constants.DefaultMaxSuggestions]
	}

	return &BestHoursResult{
		Slots:          slots,
		HasFullOverlap: hasFullOverlap,
	}, nil
}

// OverlapWindow is a reference-timezone hour where at least half the
// participants sit inside their working hours.
type OverlapWindow struct {
	Hour         int `json:"hour"`
	WorkingCount int `json:"working_count"`
	Participants int `json:"participants"`
}

// FindOverlapWindows scans the 24 reference hours and keeps the ones where
// at least half the participants are working, using the same offset-delta
// projection as FindBestHours.
func (f *BestTimeFinder) FindOverlapWindows(participants []Participant, referenceTimezone string) ([]OverlapWindow, error) {
	if len(participants) == 0 {
		return []OverlapWindow{}, nil
	}

	refOffset, err := f.clock.OffsetHours(referenceTimezone)
	if err != nil {
		return nil, err
	}

	offsets := make([]int, len(participants))
	for i, p := range participants {
		off, err := f.clock.OffsetHours(p.Timezone)
		if err != nil {
			return nil, err
		}
		offsets[i] = off
	}

	windows := make([]OverlapWindow, 0, 24)
	for hour := 0; hour < 24; hour++ {
		working := 0
		for i, p := range participants {
			localHour := ((hour-refOffset+offsets[i])%24 + 24) % 24
			if p.workingHours().Contains(localHour) {
				working++
			}
		}
		if working*2 >= len(participants) {
			windows = append(windows, OverlapWindow{
				Hour:         hour,
				WorkingCount: working,
				Participants: len(participants),
			})
		}
	}

	return windows, nil
}
