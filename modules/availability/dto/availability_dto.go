package dto

import (
	"time"

	"meetsync-api/modules/availability/entity"
)

type CreateScheduleRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

type UpdateScheduleRequest struct {
	Name     *string                `json:"name"`
	Timezone *string                `json:"timezone"`
	Weekly   *entity.WeeklySchedule `json:"weekly"`
}

type ScheduleResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Timezone  string                `json:"timezone"`
	Weekly    entity.WeeklySchedule `json:"weekly"`
	Overrides entity.OverrideList   `json:"overrides"`
	IsDefault bool                  `json:"is_default"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type PutOverrideRequest struct {
	Date      string          `json:"date"` // YYYY-MM-DD
	Available bool            `json:"available"`
	Slots     entity.SlotList `json:"slots"`
}

// ResolvedDay is the effective availability for one calendar date after
// override-beats-template resolution.
type ResolvedDay struct {
	Date      string          `json:"date"`
	Source    string          `json:"source"` // "template" | "override"
	Available bool            `json:"available"`
	Slots     entity.SlotList `json:"slots"`
}

type ResolveRangeResponse struct {
	ScheduleID string        `json:"schedule_id"`
	Days       []ResolvedDay `json:"days"`
}

type BusyIntervalDTO struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

// PreviewSlotsRequest expands a schedule into bookable slots
type PreviewSlotsRequest struct {
	RangeStart          string            `json:"range_start"` // YYYY-MM-DD
	RangeEnd            string            `json:"range_end"`
	DurationMinutes     int               `json:"duration_minutes"`
	BufferBeforeMinutes int               `json:"buffer_before_minutes"`
	BufferAfterMinutes  int               `json:"buffer_after_minutes"`
	MinNoticeHours      int               `json:"min_notice_hours"`
	BusyIntervals       []BusyIntervalDTO `json:"busy_intervals"`
}

type SlotDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type SlotListResponse struct {
	Slots []SlotDTO `json:"slots"`
	Count int       `json:"count"`
}

func ToScheduleResponse(s *entity.AvailabilitySchedule) ScheduleResponse {
	overrides := s.Overrides
	if overrides == nil {
		overrides = entity.OverrideList{}
	}
	return ScheduleResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Timezone:  s.Timezone,
		Weekly:    s.Weekly,
		Overrides: overrides,
		IsDefault: s.IsDefault,
		UpdatedAt: s.UpdatedAt,
	}
}
