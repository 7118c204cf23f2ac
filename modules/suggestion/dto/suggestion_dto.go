package dto

import (
	"time"

	"github.com/google/uuid"
)

// MeetingConstraintsDTO mirrors the engine constraints; unknown JSON fields
// are ignored on bind.
type MeetingConstraintsDTO struct {
	RespectWorkingHours    bool `json:"respect_working_hours"`
	MinimizeTimezoneImpact bool `json:"minimize_timezone_impact"`
	AvoidLunchHours        bool `json:"avoid_lunch_hours"`
	PreferMorning          bool `json:"prefer_morning"`
	PreferAfternoon        bool `json:"prefer_afternoon"`
	MaxSuggestions         int  `json:"max_suggestions"`
}

type BusyIntervalDTO struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

type SuggestTimesRequest struct {
	ContactIDs      []uuid.UUID           `json:"contact_ids"`
	RangeStart      string                `json:"range_start"` // YYYY-MM-DD in the requester timezone
	RangeEnd        string                `json:"range_end"`
	Timezone        string                `json:"timezone"`
	DurationMinutes int                   `json:"duration_minutes"`
	BusyIntervals   []BusyIntervalDTO     `json:"busy_intervals"`
	Constraints     MeetingConstraintsDTO `json:"constraints"`
}

type ParticipantBreakdown struct {
	ContactID string   `json:"contact_id"`
	Name      string   `json:"name"`
	Timezone  string   `json:"timezone"`
	LocalHour int      `json:"local_hour"`
	LocalTime string   `json:"local_time"`
	Score     int      `json:"score"`
	Status    string   `json:"status"`
	Reasons   []string `json:"reasons,omitempty"`
}

type SuggestionResponse struct {
	Start        time.Time              `json:"start"`
	End          time.Time              `json:"end"`
	Score        int                    `json:"score"`
	Reason       string                 `json:"reason"`
	Conflict     bool                   `json:"conflict"`
	Participants []ParticipantBreakdown `json:"participants"`
}

type SuggestTimesResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

type BestHoursRequest struct {
	ContactIDs        []uuid.UUID `json:"contact_ids"`
	ReferenceTimezone string      `json:"reference_timezone"`
	DurationHours     int         `json:"duration_hours"`
}

type OverlapWindowsRequest struct {
	ContactIDs        []uuid.UUID `json:"contact_ids"`
	ReferenceTimezone string      `json:"reference_timezone"`
}
