package service

import (
	"fmt"
	"math"
	"time"

	"meetsync-api/core/constants"
	tzservice "meetsync-api/modules/timezone/service"
)

// Participant is a meeting attendee materialized from a contact record
type Participant struct {
	ID           string
	Name         string
	Timezone     string
	WorkingHours *tzservice.TimeRange // nil means the 9-17 default
}

func (p Participant) workingHours() tzservice.TimeRange {
	if p.WorkingHours != nil {
		return *p.WorkingHours
	}
	return tzservice.TimeRange{
		Start: constants.DefaultWorkingHoursStart,
		End:   constants.DefaultWorkingHoursEnd,
	}
}

// BusyInterval is a concrete unavailable span sourced from calendars or
// existing bookings. The engine only reads these.
type BusyInterval struct {
	Start  time.Time
	End    time.Time
	Status string
}

// Overlaps applies the strict intersection test shared by the scorer and the
// slot generator.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// MeetingConstraints tunes the scoring heuristics. Zero value disables every
// optional adjustment.
type MeetingConstraints struct {
	RespectWorkingHours    bool `json:"respect_working_hours"`
	MinimizeTimezoneImpact bool `json:"minimize_timezone_impact"`
	AvoidLunchHours        bool `json:"avoid_lunch_hours"`
	PreferMorning          bool `json:"prefer_morning"`
	PreferAfternoon        bool `json:"prefer_afternoon"`
	MaxSuggestions         int  `json:"max_suggestions"`
}

// ScoreResult is the outcome of scoring one candidate interval
type ScoreResult struct {
	Score          int
	PerParticipant map[string]int
	Conflict       bool
}

// ParticipantClassification reports how a candidate lands in one
// participant's local day.
type ParticipantClassification struct {
	Status    string
	LocalHour int
	Reasons   []string
}

const (
	ParticipantAvailable    = "available"
	ParticipantOutsideHours = "outside_hours"
)

// MeetingScorer rates candidate meeting times against participants' local
// wall clocks using full IANA timezone conversion.
type MeetingScorer struct {
	clock *tzservice.Clock
}

func NewMeetingScorer(clock *tzservice.Clock) *MeetingScorer {
	return &MeetingScorer{clock: clock}
}

// Score computes a 0-100+ suitability score for the candidate interval.
// requesterTimezone drives the prefer_morning / prefer_afternoon bonuses.
// A candidate overlapping any busy interval is forced to 0.
func (s *MeetingScorer) Score(start, end time.Time, requesterTimezone string, participants []Participant, busy []BusyInterval, c MeetingConstraints) (*ScoreResult, error) {
	perParticipant := make(map[string]int, len(participants))
	sum := 0

	for _, p := range participants {
		localHour, err := s.clock.LocalHour(start, p.Timezone)
		if err != nil {
			return nil, err
		}

		score := 100
		if c.RespectWorkingHours && !p.workingHours().Contains(localHour) {
			score -= 50
		}
		// early/late penalties stack with the working-hours penalty
		if localHour < 8 {
			score -= 30
		}
		if localHour >= 20 {
			score -= 20
		}
		if c.AvoidLunchHours && localHour >= 12 && localHour < 13 {
			score -= 10
		}
		if localHour >= 10 && localHour < 16 {
			score += 10
		}

		perParticipant[p.ID] = score
		sum += score
	}

	// average over a host placeholder plus every participant
	aggregate := float64(100+sum) / float64(len(participants)+1)

	if c.MinimizeTimezoneImpact && len(participants) > 0 {
		min := math.MaxInt
		for _, v := range perParticipant {
			if v < min {
				min = v
			}
		}
		if min >= 70 {
			aggregate += 15
		}
	}

	if c.PreferMorning || c.PreferAfternoon {
		requesterHour, err := s.clock.LocalHour(start, requesterTimezone)
		if err != nil {
			return nil, err
		}
		if c.PreferMorning && requesterHour >= 9 && requesterHour < 12 {
			aggregate += 10
		}
		if c.PreferAfternoon && requesterHour >= 14 && requesterHour < 17 {
			aggregate += 10
		}
	}

	if aggregate < 0 {
		aggregate = 0
	}
	final := int(math.Round(aggregate))

	result := &ScoreResult{
		Score:          final,
		PerParticipant: perParticipant,
	}

	for _, b := range busy {
		if b.Overlaps(start, end) {
			result.Score = 0
			result.Conflict = true
			break
		}
	}

	return result, nil
}

// ClassifyParticipant reports availability status plus human-readable
// reasons for one participant at the candidate start. Both reasons may apply
// at once.
func (s *MeetingScorer) ClassifyParticipant(start time.Time, p Participant) (*ParticipantClassification, error) {
	localHour, err := s.clock.LocalHour(start, p.Timezone)
	if err != nil {
		return nil, err
	}

	wh := p.workingHours()
	classification := &ParticipantClassification{
		Status:    ParticipantAvailable,
		LocalHour: localHour,
	}

	if !wh.Contains(localHour) {
		classification.Status = ParticipantOutsideHours
		classification.Reasons = append(classification.Reasons,
			fmt.Sprintf("Outside working hours (%d:00-%d:00)", wh.Start, wh.End))
	}
	if localHour < 7 || localHour >= 22 {
		classification.Status = ParticipantOutsideHours
		classification.Reasons = append(classification.Reasons, "Very early/late local time")
	}

	return classification, nil
}

// Explain maps a score onto a fixed human-readable band
func (s *MeetingScorer) Explain(score int) string {
	switch {
	case score >= 90:
		return "Optimal time, within working hours for all participants"
	case score >= 70:
		return "Good time, works well for most participants"
	case score >= 50:
		return "Acceptable time, may be early or late for some participants"
	default:
		return "Possible time, outside working hours for some participants"
	}
}
