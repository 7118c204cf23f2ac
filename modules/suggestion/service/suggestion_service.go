package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"meetsync-api/core/config"
	"meetsync-api/core/constants"
	"meetsync-api/core/errors"
	"meetsync-api/core/logger"
	contactentity "meetsync-api/modules/contact/entity"
	"meetsync-api/modules/suggestion/dto"
	tzservice "meetsync-api/modules/timezone/service"

	"github.com/google/uuid"
)

// ContactDirectory resolves the contact records behind a participant set
type ContactDirectory interface {
	GetContactsByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]contactentity.Contact, error)
}

// BestTimeCache stores serialized best-hour computations
type BestTimeCache interface {
	GetBestTimeResult(ctx context.Context, key string) (string, bool)
	SetBestTimeResult(ctx context.Context, key string, payload string, ttl time.Duration) error
}

// SuggestionService orchestrates the scorer and the best-time finder over
// participants resolved from the user's contacts.
type SuggestionService struct {
	scorer   *MeetingScorer
	finder   *BestTimeFinder
	clock    *tzservice.Clock
	contacts ContactDirectory
	cache    BestTimeCache
}

func NewSuggestionService(contacts ContactDirectory, appCache BestTimeCache) *SuggestionService {
	clock := tzservice.NewClock()
	return &SuggestionService{
		scorer:   NewMeetingScorer(clock),
		finder:   NewBestTimeFinder(clock),
		clock:    clock,
		contacts: contacts,
		cache:    appCache,
	}
}

// SuggestTimes scores hourly candidates across a date range in the
// requester's timezone and returns the ranked top suggestions. Candidates
// that score zero are dropped rather than ranked. now is injected so the
// minimum "not in the past" cutoff stays testable.
func (s *SuggestionService) SuggestTimes(ctx context.Context, userID uuid.UUID, req *dto.SuggestTimesRequest, now time.Time) (*dto.SuggestTimesResponse, error) {
	if !s.clock.IsValidTimezone(req.Timezone) {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown requester timezone", nil)
	}
	loc, _ := time.LoadLocation(req.Timezone)

	rangeStart, err := time.ParseInLocation("2006-01-02", req.RangeStart, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "range_start must be YYYY-MM-DD", err)
	}
	rangeEnd, err := time.ParseInLocation("2006-01-02", req.RangeEnd, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "range_end must be YYYY-MM-DD", err)
	}
	if rangeStart.After(rangeEnd) {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "range start is after range end", nil)
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = constants.DefaultMeetingDurationMinutes
	}

	participants, err := s.resolveParticipants(ctx, userID, req.ContactIDs)
	if err != nil {
		return nil, err
	}

	busy := make([]BusyInterval, 0, len(req.BusyIntervals))
	for _, b := range req.BusyIntervals {
		if !countsAsBusy(b.Status) {
			continue
		}
		busy = append(busy, BusyInterval{Start: b.Start, End: b.End, Status: b.Status})
	}

	constraints := MeetingConstraints{
		RespectWorkingHours:    req.Constraints.RespectWorkingHours,
		MinimizeTimezoneImpact: req.Constraints.MinimizeTimezoneImpact,
		AvoidLunchHours:        req.Constraints.AvoidLunchHours,
		PreferMorning:          req.Constraints.PreferMorning,
		PreferAfternoon:        req.Constraints.PreferAfternoon,
		MaxSuggestions:         req.Constraints.MaxSuggestions,
	}

	// candidates start on the next full hour when the range begins today
	cutoff := now.In(loc).Truncate(time.Hour).Add(time.Hour)

	suggestions := make([]dto.SuggestionResponse, 0)
	for day := rangeStart; !day.After(rangeEnd); day = day.AddDate(0, 0, 1) {
		for hour := constants.CandidateDayStartHour; hour <= constants.CandidateDayEndHour; hour++ {
			start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc)
			if start.Before(cutoff) {
				continue
			}
			end := start.Add(time.Duration(duration) * time.Minute)

			result, err := s.scorer.Score(start, end, req.Timezone, participants, busy, constraints)
			if err != nil {
				return nil, err
			}
			if result.Score <= 0 {
				continue
			}

			breakdowns := make([]dto.ParticipantBreakdown, 0, len(participants))
			for _, p := range participants {
				cls, err := s.scorer.ClassifyParticipant(start, p)
				if err != nil {
					return nil, err
				}
				label, err := s.clock.LocalTimeLabel(start, p.Timezone)
				if err != nil {
					return nil, err
				}
				breakdowns = append(breakdowns, dto.ParticipantBreakdown{
					ContactID: p.ID,
					Name:      p.Name,
					Timezone:  p.Timezone,
					LocalHour: cls.LocalHour,
					LocalTime: label,
					Score:     result.PerParticipant[p.ID],
					Status:    cls.Status,
					Reasons:   cls.Reasons,
				})
			}

			suggestions = append(suggestions, dto.SuggestionResponse{
				Start:        start,
				End:          end,
				Score:        result.Score,
				Reason:       s.scorer.Explain(result.Score),
				Conflict:     result.Conflict,
				Participants: breakdowns,
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	max := req.Constraints.MaxSuggestions
	if max <= 0 {
		max = constants.DefaultMaxSuggestions
	}
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}

	logger.Info("SuggestionService:SuggestTimes:Ranked",
		"user_id", userID.String(),
		"participants", len(participants),
		"returned", len(suggestions),
	)
	return &dto.SuggestTimesResponse{Suggestions: suggestions}, nil
}

// countsAsBusy reports whether an event status blocks a candidate.
// Cancelled events never do.
func countsAsBusy(status string) bool {
	switch status {
	case "", "busy", "tentative", "out_of_office":
		return true
	}
	return false
}

// OverlapWindows reports the reference-timezone hours where at least half
// the participants are inside their working hours.
func (s *SuggestionService) OverlapWindows(ctx context.Context, userID uuid.UUID, req *dto.OverlapWindowsRequest) ([]OverlapWindow, error) {
	if !s.clock.IsValidTimezone(req.ReferenceTimezone) {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown reference timezone", nil)
	}

	participants, err := s.resolveParticipants(ctx, userID, req.ContactIDs)
	if err != nil {
		return nil, err
	}

	return s.finder.FindOverlapWindows(participants, req.ReferenceTimezone)
}

// BestHours runs the coarse 24-hour scan. Results only depend on current
// UTC offsets, so they are cached briefly per participant set.
func (s *SuggestionService) BestHours(ctx context.Context, userID uuid.UUID, req *dto.BestHoursRequest) (*BestHoursResult, error) {
	if !s.clock.IsValidTimezone(req.ReferenceTimezone) {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown reference timezone", nil)
	}

	duration := req.DurationHours
	if duration <= 0 {
		duration = 1
	}

	participants, err := s.resolveParticipants(ctx, userID, req.ContactIDs)
	if err != nil {
		return nil, err
	}

	key := bestHoursCacheKey(userID, req.ReferenceTimezone, req.ContactIDs)
	if payload, ok := s.cache.GetBestTimeResult(ctx, key); ok {
		var cached BestHoursResult
		if err := json.Unmarshal([]byte(payload), &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.finder.FindBestHours(participants, req.ReferenceTimezone, duration)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(constants.DefaultMeetingDurationMinutes) * time.Minute
	if cfg, ok := config.GetSafe(); ok {
		ttl = time.Duration(cfg.Engine.BestTimeCacheTTLMin) * time.Minute
	}
	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.SetBestTimeResult(ctx, key, string(payload), ttl); err != nil {
			logger.Warn("SuggestionService:BestHours:CacheSet", "error", err)
		}
	}

	return result, nil
}

func (s *SuggestionService) resolveParticipants(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]Participant, error) {
	contacts, err := s.contacts.GetContactsByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	participants := make([]Participant, 0, len(contacts))
	for _, c := range contacts {
		p := Participant{
			ID:       c.ID.String(),
			Name:     c.Name,
			Timezone: c.Timezone,
		}
		if c.WorkingHoursStart != nil && c.WorkingHoursEnd != nil {
			p.WorkingHours = &tzservice.TimeRange{
				Start: *c.WorkingHoursStart,
				End:   *c.WorkingHoursEnd,
			}
		}
		participants = append(participants, p)
	}
	return participants, nil
}

func bestHoursCacheKey(userID uuid.UUID, referenceTimezone string, ids []uuid.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s:%s:%s", userID.String(), referenceTimezone, strings.Join(parts, ","))
}
