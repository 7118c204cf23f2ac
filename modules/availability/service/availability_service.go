package service

import (
	"context"
	"strings"
	"time"

	"meetsync-api/core/constants"
	"meetsync-api/core/errors"
	"meetsync-api/core/logger"
	"meetsync-api/modules/availability/dto"
	"meetsync-api/modules/availability/entity"
	"meetsync-api/modules/availability/repository"
	tzservice "meetsync-api/modules/timezone/service"

	"github.com/google/uuid"
)

// AvailabilityService owns named availability schedules (weekly template +
// date overrides) and slot expansion for a host.
type AvailabilityService struct {
	repo      repository.AvailabilityRepositoryInterface
	generator *SlotGenerator
	clock     *tzservice.Clock
}

func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface) *AvailabilityService {
	return &AvailabilityService{
		repo:      repo,
		generator: NewSlotGenerator(),
		clock:     tzservice.NewClock(),
	}
}

// defaultWeekly is what a new schedule starts with: Monday-Friday,
// 09:00-17:00.
func defaultWeekly() entity.WeeklySchedule {
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

func (s *AvailabilityService) CreateSchedule(ctx context.Context, userID uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Working hours"
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	if !s.clock.IsValidTimezone(timezone) {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown timezone name", nil)
	}

	// the host's first schedule becomes the default
	existing, err := s.repo.GetDefaultByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to check default schedule", err)
	}

	created, err := s.repo.Create(ctx, &entity.AvailabilitySchedule{
		UserID:    userID,
		Name:      name,
		Timezone:  timezone,
		Weekly:    defaultWeekly(),
		Overrides: entity.OverrideList{},
		IsDefault: existing == nil,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create schedule", err)
	}

	logger.Info("AvailabilityService:CreateSchedule:Created",
		"schedule_id", created.ID.String(),
		"is_default", created.IsDefault,
	)
	resp := dto.ToScheduleResponse(created)
	return &resp, nil
}

func (s *AvailabilityService) GetSchedule(ctx context.Context, userID, scheduleID uuid.UUID) (*dto.ScheduleResponse, error) {
	schedule, err := s.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToScheduleResponse(schedule)
	return &resp, nil
}

func (s *AvailabilityService) ListSchedules(ctx context.Context, userID uuid.UUID) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list schedules", err)
	}

	out := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, dto.ToScheduleResponse(&schedules[i]))
	}
	return out, nil
}

func (s *AvailabilityService) UpdateSchedule(ctx context.Context, userID, scheduleID uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "schedule name cannot be empty", nil)
		}
		schedule.Name = *req.Name
	}
	if req.Timezone != nil {
		if !s.clock.IsValidTimezone(*req.Timezone) {
			return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown timezone name", nil)
		}
		schedule.Timezone = *req.Timezone
	}
	if req.Weekly != nil {
		if err := validateWeekly(*req.Weekly); err != nil {
			return nil, err
		}
		schedule.Weekly = *req.Weekly
	}

	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update schedule", err)
	}

	resp := dto.ToScheduleResponse(schedule)
	return &resp, nil
}

// DeleteSchedule refuses to delete the default schedule; promote another
// one first.
func (s *AvailabilityService) DeleteSchedule(ctx context.Context, userID, scheduleID uuid.UUID) error {
	schedule, err := s.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return err
	}
	if schedule.IsDefault {
		return errors.NewAppError(errors.ErrInvalidInput, "the default schedule cannot be deleted", nil)
	}

	if err := s.repo.Delete(ctx, scheduleID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete schedule", err)
	}
	return nil
}

// SetDefault promotes a schedule to default and demotes the previous one
func (s *AvailabilityService) SetDefault(ctx context.Context, userID, scheduleID uuid.UUID) (*dto.ScheduleResponse, error) {
	schedule, err := s.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetDefault(ctx, userID, scheduleID); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to set default schedule", err)
	}
	schedule.IsDefault = true

	resp := dto.ToScheduleResponse(schedule)
	return &resp, nil
}

// PutOverride adds or replaces the override for a date, keeping the set
// unique per date and sorted ascending.
func (s *AvailabilityService) PutOverride(ctx context.Context, userID, scheduleID uuid.UUID, req *dto.PutOverrideRequest) (*dto.ScheduleResponse, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "date must be YYYY-MM-DD", err)
	}
	for _, slot := range req.Slots {
		if err := validateClockPair(slot); err != nil {
			return nil, err
		}
	}

	schedule, err := s.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}

	schedule.Overrides = schedule.Overrides.Upsert(entity.AvailabilityOverride{
		Date:      req.Date,
		Available: req.Available,
		Slots:     req.Slots,
	})
	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to save override", err)
	}

	resp := dto.ToScheduleResponse(schedule)
	return &resp, nil
}

func (s *AvailabilityService) DeleteOverride(ctx context.Context, userID, scheduleID uuid.UUID, date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errors.NewAppError(errors.ErrInvalidScheduleInput, "date must be YYYY-MM-DD", err)
	}

	schedule, err := s.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return err
	}

	schedule.Overrides = schedule.Overrides.Remove(date)
	if err := s.repo.Update(ctx, schedule); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to delete override", err)
	}
	return nil
}

// ResolveRange reports the effective availability for every date in the
// range, tagged with whether the template or an override decided it.
func (s *AvailabilityService) ResolveRange(ctx context.Context, userID, scheduleID uuid.UUID, rangeStart, rangeEnd string) (*dto.ResolveRangeResponse, error) {
	schedule, err := s.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}

	start, perr := time.Parse("2006-01-02", rangeStart)
	if perr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "range_start must be YYYY-MM-DD", perr)
	}
	end, perr := time.Parse("2006-01-02", rangeEnd)
	if perr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "range_end must be YYYY-MM-DD", perr)
	}
	if start.After(end) {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "range start is after range end", nil)
	}

	overridesByDate := make(map[string]entity.AvailabilityOverride, len(schedule.Overrides))
	for _, ov := range schedule.Overrides {
		overridesByDate[ov.Date] = ov
	}

	days := []dto.ResolvedDay{}
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		key := date.Format("2006-01-02")
		if ov, ok := overridesByDate[key]; ok {
			days = append(days, dto.ResolvedDay{
				Date: key, Source: "override", Available: ov.Available, Slots: ov.Slots,
			})
			continue
		}
		day := schedule.Weekly.DayFor(date.Weekday())
		days = append(days, dto.ResolvedDay{
			Date: key, Source: "template", Available: day.Enabled, Slots: day.Slots,
		})
	}

	return &dto.ResolveRangeResponse{ScheduleID: scheduleID.String(), Days: days}, nil
}

// PreviewSlots expands a schedule over a date range with caller-supplied
// busy intervals. now is injected by the controller.
func (s *AvailabilityService) PreviewSlots(ctx context.Context, userID, scheduleID uuid.UUID, req *dto.PreviewSlotsRequest, now time.Time) (*dto.SlotListResponse, error) {
	if _, err := s.ownedSchedule(ctx, userID, scheduleID); err != nil {
		return nil, err
	}

	busy := make([]BusyInterval, 0, len(req.BusyIntervals))
	for _, b := range req.BusyIntervals {
		busy = append(busy, BusyInterval{Start: b.Start, End: b.End, Status: b.Status})
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = constants.DefaultSlotDurationMinutes
	}

	slots, err := s.SlotsForSchedule(ctx, scheduleID, req.RangeStart, req.RangeEnd,
		duration, req.BufferBeforeMinutes, req.BufferAfterMinutes, req.MinNoticeHours,
		busy, now)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SlotDTO, 0, len(slots))
	for _, slot := range slots {
		out = append(out, dto.SlotDTO{Start: slot.Start, End: slot.End})
	}
	return &dto.SlotListResponse{Slots: out, Count: len(out)}, nil
}

// SlotsForSchedule runs the generator against a specific schedule. The
// booking module calls this for links that reference one.
func (s *AvailabilityService) SlotsForSchedule(ctx context.Context, scheduleID uuid.UUID, rangeStart, rangeEnd string, durationMinutes, bufferBefore, bufferAfter, minNoticeHours int, busy []BusyInterval, now time.Time) ([]CandidateSlot, error) {
	schedule, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load schedule", err)
	}
	if schedule == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "schedule not found", nil)
	}
	return s.generate(schedule, rangeStart, rangeEnd,
		durationMinutes, bufferBefore, bufferAfter, minNoticeHours, busy, now)
}

// SlotsForUser runs the generator against the user's default schedule,
// falling back to a built-in Monday-Friday 9-17 UTC one when the user has
// not configured anything yet.
func (s *AvailabilityService) SlotsForUser(ctx context.Context, userID uuid.UUID, rangeStart, rangeEnd string, durationMinutes, bufferBefore, bufferAfter, minNoticeHours int, busy []BusyInterval, now time.Time) ([]CandidateSlot, error) {
	schedule, err := s.repo.GetDefaultByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load default schedule", err)
	}
	if schedule == nil {
		schedule = &entity.AvailabilitySchedule{
			UserID:   userID,
			Timezone: "UTC",
			Weekly:   defaultWeekly(),
		}
	}
	return s.generate(schedule, rangeStart, rangeEnd,
		durationMinutes, bufferBefore, bufferAfter, minNoticeHours, busy, now)
}

func (s *AvailabilityService) generate(schedule *entity.AvailabilitySchedule, rangeStart, rangeEnd string, durationMinutes, bufferBefore, bufferAfter, minNoticeHours int, busy []BusyInterval, now time.Time) ([]CandidateSlot, error) {
	loc, locErr := time.LoadLocation(schedule.Timezone)
	if locErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone, "stored schedule timezone is invalid", locErr)
	}

	start, err := time.ParseInLocation("2006-01-02", rangeStart, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "range_start must be YYYY-MM-DD", err)
	}
	end, err := time.ParseInLocation("2006-01-02", rangeEnd, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "range_end must be YYYY-MM-DD", err)
	}

	return s.generator.GenerateSlots(GenerateInput{
		Template:            schedule.Weekly,
		Overrides:           schedule.Overrides,
		Busy:                busy,
		RangeStart:          start,
		RangeEnd:            end,
		DurationMinutes:     durationMinutes,
		BufferBeforeMinutes: bufferBefore,
		BufferAfterMinutes:  bufferAfter,
		MinNoticeHours:      minNoticeHours,
		Now:                 now,
		Location:            loc,
	})
}

func (s *AvailabilityService) ownedSchedule(ctx context.Context, userID, scheduleID uuid.UUID) (*entity.AvailabilitySchedule, error) {
	schedule, err := s.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get schedule", err)
	}
	if schedule == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "schedule not found", nil)
	}
	if schedule.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "schedule belongs to another user", nil)
	}
	return schedule, nil
}

func validateWeekly(w entity.WeeklySchedule) error {
	days := []entity.DaySchedule{
		w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday,
	}
	for _, day := range days {
		for _, slot := range day.Slots {
			if err := validateClockPair(slot); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateClockPair(slot entity.SubInterval) error {
	start, err := time.Parse("15:04", slot.Start)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidScheduleInput, "slot start must be HH:MM", err)
	}
	end, err := time.Parse("15:04", slot.End)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidScheduleInput, "slot end must be HH:MM", err)
	}
	if !end.After(start) {
		return errors.NewAppError(errors.ErrInvalidScheduleInput, "slot end must be after start", nil)
	}
	return nil
}
