package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meetsync-api/core/constants"
	"meetsync-api/core/errors"
	"meetsync-api/core/logger"
	"meetsync-api/core/params"
	"meetsync-api/core/utils"
	availdto "meetsync-api/modules/availability/dto"
	availservice "meetsync-api/modules/availability/service"
	"meetsync-api/modules/booking/dto"
	"meetsync-api/modules/booking/entity"
	"meetsync-api/modules/booking/repository"
	caldto "meetsync-api/modules/calendar/dto"
	notifentity "meetsync-api/modules/notification/entity"
	tzservice "meetsync-api/modules/timezone/service"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// AvailabilityProvider is the slice of the availability service this
// module consumes.
type AvailabilityProvider interface {
	GetSchedule(ctx context.Context, userID, scheduleID uuid.UUID) (*availdto.ScheduleResponse, error)
	SlotsForSchedule(ctx context.Context, scheduleID uuid.UUID, rangeStart, rangeEnd string, durationMinutes, bufferBefore, bufferAfter, minNoticeHours int, busy []availservice.BusyInterval, now time.Time) ([]availservice.CandidateSlot, error)
	SlotsForUser(ctx context.Context, userID uuid.UUID, rangeStart, rangeEnd string, durationMinutes, bufferBefore, bufferAfter, minNoticeHours int, busy []availservice.BusyInterval, now time.Time) ([]availservice.CandidateSlot, error)
}

// Notifier enqueues host notifications
type Notifier interface {
	Enqueue(ctx context.Context, userID uuid.UUID, notifType, title, message string, data map[string]interface{}) error
}

// BusySource reports busy time from a connected external calendar
type BusySource interface {
	BusyIntervals(ctx context.Context, userID uuid.UUID, from, to time.Time) []caldto.BusySlot
}

// BookingService owns booking links, public slot queries and bookings
type BookingService struct {
	repo         repository.BookingRepositoryInterface
	availability AvailabilityProvider
	notifier     Notifier
	calendars    BusySource
	clock        *tzservice.Clock
}

func NewBookingService(repo repository.BookingRepositoryInterface, availability AvailabilityProvider, notifier Notifier, calendars BusySource) *BookingService {
	return &BookingService{
		repo:         repo,
		availability: availability,
		notifier:     notifier,
		calendars:    calendars,
		clock:        tzservice.NewClock(),
	}
}

func (s *BookingService) CreateLink(ctx context.Context, userID uuid.UUID, req *dto.CreateLinkRequest) (*dto.LinkResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "link title is required", nil)
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	if !s.clock.IsValidTimezone(timezone) {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown timezone name", nil)
	}

	locationType := req.LocationType
	if locationType == "" {
		locationType = entity.LocationVideo
	}
	if !entity.ValidLocationType(locationType) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown location type", nil)
	}

	// a referenced schedule must exist and belong to the caller
	if req.ScheduleID != nil {
		if _, err := s.availability.GetSchedule(ctx, userID, *req.ScheduleID); err != nil {
			return nil, err
		}
	}

	linkSlug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	link := &entity.BookingLink{
		UserID:               userID,
		Slug:                 linkSlug,
		Title:                req.Title,
		Description:          req.Description,
		DurationMinutes:      req.DurationMinutes,
		BufferBeforeMinutes:  req.BufferBeforeMinutes,
		BufferAfterMinutes:   req.BufferAfterMinutes,
		MinNoticeHours:       req.MinNoticeHours,
		MaxDaysAhead:         req.MaxDaysAhead,
		Timezone:             timezone,
		LocationType:         locationType,
		LocationValue:        req.LocationValue,
		Color:                req.Color,
		RequiresConfirmation: req.RequiresConfirmation,
		ScheduleID:           req.ScheduleID,
		IsActive:             true,
	}
	if link.DurationMinutes <= 0 {
		link.DurationMinutes = constants.DefaultSlotDurationMinutes
	}
	if link.MinNoticeHours <= 0 {
		link.MinNoticeHours = constants.DefaultMinNoticeHours
	}
	if link.MaxDaysAhead <= 0 {
		link.MaxDaysAhead = constants.DefaultMaxDaysAhead
	}

	created, err := s.repo.CreateLink(ctx, link)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create booking link", err)
	}

	logger.Info("BookingService:CreateLink:Created",
		"link_id", created.ID.String(),
		"slug", created.Slug,
	)
	resp := dto.ToLinkResponse(created)
	return &resp, nil
}

func (s *BookingService) ListLinks(ctx context.Context, userID uuid.UUID) ([]dto.LinkResponse, error) {
	links, err := s.repo.ListLinksByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list booking links", err)
	}

	out := make([]dto.LinkResponse, 0, len(links))
	for i := range links {
		out = append(out, dto.ToLinkResponse(&links[i]))
	}
	return out, nil
}

func (s *BookingService) UpdateLink(ctx context.Context, userID, linkID uuid.UUID, req *dto.UpdateLinkRequest) (*dto.LinkResponse, error) {
	link, err := s.ownedLink(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.Description != nil {
		link.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, errors.NewAppError(errors.ErrInvalidScheduleInput, "duration must be positive", nil)
		}
		link.DurationMinutes = *req.DurationMinutes
	}
	if req.BufferBeforeMinutes != nil {
		link.BufferBeforeMinutes = *req.BufferBeforeMinutes
	}
	if req.BufferAfterMinutes != nil {
		link.BufferAfterMinutes = *req.BufferAfterMinutes
	}
	if req.MinNoticeHours != nil {
		link.MinNoticeHours = *req.MinNoticeHours
	}
	if req.MaxDaysAhead != nil {
		link.MaxDaysAhead = *req.MaxDaysAhead
	}
	if req.Timezone != nil {
		if !s.clock.IsValidTimezone(*req.Timezone) {
			return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown timezone name", nil)
		}
		link.Timezone = *req.Timezone
	}
	if req.LocationType != nil {
		if !entity.ValidLocationType(*req.LocationType) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown location type", nil)
		}
		link.LocationType = *req.LocationType
	}
	if req.LocationValue != nil {
		link.LocationValue = *req.LocationValue
	}
	if req.Color != nil {
		link.Color = *req.Color
	}
	if req.RequiresConfirmation != nil {
		link.RequiresConfirmation = *req.RequiresConfirmation
	}
	if req.ScheduleID != nil {
		if _, err := s.availability.GetSchedule(ctx, userID, *req.ScheduleID); err != nil {
			return nil, err
		}
		link.ScheduleID = req.ScheduleID
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateLink(ctx, link); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update booking link", err)
	}

	resp := dto.ToLinkResponse(link)
	return &resp, nil
}

func (s *BookingService) DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error {
	if _, err := s.ownedLink(ctx, userID, linkID); err != nil {
		return err
	}
	if err := s.repo.DeleteLink(ctx, linkID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete booking link", err)
	}
	return nil
}

// GetPublicLink resolves an active link for the public booking page
func (s *BookingService) GetPublicLink(ctx context.Context, linkSlug string) (*dto.PublicLinkResponse, error) {
	link, err := s.activeLinkBySlug(ctx, linkSlug)
	if err != nil {
		return nil, err
	}

	return &dto.PublicLinkResponse{
		Slug:                 link.Slug,
		Title:                link.Title,
		Description:          link.Description,
		DurationMinutes:      link.DurationMinutes,
		Timezone:             link.Timezone,
		LocationType:         link.LocationType,
		Color:                link.Color,
		RequiresConfirmation: link.RequiresConfirmation,
	}, nil
}

// GetPublicSlots expands the host's availability for a public link,
// treating existing bookings and calendar busy time as blocked.
func (s *BookingService) GetPublicSlots(ctx context.Context, linkSlug, rangeStart, rangeEnd string, now time.Time) (*dto.PublicSlotsResponse, error) {
	link, err := s.activeLinkBySlug(ctx, linkSlug)
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

	horizon := now.AddDate(0, 0, link.MaxDaysAhead)
	if end.After(horizon) {
		return nil, errors.NewAppError(errors.ErrInvalidScheduleInput,
			fmt.Sprintf("range end exceeds the %d-day booking horizon", link.MaxDaysAhead), nil)
	}

	// the range dates are host-local once the generator applies the
	// schedule timezone; pad the blocking window so those days are fully
	// covered whatever the offset
	busy, err := s.blockingIntervals(ctx, link.UserID, start.AddDate(0, 0, -1), end.AddDate(0, 0, 2))
	if err != nil {
		return nil, err
	}

	slots, err := s.slotsForLink(ctx, link, rangeStart, rangeEnd, busy, now)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SlotDTO, 0, len(slots))
	for _, slot := range slots {
		out = append(out, dto.SlotDTO{Start: slot.Start, End: slot.End})
	}
	return &dto.PublicSlotsResponse{Slug: link.Slug, Slots: out, Count: len(out)}, nil
}

// CreateBooking books a slot on a public link. The requested start must be
// one of the currently generated slots; anything else is rejected. Links
// that require confirmation produce a pending booking the host must
// confirm.
func (s *BookingService) CreateBooking(ctx context.Context, linkSlug string, req *dto.CreateBookingRequest, now time.Time) (*dto.BookingResponse, error) {
	if strings.TrimSpace(req.InviteeName) == "" || strings.TrimSpace(req.InviteeEmail) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invitee name and email are required", nil)
	}
	if req.InviteeTimezone != "" && !s.clock.IsValidTimezone(req.InviteeTimezone) {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown invitee timezone", nil)
	}

	link, err := s.activeLinkBySlug(ctx, linkSlug)
	if err != nil {
		return nil, err
	}

	// day boundaries belong to the schedule's timezone, which can put the
	// instant on a different calendar date than its own offset does, so
	// regenerate the surrounding days and match the exact start
	base := req.StartTime.UTC()
	dayStart := base.AddDate(0, 0, -1).Format("2006-01-02")
	dayEnd := base.AddDate(0, 0, 1).Format("2006-01-02")

	busy, err := s.blockingIntervals(ctx, link.UserID, base.AddDate(0, 0, -1), base.AddDate(0, 0, 2))
	if err != nil {
		return nil, err
	}

	slots, err := s.slotsForLink(ctx, link, dayStart, dayEnd, busy, now)
	if err != nil {
		return nil, err
	}

	var matched *availservice.CandidateSlot
	for i := range slots {
		if slots[i].Start.Equal(req.StartTime) {
			matched = &slots[i]
			break
		}
	}
	if matched == nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "requested slot is no longer available", nil)
	}

	status := entity.StatusConfirmed
	if link.RequiresConfirmation {
		status = entity.StatusPending
	}

	booking, err := s.repo.CreateBooking(ctx, &entity.Booking{
		LinkID:          link.ID,
		UserID:          link.UserID,
		InviteeName:     req.InviteeName,
		InviteeEmail:    req.InviteeEmail,
		InviteeTimezone: req.InviteeTimezone,
		StartTime:       matched.Start,
		EndTime:         matched.End,
		Status:          status,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create booking", err)
	}

	title := "New booking"
	if status == entity.StatusPending {
		title = "New booking request"
	}
	if err := s.notifier.Enqueue(ctx, link.UserID, notifentity.TypeBookingCreated,
		title,
		fmt.Sprintf("%s booked %s at %s", req.InviteeName, link.Title,
			matched.Start.Format(time.RFC3339)),
		map[string]interface{}{"booking_id": booking.ID.String(), "link_slug": link.Slug},
	); err != nil {
		// booking already persisted; notification failure is not fatal
		logger.Warn("BookingService:CreateBooking:Notify", "error", err)
	}

	resp := dto.ToBookingResponse(booking)
	resp.LinkSlug = link.Slug
	return &resp, nil
}

// ListBookings returns one page of the host's bookings, optionally
// filtered by status.
func (s *BookingService) ListBookings(ctx context.Context, userID uuid.UUID, status string, p params.QueryParams) (*dto.PaginatedBookingsResponse, error) {
	if status != "" && !entity.ValidStatus(status) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown booking status", nil)
	}

	page, err := s.repo.ListBookingsByUserID(ctx, userID, status, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list bookings", err)
	}

	items := make([]dto.BookingResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, dto.ToBookingResponse(&page.Items[i]))
	}
	return &dto.PaginatedBookingsResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

// Upcoming returns the host's future pending and confirmed bookings,
// soonest first.
func (s *BookingService) Upcoming(ctx context.Context, userID uuid.UUID, now time.Time) ([]dto.BookingResponse, error) {
	bookings, err := s.repo.ListUpcoming(ctx, userID, now)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list upcoming bookings", err)
	}

	out := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, dto.ToBookingResponse(&bookings[i]))
	}
	return out, nil
}

// UpdateStatus moves a booking between states. Cancelled is terminal and
// records when and why; pending cannot be re-entered.
func (s *BookingService) UpdateStatus(ctx context.Context, userID, bookingID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	if !entity.ValidStatus(req.Status) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown booking status", nil)
	}
	if req.Status == entity.StatusPending {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a booking cannot be moved back to pending", nil)
	}

	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == entity.StatusCancelled {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "booking is already cancelled", nil)
	}

	var cancelledAt *time.Time
	reason := booking.CancellationReason
	if req.Status == entity.StatusCancelled {
		now := time.Now()
		cancelledAt = &now
		reason = req.Reason
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, req.Status, cancelledAt, reason); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update booking status", err)
	}
	booking.Status = req.Status
	booking.CancelledAt = cancelledAt
	booking.CancellationReason = reason

	if req.Status == entity.StatusCancelled {
		s.notifyCancelled(ctx, booking)
	}

	resp := dto.ToBookingResponse(booking)
	return &resp, nil
}

// CancelBooking is the host-side cancel shortcut
func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID, reason string) error {
	_, err := s.UpdateStatus(ctx, userID, bookingID, &dto.UpdateBookingStatusRequest{
		Status: entity.StatusCancelled,
		Reason: reason,
	})
	return err
}

// InviteeCancel cancels a booking on behalf of the invitee. No account is
// involved, so the supplied email must match the one used to book.
func (s *BookingService) InviteeCancel(ctx context.Context, bookingID uuid.UUID, req *dto.InviteeCancelRequest) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to get booking", err)
	}
	if booking == nil {
		return errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}
	if !strings.EqualFold(strings.TrimSpace(req.InviteeEmail), booking.InviteeEmail) {
		return errors.NewAppError(errors.ErrForbidden, "email does not match this booking", nil)
	}
	if booking.Status == entity.StatusCancelled {
		return errors.NewAppError(errors.ErrInvalidInput, "booking is already cancelled", nil)
	}

	now := time.Now()
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, entity.StatusCancelled, &now, req.Reason); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to cancel booking", err)
	}
	booking.Status = entity.StatusCancelled
	booking.CancelledAt = &now
	booking.CancellationReason = req.Reason

	s.notifyCancelled(ctx, booking)
	return nil
}

// Stats summarizes the host's bookings. Hours count confirmed and
// completed meetings only.
func (s *BookingService) Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*dto.BookingStatsResponse, error) {
	bookings, err := s.repo.ListAllByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load bookings", err)
	}

	stats := &dto.BookingStatsResponse{}
	for _, b := range bookings {
		stats.TotalBookings++
		switch b.Status {
		case entity.StatusCancelled:
			stats.CancelledBookings++
			continue
		case entity.StatusCompleted:
			stats.CompletedBookings++
		case entity.StatusNoShow:
			stats.NoShows++
			continue
		}
		if b.StartTime.After(now) {
			stats.UpcomingBookings++
		}
		stats.TotalHoursBooked += b.EndTime.Sub(b.StartTime).Hours()
	}
	return stats, nil
}

// uniqueSlug slugifies the title and only appends a nanoid suffix when the
// plain slug is already taken.
func (s *BookingService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	existing, err := s.repo.GetLinkBySlug(ctx, base)
	if err != nil {
		return "", errors.NewAppError(errors.ErrGetFailed, "failed to check slug", err)
	}
	if existing == nil {
		return base, nil
	}
	return fmt.Sprintf("%s-%s", base, strings.ToLower(utils.GenerateID())), nil
}

func (s *BookingService) ownedLink(ctx context.Context, userID, linkID uuid.UUID) (*entity.BookingLink, error) {
	link, err := s.repo.GetLinkByID(ctx, linkID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get booking link", err)
	}
	if link == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking link not found", nil)
	}
	if link.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "booking link belongs to another user", nil)
	}
	return link, nil
}

func (s *BookingService) ownedBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking not found", nil)
	}
	if booking.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "booking belongs to another user", nil)
	}
	return booking, nil
}

func (s *BookingService) activeLinkBySlug(ctx context.Context, linkSlug string) (*entity.BookingLink, error) {
	link, err := s.repo.GetLinkBySlug(ctx, linkSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to resolve booking link", err)
	}
	if link == nil || !link.IsActive {
		return nil, errors.NewAppError(errors.ErrNotFound, "booking link not found", nil)
	}
	return link, nil
}

// slotsForLink expands the schedule the link references, or the host's
// default one when it references none.
func (s *BookingService) slotsForLink(ctx context.Context, link *entity.BookingLink, rangeStart, rangeEnd string, busy []availservice.BusyInterval, now time.Time) ([]availservice.CandidateSlot, error) {
	if link.ScheduleID != nil {
		return s.availability.SlotsForSchedule(ctx, *link.ScheduleID, rangeStart, rangeEnd,
			link.DurationMinutes, link.BufferBeforeMinutes, link.BufferAfterMinutes,
			link.MinNoticeHours, busy, now)
	}
	return s.availability.SlotsForUser(ctx, link.UserID, rangeStart, rangeEnd,
		link.DurationMinutes, link.BufferBeforeMinutes, link.BufferAfterMinutes,
		link.MinNoticeHours, busy, now)
}

// blockingIntervals merges pending and confirmed bookings with the host's
// connected calendar. Calendar lookups degrade to empty on failure, so a
// provider outage never blocks the booking page.
func (s *BookingService) blockingIntervals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]availservice.BusyInterval, error) {
	bookings, err := s.repo.ListBlockingInRange(ctx, userID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load existing bookings", err)
	}

	busy := make([]availservice.BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, availservice.BusyInterval{
			Start:  b.StartTime,
			End:    b.EndTime,
			Status: "busy",
		})
	}

	if s.calendars != nil {
		for _, slot := range s.calendars.BusyIntervals(ctx, userID, from, to) {
			busy = append(busy, availservice.BusyInterval{
				Start:  slot.Start,
				End:    slot.End,
				Status: "busy",
			})
		}
	}
	return busy, nil
}

func (s *BookingService) notifyCancelled(ctx context.Context, booking *entity.Booking) {
	if err := s.notifier.Enqueue(ctx, booking.UserID, notifentity.TypeBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("Booking with %s on %s was cancelled", booking.InviteeName,
			booking.StartTime.Format(time.RFC3339)),
		map[string]interface{}{"booking_id": booking.ID.String()},
	); err != nil {
		logger.Warn("BookingService:NotifyCancelled", "error", err)
	}
}
