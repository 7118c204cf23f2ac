package dto

import (
	"time"

	"meetsync-api/modules/booking/entity"

	"github.com/google/uuid"
)

type CreateLinkRequest struct {
	Title                string     `json:"title" validate:"required"`
	Description          string     `json:"description"`
	DurationMinutes      int        `json:"duration_minutes"`
	BufferBeforeMinutes  int        `json:"buffer_before_minutes"`
	BufferAfterMinutes   int        `json:"buffer_after_minutes"`
	MinNoticeHours       int        `json:"min_notice_hours"`
	MaxDaysAhead         int        `json:"max_days_ahead"`
	Timezone             string     `json:"timezone"`
	LocationType         string     `json:"location_type"`
	LocationValue        string     `json:"location_value"`
	Color                string     `json:"color"`
	RequiresConfirmation bool       `json:"requires_confirmation"`
	ScheduleID           *uuid.UUID `json:"schedule_id"`
}

type UpdateLinkRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	DurationMinutes      *int       `json:"duration_minutes"`
	BufferBeforeMinutes  *int       `json:"buffer_before_minutes"`
	BufferAfterMinutes   *int       `json:"buffer_after_minutes"`
	MinNoticeHours       *int       `json:"min_notice_hours"`
	MaxDaysAhead         *int       `json:"max_days_ahead"`
	Timezone             *string    `json:"timezone"`
	LocationType         *string    `json:"location_type"`
	LocationValue        *string    `json:"location_value"`
	Color                *string    `json:"color"`
	RequiresConfirmation *bool      `json:"requires_confirmation"`
	ScheduleID           *uuid.UUID `json:"schedule_id"`
	IsActive             *bool      `json:"is_active"`
}

type LinkResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Slug                 string     `json:"slug"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	DurationMinutes      int        `json:"duration_minutes"`
	BufferBeforeMinutes  int        `json:"buffer_before_minutes"`
	BufferAfterMinutes   int        `json:"buffer_after_minutes"`
	MinNoticeHours       int        `json:"min_notice_hours"`
	MaxDaysAhead         int        `json:"max_days_ahead"`
	Timezone             string     `json:"timezone"`
	LocationType         string     `json:"location_type"`
	LocationValue        string     `json:"location_value"`
	Color                string     `json:"color"`
	RequiresConfirmation bool       `json:"requires_confirmation"`
	ScheduleID           *uuid.UUID `json:"schedule_id,omitempty"`
	IsActive             bool       `json:"is_active"`
	CreatedAt            time.Time  `json:"created_at"`
}

// PublicLinkResponse omits host-only settings for the public booking page
type PublicLinkResponse struct {
	Slug                 string `json:"slug"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	DurationMinutes      int    `json:"duration_minutes"`
	Timezone             string `json:"timezone"`
	LocationType         string `json:"location_type"`
	Color                string `json:"color"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
}

type PublicSlotsResponse struct {
	Slug  string    `json:"slug"`
	Slots []SlotDTO `json:"slots"`
	Count int       `json:"count"`
}

type SlotDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type CreateBookingRequest struct {
	InviteeName     string    `json:"invitee_name" validate:"required"`
	InviteeEmail    string    `json:"invitee_email" validate:"required"`
	InviteeTimezone string    `json:"invitee_timezone"`
	StartTime       time.Time `json:"start_time"`
	Notes           string    `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

// InviteeCancelRequest lets an invitee cancel without an account; the
// email must match the one used to book.
type InviteeCancelRequest struct {
	InviteeEmail string `json:"invitee_email" validate:"required"`
	Reason       string `json:"reason"`
}

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	LinkSlug           string     `json:"link_slug,omitempty"`
	InviteeName        string     `json:"invitee_name"`
	InviteeEmail       string     `json:"invitee_email"`
	InviteeTimezone    string     `json:"invitee_timezone"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	Status             string     `json:"status"`
	Notes              string     `json:"notes,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type PaginatedBookingsResponse struct {
	Items      []BookingResponse `json:"items"`
	TotalItems int               `json:"total_items"`
	PageNumber int               `json:"page_number"`
	PageSize   int               `json:"page_size"`
}

type BookingStatsResponse struct {
	TotalBookings     int     `json:"total_bookings"`
	UpcomingBookings  int     `json:"upcoming_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	NoShows           int     `json:"no_shows"`
	TotalHoursBooked  float64 `json:"total_hours_booked"`
}

func ToLinkResponse(l *entity.BookingLink) LinkResponse {
	return LinkResponse{
		ID:                   l.ID,
		Slug:                 l.Slug,
		Title:                l.Title,
		Description:          l.Description,
		DurationMinutes:      l.DurationMinutes,
		BufferBeforeMinutes:  l.BufferBeforeMinutes,
		BufferAfterMinutes:   l.BufferAfterMinutes,
		MinNoticeHours:       l.MinNoticeHours,
		MaxDaysAhead:         l.MaxDaysAhead,
		Timezone:             l.Timezone,
		LocationType:         l.LocationType,
		LocationValue:        l.LocationValue,
		Color:                l.Color,
		RequiresConfirmation: l.RequiresConfirmation,
		ScheduleID:           l.ScheduleID,
		IsActive:             l.IsActive,
		CreatedAt:            l.CreatedAt,
	}
}

func ToBookingResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		InviteeName:        b.InviteeName,
		InviteeEmail:       b.InviteeEmail,
		InviteeTimezone:    b.InviteeTimezone,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             b.Status,
		Notes:              b.Notes,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
	}
}
