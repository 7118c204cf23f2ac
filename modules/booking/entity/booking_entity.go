package entity

import (
	"time"

	coreEntity "meetsync-api/core/entity"

	"github.com/google/uuid"
)

// Location types for a booking link
const (
	LocationVideo    = "video"
	LocationPhone    = "phone"
	LocationInPerson = "in_person"
	LocationCustom   = "custom"
)

// ValidLocationType reports whether a location type is one we accept
func ValidLocationType(t string) bool {
	switch t {
	case LocationVideo, LocationPhone, LocationInPerson, LocationCustom:
		return true
	}
	return false
}

// BookingLink is a shareable scheduling page. When ScheduleID is set the
// link books against that availability schedule, otherwise the owner's
// default one.
type BookingLink struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	UserID               uuid.UUID  `db:"user_id" json:"user_id"`
	Slug                 string     `db:"slug" json:"slug"`
	Title                string     `db:"title" json:"title"`
	Description          string     `db:"description" json:"description"`
	DurationMinutes      int        `db:"duration_minutes" json:"duration_minutes"`
	BufferBeforeMinutes  int        `db:"buffer_before_minutes" json:"buffer_before_minutes"`
	BufferAfterMinutes   int        `db:"buffer_after_minutes" json:"buffer_after_minutes"`
	MinNoticeHours       int        `db:"min_notice_hours" json:"min_notice_hours"`
	MaxDaysAhead         int        `db:"max_days_ahead" json:"max_days_ahead"`
	Timezone             string     `db:"timezone" json:"timezone"`
	LocationType         string     `db:"location_type" json:"location_type"`
	LocationValue        string     `db:"location_value" json:"location_value"`
	Color                string     `db:"color" json:"color"`
	RequiresConfirmation bool       `db:"requires_confirmation" json:"requires_confirmation"`
	ScheduleID           *uuid.UUID `db:"schedule_id" json:"schedule_id,omitempty"`
	IsActive             bool       `db:"is_active" json:"is_active"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// Booking statuses. Pending bookings still block their slot until the
// host rejects them.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"
)

// ValidStatus reports whether a status string is one of the known states
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Booking is a reservation of one slot on a booking link
type Booking struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	LinkID             uuid.UUID  `db:"link_id" json:"link_id"`
	UserID             uuid.UUID  `db:"user_id" json:"user_id"` // host
	InviteeName        string     `db:"invitee_name" json:"invitee_name"`
	InviteeEmail       string     `db:"invitee_email" json:"invitee_email"`
	InviteeTimezone    string     `db:"invitee_timezone" json:"invitee_timezone"`
	StartTime          time.Time  `db:"start_time" json:"start_time"`
	EndTime            time.Time  `db:"end_time" json:"end_time"`
	Status             string     `db:"status" json:"status"`
	Notes              string     `db:"notes" json:"notes"`
	CancelledAt        *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancellationReason string     `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

type PaginatedBookingEntity = coreEntity.Pagination[Booking]
