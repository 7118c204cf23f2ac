package repository

import (
	"context"
	"database/sql"
	"time"

	"meetsync-api/core/database"
	"meetsync-api/core/logger"
	"meetsync-api/core/params"
	"meetsync-api/modules/booking/entity"

	"github.com/google/uuid"
)

// BookingRepository handles booking link and booking database operations
type BookingRepository struct {
	DB database.Database
}

func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{DB: db}
}

type BookingRepositoryInterface interface {
	CreateLink(ctx context.Context, link *entity.BookingLink) (*entity.BookingLink, error)
	GetLinkByID(ctx context.Context, id uuid.UUID) (*entity.BookingLink, error)
	GetLinkBySlug(ctx context.Context, slug string) (*entity.BookingLink, error)
	ListLinksByUserID(ctx context.Context, userID uuid.UUID) ([]entity.BookingLink, error)
	UpdateLink(ctx context.Context, link *entity.BookingLink) error
	DeleteLink(ctx context.Context, id uuid.UUID) error

	CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	ListBookingsByUserID(ctx context.Context, userID uuid.UUID, status string, p params.QueryParams) (*entity.PaginatedBookingEntity, error)
	ListUpcoming(ctx context.Context, userID uuid.UUID, after time.Time) ([]entity.Booking, error)
	ListBlockingInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.Booking, error)
	ListAllByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string, cancelledAt *time.Time, reason string) error
}

const linkColumns = `id, user_id, slug, title, description, duration_minutes,
	buffer_before_minutes, buffer_after_minutes, min_notice_hours, max_days_ahead,
	timezone, location_type, location_value, color, requires_confirmation,
	schedule_id, is_active, created_at, updated_at`

func (r *BookingRepository) CreateLink(ctx context.Context, link *entity.BookingLink) (*entity.BookingLink, error) {
	query := `
		INSERT INTO booking_links (user_id, slug, title, description, duration_minutes,
			buffer_before_minutes, buffer_after_minutes, min_notice_hours, max_days_ahead,
			timezone, location_type, location_value, color, requires_confirmation,
			schedule_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + linkColumns

	var created entity.BookingLink
	err := r.DB.GetContext(ctx, &created, query,
		link.UserID, link.Slug, link.Title, link.Description, link.DurationMinutes,
		link.BufferBeforeMinutes, link.BufferAfterMinutes, link.MinNoticeHours,
		link.MaxDaysAhead, link.Timezone, link.LocationType, link.LocationValue,
		link.Color, link.RequiresConfirmation, link.ScheduleID, link.IsActive)
	if err != nil {
		logger.Error("BookingRepository:CreateLink", err)
		return nil, err
	}

	return &created, nil
}

func (r *BookingRepository) GetLinkByID(ctx context.Context, id uuid.UUID) (*entity.BookingLink, error) {
	query := `SELECT ` + linkColumns + ` FROM booking_links WHERE id = $1`

	var link entity.BookingLink
	err := r.DB.GetContext(ctx, &link, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetLinkByID", err)
		return nil, err
	}

	return &link, nil
}

func (r *BookingRepository) GetLinkBySlug(ctx context.Context, slug string) (*entity.BookingLink, error) {
	query := `SELECT ` + linkColumns + ` FROM booking_links WHERE slug = $1`

	var link entity.BookingLink
	err := r.DB.GetContext(ctx, &link, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetLinkBySlug", err)
		return nil, err
	}

	return &link, nil
}

func (r *BookingRepository) ListLinksByUserID(ctx context.Context, userID uuid.UUID) ([]entity.BookingLink, error) {
	query := `SELECT ` + linkColumns + ` FROM booking_links WHERE user_id = $1 ORDER BY created_at DESC`

	var links []entity.BookingLink
	err := r.DB.SelectContext(ctx, &links, query, userID)
	if err != nil {
		logger.Error("BookingRepository:ListLinksByUserID", err)
		return nil, err
	}

	return links, nil
}

func (r *BookingRepository) UpdateLink(ctx context.Context, link *entity.BookingLink) error {
	query := `
		UPDATE booking_links
		SET title = $2, description = $3, duration_minutes = $4,
		    buffer_before_minutes = $5, buffer_after_minutes = $6,
		    min_notice_hours = $7, max_days_ahead = $8, timezone = $9,
		    location_type = $10, location_value = $11, color = $12,
		    requires_confirmation = $13, schedule_id = $14, is_active = $15,
		    updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		link.ID, link.Title, link.Description, link.DurationMinutes,
		link.BufferBeforeMinutes, link.BufferAfterMinutes, link.MinNoticeHours,
		link.MaxDaysAhead, link.Timezone, link.LocationType, link.LocationValue,
		link.Color, link.RequiresConfirmation, link.ScheduleID, link.IsActive)
	if err != nil {
		logger.Error("BookingRepository:UpdateLink", err)
	}
	return err
}

func (r *BookingRepository) DeleteLink(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM booking_links WHERE id = $1`

	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("BookingRepository:DeleteLink", err)
	}
	return err
}

const bookingColumns = `id, link_id, user_id, invitee_name, invitee_email, invitee_timezone,
	start_time, end_time, status, notes, cancelled_at, cancellation_reason,
	created_at, updated_at`

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	query := `
		INSERT INTO bookings (link_id, user_id, invitee_name, invitee_email, invitee_timezone,
			start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + bookingColumns

	var created entity.Booking
	err := r.DB.GetContext(ctx, &created, query,
		booking.LinkID, booking.UserID, booking.InviteeName, booking.InviteeEmail,
		booking.InviteeTimezone, booking.StartTime, booking.EndTime,
		booking.Status, booking.Notes)
	if err != nil {
		logger.Error("BookingRepository:CreateBooking", err)
		return nil, err
	}

	return &created, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetBookingByID", err)
		return nil, err
	}

	return &booking, nil
}

// ListBookingsByUserID returns one page of the host's bookings, newest
// first. An empty status matches every state.
func (r *BookingRepository) ListBookingsByUserID(ctx context.Context, userID uuid.UUID, status string, p params.QueryParams) (*entity.PaginatedBookingEntity, error) {
	countQuery := `SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND ($2 = '' OR status = $2)`

	var total int
	if err := r.DB.GetContext(ctx, &total, countQuery, userID, status); err != nil {
		logger.Error("BookingRepository:ListBookingsByUserID:Count", err)
		return nil, err
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY start_time DESC
		LIMIT $3 OFFSET $4
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, userID, status, p.Limit(), p.Offset())
	if err != nil {
		logger.Error("BookingRepository:ListBookingsByUserID", err)
		return nil, err
	}

	return &entity.PaginatedBookingEntity{
		Items:      bookings,
		TotalItems: total,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

// ListUpcoming returns future pending and confirmed bookings, soonest first
func (r *BookingRepository) ListUpcoming(ctx context.Context, userID uuid.UUID, after time.Time) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND status IN ($2, $3) AND start_time > $4
		ORDER BY start_time ASC
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, userID,
		entity.StatusPending, entity.StatusConfirmed, after)
	if err != nil {
		logger.Error("BookingRepository:ListUpcoming", err)
		return nil, err
	}

	return bookings, nil
}

// ListBlockingInRange returns the bookings that block slots in a window.
// Pending bookings block too, so an unconfirmed request cannot be
// double-booked.
func (r *BookingRepository) ListBlockingInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND status IN ($2, $3) AND start_time < $5 AND end_time > $4
		ORDER BY start_time ASC
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, userID,
		entity.StatusPending, entity.StatusConfirmed, from, to)
	if err != nil {
		logger.Error("BookingRepository:ListBlockingInRange", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) ListAllByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY start_time DESC`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		logger.Error("BookingRepository:ListAllByUserID", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string, cancelledAt *time.Time, reason string) error {
	query := `
		UPDATE bookings
		SET status = $2, cancelled_at = $3, cancellation_reason = $4, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, id, status, cancelledAt, reason)
	if err != nil {
		logger.Error("BookingRepository:UpdateBookingStatus", err)
	}
	return err
}
