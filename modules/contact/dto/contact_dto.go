package dto

import (
	"time"

	"meetsync-api/modules/contact/entity"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email"`
	Timezone          string `json:"timezone" validate:"required"`
	WorkingHoursStart *int   `json:"working_hours_start"`
	WorkingHoursEnd   *int   `json:"working_hours_end"`
	Notes             string `json:"notes"`
	Favorite          bool   `json:"favorite"`
}

type UpdateContactRequest struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Timezone          *string `json:"timezone"`
	WorkingHoursStart *int    `json:"working_hours_start"`
	WorkingHoursEnd   *int    `json:"working_hours_end"`
	Notes             *string `json:"notes"`
	Favorite          *bool   `json:"favorite"`
}

type ContactResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Timezone          string    `json:"timezone"`
	TimezoneDisplay   string    `json:"timezone_display"`
	WorkingHoursStart *int      `json:"working_hours_start,omitempty"`
	WorkingHoursEnd   *int      `json:"working_hours_end,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	Favorite          bool      `json:"favorite"`
	CreatedAt         time.Time `json:"created_at"`
}

type ContactListResponse struct {
	Contacts   []ContactResponse `json:"contacts"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

func ToContactResponse(c *entity.Contact, timezoneDisplay string) ContactResponse {
	return ContactResponse{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Timezone:          c.Timezone,
		TimezoneDisplay:   timezoneDisplay,
		WorkingHoursStart: c.WorkingHoursStart,
		WorkingHoursEnd:   c.WorkingHoursEnd,
		Notes:             c.Notes,
		Favorite:          c.Favorite,
		CreatedAt:         c.CreatedAt,
	}
}
