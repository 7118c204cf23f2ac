package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a person the owner schedules meetings with
type Contact struct {
	ID                uuid.UUID `db:"id" json:"id"`
	UserID            uuid.UUID `db:"user_id" json:"user_id"`
	Name              string    `db:"name" json:"name"`
	Email             string    `db:"email" json:"email"`
	Timezone          string    `db:"timezone" json:"timezone"`
	WorkingHoursStart *int      `db:"working_hours_start" json:"working_hours_start,omitempty"`
	WorkingHoursEnd   *int      `db:"working_hours_end" json:"working_hours_end,omitempty"`
	Notes             string    `db:"notes" json:"notes,omitempty"`
	Favorite          bool      `db:"favorite" json:"favorite"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
