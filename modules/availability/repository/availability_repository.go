package repository

import (
	"context"
	"database/sql"

	"meetsync-api/core/database"
	"meetsync-api/core/logger"
	"meetsync-api/modules/availability/entity"

	"github.com/google/uuid"
)

const scheduleColumns = `id, user_id, name, timezone, weekly, overrides, is_default, created_at, updated_at`

// AvailabilityRepository persists named availability schedules
type AvailabilityRepository struct {
	DB database.Database
}

func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

type AvailabilityRepositoryInterface interface {
	Create(ctx context.Context, schedule *entity.AvailabilitySchedule) (*entity.AvailabilitySchedule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySchedule, error)
	GetDefaultByUserID(ctx context.Context, userID uuid.UUID) (*entity.AvailabilitySchedule, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]entity.AvailabilitySchedule, error)
	Update(ctx context.Context, schedule *entity.AvailabilitySchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetDefault(ctx context.Context, userID, id uuid.UUID) error
}

func (r *AvailabilityRepository) Create(ctx context.Context, schedule *entity.AvailabilitySchedule) (*entity.AvailabilitySchedule, error) {
	query := `
		INSERT INTO availability_schedules (user_id, name, timezone, weekly, overrides, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + scheduleColumns

	var saved entity.AvailabilitySchedule
	err := r.DB.GetContext(ctx, &saved, query,
		schedule.UserID, schedule.Name, schedule.Timezone,
		schedule.Weekly, schedule.Overrides, schedule.IsDefault)
	if err != nil {
		logger.Error("AvailabilityRepository:Create", err)
		return nil, err
	}

	return &saved, nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM availability_schedules WHERE id = $1`

	var schedule entity.AvailabilitySchedule
	err := r.DB.GetContext(ctx, &schedule, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetByID", err)
		return nil, err
	}

	return &schedule, nil
}

func (r *AvailabilityRepository) GetDefaultByUserID(ctx context.Context, userID uuid.UUID) (*entity.AvailabilitySchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM availability_schedules WHERE user_id = $1 AND is_default = true`

	var schedule entity.AvailabilitySchedule
	err := r.DB.GetContext(ctx, &schedule, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetDefaultByUserID", err)
		return nil, err
	}

	return &schedule, nil
}

func (r *AvailabilityRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]entity.AvailabilitySchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM availability_schedules
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at ASC`

	var schedules []entity.AvailabilitySchedule
	err := r.DB.SelectContext(ctx, &schedules, query, userID)
	if err != nil {
		logger.Error("AvailabilityRepository:ListByUserID", err)
		return nil, err
	}

	return schedules, nil
}

func (r *AvailabilityRepository) Update(ctx context.Context, schedule *entity.AvailabilitySchedule) error {
	query := `
		UPDATE availability_schedules
		SET name = $2, timezone = $3, weekly = $4, overrides = $5, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		schedule.ID, schedule.Name, schedule.Timezone, schedule.Weekly, schedule.Overrides)
	if err != nil {
		logger.Error("AvailabilityRepository:Update", err)
	}
	return err
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM availability_schedules WHERE id = $1`

	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("AvailabilityRepository:Delete", err)
	}
	return err
}

// SetDefault promotes one schedule and demotes the user's others in a
// single statement pair.
func (r *AvailabilityRepository) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	unset := `UPDATE availability_schedules SET is_default = false, updated_at = NOW()
		WHERE user_id = $1 AND is_default = true AND id <> $2`
	if err := r.DB.ExecContext(ctx, unset, userID, id); err != nil {
		logger.Error("AvailabilityRepository:SetDefault:Unset", err)
		return err
	}

	set := `UPDATE availability_schedules SET is_default = true, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, set, id)
	if err != nil {
		logger.Error("AvailabilityRepository:SetDefault:Set", err)
	}
	return err
}
