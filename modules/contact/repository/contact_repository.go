package repository

import (
	"context"
	"database/sql"

	"meetsync-api/core/database"
	"meetsync-api/core/logger"
	"meetsync-api/core/params"
	"meetsync-api/modules/contact/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const contactColumns = `id, user_id, name, email, timezone, working_hours_start, working_hours_end,
	notes, favorite, created_at, updated_at`

// ContactRepository handles contact database operations
type ContactRepository struct {
	DB database.Database
}

func NewContactRepository(db database.Database) *ContactRepository {
	return &ContactRepository{DB: db}
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, contact *entity.Contact) (*entity.Contact, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]entity.Contact, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, qp params.QueryParams) ([]entity.Contact, int, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
}

func (r *ContactRepository) Create(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	query := `
		INSERT INTO contacts (user_id, name, email, timezone, working_hours_start, working_hours_end, notes, favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + contactColumns

	var created entity.Contact
	err := r.DB.GetContext(ctx, &created, query,
		contact.UserID, contact.Name, contact.Email, contact.Timezone,
		contact.WorkingHoursStart, contact.WorkingHoursEnd, contact.Notes, contact.Favorite)
	if err != nil {
		logger.Error("ContactRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	var contact entity.Contact
	err := r.DB.GetContext(ctx, &contact, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ContactRepository:GetByID", err)
		return nil, err
	}

	return &contact, nil
}

func (r *ContactRepository) GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]entity.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND id = ANY($2::uuid[])
		ORDER BY name
	`

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	var contacts []entity.Contact
	err := r.DB.SelectContext(ctx, &contacts, query, userID, pq.Array(idStrings))
	if err != nil {
		logger.Error("ContactRepository:GetByIDs", err)
		return nil, err
	}

	return contacts, nil
}

// ListByUserID returns one page of contacts, favorites first then by name
func (r *ContactRepository) ListByUserID(ctx context.Context, userID uuid.UUID, qp params.QueryParams) ([]entity.Contact, int, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY favorite DESC, name
		LIMIT $3 OFFSET $4
	`

	var contacts []entity.Contact
	err := r.DB.SelectContext(ctx, &contacts, query, userID, qp.Search, qp.Limit(), qp.Offset())
	if err != nil {
		logger.Error("ContactRepository:ListByUserID", err)
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*) FROM contacts
		WHERE user_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
	`
	var total int
	if err := r.DB.GetContext(ctx, &total, countQuery, userID, qp.Search); err != nil {
		logger.Error("ContactRepository:ListByUserID:Count", err)
		return nil, 0, err
	}

	return contacts, total, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, email = $3, timezone = $4, working_hours_start = $5,
		    working_hours_end = $6, notes = $7, favorite = $8, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Timezone,
		contact.WorkingHoursStart, contact.WorkingHoursEnd, contact.Notes, contact.Favorite)
	if err != nil {
		logger.Error("ContactRepository:Update", err)
	}
	return err
}

func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM contacts WHERE id = $1`

	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("ContactRepository:Delete", err)
	}
	return err
}
