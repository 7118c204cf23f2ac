package repository

import (
	"context"
	"database/sql"

	"meetsync-api/core/database"
	"meetsync-api/core/logger"
	"meetsync-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// CalendarRepository handles calendar connection storage
type CalendarRepository struct {
	DB database.Database
}

func NewCalendarRepository(db database.Database) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

type CalendarRepositoryInterface interface {
	UpsertConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error)
	GetConnection(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	ListConnections(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error)
	UpdateTokens(ctx context.Context, conn *entity.CalendarConnection) error
	DeactivateConnection(ctx context.Context, userID uuid.UUID, provider string) error
}

func (r *CalendarRepository) UpsertConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	query := `
		INSERT INTO calendar_connections (user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		ON CONFLICT (user_id, provider) DO UPDATE
		SET access_token = EXCLUDED.access_token,
		    refresh_token = EXCLUDED.refresh_token,
		    token_expires_at = EXCLUDED.token_expires_at,
		    calendar_email = EXCLUDED.calendar_email,
		    is_active = true,
		    updated_at = NOW()
		RETURNING id, user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active,
		          created_at, updated_at
	`

	var saved entity.CalendarConnection
	err := r.DB.GetContext(ctx, &saved, query,
		conn.UserID, conn.Provider, conn.AccessToken, conn.RefreshToken,
		conn.TokenExpiresAt, conn.CalendarEmail)
	if err != nil {
		logger.Error("CalendarRepository:UpsertConnection", err)
		return nil, err
	}

	return &saved, nil
}

func (r *CalendarRepository) GetConnection(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `
		SELECT id, user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active,
		       created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1 AND provider = $2 AND is_active = true
	`

	var conn entity.CalendarConnection
	err := r.DB.GetContext(ctx, &conn, query, userID, provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetConnection", err)
		return nil, err
	}

	return &conn, nil
}

func (r *CalendarRepository) ListConnections(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error) {
	query := `
		SELECT id, user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active,
		       created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1 AND is_active = true
		ORDER BY created_at DESC
	`

	var connections []entity.CalendarConnection
	err := r.DB.SelectContext(ctx, &connections, query, userID)
	if err != nil {
		logger.Error("CalendarRepository:ListConnections", err)
		return nil, err
	}

	return connections, nil
}

func (r *CalendarRepository) UpdateTokens(ctx context.Context, conn *entity.CalendarConnection) error {
	query := `
		UPDATE calendar_connections
		SET access_token = $2, refresh_token = $3, token_expires_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, conn.ID, conn.AccessToken, conn.RefreshToken, conn.TokenExpiresAt)
	if err != nil {
		logger.Error("CalendarRepository:UpdateTokens", err)
	}
	return err
}

func (r *CalendarRepository) DeactivateConnection(ctx context.Context, userID uuid.UUID, provider string) error {
	query := `
		UPDATE calendar_connections
		SET is_active = false, updated_at = NOW()
		WHERE user_id = $1 AND provider = $2
	`

	err := r.DB.ExecContext(ctx, query, userID, provider)
	if err != nil {
		logger.Error("CalendarRepository:DeactivateConnection", err)
	}
	return err
}
