package service

import (
	"context"
	"strings"
	"time"

	"meetsync-api/core/constants"
	"meetsync-api/core/errors"
	"meetsync-api/core/logger"
	"meetsync-api/core/utils"
	"meetsync-api/modules/auth/dto"
)

// TokenBlacklist records revoked token IDs until their natural expiry
type TokenBlacklist interface {
	AddToTokenBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, tokenID string) bool
}

// AuthService rotates refresh tokens and revokes issued ones. Tokens are
// stateless JWTs, so revocation is a redis blacklist keyed by jti.
type AuthService struct {
	blacklist TokenBlacklist
}

func NewAuthService(blacklist TokenBlacklist) *AuthService {
	return &AuthService{blacklist: blacklist}
}

// Refresh exchanges a refresh token for a fresh access/refresh pair and
// revokes the presented token so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "refresh token is required", nil)
	}

	claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired refresh token", err)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token is not a refresh token", nil)
	}
	if claims.ID != "" && s.blacklist.IsTokenBlacklisted(ctx, claims.ID) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "refresh token has been revoked", nil)
	}

	access, err := utils.GenerateToken(claims.UserID, claims.Email, constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue access token", err)
	}
	refresh, err := utils.GenerateToken(claims.UserID, claims.Email, constants.ScopeTokenRefresh)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue refresh token", err)
	}

	if err := s.revoke(ctx, claims); err != nil {
		// the new pair is already issued; the old token ages out on its own
		logger.Warn("AuthService:Refresh:Revoke", "error", err)
	}

	logger.Info("AuthService:Refresh:Rotated", "user_id", claims.UserID.String())
	return &dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *utils.TokenClaims) error {
	if claims == nil {
		return errors.NewAppError(errors.ErrUnauthorized, "no token data", nil)
	}
	if err := s.revoke(ctx, claims); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}

func (s *AuthService) revoke(ctx context.Context, claims *utils.TokenClaims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.AddToTokenBlacklist(ctx, claims.ID, ttl)
}
