package service

import (
	"context"
	"testing"
	"time"

	"meetsync-api/core/config"
	"meetsync-api/core/constants"
	"meetsync-api/core/errors"
	"meetsync-api/core/utils"

	"github.com/google/uuid"
)

type fakeBlacklist struct {
	revoked map[string]time.Duration
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: map[string]time.Duration{}}
}

func (f *fakeBlacklist) AddToTokenBlacklist(_ context.Context, tokenID string, ttl time.Duration) error {
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeBlacklist) IsTokenBlacklisted(_ context.Context, tokenID string) bool {
	_, ok := f.revoked[tokenID]
	return ok
}

func loadTestConfig(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := config.Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestRefreshRotatesAndRevokesOldToken(t *testing.T) {
	loadTestConfig(t)
	blacklist := newFakeBlacklist()
	svc := NewAuthService(blacklist)

	userID := uuid.New()
	refresh, err := utils.GenerateToken(userID, "host@example.com", constants.ScopeTokenRefresh)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected a full token pair")
	}

	accessClaims, err := utils.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse issued access token: %v", err)
	}
	if accessClaims.Scope != constants.ScopeTokenAccess {
		t.Fatalf("access token scope = %q, want %q", accessClaims.Scope, constants.ScopeTokenAccess)
	}
	if accessClaims.UserID != userID {
		t.Fatalf("access token user = %s, want %s", accessClaims.UserID, userID)
	}

	oldClaims, err := utils.ParseToken(refresh)
	if err != nil {
		t.Fatalf("parse original refresh token: %v", err)
	}
	if !blacklist.IsTokenBlacklisted(context.Background(), oldClaims.ID) {
		t.Fatal("presented refresh token was not revoked")
	}

	// rotation means the old token cannot be replayed
	if _, err := svc.Refresh(context.Background(), refresh); err == nil {
		t.Fatal("replayed refresh token should be rejected")
	}
}

func TestRefreshRejectsAccessScopedToken(t *testing.T) {
	loadTestConfig(t)
	svc := NewAuthService(newFakeBlacklist())

	access, err := utils.GenerateToken(uuid.New(), "host@example.com", constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), access)
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("got %v, want %s for an access-scoped token", err, errors.ErrUnauthorized)
	}
}

func TestLogoutBlacklistsAccessToken(t *testing.T) {
	loadTestConfig(t)
	blacklist := newFakeBlacklist()
	svc := NewAuthService(blacklist)

	token, err := utils.GenerateToken(uuid.New(), "host@example.com", constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !blacklist.IsTokenBlacklisted(context.Background(), claims.ID) {
		t.Fatal("access token was not blacklisted")
	}
	if ttl := blacklist.revoked[claims.ID]; ttl <= 0 {
		t.Fatalf("blacklist ttl = %v, want a positive remaining lifetime", ttl)
	}
}
