package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"meetsync-api/core/config"
	"meetsync-api/core/errors"
	"meetsync-api/core/logger"
	"meetsync-api/modules/calendar/dto"
	"meetsync-api/modules/calendar/entity"
	"meetsync-api/modules/calendar/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleFreeBusyAPI = "https://www.googleapis.com/calendar/v3/freeBusy"
	googleUserInfoAPI = "https://www.googleapis.com/oauth2/v2/userinfo"

	// refresh tokens this long before they actually expire
	tokenExpiryWindow = 5 * time.Minute
)

// CalendarService manages provider connections and free/busy lookups.
// Provider outages degrade to an empty busy list for callers that feed
// the slot generator; only the explicit free-busy endpoint surfaces errors.
type CalendarService struct {
	repo   repository.CalendarRepositoryInterface
	client *http.Client
}

func NewCalendarService(repo repository.CalendarRepositoryInterface) *CalendarService {
	return &CalendarService{
		repo:   repo,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *CalendarService) oauthConfig() *oauth2.Config {
	cfg := config.Get()
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar.readonly",
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
}

// ConnectURL builds the Google consent URL. The state parameter carries the
// user ID so the unauthenticated callback can attribute the tokens.
func (s *CalendarService) ConnectURL(userID uuid.UUID) *dto.OAuthURLResponse {
	url := s.oauthConfig().AuthCodeURL(userID.String(),
		oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return &dto.OAuthURLResponse{URL: url}
}

// HandleCallback exchanges the authorization code and stores the connection
func (s *CalendarService) HandleCallback(ctx context.Context, state, code string) (*dto.ConnectionResponse, error) {
	userID, err := uuid.Parse(state)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid oauth state", err)
	}
	if code == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "missing authorization code", nil)
	}

	token, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		logger.Error("CalendarService:HandleCallback:Exchange", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to exchange authorization code", err)
	}

	email, err := s.fetchAccountEmail(ctx, token.AccessToken)
	if err != nil {
		logger.Warn("CalendarService:HandleCallback:UserInfo", "error", err)
	}

	saved, err := s.repo.UpsertConnection(ctx, &entity.CalendarConnection{
		UserID:         userID,
		Provider:       entity.ProviderGoogle,
		AccessToken:    token.AccessToken,
		RefreshToken:   token.RefreshToken,
		TokenExpiresAt: token.Expiry,
		CalendarEmail:  email,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to save calendar connection", err)
	}

	logger.Info("CalendarService:HandleCallback:Connected",
		"user_id", userID.String(),
		"email", saved.CalendarEmail,
	)
	resp := toConnectionResponse(saved)
	return &resp, nil
}

func (s *CalendarService) ListConnections(ctx context.Context, userID uuid.UUID) ([]dto.ConnectionResponse, error) {
	connections, err := s.repo.ListConnections(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list calendar connections", err)
	}

	out := make([]dto.ConnectionResponse, 0, len(connections))
	for i := range connections {
		out = append(out, toConnectionResponse(&connections[i]))
	}
	return out, nil
}

func (s *CalendarService) Disconnect(ctx context.Context, userID uuid.UUID, provider string) error {
	conn, err := s.repo.GetConnection(ctx, userID, provider)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to get calendar connection", err)
	}
	if conn == nil {
		return errors.NewAppError(errors.ErrNotFound, "calendar connection not found", nil)
	}

	if err := s.repo.DeactivateConnection(ctx, userID, provider); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to disconnect calendar", err)
	}
	return nil
}

// FreeBusy fetches busy intervals from the connected Google calendar.
// Unlike BusyIntervals this surfaces provider errors to the caller.
func (s *CalendarService) FreeBusy(ctx context.Context, userID uuid.UUID, from, to time.Time) (*dto.FreeBusyResponse, error) {
	conn, err := s.repo.GetConnection(ctx, userID, entity.ProviderGoogle)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get calendar connection", err)
	}
	if conn == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "no Google calendar connected", nil)
	}

	accessToken, err := s.ensureValidToken(ctx, conn)
	if err != nil {
		return nil, err
	}

	slots, err := s.callGoogleFreeBusy(ctx, accessToken, conn.CalendarEmail, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "free/busy lookup failed", err)
	}

	return &dto.FreeBusyResponse{
		Provider:  entity.ProviderGoogle,
		BusySlots: slots,
		Count:     len(slots),
	}, nil
}

// BusyIntervals is the degrading variant used by the slot generator path:
// no connection or a provider failure yields an empty list, never an error.
func (s *CalendarService) BusyIntervals(ctx context.Context, userID uuid.UUID, from, to time.Time) []dto.BusySlot {
	conn, err := s.repo.GetConnection(ctx, userID, entity.ProviderGoogle)
	if err != nil || conn == nil {
		return nil
	}

	accessToken, err := s.ensureValidToken(ctx, conn)
	if err != nil {
		logger.Warn("CalendarService:BusyIntervals:TokenRefresh", "user_id", userID.String(), "error", err)
		return nil
	}

	slots, err := s.callGoogleFreeBusy(ctx, accessToken, conn.CalendarEmail, from, to)
	if err != nil {
		logger.Warn("CalendarService:BusyIntervals:Provider", "user_id", userID.String(), "error", err)
		return nil
	}
	return slots
}

// ensureValidToken returns a usable access token, refreshing through the
// oauth2 token source when the stored one is inside the expiry window.
func (s *CalendarService) ensureValidToken(ctx context.Context, conn *entity.CalendarConnection) (string, error) {
	if time.Now().Before(conn.TokenExpiresAt.Add(-tokenExpiryWindow)) {
		return conn.AccessToken, nil
	}

	logger.Info("CalendarService:EnsureValidToken:Refreshing", "user_id", conn.UserID.String())

	source := s.oauthConfig().TokenSource(ctx, &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		Expiry:       conn.TokenExpiresAt,
	})
	token, err := source.Token()
	if err != nil {
		return "", errors.NewAppError(errors.ErrUnauthorized, "failed to refresh calendar token", err)
	}

	conn.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		conn.RefreshToken = token.RefreshToken
	}
	conn.TokenExpiresAt = token.Expiry

	if err := s.repo.UpdateTokens(ctx, conn); err != nil {
		// token still usable for this request
		logger.Warn("CalendarService:EnsureValidToken:Persist", "error", err)
	}

	return token.AccessToken, nil
}

// freeBusyCalendarID picks the calendar to query. Connections saved when
// the userinfo fetch failed carry an empty email, which Google would
// answer with no calendars at all; "primary" is the owner's calendar
// alias.
func freeBusyCalendarID(email string) string {
	if email == "" {
		return "primary"
	}
	return email
}

func (s *CalendarService) callGoogleFreeBusy(ctx context.Context, accessToken, email string, from, to time.Time) ([]dto.BusySlot, error) {
	calendarID := freeBusyCalendarID(email)
	payload := map[string]interface{}{
		"timeMin": from.Format(time.RFC3339),
		"timeMax": to.Format(time.RFC3339),
		"items":   []map[string]string{{"id": calendarID}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleFreeBusyAPI, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google freeBusy API status %d: %s", resp.StatusCode, string(errBody))
	}

	var result struct {
		Calendars map[string]struct {
			Busy []struct {
				Start string `json:"start"`
				End   string `json:"end"`
			} `json:"busy"`
		} `json:"calendars"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var slots []dto.BusySlot
	if cal, ok := result.Calendars[calendarID]; ok {
		for _, busy := range cal.Busy {
			start, serr := time.Parse(time.RFC3339, busy.Start)
			end, eerr := time.Parse(time.RFC3339, busy.End)
			if serr != nil || eerr != nil {
				logger.Warn("CalendarService:FreeBusy:BadInterval", "start", busy.Start, "end", busy.End)
				continue
			}
			slots = append(slots, dto.BusySlot{Start: start, End: end})
		}
	}
	return slots, nil
}

func (s *CalendarService) fetchAccountEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoAPI, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", err
	}
	return info.Email, nil
}

func toConnectionResponse(conn *entity.CalendarConnection) dto.ConnectionResponse {
	return dto.ConnectionResponse{
		ID:            conn.ID.String(),
		Provider:      conn.Provider,
		CalendarEmail: conn.CalendarEmail,
		IsActive:      conn.IsActive,
		ConnectedAt:   conn.CreatedAt.Format(time.RFC3339),
	}
}
