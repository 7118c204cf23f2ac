package controller

import (
	"time"

	"meetsync-api/core/constants"
	"meetsync-api/core/controller"
	"meetsync-api/core/errors"
	"meetsync-api/core/utils"
	"meetsync-api/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	service *service.CalendarService
	controller.BaseController
}

func NewCalendarController(service *service.CalendarService) *CalendarController {
	return &CalendarController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Connect returns the Google consent URL for the current user
// @Summary Start Google Calendar connection
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.OAuthURLResponse
// @Failure 401 {object} errors.AppError
// @Router /private/calendar/connect [get]
func (c *CalendarController) Connect(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	return c.SuccessResponse(ctx, c.service.ConnectURL(userID), "Consent URL generated")
}

// Callback handles the Google OAuth redirect
// @Summary Google OAuth callback
// @Tags Calendar
// @Produce json
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 400 {object} errors.AppError
// @Router /calendar/callback [get]
func (c *CalendarController) Callback(ctx echo.Context) error {
	result, svcErr := c.service.HandleCallback(ctx.Request().Context(),
		ctx.QueryParam("state"), ctx.QueryParam("code"))
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Calendar connected successfully")
}

// GetConnections lists the user's calendar connections
// @Summary List calendar connections
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ConnectionResponse
// @Failure 401 {object} errors.AppError
// @Router /private/calendar/connections [get]
func (c *CalendarController) GetConnections(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, svcErr := c.service.ListConnections(ctx.Request().Context(), userID)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Connections retrieved successfully")
}

// Disconnect removes a calendar connection
// @Summary Disconnect calendar
// @Tags Calendar
// @Security BearerAuth
// @Param provider path string true "Provider name"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.AppError
// @Router /private/calendar/connections/{provider} [delete]
func (c *CalendarController) Disconnect(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	if svcErr := c.service.Disconnect(ctx.Request().Context(), userID, ctx.Param("provider")); svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, nil, "Calendar disconnected successfully")
}

// GetFreeBusy fetches busy intervals from the connected calendar
// @Summary Get free/busy intervals
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param start query string true "Range start RFC3339"
// @Param end query string true "Range end RFC3339"
// @Success 200 {object} dto.FreeBusyResponse
// @Failure 400 {object} errors.AppError
// @Router /private/calendar/free-busy [get]
func (c *CalendarController) GetFreeBusy(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	start, err := time.Parse(time.RFC3339, ctx.QueryParam("start"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "start must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, ctx.QueryParam("end"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "end must be RFC3339")
	}
	if !end.After(start) {
		return c.BadRequest(errors.ErrInvalidInput, "end must be after start")
	}

	result, svcErr := c.service.FreeBusy(ctx.Request().Context(), userID, start, end)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Free/busy retrieved successfully")
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "no token data in context", nil)
	}
	return claims.UserID, nil
}
