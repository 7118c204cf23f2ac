package controller

import (
	"time"

	"meetsync-api/core/constants"
	"meetsync-api/core/controller"
	"meetsync-api/core/errors"
	"meetsync-api/core/utils"
	"meetsync-api/modules/suggestion/dto"
	"meetsync-api/modules/suggestion/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SuggestionController struct {
	service *service.SuggestionService
	controller.BaseController
}

func NewSuggestionController(service *service.SuggestionService) *SuggestionController {
	return &SuggestionController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// SuggestTimes ranks candidate meeting times across a date range
// @Summary Suggest meeting times
// @Tags Suggestion
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SuggestTimesRequest true "Participants, date range and constraints"
// @Success 200 {object} dto.SuggestTimesResponse
// @Failure 400 {object} errors.AppError
// @Router /private/suggestions/times [post]
func (c *SuggestionController) SuggestTimes(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.SuggestTimesRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.SuggestTimes(ctx.Request().Context(), userID, req, time.Now())
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, result, "Suggestions computed successfully")
}

// BestHours finds the best hours of the day across timezones
// @Summary Best hours of the day
// @Tags Suggestion
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BestHoursRequest true "Participants and reference timezone"
// @Success 200 {object} service.BestHoursResult
// @Failure 400 {object} errors.AppError
// @Router /private/suggestions/best-hours [post]
func (c *SuggestionController) BestHours(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.BestHoursRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.BestHours(ctx.Request().Context(), userID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, result, "Best hours computed successfully")
}

// OverlapWindows lists the hours where most participants overlap
// @Summary Working-hour overlap windows
// @Tags Suggestion
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.OverlapWindowsRequest true "Participants and reference timezone"
// @Success 200 {array} service.OverlapWindow
// @Failure 400 {object} errors.AppError
// @Router /private/suggestions/overlap-windows [post]
func (c *SuggestionController) OverlapWindows(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.OverlapWindowsRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.OverlapWindows(ctx.Request().Context(), userID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, result, "Overlap windows computed successfully")
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "no token data in context", nil)
	}
	return claims.UserID, nil
}
