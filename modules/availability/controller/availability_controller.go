package controller

import (
	"time"

	"meetsync-api/core/constants"
	"meetsync-api/core/controller"
	"meetsync-api/core/errors"
	"meetsync-api/core/utils"
	"meetsync-api/modules/availability/dto"
	"meetsync-api/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	service *service.AvailabilityService
	controller.BaseController
}

func NewAvailabilityController(service *service.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateSchedule creates a named availability schedule
// @Summary Create availability schedule
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Schedule name and timezone"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/schedules [post]
func (c *AvailabilityController) CreateSchedule(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreateScheduleRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.CreateSchedule(ctx.Request().Context(), userID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Schedule created successfully")
}

// ListSchedules lists the caller's schedules, default first
// @Summary List availability schedules
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ScheduleResponse
// @Router /private/availability/schedules [get]
func (c *AvailabilityController) ListSchedules(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, svcErr := c.service.ListSchedules(ctx.Request().Context(), userID)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Schedules retrieved successfully")
}

// GetSchedule returns one schedule with its overrides
// @Summary Get availability schedule
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} errors.AppError
// @Router /private/availability/schedules/{id} [get]
func (c *AvailabilityController) GetSchedule(ctx echo.Context) error {
	userID, scheduleID, err := c.idsFromContext(ctx)
	if err != nil {
		return err
	}

	result, svcErr := c.service.GetSchedule(ctx.Request().Context(), userID, scheduleID)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Schedule retrieved successfully")
}

// UpdateSchedule updates name, timezone or the weekly template
// @Summary Update availability schedule
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Fields to update"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/schedules/{id} [put]
func (c *AvailabilityController) UpdateSchedule(ctx echo.Context) error {
	userID, scheduleID, err := c.idsFromContext(ctx)
	if err != nil {
		return err
	}

	req := new(dto.UpdateScheduleRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.UpdateSchedule(ctx.Request().Context(), userID, scheduleID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Schedule updated successfully")
}

// DeleteSchedule deletes a non-default schedule
// @Summary Delete availability schedule
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /private/availability/schedules/{id} [delete]
func (c *AvailabilityController) DeleteSchedule(ctx echo.Context) error {
	userID, scheduleID, err := c.idsFromContext(ctx)
	if err != nil {
		return err
	}

	if svcErr := c.service.DeleteSchedule(ctx.Request().Context(), userID, scheduleID); svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, nil, "Schedule deleted successfully")
}

// SetDefault promotes a schedule to the caller's default
// @Summary Set default schedule
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} errors.AppError
// @Router /private/availability/schedules/{id}/default [put]
func (c *AvailabilityController) SetDefault(ctx echo.Context) error {
	userID, scheduleID, err := c.idsFromContext(ctx)
	if err != nil {
		return err
	}

	result, svcErr := c.service.SetDefault(ctx.Request().Context(), userID, scheduleID)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Default schedule updated successfully")
}

// PutOverride adds or replaces a date override on a schedule
// @Summary Put date override
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body dto.PutOverrideRequest true "Override"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/schedules/{id}/overrides [put]
func (c *AvailabilityController) PutOverride(ctx echo.Context) error {
	userID, scheduleID, err := c.idsFromContext(ctx)
	if err != nil {
		return err
	}

	req := new(dto.PutOverrideRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.PutOverride(ctx.Request().Context(), userID, scheduleID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Override saved successfully")
}

// DeleteOverride removes the override for a date
// @Summary Delete date override
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param date path string true "Date YYYY-MM-DD"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /private/availability/schedules/{id}/overrides/{date} [delete]
func (c *AvailabilityController) DeleteOverride(ctx echo.Context) error {
	userID, scheduleID, err := c.idsFromContext(ctx)
	if err != nil {
		return err
	}

	if svcErr := c.service.DeleteOverride(ctx.Request().Context(), userID, scheduleID, ctx.Param("date")); svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, nil, "Override deleted successfully")
}

// ResolveRange shows the effective availability per date in a range
// @Summary Resolve availability range
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Schedule ID"
// @Param range_start query string true "Start date YYYY-MM-DD"
// @Param range_end query string true "End date YYYY-MM-DD"
// @Success 200 {object} dto.ResolveRangeResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/schedules/{id}/resolve [get]
func (c *AvailabilityController) ResolveRange(ctx echo.Context) error {
	userID, scheduleID, err := c.idsFromContext(ctx)
	if err != nil {
		return err
	}

	result, svcErr := c.service.ResolveRange(ctx.Request().Context(), userID, scheduleID,
		ctx.QueryParam("range_start"), ctx.QueryParam("range_end"))
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Range resolved successfully")
}

// PreviewSlots expands a schedule into bookable slots
// @Summary Preview bookable slots
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body dto.PreviewSlotsRequest true "Range, duration, buffers, busy intervals"
// @Success 200 {object} dto.SlotListResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/schedules/{id}/slots [post]
func (c *AvailabilityController) PreviewSlots(ctx echo.Context) error {
	userID, scheduleID, err := c.idsFromContext(ctx)
	if err != nil {
		return err
	}

	req := new(dto.PreviewSlotsRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.PreviewSlots(ctx.Request().Context(), userID, scheduleID, req, time.Now())
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Slots generated successfully")
}

func (c *AvailabilityController) idsFromContext(ctx echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return uuid.Nil, uuid.Nil, c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, c.BadRequest(errors.ErrInvalidInput, "Invalid schedule id")
	}
	return userID, scheduleID, nil
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "no token data in context", nil)
	}
	return claims.UserID, nil
}
