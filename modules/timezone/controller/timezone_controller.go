package controller

import (
	"time"

	"meetsync-api/core/controller"
	"meetsync-api/core/errors"
	"meetsync-api/modules/timezone/dto"
	"meetsync-api/modules/timezone/service"

	"github.com/labstack/echo/v4"
)

type TimezoneController struct {
	clock *service.Clock
	controller.BaseController
}

func NewTimezoneController(clock *service.Clock) *TimezoneController {
	return &TimezoneController{
		clock:          clock,
		BaseController: controller.NewBaseController(),
	}
}

// ValidateTimezone checks whether a timezone name is a recognized IANA identifier
// @Summary Validate a timezone name
// @Tags Timezone
// @Produce json
// @Param name query string true "IANA timezone name"
// @Success 200 {object} dto.ValidateTimezoneResponse
// @Router /timezones/validate [get]
func (c *TimezoneController) ValidateTimezone(ctx echo.Context) error {
	name := ctx.QueryParam("name")
	resp := dto.ValidateTimezoneResponse{
		Name:  name,
		Valid: c.clock.IsValidTimezone(name),
	}
	return c.SuccessResponse(ctx, resp, "Timezone validated")
}

// GetTimezoneInfo returns offset and current local time for a timezone
// @Summary Get timezone info
// @Tags Timezone
// @Produce json
// @Param name query string true "IANA timezone name"
// @Success 200 {object} dto.TimezoneInfoResponse
// @Failure 400 {object} errors.AppError
// @Router /timezones/info [get]
func (c *TimezoneController) GetTimezoneInfo(ctx echo.Context) error {
	name := ctx.QueryParam("name")
	if !c.clock.IsValidTimezone(name) {
		return c.BadRequest(errors.ErrInvalidTimezone, "Unknown timezone name", name)
	}

	now := time.Now()
	offset, err := c.clock.OffsetHoursAt(now, name)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	localHour, err := c.clock.LocalHour(now, name)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	loc, _ := time.LoadLocation(name)
	resp := dto.TimezoneInfoResponse{
		Name:        name,
		DisplayName: c.clock.FormatTimezone(name),
		OffsetHours: offset,
		LocalHour:   localHour,
		LocalTime:   now.In(loc).Format("15:04"),
	}
	return c.SuccessResponse(ctx, resp, "Timezone info retrieved")
}
