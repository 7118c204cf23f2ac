package controller

import (
	"time"

	"meetsync-api/core/constants"
	"meetsync-api/core/controller"
	"meetsync-api/core/errors"
	"meetsync-api/core/params"
	"meetsync-api/core/utils"
	"meetsync-api/modules/booking/dto"
	"meetsync-api/modules/booking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BookingController struct {
	service *service.BookingService
	controller.BaseController
}

func NewBookingController(service *service.BookingService) *BookingController {
	return &BookingController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateLink creates a booking link
// @Summary Create booking link
// @Tags Booking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateLinkRequest true "Link settings"
// @Success 200 {object} dto.LinkResponse
// @Failure 400 {object} errors.AppError
// @Router /private/booking-links [post]
func (c *BookingController) CreateLink(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreateLinkRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.CreateLink(ctx.Request().Context(), userID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Booking link created successfully")
}

// ListLinks lists the caller's booking links
// @Summary List booking links
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.LinkResponse
// @Router /private/booking-links [get]
func (c *BookingController) ListLinks(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, svcErr := c.service.ListLinks(ctx.Request().Context(), userID)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Booking links retrieved successfully")
}

// UpdateLink updates a booking link
// @Summary Update booking link
// @Tags Booking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Link ID"
// @Param request body dto.UpdateLinkRequest true "Fields to update"
// @Success 200 {object} dto.LinkResponse
// @Failure 404 {object} errors.AppError
// @Router /private/booking-links/{id} [put]
func (c *BookingController) UpdateLink(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	linkID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid link id")
	}

	req := new(dto.UpdateLinkRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.UpdateLink(ctx.Request().Context(), userID, linkID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Booking link updated successfully")
}

// DeleteLink deletes a booking link
// @Summary Delete booking link
// @Tags Booking
// @Security BearerAuth
// @Param id path string true "Link ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.AppError
// @Router /private/booking-links/{id} [delete]
func (c *BookingController) DeleteLink(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	linkID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid link id")
	}

	if svcErr := c.service.DeleteLink(ctx.Request().Context(), userID, linkID); svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, nil, "Booking link deleted successfully")
}

// GetPublicLink returns the public view of a booking link
// @Summary Get public booking link
// @Tags Booking
// @Produce json
// @Param slug path string true "Link slug"
// @Success 200 {object} dto.PublicLinkResponse
// @Failure 404 {object} errors.AppError
// @Router /book/{slug} [get]
func (c *BookingController) GetPublicLink(ctx echo.Context) error {
	result, svcErr := c.service.GetPublicLink(ctx.Request().Context(), ctx.Param("slug"))
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Booking link retrieved successfully")
}

// GetPublicSlots lists bookable slots for a public link
// @Summary List public bookable slots
// @Tags Booking
// @Produce json
// @Param slug path string true "Link slug"
// @Param range_start query string true "Start date YYYY-MM-DD"
// @Param range_end query string true "End date YYYY-MM-DD"
// @Success 200 {object} dto.PublicSlotsResponse
// @Failure 400 {object} errors.AppError
// @Router /book/{slug}/slots [get]
func (c *BookingController) GetPublicSlots(ctx echo.Context) error {
	result, svcErr := c.service.GetPublicSlots(ctx.Request().Context(),
		ctx.Param("slug"),
		ctx.QueryParam("range_start"),
		ctx.QueryParam("range_end"),
		time.Now())
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Slots retrieved successfully")
}

// CreateBooking books a slot on a public link
// @Summary Book a slot
// @Tags Booking
// @Accept json
// @Produce json
// @Param slug path string true "Link slug"
// @Param request body dto.CreateBookingRequest true "Invitee and slot"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Router /book/{slug} [post]
func (c *BookingController) CreateBooking(ctx echo.Context) error {
	req := new(dto.CreateBookingRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.CreateBooking(ctx.Request().Context(), ctx.Param("slug"), req, time.Now())
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Booking created successfully")
}

// ListBookings lists the caller's bookings, paginated and optionally
// filtered by status
// @Summary List bookings
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedBookingsResponse
// @Router /private/bookings [get]
func (c *BookingController) ListBookings(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, svcErr := c.service.ListBookings(ctx.Request().Context(), userID,
		ctx.QueryParam("status"), params.NewQueryParams(ctx))
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Bookings retrieved successfully")
}

// Upcoming lists the caller's future bookings, soonest first
// @Summary List upcoming bookings
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.BookingResponse
// @Router /private/bookings/upcoming [get]
func (c *BookingController) Upcoming(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, svcErr := c.service.Upcoming(ctx.Request().Context(), userID, time.Now())
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Upcoming bookings retrieved successfully")
}

// UpdateStatus moves a booking between states
// @Summary Update booking status
// @Tags Booking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "New status"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Router /private/bookings/{id}/status [put]
func (c *BookingController) UpdateStatus(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking id")
	}

	req := new(dto.UpdateBookingStatusRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.UpdateStatus(ctx.Request().Context(), userID, bookingID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Booking status updated successfully")
}

// CancelBooking cancels a booking on behalf of the host
// @Summary Cancel booking
// @Tags Booking
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.AppError
// @Router /private/bookings/{id}/cancel [put]
func (c *BookingController) CancelBooking(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking id")
	}

	// reason is optional on the host-side cancel
	req := new(dto.UpdateBookingStatusRequest)
	_ = ctx.Bind(req)

	if svcErr := c.service.CancelBooking(ctx.Request().Context(), userID, bookingID, req.Reason); svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, nil, "Booking cancelled successfully")
}

// InviteeCancel cancels a booking on behalf of the invitee. Public: the
// invitee has no account, so the email in the body must match the booking.
// @Summary Cancel booking as invitee
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.InviteeCancelRequest true "Invitee email and reason"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.AppError
// @Router /book/bookings/{id}/cancel [put]
func (c *BookingController) InviteeCancel(ctx echo.Context) error {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking id")
	}

	req := new(dto.InviteeCancelRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if svcErr := c.service.InviteeCancel(ctx.Request().Context(), bookingID, req); svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, nil, "Booking cancelled successfully")
}

// Stats summarizes the caller's bookings
// @Summary Booking statistics
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.BookingStatsResponse
// @Router /private/bookings/stats [get]
func (c *BookingController) Stats(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	result, svcErr := c.service.Stats(ctx.Request().Context(), userID, time.Now())
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}
	return c.SuccessResponse(ctx, result, "Statistics retrieved successfully")
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "no token data in context", nil)
	}
	return claims.UserID, nil
}
