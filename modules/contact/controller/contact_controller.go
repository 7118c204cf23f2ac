package controller

import (
	"meetsync-api/core/constants"
	"meetsync-api/core/controller"
	"meetsync-api/core/errors"
	"meetsync-api/core/params"
	"meetsync-api/core/utils"
	"meetsync-api/modules/contact/dto"
	"meetsync-api/modules/contact/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ContactController struct {
	service *service.ContactService
	controller.BaseController
}

func NewContactController(service *service.ContactService) *ContactController {
	return &ContactController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateContact creates a new contact
// @Summary Create a contact
// @Tags Contact
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Contact data"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} errors.AppError
// @Router /private/contacts [post]
func (c *ContactController) CreateContact(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreateContactRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.CreateContact(ctx.Request().Context(), userID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, result, "Contact created successfully")
}

// GetContact retrieves a single contact
// @Summary Get contact by id
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} errors.AppError
// @Router /private/contacts/{id} [get]
func (c *ContactController) GetContact(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	contactID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid contact id")
	}

	result, svcErr := c.service.GetContact(ctx.Request().Context(), userID, contactID)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, result, "Contact retrieved successfully")
}

// ListContacts lists the user's contacts
// @Summary List contacts
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Name or email filter"
// @Success 200 {object} dto.ContactListResponse
// @Router /private/contacts [get]
func (c *ContactController) ListContacts(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	qp := params.NewQueryParams(ctx)
	result, svcErr := c.service.ListContacts(ctx.Request().Context(), userID, qp)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, result, "Contacts retrieved successfully")
}

// UpdateContact updates a contact
// @Summary Update contact
// @Tags Contact
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateContactRequest true "Fields to update"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} errors.AppError
// @Router /private/contacts/{id} [put]
func (c *ContactController) UpdateContact(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	contactID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid contact id")
	}

	req := new(dto.UpdateContactRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, svcErr := c.service.UpdateContact(ctx.Request().Context(), userID, contactID, req)
	if svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, result, "Contact updated successfully")
}

// DeleteContact deletes a contact
// @Summary Delete contact
// @Tags Contact
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.AppError
// @Router /private/contacts/{id} [delete]
func (c *ContactController) DeleteContact(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	contactID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid contact id")
	}

	if svcErr := c.service.DeleteContact(ctx.Request().Context(), userID, contactID); svcErr != nil {
		return c.ErrorResponse(ctx, svcErr)
	}

	return c.SuccessResponse(ctx, nil, "Contact deleted successfully")
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "no token data in context", nil)
	}
	return claims.UserID, nil
}
