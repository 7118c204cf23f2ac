package service

import (
	"context"

	"meetsync-api/core/cache"
	"meetsync-api/core/errors"
	"meetsync-api/core/logger"
	"meetsync-api/core/params"
	"meetsync-api/modules/contact/dto"
	"meetsync-api/modules/contact/entity"
	"meetsync-api/modules/contact/repository"
	tzservice "meetsync-api/modules/timezone/service"

	"github.com/google/uuid"
)

// ContactService owns contact CRUD and timezone validation on write
type ContactService struct {
	repo  repository.ContactRepositoryInterface
	clock *tzservice.Clock
	cache cache.Cache
}

func NewContactService(repo repository.ContactRepositoryInterface, clock *tzservice.Clock, appCache cache.Cache) *ContactService {
	return &ContactService{repo: repo, clock: clock, cache: appCache}
}

// invalidateBestTimes drops cached best-hour scans for the owner; a changed
// timezone or working-hours window makes them stale before their TTL.
func (s *ContactService) invalidateBestTimes(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.InvalidateBestTime(ctx, userID.String()); err != nil {
		logger.Warn("ContactService:InvalidateBestTimes", "error", err)
	}
}

func (s *ContactService) CreateContact(ctx context.Context, userID uuid.UUID, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "contact name is required", nil)
	}
	if !s.clock.IsValidTimezone(req.Timezone) {
		return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown timezone name", nil)
	}
	if err := validateWorkingHours(req.WorkingHoursStart, req.WorkingHoursEnd); err != nil {
		return nil, err
	}

	contact := &entity.Contact{
		UserID:            userID,
		Name:              req.Name,
		Email:             req.Email,
		Timezone:          req.Timezone,
		WorkingHoursStart: req.WorkingHoursStart,
		WorkingHoursEnd:   req.WorkingHoursEnd,
		Notes:             req.Notes,
		Favorite:          req.Favorite,
	}

	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create contact", err)
	}

	logger.Info("ContactService:CreateContact:Created",
		"contact_id", created.ID.String(),
		"timezone", created.Timezone,
	)
	resp := dto.ToContactResponse(created, s.clock.FormatTimezone(created.Timezone))
	return &resp, nil
}

func (s *ContactService) GetContact(ctx context.Context, userID, contactID uuid.UUID) (*dto.ContactResponse, error) {
	contact, err := s.ownedContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToContactResponse(contact, s.clock.FormatTimezone(contact.Timezone))
	return &resp, nil
}

func (s *ContactService) ListContacts(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*dto.ContactListResponse, error) {
	contacts, total, err := s.repo.ListByUserID(ctx, userID, qp)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list contacts", err)
	}

	out := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, dto.ToContactResponse(&contacts[i], s.clock.FormatTimezone(contacts[i].Timezone)))
	}

	return &dto.ContactListResponse{
		Contacts:   out,
		TotalCount: total,
		Page:       qp.PageNumber,
		PageSize:   qp.PageSize,
	}, nil
}

func (s *ContactService) UpdateContact(ctx context.Context, userID, contactID uuid.UUID, req *dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	contact, err := s.ownedContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Timezone != nil {
		if !s.clock.IsValidTimezone(*req.Timezone) {
			return nil, errors.NewAppError(errors.ErrInvalidTimezone, "unknown timezone name", nil)
		}
		contact.Timezone = *req.Timezone
	}
	if req.WorkingHoursStart != nil {
		contact.WorkingHoursStart = req.WorkingHoursStart
	}
	if req.WorkingHoursEnd != nil {
		contact.WorkingHoursEnd = req.WorkingHoursEnd
	}
	if err := validateWorkingHours(contact.WorkingHoursStart, contact.WorkingHoursEnd); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		contact.Notes = *req.Notes
	}
	if req.Favorite != nil {
		contact.Favorite = *req.Favorite
	}

	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update contact", err)
	}
	s.invalidateBestTimes(ctx, userID)

	resp := dto.ToContactResponse(contact, s.clock.FormatTimezone(contact.Timezone))
	return &resp, nil
}

func (s *ContactService) DeleteContact(ctx context.Context, userID, contactID uuid.UUID) error {
	if _, err := s.ownedContact(ctx, userID, contactID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, contactID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete contact", err)
	}
	s.invalidateBestTimes(ctx, userID)
	return nil
}

// GetContactsByIDs resolves a set of contact ids owned by userID, used by the
// suggestion engine to materialize participants.
func (s *ContactService) GetContactsByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]entity.Contact, error) {
	contacts, err := s.repo.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to resolve contacts", err)
	}
	return contacts, nil
}

func (s *ContactService) ownedContact(ctx context.Context, userID, contactID uuid.UUID) (*entity.Contact, error) {
	contact, err := s.repo.GetByID(ctx, contactID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get contact", err)
	}
	if contact == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "contact not found", nil)
	}
	if contact.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "contact belongs to another user", nil)
	}
	return contact, nil
}

func validateWorkingHours(start, end *int) error {
	if start == nil && end == nil {
		return nil
	}
	if start == nil || end == nil {
		return errors.NewAppError(errors.ErrInvalidInput, "working hours require both start and end", nil)
	}
	if *start < 0 || *start > 23 || *end < 0 || *end > 23 {
		return errors.NewAppError(errors.ErrInvalidInput, "working hours must be within 0-23", nil)
	}
	return nil
}
