package service

import (
	"context"
	"errors"
	"time"

	"go-directory-app/internal/data"

	"github.com/microcosm-cc/bluemonday"
)

// RegistrationRepository defines the persistence interface for business
// registrations, including the transactional promotion.
type RegistrationRepository interface {
	GetAll(ctx context.Context) ([]*data.BusinessRegistration, error)
	GetByID(ctx context.Context, id int64) (*data.BusinessRegistration, error)
	Create(ctx context.Context, registration *data.BusinessRegistration) (int64, error)
	Update(ctx context.Context, registration *data.BusinessRegistration) error
	Delete(ctx context.Context, id int64) error
	Promote(ctx context.Context, registrationID int64, business *data.Business) error
}

// SubmitRegistrationInput carries the public submission form fields.
type SubmitRegistrationInput struct {
	BusinessName string `json:"businessName" validate:"required"`
	CategoryID   int64  `json:"categoryId" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Whatsapp     string `json:"whatsapp" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Instagram    string `json:"instagram"`
	Facebook     string `json:"facebook"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ImageURL     string `json:"imageUrl"`
}

// UpdateRegistrationInput carries the partial fields of an admin edit. The
// Processed and Status fields are not stored: either one signalling approval
// routes the request to the promotion workflow instead.
type UpdateRegistrationInput struct {
	BusinessName *string `json:"businessName"`
	CategoryID   *int64  `json:"categoryId"`
	Phone        *string `json:"phone"`
	Whatsapp     *string `json:"whatsapp"`
	Address      *string `json:"address"`
	Description  *string `json:"description"`
	Instagram    *string `json:"instagram"`
	Facebook     *string `json:"facebook"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	ImageURL     *string `json:"imageUrl"`
	Processed    *bool   `json:"processed"`
	Status       *string `json:"status"`
}

// WantsPromotion reports whether the update is an approval rather than a
// field edit.
func (in UpdateRegistrationInput) WantsPromotion() bool {
	if in.Processed != nil && *in.Processed {
		return true
	}
	return in.Status != nil && *in.Status == "approved"
}

// RegistrationService provides business rules for advertiser submissions and
// the promotion workflow.
type RegistrationService struct {
	repo       RegistrationRepository
	categories CategoryRepository
	audit      *AuditLogger
	sanitizer  *bluemonday.Policy
	invalidate func()
}

// NewRegistrationService creates a new RegistrationService. invalidate is
// called after a promotion so cached business listings drop the stale view;
// it may be nil.
func NewRegistrationService(repo RegistrationRepository, categories CategoryRepository, audit *AuditLogger, invalidate func()) *RegistrationService {
	return &RegistrationService{
		repo:       repo,
		categories: categories,
		audit:      audit,
		sanitizer:  bluemonday.StrictPolicy(),
		invalidate: invalidate,
	}
}

// List returns all pending registrations (the admin review queue).
func (s *RegistrationService) List(ctx context.Context) ([]*data.BusinessRegistration, error) {
	return s.repo.GetAll(ctx)
}

// GetByID returns a registration by id.
func (s *RegistrationService) GetByID(ctx context.Context, id int64) (*data.BusinessRegistration, error) {
	registration, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrNotFound
	}
	return registration, nil
}

// Submit validates and stores a public submission.
func (s *RegistrationService) Submit(ctx context.Context, input SubmitRegistrationInput) (*data.BusinessRegistration, error) {
	if err := checkStruct(input); err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, NewValidationError("categoryId", "does not reference an existing category")
	}

	registration := &data.BusinessRegistration{
		BusinessName: input.BusinessName,
		CategoryID:   input.CategoryID,
		Phone:        input.Phone,
		Whatsapp:     input.Whatsapp,
		Address:      input.Address,
		Description:  s.sanitizer.Sanitize(input.Description),
		Instagram:    input.Instagram,
		Facebook:     input.Facebook,
		ContactEmail: input.ContactEmail,
		ImageURL:     input.ImageURL,
		CreatedAt:    time.Now(),
	}
	id, err := s.repo.Create(ctx, registration)
	if err != nil {
		return nil, err
	}
	registration.ID = id
	return registration, nil
}

// Update merges the supplied fields onto the stored registration.
func (s *RegistrationService) Update(ctx context.Context, id int64, input UpdateRegistrationInput, actor string) (*data.BusinessRegistration, error) {
	if err := checkStruct(input); err != nil {
		return nil, err
	}

	registration, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrNotFound
	}
	before := *registration

	if input.BusinessName != nil {
		if *input.BusinessName == "" {
			return nil, NewValidationError("businessName", "is required")
		}
		registration.BusinessName = *input.BusinessName
	}
	if input.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, NewValidationError("categoryId", "does not reference an existing category")
		}
		registration.CategoryID = *input.CategoryID
	}
	if input.Phone != nil {
		registration.Phone = *input.Phone
	}
	if input.Whatsapp != nil {
		registration.Whatsapp = *input.Whatsapp
	}
	if input.Address != nil {
		registration.Address = *input.Address
	}
	if input.Description != nil {
		registration.Description = s.sanitizer.Sanitize(*input.Description)
	}
	if input.Instagram != nil {
		registration.Instagram = *input.Instagram
	}
	if input.Facebook != nil {
		registration.Facebook = *input.Facebook
	}
	if input.ContactEmail != nil {
		registration.ContactEmail = *input.ContactEmail
	}
	if input.ImageURL != nil {
		registration.ImageURL = *input.ImageURL
	}

	if err := s.repo.Update(ctx, registration); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "update", "business_registrations", id, actor, before, registration)
	return registration, nil
}

// Delete rejects a registration without publishing it.
func (s *RegistrationService) Delete(ctx context.Context, id int64, actor string) error {
	registration, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if registration == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, "delete", "business_registrations", id, actor, registration, nil)
	return nil
}

// Promote converts an approved registration into a published business and
// retires the registration. The repository runs both steps in one
// transaction with the registration delete as the serialization point, so a
// registration can never produce two businesses. A registration that has
// already been promoted (and therefore deleted) surfaces as ErrNotFound; a
// concurrent promotion racing this one surfaces as ErrConflict.
func (s *RegistrationService) Promote(ctx context.Context, id int64, actor string) (*data.Business, error) {
	registration, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrNotFound
	}

	business := businessFromRegistration(registration)
	if err := s.repo.Promote(ctx, id, business); err != nil {
		if errors.Is(err, data.ErrAlreadyPromoted) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if s.invalidate != nil {
		s.invalidate()
	}
	s.audit.Record(ctx, "promote", "business_registrations", id, actor, registration, business)
	return business, nil
}

// businessFromRegistration maps registration fields onto a fresh business
// row: published, not featured, not certified.
func businessFromRegistration(registration *data.BusinessRegistration) *data.Business {
	now := time.Now()
	return &data.Business{
		Name:        registration.BusinessName,
		Description: registration.Description,
		Phone:       registration.Phone,
		Whatsapp:    registration.Whatsapp,
		Address:     registration.Address,
		Email:       registration.ContactEmail,
		Instagram:   registration.Instagram,
		Facebook:    registration.Facebook,
		CategoryID:  registration.CategoryID,
		ImageURL:    registration.ImageURL,
		Featured:    false,
		Certified:   false,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
