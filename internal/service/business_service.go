package service

import (
	"context"
	"encoding/json"
	"time"

	"go-directory-app/internal/cache"
	"go-directory-app/internal/data"

	"github.com/microcosm-cc/bluemonday"
)

// cacheKeyFeatured caches the public featured rail listing.
const cacheKeyFeatured = "businesses:featured"

// BusinessRepository defines the persistence interface for businesses.
type BusinessRepository interface {
	GetAll(ctx context.Context, f data.BusinessFilter) ([]*data.Business, error)
	GetByID(ctx context.Context, id int64) (*data.Business, error)
	Create(ctx context.Context, business *data.Business) (int64, error)
	Update(ctx context.Context, business *data.Business) error
	Delete(ctx context.Context, id int64) error
}

// CreateBusinessInput carries the fields accepted when an administrator
// creates a business directly.
type CreateBusinessInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	CategoryID  int64  `json:"categoryId" validate:"required"`
	Phone       string `json:"phone"`
	Whatsapp    string `json:"whatsapp"`
	Address     string `json:"address"`
	Email       string `json:"email" validate:"omitempty,email"`
	Website     string `json:"website" validate:"omitempty,url"`
	Instagram   string `json:"instagram"`
	Facebook    string `json:"facebook"`
	JournalLink string `json:"journalLink" validate:"omitempty,url"`
	ImageURL    string `json:"imageUrl"`
	Featured    *bool  `json:"featured"`
	Certified   *bool  `json:"certified"`
	Active      *bool  `json:"active"`
}

// UpdateBusinessInput carries the partial fields of a business update. Nil
// fields are left untouched and are not re-validated.
type UpdateBusinessInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CategoryID  *int64  `json:"categoryId"`
	Phone       *string `json:"phone"`
	Whatsapp    *string `json:"whatsapp"`
	Address     *string `json:"address"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Instagram   *string `json:"instagram"`
	Facebook    *string `json:"facebook"`
	JournalLink *string `json:"journalLink" validate:"omitempty,url"`
	ImageURL    *string `json:"imageUrl"`
	Featured    *bool   `json:"featured"`
	Certified   *bool   `json:"certified"`
	Active      *bool   `json:"active"`
}

// BusinessService provides business rules for published directory entries.
type BusinessService struct {
	repo          BusinessRepository
	categories    CategoryRepository
	audit         *AuditLogger
	cache         *cache.Cache
	sanitizer     *bluemonday.Policy
	featuredLimit int
}

// NewBusinessService creates a new BusinessService. featuredLimit caps the
// featured rail listing.
func NewBusinessService(repo BusinessRepository, categories CategoryRepository, audit *AuditLogger, c *cache.Cache, featuredLimit int) *BusinessService {
	return &BusinessService{
		repo:          repo,
		categories:    categories,
		audit:         audit,
		cache:         c,
		// Descriptions are plain text; strip all markup on the way in.
		sanitizer:     bluemonday.StrictPolicy(),
		featuredLimit: featuredLimit,
	}
}

// ListPublic returns active businesses.
func (s *BusinessService) ListPublic(ctx context.Context) ([]*data.Business, error) {
	return s.repo.GetAll(ctx, data.BusinessFilter{ActiveOnly: true})
}

// ListAll returns every business, including inactive ones (the admin view).
func (s *BusinessService) ListAll(ctx context.Context) ([]*data.Business, error) {
	return s.repo.GetAll(ctx, data.BusinessFilter{})
}

// ListFeatured returns the featured rail: active featured businesses capped
// at the configured limit, served from the listing cache when fresh.
func (s *BusinessService) ListFeatured(ctx context.Context) ([]*data.Business, error) {
	if cached, err := s.cache.Get(cacheKeyFeatured); err == nil && cached != nil {
		var businesses []*data.Business
		if err := json.Unmarshal(cached, &businesses); err == nil {
			return businesses, nil
		}
	}

	businesses, err := s.repo.GetAll(ctx, data.BusinessFilter{
		ActiveOnly:   true,
		FeaturedOnly: true,
		Limit:        s.featuredLimit,
	})
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(businesses); err == nil {
		_ = s.cache.Set(cacheKeyFeatured, encoded, listingCacheTTL)
	}
	return businesses, nil
}

// ListByCategory returns active businesses attached to the given category.
func (s *BusinessService) ListByCategory(ctx context.Context, categoryID int64) ([]*data.Business, error) {
	return s.repo.GetAll(ctx, data.BusinessFilter{ActiveOnly: true, CategoryID: &categoryID})
}

// Search returns active businesses whose name or description contains the
// query.
func (s *BusinessService) Search(ctx context.Context, query string) ([]*data.Business, error) {
	if query == "" {
		return nil, NewValidationError("q", "is required")
	}
	return s.repo.GetAll(ctx, data.BusinessFilter{ActiveOnly: true, Query: query})
}

// GetByID returns a business by id. The active flag is deliberately not
// checked here: direct fetches return the row even when it is hidden from
// listings or its category no longer exists.
func (s *BusinessService) GetByID(ctx context.Context, id int64) (*data.Business, error) {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrNotFound
	}
	return business, nil
}

// Create validates the input and persists a new business.
func (s *BusinessService) Create(ctx context.Context, input CreateBusinessInput, actor string) (*data.Business, error) {
	if err := checkStruct(input); err != nil {
		return nil, err
	}
	if err := s.ensureCategoryExists(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	now := time.Now()
	business := &data.Business{
		Name:        input.Name,
		Description: s.sanitizer.Sanitize(input.Description),
		Phone:       input.Phone,
		Whatsapp:    input.Whatsapp,
		Address:     input.Address,
		Email:       input.Email,
		Website:     input.Website,
		Instagram:   input.Instagram,
		Facebook:    input.Facebook,
		JournalLink: input.JournalLink,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		Featured:    input.Featured != nil && *input.Featured,
		Certified:   input.Certified != nil && *input.Certified,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.repo.Create(ctx, business)
	if err != nil {
		return nil, err
	}
	business.ID = id

	s.invalidate()
	s.audit.Record(ctx, "create", "businesses", id, actor, nil, business)
	return business, nil
}

// Update merges the supplied fields onto the stored business. Fields absent
// from the input keep their current values byte for byte.
func (s *BusinessService) Update(ctx context.Context, id int64, input UpdateBusinessInput, actor string) (*data.Business, error) {
	if err := checkStruct(input); err != nil {
		return nil, err
	}

	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrNotFound
	}
	before := *business

	if input.Name != nil {
		if *input.Name == "" {
			return nil, NewValidationError("name", "is required")
		}
		business.Name = *input.Name
	}
	if input.Description != nil {
		business.Description = s.sanitizer.Sanitize(*input.Description)
	}
	if input.CategoryID != nil {
		if err := s.ensureCategoryExists(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		business.CategoryID = *input.CategoryID
	}
	if input.Phone != nil {
		business.Phone = *input.Phone
	}
	if input.Whatsapp != nil {
		business.Whatsapp = *input.Whatsapp
	}
	if input.Address != nil {
		business.Address = *input.Address
	}
	if input.Email != nil {
		business.Email = *input.Email
	}
	if input.Website != nil {
		business.Website = *input.Website
	}
	if input.Instagram != nil {
		business.Instagram = *input.Instagram
	}
	if input.Facebook != nil {
		business.Facebook = *input.Facebook
	}
	if input.JournalLink != nil {
		business.JournalLink = *input.JournalLink
	}
	if input.ImageURL != nil {
		business.ImageURL = *input.ImageURL
	}
	if input.Featured != nil {
		business.Featured = *input.Featured
	}
	if input.Certified != nil {
		business.Certified = *input.Certified
	}
	if input.Active != nil {
		business.Active = *input.Active
	}
	business.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, err
	}

	s.invalidate()
	s.audit.Record(ctx, "update", "businesses", id, actor, before, business)
	return business, nil
}

// Delete hard-deletes a business. There is no soft delete or restore.
func (s *BusinessService) Delete(ctx context.Context, id int64, actor string) error {
	business, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if business == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate()
	s.audit.Record(ctx, "delete", "businesses", id, actor, business, nil)
	return nil
}

// ensureCategoryExists rejects category references that do not resolve. The
// schema keeps the reference soft; this is the only guard.
func (s *BusinessService) ensureCategoryExists(ctx context.Context, categoryID int64) error {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return NewValidationError("categoryId", "does not reference an existing category")
	}
	return nil
}

func (s *BusinessService) invalidate() {
	_ = s.cache.Delete(cacheKeyFeatured)
}

// InvalidateFeatured drops the cached featured rail. The promotion workflow
// calls this after publishing a business outside this service.
func (s *BusinessService) InvalidateFeatured() {
	s.invalidate()
}
