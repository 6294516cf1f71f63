package service

import (
	"context"
	"encoding/json"
	"time"

	"go-directory-app/internal/cache"
	"go-directory-app/internal/data"

	"github.com/gosimple/slug"
)

// cacheKeyCategories caches the public (active) category listing.
const cacheKeyCategories = "categories:active"

// listingCacheTTL bounds how stale a cached public listing may be.
const listingCacheTTL = time.Minute

// CategoryRepository defines the persistence interface for categories.
type CategoryRepository interface {
	GetAll(ctx context.Context, activeOnly bool) ([]*data.Category, error)
	GetByID(ctx context.Context, id int64) (*data.Category, error)
	GetBySlug(ctx context.Context, slug string) (*data.Category, error)
	Create(ctx context.Context, category *data.Category) (int64, error)
	Update(ctx context.Context, category *data.Category) error
	Delete(ctx context.Context, id int64) error
}

// CreateCategoryInput carries the fields accepted when creating a category.
// An omitted slug is derived from the name.
type CreateCategoryInput struct {
	Name            string `json:"name" validate:"required"`
	Slug            string `json:"slug"`
	Icon            string `json:"icon"`
	Color           string `json:"color"`
	BackgroundImage string `json:"backgroundImage"`
	Active          *bool  `json:"active"`
	Order           int    `json:"order"`
}

// UpdateCategoryInput carries the partial fields of a category update. Nil
// fields are left untouched.
type UpdateCategoryInput struct {
	Name            *string `json:"name"`
	Slug            *string `json:"slug"`
	Icon            *string `json:"icon"`
	Color           *string `json:"color"`
	BackgroundImage *string `json:"backgroundImage"`
	Active          *bool   `json:"active"`
	Order           *int    `json:"order"`
}

// CategoryService provides business rules for the category taxonomy.
type CategoryService struct {
	repo  CategoryRepository
	audit *AuditLogger
	cache *cache.Cache
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo CategoryRepository, audit *AuditLogger, c *cache.Cache) *CategoryService {
	return &CategoryService{repo: repo, audit: audit, cache: c}
}

// ListPublic returns active categories in display order, served from the
// listing cache when fresh.
func (s *CategoryService) ListPublic(ctx context.Context) ([]*data.Category, error) {
	if cached, err := s.cache.Get(cacheKeyCategories); err == nil && cached != nil {
		var categories []*data.Category
		if err := json.Unmarshal(cached, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.repo.GetAll(ctx, true)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(categories); err == nil {
		_ = s.cache.Set(cacheKeyCategories, encoded, listingCacheTTL)
	}
	return categories, nil
}

// ListAll returns every category, including inactive ones (the admin view).
func (s *CategoryService) ListAll(ctx context.Context) ([]*data.Category, error) {
	return s.repo.GetAll(ctx, false)
}

// GetBySlug resolves a category for public category pages. Inactive
// categories are treated as absent.
func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*data.Category, error) {
	category, err := s.repo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.Active {
		return nil, ErrNotFound
	}
	return category, nil
}

// GetByID resolves a category by id for admin lookups.
func (s *CategoryService) GetByID(ctx context.Context, id int64) (*data.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create validates the input, derives and reserves the slug, and persists a
// new category.
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput, actor string) (*data.Category, error) {
	if err := checkStruct(input); err != nil {
		return nil, err
	}

	categorySlug := input.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(input.Name)
	}
	if err := s.ensureSlugFree(ctx, categorySlug, 0); err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}
	now := time.Now()
	category := &data.Category{
		Name:            input.Name,
		Slug:            categorySlug,
		Icon:            input.Icon,
		Color:           input.Color,
		BackgroundImage: input.BackgroundImage,
		Active:          active,
		SortOrder:       input.Order,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	id, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	category.ID = id

	s.invalidate()
	s.audit.Record(ctx, "create", "categories", id, actor, nil, category)
	return category, nil
}

// Update merges the supplied fields onto the stored category. Fields absent
// from the input keep their current values and are not re-validated.
func (s *CategoryService) Update(ctx context.Context, id int64, input UpdateCategoryInput, actor string) (*data.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	before := *category

	if input.Name != nil {
		if *input.Name == "" {
			return nil, NewValidationError("name", "is required")
		}
		category.Name = *input.Name
	}
	if input.Slug != nil && *input.Slug != category.Slug {
		if err := s.ensureSlugFree(ctx, *input.Slug, id); err != nil {
			return nil, err
		}
		category.Slug = *input.Slug
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.Color != nil {
		category.Color = *input.Color
	}
	if input.BackgroundImage != nil {
		category.BackgroundImage = *input.BackgroundImage
	}
	if input.Active != nil {
		category.Active = *input.Active
	}
	if input.Order != nil {
		category.SortOrder = *input.Order
	}
	category.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.invalidate()
	s.audit.Record(ctx, "update", "categories", id, actor, before, category)
	return category, nil
}

// Delete hard-deletes a category. Businesses referencing it are neither
// deleted nor reassigned; their categoryId simply stops resolving.
func (s *CategoryService) Delete(ctx context.Context, id int64, actor string) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate()
	s.audit.Record(ctx, "delete", "categories", id, actor, category, nil)
	return nil
}

// ensureSlugFree rejects a slug already held by a different category,
// active or not.
func (s *CategoryService) ensureSlugFree(ctx context.Context, categorySlug string, selfID int64) error {
	existing, err := s.repo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return NewValidationError("slug", "is already in use")
	}
	return nil
}

func (s *CategoryService) invalidate() {
	_ = s.cache.Delete(cacheKeyCategories)
}
