package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	DB *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// GetAll retrieves categories ordered for display. When activeOnly is set,
// inactive categories are filtered out (the public listing view).
func (r *CategoryRepository) GetAll(ctx context.Context, activeOnly bool) ([]*Category, error) {
	var categories []*Category
	query := "SELECT * FROM categories"
	if activeOnly {
		query += " WHERE active = ?"
	}
	query += " ORDER BY sort_order, name"

	var err error
	if activeOnly {
		err = r.DB.SelectContext(ctx, &categories, query, true)
	} else {
		err = r.DB.SelectContext(ctx, &categories, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetByID finds a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	var category Category
	err := r.DB.GetContext(ctx, &category, "SELECT * FROM categories WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return &category, nil
}

// GetBySlug finds a category by its slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	err := r.DB.GetContext(ctx, &category, "SELECT * FROM categories WHERE slug = ?", slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	return &category, nil
}

// Create inserts a new category and returns its ID.
func (r *CategoryRepository) Create(ctx context.Context, category *Category) (int64, error) {
	query := `INSERT INTO categories (name, slug, icon, color, background_image, active, sort_order, created_at, updated_at)
		VALUES (:name, :slug, :icon, :color, :background_image, :active, :sort_order, :created_at, :updated_at)`
	res, err := r.DB.NamedExecContext(ctx, query, category)
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted category id: %w", err)
	}
	return id, nil
}

// Update writes all mutable fields of an existing category.
func (r *CategoryRepository) Update(ctx context.Context, category *Category) error {
	query := `UPDATE categories SET name = :name, slug = :slug, icon = :icon, color = :color,
		background_image = :background_image, active = :active, sort_order = :sort_order,
		updated_at = :updated_at WHERE id = :id`
	result, err := r.DB.NamedExecContext(ctx, query, category)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no category found to update with id %d", category.ID)
	}
	return nil
}

// Delete removes a category by its ID.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no category found to delete with id %d", id)
	}
	return nil
}
