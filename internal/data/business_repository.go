package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// BusinessFilter narrows business listing queries. The zero value returns
// every business (the admin view).
type BusinessFilter struct {
	ActiveOnly   bool
	FeaturedOnly bool
	CategoryID   *int64
	// Query matches name or description with a substring search.
	Query string
	// Limit caps the result set when positive.
	Limit int
}

// BusinessRepository handles database operations for businesses.
type BusinessRepository struct {
	DB *sqlx.DB
}

// NewBusinessRepository creates a new BusinessRepository.
func NewBusinessRepository(db *sqlx.DB) *BusinessRepository {
	return &BusinessRepository{DB: db}
}

// GetAll retrieves businesses matching the filter, newest first.
func (r *BusinessRepository) GetAll(ctx context.Context, f BusinessFilter) ([]*Business, error) {
	conditions := []string{}
	args := []interface{}{}

	if f.ActiveOnly {
		conditions = append(conditions, "active = ?")
		args = append(args, true)
	}
	if f.FeaturedOnly {
		conditions = append(conditions, "featured = ?")
		args = append(args, true)
	}
	if f.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.Query != "" {
		conditions = append(conditions, "(name LIKE ? OR description LIKE ?)")
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern)
	}

	query := "SELECT * FROM businesses"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	var businesses []*Business
	if err := r.DB.SelectContext(ctx, &businesses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get businesses: %w", err)
	}
	return businesses, nil
}

// GetByID finds a business by its ID.
func (r *BusinessRepository) GetByID(ctx context.Context, id int64) (*Business, error) {
	var business Business
	err := r.DB.GetContext(ctx, &business, "SELECT * FROM businesses WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get business by id: %w", err)
	}
	return &business, nil
}

const businessInsertQuery = `INSERT INTO businesses
	(name, description, phone, whatsapp, address, email, website, instagram, facebook,
	journal_link, category_id, image_url, featured, certified, active, created_at, updated_at)
	VALUES (:name, :description, :phone, :whatsapp, :address, :email, :website, :instagram, :facebook,
	:journal_link, :category_id, :image_url, :featured, :certified, :active, :created_at, :updated_at)`

// Create inserts a new business and returns its ID.
func (r *BusinessRepository) Create(ctx context.Context, business *Business) (int64, error) {
	res, err := r.DB.NamedExecContext(ctx, businessInsertQuery, business)
	if err != nil {
		return 0, fmt.Errorf("failed to create business: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted business id: %w", err)
	}
	return id, nil
}

// Update writes all mutable fields of an existing business.
func (r *BusinessRepository) Update(ctx context.Context, business *Business) error {
	query := `UPDATE businesses SET name = :name, description = :description, phone = :phone,
		whatsapp = :whatsapp, address = :address, email = :email, website = :website,
		instagram = :instagram, facebook = :facebook, journal_link = :journal_link,
		category_id = :category_id, image_url = :image_url, featured = :featured,
		certified = :certified, active = :active, updated_at = :updated_at WHERE id = :id`
	result, err := r.DB.NamedExecContext(ctx, query, business)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no business found to update with id %d", business.ID)
	}
	return nil
}

// Delete removes a business by its ID.
func (r *BusinessRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM businesses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no business found to delete with id %d", id)
	}
	return nil
}
