package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrAlreadyPromoted is returned by Promote when the registration row was
// gone by the time the transaction tried to consume it, meaning a concurrent
// promotion or deletion won the race.
var ErrAlreadyPromoted = errors.New("registration already promoted or deleted")

// RegistrationRepository handles database operations for business registrations.
type RegistrationRepository struct {
	DB *sqlx.DB
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{DB: db}
}

// GetAll retrieves all pending registrations, newest first.
func (r *RegistrationRepository) GetAll(ctx context.Context) ([]*BusinessRegistration, error) {
	var registrations []*BusinessRegistration
	query := "SELECT * FROM business_registrations ORDER BY created_at DESC, id DESC"
	if err := r.DB.SelectContext(ctx, &registrations, query); err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	return registrations, nil
}

// GetByID finds a registration by its ID.
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*BusinessRegistration, error) {
	var registration BusinessRegistration
	err := r.DB.GetContext(ctx, &registration, "SELECT * FROM business_registrations WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get registration by id: %w", err)
	}
	return &registration, nil
}

// Create inserts a new registration and returns its ID.
func (r *RegistrationRepository) Create(ctx context.Context, registration *BusinessRegistration) (int64, error) {
	query := `INSERT INTO business_registrations
		(business_name, category_id, phone, whatsapp, address, description, instagram, facebook, contact_email, image_url, created_at)
		VALUES (:business_name, :category_id, :phone, :whatsapp, :address, :description, :instagram, :facebook, :contact_email, :image_url, :created_at)`
	res, err := r.DB.NamedExecContext(ctx, query, registration)
	if err != nil {
		return 0, fmt.Errorf("failed to create registration: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted registration id: %w", err)
	}
	return id, nil
}

// Update writes all mutable fields of an existing registration.
func (r *RegistrationRepository) Update(ctx context.Context, registration *BusinessRegistration) error {
	query := `UPDATE business_registrations SET business_name = :business_name, category_id = :category_id,
		phone = :phone, whatsapp = :whatsapp, address = :address, description = :description,
		instagram = :instagram, facebook = :facebook, contact_email = :contact_email,
		image_url = :image_url WHERE id = :id`
	result, err := r.DB.NamedExecContext(ctx, query, registration)
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no registration found to update with id %d", registration.ID)
	}
	return nil
}

// Delete removes a registration by its ID.
func (r *RegistrationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM business_registrations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no registration found to delete with id %d", id)
	}
	return nil
}

// Promote consumes the registration row and inserts the given business in a
// single transaction. Deleting the registration first makes the delete the
// serialization point: if it affects zero rows, another promotion already
// consumed this registration and no business is inserted. On success the
// business's ID is set to the newly assigned identity.
func (r *RegistrationRepository) Promote(ctx context.Context, registrationID int64, business *Business) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin promotion transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM business_registrations WHERE id = ?", registrationID)
	if err != nil {
		return fmt.Errorf("failed to delete registration %d during promotion: %w", registrationID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyPromoted
	}

	res, err := tx.NamedExecContext(ctx, businessInsertQuery, business)
	if err != nil {
		return fmt.Errorf("failed to insert promoted business: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get promoted business id: %w", err)
	}
	business.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit promotion transaction: %w", err)
	}
	return nil
}
