package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// settingsRowID is the identity of the singleton site settings row.
const settingsRowID = 1

// SettingsRepository handles database operations for the site settings singleton.
type SettingsRepository struct {
	DB *sqlx.DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// Get retrieves the settings row, or nil if it has never been written.
func (r *SettingsRepository) Get(ctx context.Context) (*SiteSettings, error) {
	var settings SiteSettings
	err := r.DB.GetContext(ctx, &settings, "SELECT * FROM site_settings WHERE id = ?", settingsRowID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found is not an error; the caller seeds defaults.
		}
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}
	return &settings, nil
}

// Insert writes the initial settings row.
func (r *SettingsRepository) Insert(ctx context.Context, settings *SiteSettings) error {
	settings.ID = settingsRowID
	query := `INSERT INTO site_settings
		(id, site_name, tagline, headline, about, phone, email, address, whatsapp, instagram, facebook,
		footer_text, advertise_copy, faq1_question, faq1_answer, faq2_question, faq2_answer,
		faq3_question, faq3_answer, faq4_question, faq4_answer, updated_at)
		VALUES (:id, :site_name, :tagline, :headline, :about, :phone, :email, :address, :whatsapp, :instagram, :facebook,
		:footer_text, :advertise_copy, :faq1_question, :faq1_answer, :faq2_question, :faq2_answer,
		:faq3_question, :faq3_answer, :faq4_question, :faq4_answer, :updated_at)`
	if _, err := r.DB.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("failed to insert site settings: %w", err)
	}
	return nil
}

// Update overwrites the settings row.
func (r *SettingsRepository) Update(ctx context.Context, settings *SiteSettings) error {
	settings.ID = settingsRowID
	query := `UPDATE site_settings SET site_name = :site_name, tagline = :tagline, headline = :headline,
		about = :about, phone = :phone, email = :email, address = :address, whatsapp = :whatsapp,
		instagram = :instagram, facebook = :facebook, footer_text = :footer_text,
		advertise_copy = :advertise_copy, faq1_question = :faq1_question, faq1_answer = :faq1_answer,
		faq2_question = :faq2_question, faq2_answer = :faq2_answer, faq3_question = :faq3_question,
		faq3_answer = :faq3_answer, faq4_question = :faq4_question, faq4_answer = :faq4_answer,
		updated_at = :updated_at WHERE id = :id`
	result, err := r.DB.NamedExecContext(ctx, query, settings)
	if err != nil {
		return fmt.Errorf("failed to update site settings: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("site settings row missing on update")
	}
	return nil
}
