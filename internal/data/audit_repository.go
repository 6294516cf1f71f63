package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AuditRepository appends admin mutation records to the audit log.
type AuditRepository struct {
	DB *sqlx.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

// Record appends one audit entry.
func (r *AuditRepository) Record(ctx context.Context, entry *AuditEntry) error {
	query := `INSERT INTO audit_log (action, table_name, record_id, actor, before_json, after_json, created_at)
		VALUES (:action, :table_name, :record_id, :actor, :before_json, :after_json, :created_at)`
	if _, err := r.DB.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// Recent returns the latest audit entries, capped at limit.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]*AuditEntry, error) {
	var entries []*AuditEntry
	query := "SELECT * FROM audit_log ORDER BY id DESC LIMIT ?"
	if err := r.DB.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get audit entries: %w", err)
	}
	return entries, nil
}
