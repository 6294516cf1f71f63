package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-directory-app/internal/data"
	"go-directory-app/internal/logger"
)

// AuditRepository defines the persistence interface for audit entries.
type AuditRepository interface {
	Record(ctx context.Context, entry *data.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]*data.AuditEntry, error)
}

// AuditLogger appends audit entries for admin mutations. Recording is best
// effort: a failure is logged and never propagated, so an audit outage cannot
// fail the primary operation.
type AuditLogger struct {
	repo AuditRepository
	log  logger.Logger
}

// NewAuditLogger creates a new AuditLogger.
func NewAuditLogger(repo AuditRepository, log logger.Logger) *AuditLogger {
	return &AuditLogger{repo: repo, log: log}
}

// Record appends one audit entry with JSON snapshots of the record before and
// after the mutation. Nil snapshots are stored as empty strings.
func (a *AuditLogger) Record(ctx context.Context, action, table string, recordID int64, actor string, before, after interface{}) {
	entry := &data.AuditEntry{
		Action:     action,
		TableName:  table,
		RecordID:   recordID,
		Actor:      actor,
		BeforeJSON: marshalSnapshot(before),
		AfterJSON:  marshalSnapshot(after),
		CreatedAt:  time.Now(),
	}
	if err := a.repo.Record(ctx, entry); err != nil {
		a.log.Warn(fmt.Sprintf("audit record failed for %s %s/%d: %v", action, table, recordID, err))
	}
}

// Recent returns the latest audit entries for the admin activity view.
func (a *AuditLogger) Recent(ctx context.Context, limit int) ([]*data.AuditEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return a.repo.Recent(ctx, limit)
}

func marshalSnapshot(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
