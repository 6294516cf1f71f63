//go:build unit

package service

import (
	"context"
	"io"
	"testing"

	"go-directory-app/internal/cache"
	"go-directory-app/internal/config"
	"go-directory-app/internal/data"
	"go-directory-app/internal/logger"
)

// newTestCache creates a new in-memory cache for testing.
func newTestCache(t *testing.T) (*cache.Cache, func()) {
	t.Helper()
	cfg := config.CacheConfig{
		FilePath: "file::memory:",
	}
	c, err := cache.New(cfg)
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	teardown := func() {
		c.Close()
	}
	return c, teardown
}

// mockAuditRepository is a mock implementation of the AuditRepository interface.
type mockAuditRepository struct {
	errToReturn     error
	entriesToReturn []*data.AuditEntry
	recorded        []*data.AuditEntry
	lastLimit       int
}

var _ AuditRepository = (*mockAuditRepository)(nil)

func (m *mockAuditRepository) Record(ctx context.Context, entry *data.AuditEntry) error {
	if m.errToReturn != nil {
		return m.errToReturn
	}
	m.recorded = append(m.recorded, entry)
	return nil
}

func (m *mockAuditRepository) Recent(ctx context.Context, limit int) ([]*data.AuditEntry, error) {
	m.lastLimit = limit
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.entriesToReturn, nil
}

// newTestAudit wires an AuditLogger over a mock repository and a silent logger.
func newTestAudit(repo *mockAuditRepository) *AuditLogger {
	log := logger.New(config.LogConfig{Level: "error", Format: "json"}, io.Discard)
	return NewAuditLogger(repo, log)
}

func TestAuditLogger_RecentClampsLimit(t *testing.T) {
	repo := &mockAuditRepository{}
	audit := newTestAudit(repo)
	ctx := context.Background()

	if _, err := audit.Recent(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if repo.lastLimit != 50 {
		t.Errorf("expected zero limit to clamp to 50, got %d", repo.lastLimit)
	}

	if _, err := audit.Recent(ctx, 500); err != nil {
		t.Fatal(err)
	}
	if repo.lastLimit != 50 {
		t.Errorf("expected oversized limit to clamp to 50, got %d", repo.lastLimit)
	}

	if _, err := audit.Recent(ctx, 25); err != nil {
		t.Fatal(err)
	}
	if repo.lastLimit != 25 {
		t.Errorf("expected in-range limit to pass through, got %d", repo.lastLimit)
	}
}
