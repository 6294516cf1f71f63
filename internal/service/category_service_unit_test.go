//go:build unit

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-directory-app/internal/data"
)

// mockCategoryRepository is a mock implementation of the CategoryRepository interface.
type mockCategoryRepository struct {
	errToReturn        error
	categoriesToReturn []*data.Category
	getAllCalled       bool
	lastActiveOnly     bool
	lastCategoryPassed *data.Category
	deleteCalled       bool
}

var _ CategoryRepository = (*mockCategoryRepository)(nil)

func (m *mockCategoryRepository) GetAll(ctx context.Context, activeOnly bool) ([]*data.Category, error) {
	m.getAllCalled = true
	m.lastActiveOnly = activeOnly
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.categoriesToReturn, nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*data.Category, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	for _, c := range m.categoriesToReturn {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*data.Category, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	for _, c := range m.categoriesToReturn {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *data.Category) (int64, error) {
	m.lastCategoryPassed = category
	if m.errToReturn != nil {
		return 0, m.errToReturn
	}
	return 42, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *data.Category) error {
	m.lastCategoryPassed = category
	return m.errToReturn
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalled = true
	return m.errToReturn
}

func newCategoryService(t *testing.T, repo *mockCategoryRepository) (*CategoryService, *mockAuditRepository, func()) {
	t.Helper()
	c, teardown := newTestCache(t)
	audit := &mockAuditRepository{}
	return NewCategoryService(repo, newTestAudit(audit), c), audit, teardown
}

func TestCategoryService_CreateDerivesSlug(t *testing.T) {
	repo := &mockCategoryRepository{}
	svc, audit, teardown := newCategoryService(t, repo)
	defer teardown()

	category, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Pet Shops"}, "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.Slug != "pet-shops" {
		t.Errorf("expected derived slug 'pet-shops', got '%s'", category.Slug)
	}
	if category.ID != 42 {
		t.Errorf("expected assigned id 42, got %d", category.ID)
	}
	if !category.Active {
		t.Error("expected active to default to true")
	}
	if len(audit.recorded) != 1 || audit.recorded[0].Action != "create" {
		t.Errorf("expected one create audit entry, got %v", audit.recorded)
	}
}

func TestCategoryService_CreateKeepsExplicitSlug(t *testing.T) {
	repo := &mockCategoryRepository{}
	svc, _, teardown := newCategoryService(t, repo)
	defer teardown()

	category, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Restaurants", Slug: "eat"}, "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.Slug != "eat" {
		t.Errorf("expected explicit slug 'eat', got '%s'", category.Slug)
	}
}

func TestCategoryService_CreateRejectsMissingName(t *testing.T) {
	repo := &mockCategoryRepository{}
	svc, _, teardown := newCategoryService(t, repo)
	defer teardown()

	_, err := svc.Create(context.Background(), CreateCategoryInput{}, "admin")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["name"]; !ok {
		t.Errorf("expected error keyed by 'name', got %v", verr.Fields)
	}
}

func TestCategoryService_CreateRejectsTakenSlug(t *testing.T) {
	repo := &mockCategoryRepository{
		categoriesToReturn: []*data.Category{{ID: 7, Name: "Food", Slug: "food", Active: true}},
	}
	svc, _, teardown := newCategoryService(t, repo)
	defer teardown()

	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Food"}, "admin")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields["slug"] != "is already in use" {
		t.Errorf("expected slug conflict message, got %v", verr.Fields)
	}
}

func TestCategoryService_GetBySlugHidesInactive(t *testing.T) {
	repo := &mockCategoryRepository{
		categoriesToReturn: []*data.Category{{ID: 7, Name: "Hidden", Slug: "hidden", Active: false}},
	}
	svc, _, teardown := newCategoryService(t, repo)
	defer teardown()

	_, err := svc.GetBySlug(context.Background(), "hidden")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for inactive category, got %v", err)
	}
	_, err = svc.GetBySlug(context.Background(), "absent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing slug, got %v", err)
	}
}

func TestCategoryService_UpdatePartialMerge(t *testing.T) {
	stored := &data.Category{
		ID: 7, Name: "Food", Slug: "food", Icon: "utensils", Color: "#ff6600",
		Active: true, SortOrder: 3, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	repo := &mockCategoryRepository{categoriesToReturn: []*data.Category{stored}}
	svc, audit, teardown := newCategoryService(t, repo)
	defer teardown()

	newName := "Food & Drink"
	updated, err := svc.Update(context.Background(), 7, UpdateCategoryInput{Name: &newName}, "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Food & Drink" {
		t.Errorf("expected updated name, got '%s'", updated.Name)
	}
	// Untouched fields keep their values.
	if updated.Slug != "food" || updated.Icon != "utensils" || updated.SortOrder != 3 {
		t.Errorf("expected untouched fields to survive, got %+v", updated)
	}
	if len(audit.recorded) != 1 || audit.recorded[0].Action != "update" {
		t.Errorf("expected one update audit entry, got %v", audit.recorded)
	}
	if audit.recorded[0].BeforeJSON == "" || audit.recorded[0].AfterJSON == "" {
		t.Error("expected before and after snapshots on update")
	}
}

func TestCategoryService_UpdateMissing(t *testing.T) {
	repo := &mockCategoryRepository{}
	svc, _, teardown := newCategoryService(t, repo)
	defer teardown()

	name := "Ghost"
	_, err := svc.Update(context.Background(), 999, UpdateCategoryInput{Name: &name}, "admin")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryService_DeleteMissing(t *testing.T) {
	repo := &mockCategoryRepository{}
	svc, _, teardown := newCategoryService(t, repo)
	defer teardown()

	err := svc.Delete(context.Background(), 999, "admin")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if repo.deleteCalled {
		t.Error("expected no delete call for a missing category")
	}
}

func TestCategoryService_ListPublicUsesCache(t *testing.T) {
	repo := &mockCategoryRepository{
		categoriesToReturn: []*data.Category{{ID: 1, Name: "Food", Slug: "food", Active: true}},
	}
	svc, _, teardown := newCategoryService(t, repo)
	defer teardown()
	ctx := context.Background()

	first, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !repo.getAllCalled || !repo.lastActiveOnly {
		t.Error("expected first call to hit the repository with activeOnly")
	}

	// A repository failure on the second call is invisible while the cache
	// entry is fresh.
	repo.errToReturn = errors.New("db down")
	second, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatalf("expected cached result, got error: %v", err)
	}
	if len(second) != len(first) || second[0].Slug != "food" {
		t.Errorf("expected cached listing to match, got %v", second)
	}
}
