//go:build integration

package data

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newCategory(name, slug string, active bool) *Category {
	now := time.Now()
	return &Category{
		Name:      name,
		Slug:      slug,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCategoryRepository_CreateAndGetByID(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := newCategory("Restaurants", "restaurants", true)
	category.Icon = "utensils"
	category.Color = "#ff6600"
	id, err := repo.Create(ctx, category)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	found, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find category, but got nil")
	}
	if found.Name != "Restaurants" {
		t.Errorf("expected name 'Restaurants', got '%s'", found.Name)
	}
	if found.Icon != "utensils" || found.Color != "#ff6600" {
		t.Errorf("expected icon/color to round-trip, got '%s'/'%s'", found.Icon, found.Color)
	}

	// Not found
	found, err = repo.GetByID(ctx, 999)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil, but found category: %v", found)
	}
}

func TestCategoryRepository_GetBySlug(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, newCategory("Bakeries", "bakeries", true)); err != nil {
		t.Fatal(err)
	}

	found, err := repo.GetBySlug(ctx, "bakeries")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find category, but got nil")
	}
	if found.Name != "Bakeries" {
		t.Errorf("expected name 'Bakeries', got '%s'", found.Name)
	}

	found, err = repo.GetBySlug(ctx, "florists")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil, but found category: %v", found)
	}
}

func TestCategoryRepository_SlugUnique(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, newCategory("Pets", "pets", true)); err != nil {
		t.Fatal(err)
	}
	// The slug column carries a unique constraint even across inactive rows.
	if _, err := repo.Create(ctx, newCategory("Pet Shops", "pets", false)); err == nil {
		t.Error("expected duplicate slug insert to fail")
	}
}

func TestCategoryRepository_GetAllActiveFilter(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	a := newCategory("Active", "active", true)
	a.SortOrder = 2
	b := newCategory("Also Active", "also-active", true)
	b.SortOrder = 1
	c := newCategory("Hidden", "hidden", false)
	for _, cat := range []*Category{a, b, c} {
		if _, err := repo.Create(ctx, cat); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.GetAll(ctx, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 categories, got %d", len(all))
	}

	active, err := repo.GetAll(ctx, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active categories, got %d", len(active))
	}
	// Ordered by sort_order.
	if active[0].Slug != "also-active" || active[1].Slug != "active" {
		t.Errorf("expected sort_order ordering, got %s then %s", active[0].Slug, active[1].Slug)
	}
}

func TestCategoryRepository_Update(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := newCategory("Shops", "shops", true)
	id, err := repo.Create(ctx, category)
	if err != nil {
		t.Fatal(err)
	}
	category.ID = id
	category.Name = "Stores"
	category.UpdatedAt = time.Now()

	if err := repo.Update(ctx, category); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, _ := repo.GetByID(ctx, id)
	if found.Name != "Stores" {
		t.Errorf("expected updated name 'Stores', got '%s'", found.Name)
	}

	// Updating a missing id reports an error.
	missing := newCategory("Ghost", "ghost", true)
	missing.ID = 999
	if err := repo.Update(ctx, missing); err == nil || !strings.Contains(err.Error(), "no category found") {
		t.Errorf("expected not-found update error, got %v", err)
	}
}

func TestCategoryRepository_Delete(t *testing.T) {
	db, teardown := newTestDB(t)
	defer teardown()
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, newCategory("Temp", "temp", true))
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, _ := repo.GetByID(ctx, id)
	if found != nil {
		t.Error("expected category to be deleted")
	}

	// Deleting a missing id reports an error rather than silently succeeding.
	if err := repo.Delete(ctx, id); err == nil {
		t.Error("expected error deleting missing category")
	}
}
