// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"byteclave/internal/models"
	"byteclave/internal/store"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	b, err := store.OpenBolt(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return New(b)
}

// tickingClock makes each timestamp() call strictly later than the last,
// so creation order is deterministic regardless of the host clock.
func tickingClock(r *Repository) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	r.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

// millisClock steps in 20ms increments from a whole-second base, so
// consecutive timestamps differ only in their fraction.
func millisClock(r *Repository) {
	base := time.Date(2026, 1, 1, 0, 0, 5, 80*int(time.Millisecond), time.UTC)
	n := 0
	r.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * 20 * time.Millisecond)
	}
}

func mustCreateProduct(t *testing.T, r *Repository, p models.Product) *models.Product {
	t.Helper()
	created, err := r.CreateProduct(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateProduct(%q): %v", p.Title, err)
	}
	return created
}

func TestCreateProductSlug(t *testing.T) {
	r := newTestRepo(t)

	first := mustCreateProduct(t, r, models.Product{Title: "My Great Tool!!", Published: true})
	if first.Slug != "my-great-tool" {
		t.Errorf("slug: got %q, want my-great-tool", first.Slug)
	}

	// Same title again resolves to a suffixed slug.
	second := mustCreateProduct(t, r, models.Product{Title: "My Great Tool!!", Published: true})
	if second.Slug != "my-great-tool-1" {
		t.Errorf("second slug: got %q, want my-great-tool-1", second.Slug)
	}
	third := mustCreateProduct(t, r, models.Product{Title: "My Great Tool!!", Published: true})
	if third.Slug != "my-great-tool-2" {
		t.Errorf("third slug: got %q, want my-great-tool-2", third.Slug)
	}
}

func TestCreateProductSlugFromInputSlug(t *testing.T) {
	r := newTestRepo(t)

	created := mustCreateProduct(t, r, models.Product{Title: "Ignored", Slug: "Custom Slug"})
	if created.Slug != "custom-slug" {
		t.Errorf("slug: got %q, want custom-slug", created.Slug)
	}
}

func TestCreateProductSlugFallback(t *testing.T) {
	r := newTestRepo(t)

	created := mustCreateProduct(t, r, models.Product{Title: "!!!"})
	if created.Slug != "item" {
		t.Errorf("slug: got %q, want item", created.Slug)
	}
}

func TestCreateProductUniquenessSeesHiddenProducts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	hidden := mustCreateProduct(t, r, models.Product{Title: "Widget"})
	if err := r.SoftDeleteProduct(ctx, hidden.ID); err != nil {
		t.Fatalf("SoftDeleteProduct: %v", err)
	}

	// The deleted product still occupies its slug.
	again := mustCreateProduct(t, r, models.Product{Title: "Widget"})
	if again.Slug != "widget-1" {
		t.Errorf("slug: got %q, want widget-1", again.Slug)
	}
}

func TestCreateProductDefaults(t *testing.T) {
	r := newTestRepo(t)

	created := mustCreateProduct(t, r, models.Product{Title: "Thing", Price: 5})
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.Currency != "KES" {
		t.Errorf("currency: got %q, want KES", created.Currency)
	}
	if created.Deleted {
		t.Error("new product must not be deleted")
	}
	if created.CreatedAt == "" || created.CreatedAt != created.UpdatedAt {
		t.Errorf("timestamps: createdAt=%q updatedAt=%q", created.CreatedAt, created.UpdatedAt)
	}
}

func TestCreateProductValidation(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	var verr *ValidationError

	_, err := r.CreateProduct(ctx, models.Product{Title: "Bad", Price: -1})
	if !errors.As(err, &verr) {
		t.Errorf("negative price: got %v, want ValidationError", err)
	}

	// A category that declares subcategories requires one.
	_, err = r.CreateProduct(ctx, models.Product{Title: "Bad", Category: "AI TOOLS"})
	if !errors.As(err, &verr) {
		t.Errorf("missing subcategory: got %v, want ValidationError", err)
	}

	_, err = r.CreateProduct(ctx, models.Product{
		Title: "Bad", Category: "AI TOOLS", Subcategory: "Prompt Libraries",
	})
	if !errors.As(err, &verr) {
		t.Errorf("foreign subcategory: got %v, want ValidationError", err)
	}

	// A valid pair passes.
	if _, err := r.CreateProduct(ctx, models.Product{
		Title: "Good", Category: "AI TOOLS", Subcategory: "AI Applications",
	}); err != nil {
		t.Errorf("valid pair: %v", err)
	}
}

func TestListProductsVisibility(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	visible := mustCreateProduct(t, r, models.Product{Title: "Visible", Published: true})
	mustCreateProduct(t, r, models.Product{Title: "Draft", Published: false})
	deleted := mustCreateProduct(t, r, models.Product{Title: "Gone", Published: true})
	if err := r.SoftDeleteProduct(ctx, deleted.ID); err != nil {
		t.Fatalf("SoftDeleteProduct: %v", err)
	}

	got, err := r.ListProducts(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(got) != 1 || got[0].ID != visible.ID {
		t.Errorf("got %d products, want only %q", len(got), visible.Title)
	}
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	p := mustCreateProduct(t, r, models.Product{Title: "Phoenix", Published: true})

	if err := r.SoftDeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("SoftDeleteProduct: %v", err)
	}
	listed, err := r.ListProducts(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty listing after soft delete, got %d", len(listed))
	}

	// The record itself survives and keeps its slug.
	byID, err := r.GetProductByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if byID == nil || byID.Slug != p.Slug {
		t.Fatalf("soft-deleted product lost: %v", byID)
	}

	if err := r.RestoreProduct(ctx, p.ID); err != nil {
		t.Fatalf("RestoreProduct: %v", err)
	}
	listed, err = r.ListProducts(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListProducts after restore: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != p.ID {
		t.Errorf("expected restored product in listing, got %d", len(listed))
	}
}

func TestUpdateProductMissing(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.UpdateProduct(context.Background(), "nope", store.Record{"title": "x"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected store.ErrNotFound, got %v", err)
	}
}

func TestUpdateProductMerges(t *testing.T) {
	r := newTestRepo(t)
	tickingClock(r)
	ctx := context.Background()

	p := mustCreateProduct(t, r, models.Product{Title: "Before", Price: 10, Published: true})

	updated, err := r.UpdateProduct(ctx, p.ID, store.Record{"title": "After"})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Title != "After" {
		t.Errorf("title: got %q, want After", updated.Title)
	}
	if updated.Price != 10 {
		t.Errorf("price: got %v, want 10", updated.Price)
	}
	if updated.UpdatedAt == p.UpdatedAt {
		t.Error("expected updatedAt to be refreshed")
	}
}

func TestListProductsFilters(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	mustCreateProduct(t, r, models.Product{
		Title: "Prompt Vault", ShortDescription: "curated prompts",
		Category: "AI PROMPTS", Subcategory: "Prompt Libraries",
		Tags: []string{"prompt", "library"}, Price: 15, Published: true,
	})
	mustCreateProduct(t, r, models.Product{
		Title: "Cheat Pack", ShortDescription: "pdf bundle",
		Category: "AI TOOLS", Subcategory: "PDFs & Cheat Sheets",
		Tags: []string{"pdf"}, Price: 30, Published: true,
	})
	mustCreateProduct(t, r, models.Product{
		Title: "Video Course", ShortDescription: "full course",
		Category: "COURSES", Subcategory: "Prompt Engineering",
		Tags: []string{"course"}, Price: 80, Published: true,
	})

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"category", ListOptions{Category: "AI TOOLS"}, []string{"Cheat Pack"}},
		{"subcategory", ListOptions{Subcategory: "Prompt Libraries"}, []string{"Prompt Vault"}},
		{"tags any overlap", ListOptions{Tags: []string{"pdf", "course"}}, []string{"Cheat Pack", "Video Course"}},
		{"search case-insensitive title", ListOptions{Search: "VAULT"}, []string{"Prompt Vault"}},
		{"search short description", ListOptions{Search: "bundle"}, []string{"Cheat Pack"}},
		{"search tag", ListOptions{Search: "course"}, []string{"Video Course"}},
		{"min price inclusive", ListOptions{MinPrice: 30}, []string{"Cheat Pack", "Video Course"}},
		{"max price inclusive", ListOptions{MaxPrice: 30}, []string{"Prompt Vault", "Cheat Pack"}},
		{"price band", ListOptions{MinPrice: 16, MaxPrice: 79}, []string{"Cheat Pack"}},
		{"conjunction", ListOptions{Category: "AI TOOLS", Search: "vault"}, nil},
		{"no match", ListOptions{Category: "APPS"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.ListProducts(ctx, tc.opts)
			if err != nil {
				t.Fatalf("ListProducts: %v", err)
			}
			var titles []string
			for _, p := range got {
				titles = append(titles, p.Title)
			}
			if !sameMembers(titles, tc.want) {
				t.Errorf("got %v, want %v", titles, tc.want)
			}
		})
	}
}

// sameMembers compares two title sets ignoring order.
func sameMembers(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]int)
	for _, g := range got {
		seen[g]++
	}
	for _, w := range want {
		seen[w]--
		if seen[w] < 0 {
			return false
		}
	}
	return true
}

func TestListProductsSort(t *testing.T) {
	r := newTestRepo(t)
	tickingClock(r)
	ctx := context.Background()

	mustCreateProduct(t, r, models.Product{Title: "Mid", Price: 20, Views: 5, Published: true})
	mustCreateProduct(t, r, models.Product{Title: "Cheap", Price: 5, Views: 50, Published: true})
	mustCreateProduct(t, r, models.Product{Title: "Dear", Price: 99, Views: 1, Published: true})

	tests := []struct {
		sort string
		want []string
	}{
		{SortPriceAsc, []string{"Cheap", "Mid", "Dear"}},
		{SortPriceDesc, []string{"Dear", "Mid", "Cheap"}},
		{SortNewest, []string{"Dear", "Cheap", "Mid"}},
		{SortPopular, []string{"Cheap", "Mid", "Dear"}},
	}

	for _, tc := range tests {
		t.Run(tc.sort, func(t *testing.T) {
			got, err := r.ListProducts(ctx, ListOptions{Sort: tc.sort})
			if err != nil {
				t.Fatalf("ListProducts: %v", err)
			}
			var titles []string
			for _, p := range got {
				titles = append(titles, p.Title)
			}
			if !reflect.DeepEqual(titles, tc.want) {
				t.Errorf("got %v, want %v", titles, tc.want)
			}
		})
	}
}

func TestListProductsNewestSubSecond(t *testing.T) {
	r := newTestRepo(t)
	millisClock(r)
	ctx := context.Background()

	older := mustCreateProduct(t, r, models.Product{Title: "Older", Published: true})
	newer := mustCreateProduct(t, r, models.Product{Title: "Newer", Published: true})

	// Fractions are fixed width so the strings stay ordered even when one
	// would be a prefix of the other after zero trimming.
	if !strings.HasSuffix(older.CreatedAt, ".100Z") {
		t.Errorf("createdAt: got %q, want a fixed three-digit fraction", older.CreatedAt)
	}
	if !strings.HasSuffix(newer.CreatedAt, ".120Z") {
		t.Errorf("createdAt: got %q, want a fixed three-digit fraction", newer.CreatedAt)
	}

	got, err := r.ListProducts(ctx, ListOptions{Sort: SortNewest})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Newer" {
		t.Errorf("newest sort with sub-second timestamps: got %v first, want Newer", got[0].Title)
	}
}

func TestListProductsLimit(t *testing.T) {
	r := newTestRepo(t)
	tickingClock(r)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreateProduct(t, r, models.Product{Title: "P", Price: float64(i), Published: true})
	}

	got, err := r.ListProducts(ctx, ListOptions{Sort: SortPriceAsc, Limit: 2})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len: got %d, want 2", len(got))
	}
	// The limit truncates after sorting.
	if got[0].Price != 0 || got[1].Price != 1 {
		t.Errorf("got prices %v, %v; want 0, 1", got[0].Price, got[1].Price)
	}
}

func TestGetProductBySlug(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	p := mustCreateProduct(t, r, models.Product{Title: "Find Me", Published: true})

	got, err := r.GetProductBySlug(ctx, p.Slug)
	if err != nil {
		t.Fatalf("GetProductBySlug: %v", err)
	}
	if got == nil || got.ID != p.ID {
		t.Fatalf("got %v, want product %s", got, p.ID)
	}

	missing, err := r.GetProductBySlug(ctx, "no-such-slug")
	if err != nil {
		t.Fatalf("GetProductBySlug miss: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown slug, got %v", missing)
	}
}

func TestHardDeleteProduct(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	p := mustCreateProduct(t, r, models.Product{Title: "Doomed"})
	if err := r.HardDeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("HardDeleteProduct: %v", err)
	}

	got, err := r.GetProductByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after hard delete, got %v", got)
	}

	// The slug is free again.
	again := mustCreateProduct(t, r, models.Product{Title: "Doomed"})
	if again.Slug != "doomed" {
		t.Errorf("slug: got %q, want doomed", again.Slug)
	}
}

func TestAllTags(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	mustCreateProduct(t, r, models.Product{Title: "One", Tags: []string{"b", "a"}, Published: true})
	mustCreateProduct(t, r, models.Product{Title: "Two", Tags: []string{"c", "a"}, Published: true})
	hidden := mustCreateProduct(t, r, models.Product{Title: "Hidden", Tags: []string{"z"}, Published: true})
	if err := r.SoftDeleteProduct(ctx, hidden.ID); err != nil {
		t.Fatalf("SoftDeleteProduct: %v", err)
	}

	tags, err := r.AllTags(ctx, 0)
	if err != nil {
		t.Fatalf("AllTags: %v", err)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("got %v, want %v", tags, want)
	}
}
