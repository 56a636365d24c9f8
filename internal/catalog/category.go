// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"byteclave/internal/models"
	"byteclave/internal/store"
	"byteclave/internal/taxonomy"
)

// SeedDefaultCategoriesIfEmpty bulk-inserts the taxonomy default set when
// the categories collection is empty. Returns true when seeding happened.
// Safe to call on every application start: after the first success it is
// a read-only no-op.
func (r *Repository) SeedDefaultCategoriesIfEmpty(ctx context.Context) (bool, error) {
	existing, err := r.store.List(ctx, store.Categories)
	if err != nil {
		return false, fmt.Errorf("seed check categories: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	for _, cat := range taxonomy.Default() {
		rec, err := cat.Record()
		if err != nil {
			return false, err
		}
		if _, err := r.store.Create(ctx, store.Categories, rec); err != nil {
			return false, fmt.Errorf("seed category %s: %w", cat.Name, err)
		}
	}
	return true, nil
}

// ListCategories returns the persisted categories sorted by name, or the
// fallback set untouched (and unpersisted) when none exist yet.
func (r *Repository) ListCategories(ctx context.Context, fallback []models.Category) ([]models.Category, error) {
	records, err := r.store.List(ctx, store.Categories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(records) == 0 {
		return fallback, nil
	}

	cats := make([]models.Category, 0, len(records))
	for _, rec := range records {
		cat, err := models.CategoryFromRecord(rec)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

// UpsertCategory writes the category keyed by its name. An existing record
// is updated field-by-field; a missing one is created.
func (r *Repository) UpsertCategory(ctx context.Context, cat models.Category) error {
	if cat.Name == "" {
		return validationError("category name is required")
	}
	cat.UpdatedAt = r.timestamp()

	rec, err := cat.Record()
	if err != nil {
		return err
	}
	_, err = r.store.Update(ctx, store.Categories, cat.Name, rec)
	if errors.Is(err, store.ErrNotFound) {
		_, err = r.store.Create(ctx, store.Categories, rec)
	}
	if err != nil {
		return fmt.Errorf("upsert category %s: %w", cat.Name, err)
	}
	return nil
}

// DeleteCategory removes the category record. Empty or unknown names are
// a no-op. Products referencing the category are left untouched; a
// dangling reference is tolerated by the storefront.
func (r *Repository) DeleteCategory(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	if err := r.store.Delete(ctx, store.Categories, name); err != nil {
		return fmt.Errorf("delete category %s: %w", name, err)
	}
	return nil
}

// ValidateCategorySelection reports whether the category/subcategory pair
// is consistent with the given category set. A category that declares
// subcategories requires one; a category without them requires none.
// Pure predicate, suitable for form-side checks before submission.
func ValidateCategorySelection(category, subcategory string, categories []models.Category) bool {
	for _, c := range categories {
		if c.Name != category {
			continue
		}
		if subcategory == "" {
			return len(c.Subcategories) == 0
		}
		for _, sub := range c.Subcategories {
			if sub == subcategory {
				return true
			}
		}
		return false
	}
	return false
}
