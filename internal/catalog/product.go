// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"byteclave/internal/models"
	"byteclave/internal/slug"
	"byteclave/internal/store"
	"byteclave/internal/taxonomy"
)

// Sort orders accepted by ListProducts. Any other value keeps the
// backend's order.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortPopular   = "popular"
)

// ListOptions narrows and orders a product listing. All filters are
// conjunctive; zero values mean "not applied".
type ListOptions struct {
	Category    string
	Subcategory string
	Tags        []string
	Search      string
	MinPrice    float64
	MaxPrice    float64 // <= 0 means unbounded
	Sort        string
	Limit       int // <= 0 means no limit
}

// CreateProduct normalizes, slugs and persists a new product. The base
// slug comes from input.Slug when set, else the title; uniqueness is
// resolved against every existing product slug, deleted and unpublished
// included, fetched fresh at call time. The check is advisory: two
// concurrent creates can race it, which is acceptable for the expected
// single-admin usage.
func (r *Repository) CreateProduct(ctx context.Context, input models.Product) (*models.Product, error) {
	if input.Price < 0 {
		return nil, validationError("price must not be negative")
	}
	if input.Category != "" {
		cats, err := r.ListCategories(ctx, taxonomy.Default())
		if err != nil {
			return nil, err
		}
		if !ValidateCategorySelection(input.Category, input.Subcategory, cats) {
			return nil, validationError(fmt.Sprintf(
				"subcategory %q is not valid for category %q", input.Subcategory, input.Category))
		}
	}

	base := input.Slug
	if base == "" {
		base = input.Title
	}
	base = slug.Generate(base)
	if base == "" {
		base = "item"
	}
	existing, err := r.allProductSlugs(ctx)
	if err != nil {
		return nil, err
	}

	now := r.timestamp()
	input.ID = ""
	input.Slug = slug.EnsureUnique(base, existing)
	input.Deleted = false
	input.CreatedAt = now
	input.UpdatedAt = now
	if input.Currency == "" {
		input.Currency = "KES"
	}

	rec, err := input.Record()
	if err != nil {
		return nil, err
	}
	stored, err := r.store.Create(ctx, store.Products, rec)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	product, err := models.ProductFromRecord(stored)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct merges the given fields over an existing product and
// refreshes updatedAt. Slug uniqueness and category consistency are not
// re-checked on update; edits are validated form-side instead.
func (r *Repository) UpdateProduct(ctx context.Context, id string, updates store.Record) (*models.Product, error) {
	fields := updates.Clone()
	fields["updatedAt"] = r.timestamp()

	merged, err := r.store.Update(ctx, store.Products, id, fields)
	if err != nil {
		return nil, err
	}
	product, err := models.ProductFromRecord(merged)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SoftDeleteProduct marks the product deleted, removing it from every
// public listing while keeping it recoverable. Idempotent.
func (r *Repository) SoftDeleteProduct(ctx context.Context, id string) error {
	_, err := r.UpdateProduct(ctx, id, store.Record{"deleted": true})
	return err
}

// RestoreProduct clears the deleted flag. Idempotent.
func (r *Repository) RestoreProduct(ctx context.Context, id string) error {
	_, err := r.UpdateProduct(ctx, id, store.Record{"deleted": false})
	return err
}

// HardDeleteProduct permanently removes the product.
func (r *Repository) HardDeleteProduct(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.Products, id); err != nil {
		return fmt.Errorf("hard delete product: %w", err)
	}
	return nil
}

// GetProductByID returns the product at id, or nil when absent.
func (r *Repository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	rec, err := r.store.Get(ctx, store.Products, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if rec == nil {
		return nil, nil
	}
	product, err := models.ProductFromRecord(rec)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductBySlug scans the collection for the slug. Returns nil when no
// product matches; absence is not an error.
func (r *Repository) GetProductBySlug(ctx context.Context, slugStr string) (*models.Product, error) {
	records, err := r.store.List(ctx, store.Products)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	for _, rec := range records {
		product, err := models.ProductFromRecord(rec)
		if err != nil {
			return nil, err
		}
		if product.Slug == slugStr {
			return &product, nil
		}
	}
	return nil, nil
}

// ListProducts is the central query operation. Soft-deleted and
// unpublished products are excluded unconditionally before any other
// predicate; then the conjunctive filters apply, then sorting, then the
// limit truncation.
func (r *Repository) ListProducts(ctx context.Context, opts ListOptions) ([]models.Product, error) {
	records, err := r.store.List(ctx, store.Products)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		product, err := models.ProductFromRecord(rec)
		if err != nil {
			return nil, err
		}
		if product.Visible() && matchProduct(&product, &opts) {
			products = append(products, product)
		}
	}

	sortProducts(products, opts.Sort)

	if opts.Limit > 0 && len(products) > opts.Limit {
		products = products[:opts.Limit]
	}
	return products, nil
}

// matchProduct applies every configured filter; all are conjunctive.
func matchProduct(p *models.Product, opts *ListOptions) bool {
	if opts.Category != "" && p.Category != opts.Category {
		return false
	}
	if opts.Subcategory != "" && p.Subcategory != opts.Subcategory {
		return false
	}
	if len(opts.Tags) > 0 && !anyTagMatch(p.Tags, opts.Tags) {
		return false
	}
	if opts.Search != "" {
		haystack := strings.ToLower(strings.Join([]string{
			p.Title, p.ShortDescription, strings.Join(p.Tags, " "), p.Slug,
		}, " "))
		if !strings.Contains(haystack, strings.ToLower(opts.Search)) {
			return false
		}
	}
	if p.Price < opts.MinPrice {
		return false
	}
	if opts.MaxPrice > 0 && p.Price > opts.MaxPrice {
		return false
	}
	return true
}

// anyTagMatch reports whether the product shares at least one tag with
// the wanted set.
func anyTagMatch(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// sortProducts orders the slice in place according to the sort key.
// Unknown keys leave the backend order unchanged.
func sortProducts(products []models.Product, key string) {
	switch key {
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt > products[j].CreatedAt
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Views > products[j].Views
		})
	}
}

// AllTags returns the distinct tags across a capped listing, sorted
// ascending.
func (r *Repository) AllTags(ctx context.Context, limit int) ([]string, error) {
	products, err := r.ListProducts(ctx, ListOptions{Limit: limit})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, p := range products {
		for _, t := range p.Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// allProductSlugs fetches every non-empty product slug, including those
// of deleted and unpublished products.
func (r *Repository) allProductSlugs(ctx context.Context) ([]string, error) {
	records, err := r.store.List(ctx, store.Products)
	if err != nil {
		return nil, fmt.Errorf("fetch product slugs: %w", err)
	}
	slugs := make([]string, 0, len(records))
	for _, rec := range records {
		if s, _ := rec["slug"].(string); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs, nil
}
