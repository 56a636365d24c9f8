// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"byteclave/internal/cache"
	"byteclave/internal/catalog"
	"byteclave/internal/taxonomy"
)

// Public groups the storefront read endpoints. Listing responses go
// through the Valkey cache when one is configured; the repository stays
// the single source of truth.
type Public struct {
	repo         *catalog.Repository
	listingCache *cache.ListingCache
}

// NewPublic creates the public handler group. listingCache may be nil
// when no Valkey instance is configured.
func NewPublic(repo *catalog.Repository, listingCache *cache.ListingCache) *Public {
	return &Public{repo: repo, listingCache: listingCache}
}

// Categories returns the persisted category set, falling back to the
// taxonomy defaults before seeding has occurred.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := p.repo.ListCategories(r.Context(), taxonomy.Default())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Products lists visible products filtered, sorted and truncated per the
// query string.
func (p *Public) Products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := "products?" + r.URL.RawQuery
	if p.listingCache != nil {
		if body, ok := p.listingCache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	products, err := p.repo.ListProducts(ctx, listOptionsFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if p.listingCache != nil {
		if body, err := marshalForCache(products); err == nil {
			p.listingCache.Set(ctx, key, body)
		}
	}
	writeJSON(w, http.StatusOK, products)
}

// ProductBySlug returns a single product, 404 when the slug is unknown.
func (p *Public) ProductBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := p.repo.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	if product == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Tags returns the distinct tag vocabulary across visible products.
func (p *Public) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := p.repo.AllTags(r.Context(), intQuery(r, "limit", 1000))
	if err != nil {
		writeError(w, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	writeJSON(w, http.StatusOK, tags)
}

// Articles lists articles newest first.
func (p *Public) Articles(w http.ResponseWriter, r *http.Request) {
	articles, err := p.repo.ListArticles(r.Context(), intQuery(r, "limit", 50))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// ArticleBySlug returns a single hosted article, 404 when unknown.
func (p *Public) ArticleBySlug(w http.ResponseWriter, r *http.Request) {
	article, err := p.repo.GetArticleBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	if article == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// listOptionsFromQuery maps the storefront query string onto repository
// list options.
func listOptionsFromQuery(r *http.Request) catalog.ListOptions {
	q := r.URL.Query()
	opts := catalog.ListOptions{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Search:      q.Get("search"),
		Sort:        q.Get("sort"),
		MinPrice:    floatQuery(r, "minPrice", 0),
		MaxPrice:    floatQuery(r, "maxPrice", 0),
		Limit:       intQuery(r, "limit", 0),
	}
	if tags := q.Get("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				opts.Tags = append(opts.Tags, t)
			}
		}
	}
	return opts
}

// intQuery parses an integer query parameter, returning fallback on
// absence or garbage.
func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// floatQuery parses a numeric query parameter, returning fallback on
// absence or garbage.
func floatQuery(r *http.Request, key string, fallback float64) float64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
