// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"byteclave/internal/cache"
	"byteclave/internal/catalog"
	"byteclave/internal/models"
	"byteclave/internal/store"
)

// Admin groups the dashboard CRUD endpoints. Every write invalidates the
// listing cache so the public API never serves stale catalog data longer
// than one request.
type Admin struct {
	repo         *catalog.Repository
	listingCache *cache.ListingCache
}

// NewAdmin creates the admin handler group. listingCache may be nil.
func NewAdmin(repo *catalog.Repository, listingCache *cache.ListingCache) *Admin {
	return &Admin{repo: repo, listingCache: listingCache}
}

// invalidate clears cached listings after a successful write.
func (a *Admin) invalidate(r *http.Request) {
	if a.listingCache != nil {
		a.listingCache.InvalidateAll(r.Context())
	}
}

// ProductCreate persists a new product from the submitted fields.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	var input models.Product
	if !readJSON(w, r, &input) {
		return
	}
	if msg := validateProduct(input); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	product, err := a.repo.CreateProduct(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	writeJSON(w, http.StatusCreated, product)
}

// ProductUpdate merges the submitted fields over an existing product.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	var updates store.Record
	if !readJSON(w, r, &updates) {
		return
	}

	product, err := a.repo.UpdateProduct(r.Context(), chi.URLParam(r, "id"), updates)
	if err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	writeJSON(w, http.StatusOK, product)
}

// ProductSoftDelete hides the product from public listings, keeping it
// recoverable.
func (a *Admin) ProductSoftDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.repo.SoftDeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ProductRestore clears the soft-delete flag.
func (a *Admin) ProductRestore(w http.ResponseWriter, r *http.Request) {
	if err := a.repo.RestoreProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

// ProductDelete permanently removes the product.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.repo.HardDeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// ArticleCreate persists a new article.
func (a *Admin) ArticleCreate(w http.ResponseWriter, r *http.Request) {
	var input models.Article
	if !readJSON(w, r, &input) {
		return
	}
	if msg := validateArticle(input); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	article, err := a.repo.CreateArticle(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	writeJSON(w, http.StatusCreated, article)
}

// ArticleUpdate merges fields over an existing article.
func (a *Admin) ArticleUpdate(w http.ResponseWriter, r *http.Request) {
	var updates store.Record
	if !readJSON(w, r, &updates) {
		return
	}

	article, err := a.repo.UpdateArticle(r.Context(), chi.URLParam(r, "id"), updates)
	if err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	writeJSON(w, http.StatusOK, article)
}

// ArticleDelete permanently removes the article.
func (a *Admin) ArticleDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.repo.DeleteArticle(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// CategoryUpsert creates or updates a category keyed by name.
func (a *Admin) CategoryUpsert(w http.ResponseWriter, r *http.Request) {
	var input models.Category
	if !readJSON(w, r, &input) {
		return
	}

	if err := a.repo.UpsertCategory(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// CategoryDelete removes a category. Products referencing it keep their
// dangling category string.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.repo.DeleteCategory(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// CategorySeed bulk-inserts the default taxonomy when the collection is
// empty. Reports whether seeding happened.
func (a *Admin) CategorySeed(w http.ResponseWriter, r *http.Request) {
	seeded, err := a.repo.SeedDefaultCategoriesIfEmpty(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if seeded {
		a.invalidate(r)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"seeded": seeded})
}

// RSSFeeds returns the configured feed URL list.
func (a *Admin) RSSFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := a.repo.RSSFeeds(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feeds)
}

// RSSFeedsSet replaces the feed URL list.
func (a *Admin) RSSFeedsSet(w http.ResponseWriter, r *http.Request) {
	var feeds []string
	if !readJSON(w, r, &feeds) {
		return
	}

	if err := a.repo.SetRSSFeeds(r.Context(), feeds); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// fileUploadRequest is the JSON body for inline file uploads.
type fileUploadRequest struct {
	Name    string `json:"name"`
	Mime    string `json:"mime"`
	Size    int    `json:"size"`
	DataURL string `json:"dataURL"`
}

// FileUpload stores an uploaded asset as a data URL record and returns
// the stored asset, including the detected format hint.
func (a *Admin) FileUpload(w http.ResponseWriter, r *http.Request) {
	var req fileUploadRequest
	if !readJSON(w, r, &req) {
		return
	}

	asset, err := a.repo.SaveFile(r.Context(), req.Name, req.Mime, req.Size, req.DataURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"asset":  asset,
		"format": models.DetectFormat(req.Name),
	})
}
