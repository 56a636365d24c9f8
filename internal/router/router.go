// Package router sets up all HTTP routes and middleware chains for the
// ByteClave catalog service. It organizes routes into a public read-only
// API and a passphrase-gated admin API.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"byteclave/internal/handlers"
	"byteclave/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. adminHash is the bcrypt hash of the shared
// admin passphrase.
func New(public *handlers.Public, admin *handlers.Admin, adminHash []byte) chi.Router {
	r := chi.NewRouter()

	// Global middleware applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check, no auth.
	r.Get("/health", healthHandler)

	// Public storefront API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", public.Categories)
		r.Get("/products", public.Products)
		r.Get("/products/{slug}", public.ProductBySlug)
		r.Get("/tags", public.Tags)
		r.Get("/articles", public.Articles)
		r.Get("/articles/{slug}", public.ArticleBySlug)
	})

	// Admin API, passphrase-gated and rate limited.
	limiter := middleware.NewRateLimiter(120, time.Minute)
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(middleware.RequireAdmin(adminHash))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", admin.ProductCreate)
			r.Put("/{id}", admin.ProductUpdate)
			r.Delete("/{id}", admin.ProductDelete)
			r.Post("/{id}/soft-delete", admin.ProductSoftDelete)
			r.Post("/{id}/restore", admin.ProductRestore)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Post("/", admin.ArticleCreate)
			r.Put("/{id}", admin.ArticleUpdate)
			r.Delete("/{id}", admin.ArticleDelete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Put("/", admin.CategoryUpsert)
			r.Delete("/{name}", admin.CategoryDelete)
			r.Post("/seed", admin.CategorySeed)
		})

		r.Get("/settings/rss", admin.RSSFeeds)
		r.Put("/settings/rss", admin.RSSFeedsSet)

		r.Post("/files", admin.FileUpload)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
