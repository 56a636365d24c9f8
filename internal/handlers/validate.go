package handlers

import (
	"strings"
	"unicode/utf8"

	"byteclave/internal/models"
)

// Validation limits for product and article fields.
const (
	maxTitleLen     = 300
	maxSlugLen      = 300
	maxDescLen      = 100_000
	maxShortDescLen = 1_000
	maxExcerptLen   = 1_000
	maxBodyLen      = 100_000
)

// validateProduct checks product form inputs and returns the first error found.
func validateProduct(p models.Product) string {
	if strings.TrimSpace(p.Title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(p.Title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(p.Slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(p.ShortDescription) > maxShortDescLen {
		return "Short description is too long (max 1,000 characters)."
	}
	if utf8.RuneCountInString(p.Description) > maxDescLen {
		return "Description is too long (max 100,000 characters)."
	}
	if p.Price < 0 {
		return "Price must not be negative."
	}
	return ""
}

// validateArticle checks article form inputs and returns the first error found.
func validateArticle(a models.Article) string {
	if strings.TrimSpace(a.Title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(a.Title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(a.Excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	if utf8.RuneCountInString(a.Body) > maxBodyLen {
		return "Body is too long (max 100,000 characters)."
	}
	return ""
}
