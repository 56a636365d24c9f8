// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"sort"

	"byteclave/internal/models"
	"byteclave/internal/slug"
	"byteclave/internal/store"
)

// CreateArticle persists an article, filling in the defaults: slug from
// the title, the site byline, publishedAt now. Article slugs are taken as
// computed; unlike products there is no uniqueness resolution.
func (r *Repository) CreateArticle(ctx context.Context, input models.Article) (*models.Article, error) {
	if input.Slug == "" {
		title := input.Title
		if title == "" {
			title = "article"
		}
		input.Slug = slug.Generate(title)
	}
	if input.Author == "" {
		input.Author = models.DefaultAuthor
	}
	if input.PublishedAt == "" {
		input.PublishedAt = r.timestamp()
	}
	input.ID = ""

	rec, err := input.Record()
	if err != nil {
		return nil, err
	}
	stored, err := r.store.Create(ctx, store.Articles, rec)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	article, err := models.ArticleFromRecord(stored)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateArticle merges fields over an existing article and refreshes
// updatedAt. Returns store.ErrNotFound for an unknown id.
func (r *Repository) UpdateArticle(ctx context.Context, id string, updates store.Record) (*models.Article, error) {
	fields := updates.Clone()
	fields["updatedAt"] = r.timestamp()

	merged, err := r.store.Update(ctx, store.Articles, id, fields)
	if err != nil {
		return nil, err
	}
	article, err := models.ArticleFromRecord(merged)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// DeleteArticle permanently removes the article; articles have no
// soft-delete state.
func (r *Repository) DeleteArticle(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.Articles, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// ListArticles returns articles by publication date descending, truncated
// to limit (<= 0 means no limit).
func (r *Repository) ListArticles(ctx context.Context, limit int) ([]models.Article, error) {
	records, err := r.store.List(ctx, store.Articles)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	articles := make([]models.Article, 0, len(records))
	for _, rec := range records {
		article, err := models.ArticleFromRecord(rec)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt > articles[j].PublishedAt
	})

	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// GetArticleBySlug scans for the slug. Returns nil when nothing matches.
func (r *Repository) GetArticleBySlug(ctx context.Context, slugStr string) (*models.Article, error) {
	records, err := r.store.List(ctx, store.Articles)
	if err != nil {
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	for _, rec := range records {
		article, err := models.ArticleFromRecord(rec)
		if err != nil {
			return nil, err
		}
		if article.Slug == slugStr {
			return &article, nil
		}
	}
	return nil, nil
}
