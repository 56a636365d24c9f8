// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"testing"

	"byteclave/internal/models"
	"byteclave/internal/store"
)

func TestCreateArticleDefaults(t *testing.T) {
	r := newTestRepo(t)

	created, err := r.CreateArticle(context.Background(), models.Article{Title: "Hello AI World"})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.Slug != "hello-ai-world" {
		t.Errorf("slug: got %q, want hello-ai-world", created.Slug)
	}
	if created.Author != models.DefaultAuthor {
		t.Errorf("author: got %q, want %q", created.Author, models.DefaultAuthor)
	}
	if created.PublishedAt == "" {
		t.Error("expected publishedAt default")
	}
}

func TestCreateArticleKeepsExplicitFields(t *testing.T) {
	r := newTestRepo(t)

	created, err := r.CreateArticle(context.Background(), models.Article{
		Title:       "Post",
		Slug:        "custom",
		Author:      "Jane",
		PublishedAt: "2026-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if created.Slug != "custom" || created.Author != "Jane" || created.PublishedAt != "2026-01-01T00:00:00Z" {
		t.Errorf("explicit fields overwritten: %+v", created)
	}
}

func TestArticleSlugsMayCollide(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first, err := r.CreateArticle(ctx, models.Article{Title: "Same Title"})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := r.CreateArticle(ctx, models.Article{Title: "Same Title"})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.Slug != second.Slug {
		t.Errorf("article slugs are not unique-resolved: %q vs %q", first.Slug, second.Slug)
	}
}

func TestUpdateArticle(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateArticle(ctx, models.Article{Title: "Before"})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	updated, err := r.UpdateArticle(ctx, created.ID, store.Record{"title": "After"})
	if err != nil {
		t.Fatalf("UpdateArticle: %v", err)
	}
	if updated.Title != "After" {
		t.Errorf("title: got %q, want After", updated.Title)
	}
	if updated.Slug != created.Slug {
		t.Errorf("slug changed on update: %q vs %q", updated.Slug, created.Slug)
	}

	_, err = r.UpdateArticle(ctx, "nope", store.Record{"title": "x"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected store.ErrNotFound, got %v", err)
	}
}

func TestListArticlesOrderAndLimit(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	dates := []string{"2026-03-01T00:00:00Z", "2026-01-01T00:00:00Z", "2026-02-01T00:00:00Z"}
	for i, d := range dates {
		if _, err := r.CreateArticle(ctx, models.Article{
			Title: "Post", PublishedAt: d, Slug: string(rune('a' + i)),
		}); err != nil {
			t.Fatalf("CreateArticle: %v", err)
		}
	}

	articles, err := r.ListArticles(ctx, 0)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("len: got %d, want 3", len(articles))
	}
	for i := 1; i < len(articles); i++ {
		if articles[i-1].PublishedAt < articles[i].PublishedAt {
			t.Errorf("not descending at %d: %s < %s", i, articles[i-1].PublishedAt, articles[i].PublishedAt)
		}
	}

	limited, err := r.ListArticles(ctx, 2)
	if err != nil {
		t.Fatalf("ListArticles limited: %v", err)
	}
	if len(limited) != 2 || limited[0].PublishedAt != "2026-03-01T00:00:00Z" {
		t.Errorf("limit must keep the newest entries, got %v", limited)
	}
}

func TestListArticlesSubSecondOrder(t *testing.T) {
	r := newTestRepo(t)
	millisClock(r)
	ctx := context.Background()

	// Default publishedAt from the clock; the two values differ only in
	// their fraction.
	if _, err := r.CreateArticle(ctx, models.Article{Title: "First", Slug: "first"}); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := r.CreateArticle(ctx, models.Article{Title: "Second", Slug: "second"}); err != nil {
		t.Fatalf("second: %v", err)
	}

	articles, err := r.ListArticles(ctx, 0)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(articles) != 2 || articles[0].Title != "Second" {
		t.Errorf("got %q first, want the later article", articles[0].Title)
	}
}

func TestDeleteArticle(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateArticle(ctx, models.Article{Title: "Doomed"})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if err := r.DeleteArticle(ctx, created.ID); err != nil {
		t.Fatalf("DeleteArticle: %v", err)
	}

	got, err := r.GetArticleBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("GetArticleBySlug: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}
}

func TestGetArticleBySlug(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.CreateArticle(ctx, models.Article{Title: "Find Me"})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	got, err := r.GetArticleBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("GetArticleBySlug: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("got %v, want article %s", got, created.ID)
	}

	missing, err := r.GetArticleBySlug(ctx, "no-such-slug")
	if err != nil {
		t.Fatalf("miss: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown slug, got %v", missing)
	}
}
