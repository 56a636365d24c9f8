// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "byteclave/internal/store"

// DefaultAuthor is the byline used when an article has none.
const DefaultAuthor = "ByteClave Team"

// Article is a hosted news item, or a link-out when ExternalURL is set.
// Articles have no soft-delete state; removal is permanent.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Excerpt     string `json:"excerpt"`
	Body        string `json:"body"`
	Image       string `json:"image"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	// ExternalURL is absent from the document for hosted articles, so
	// consumers can detect link-outs by the field's presence.
	ExternalURL string `json:"externalUrl,omitempty"`
}

// Record converts the article to its document form.
func (a Article) Record() (store.Record, error) {
	return toRecord(a)
}

// ArticleFromRecord decodes a stored document into an Article.
func ArticleFromRecord(rec store.Record) (Article, error) {
	var a Article
	err := fromRecord(rec, &a)
	return a, err
}
