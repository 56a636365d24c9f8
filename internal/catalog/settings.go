// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"fmt"

	"byteclave/internal/store"
)

// rssSettingsID is the settings record holding the ordered feed URL list.
const rssSettingsID = "rss"

// DefaultRSSFeed is returned when no feed list has been stored yet.
const DefaultRSSFeed = "https://news.google.com/rss/search?q=AI+technology&hl=en-US&gl=US&ceid=US:en"

// RSSFeeds returns the configured feed URLs, or the default feed when
// nothing is stored.
func (r *Repository) RSSFeeds(ctx context.Context) ([]string, error) {
	rec, err := r.store.Get(ctx, store.Settings, rssSettingsID)
	if err != nil {
		return nil, fmt.Errorf("get rss feeds: %w", err)
	}
	if rec == nil {
		return []string{DefaultRSSFeed}, nil
	}

	raw, _ := rec["value"].([]any)
	feeds := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			feeds = append(feeds, s)
		}
	}
	if len(feeds) == 0 {
		return []string{DefaultRSSFeed}, nil
	}
	return feeds, nil
}

// SetRSSFeeds stores the feed URL list. No URL shape validation is
// performed here; the feed reader copes with bad entries.
func (r *Repository) SetRSSFeeds(ctx context.Context, feeds []string) error {
	fields := store.Record{"id": rssSettingsID, "value": feeds}

	_, err := r.store.Update(ctx, store.Settings, rssSettingsID, fields)
	if errors.Is(err, store.ErrNotFound) {
		_, err = r.store.Create(ctx, store.Settings, fields)
	}
	if err != nil {
		return fmt.Errorf("set rss feeds: %w", err)
	}
	return nil
}
