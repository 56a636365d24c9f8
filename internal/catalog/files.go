// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"byteclave/internal/models"
	"byteclave/internal/store"
)

// SaveFile stores an uploaded asset inline as a data URL and returns the
// stored asset with its generated id.
func (r *Repository) SaveFile(ctx context.Context, name, mime string, size int, dataURL string) (*models.FileAsset, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, validationError("file content must be a data URL")
	}

	asset := models.FileAsset{
		Name:      name,
		Mime:      mime,
		Size:      size,
		DataURL:   dataURL,
		CreatedAt: r.timestamp(),
	}
	rec, err := asset.Record()
	if err != nil {
		return nil, err
	}
	stored, err := r.store.Create(ctx, store.Files, rec)
	if err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}
	saved, err := models.FileAssetFromRecord(stored)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// FileDataURL returns the stored data URL for an asset id, or "" when the
// asset does not exist.
func (r *Repository) FileDataURL(ctx context.Context, id string) (string, error) {
	rec, err := r.store.Get(ctx, store.Files, id)
	if err != nil {
		return "", fmt.Errorf("get file %s: %w", id, err)
	}
	if rec == nil {
		return "", nil
	}
	url, _ := rec["dataURL"].(string)
	return url, nil
}
