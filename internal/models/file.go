// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"

	"byteclave/internal/store"
)

// FileAsset is an uploaded file stored inline as a data URL. Suitable for
// images, thumbnails and other small assets.
type FileAsset struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Mime      string `json:"mime"`
	Size      int    `json:"size"`
	DataURL   string `json:"dataURL"`
	CreatedAt string `json:"createdAt"`
}

// Record converts the asset to its document form.
func (f FileAsset) Record() (store.Record, error) {
	return toRecord(f)
}

// FileAssetFromRecord decodes a stored document into a FileAsset.
func FileAssetFromRecord(rec store.Record) (FileAsset, error) {
	var f FileAsset
	err := fromRecord(rec, &f)
	return f, err
}

// DetectFormat maps a file name to the short format code shown on product
// cards. Unknown extensions yield "".
func DetectFormat(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".pdf"):
		return "PDF"
	case strings.HasSuffix(n, ".apk"):
		return "APK"
	case strings.HasSuffix(n, ".zip"):
		return "ZIP"
	case strings.HasSuffix(n, ".vsix"):
		return "VSIX"
	case strings.HasSuffix(n, ".jpg"), strings.HasSuffix(n, ".jpeg"):
		return "JPG"
	case strings.HasSuffix(n, ".png"):
		return "PNG"
	default:
		return ""
	}
}
