// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "byteclave/internal/store"

// Product is a digital good in the catalog. Timestamps are RFC 3339
// strings set by the catalog layer, never by a backend.
type Product struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	Currency         string   `json:"currency"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	Tags             []string `json:"tags"`
	Image            string   `json:"image"`
	PreviewPages     []string `json:"previewPages"`
	FileLink         string   `json:"fileLink"`
	FileSize         int      `json:"fileSize"`
	Format           string   `json:"format"`
	License          string   `json:"license"`
	Published        bool     `json:"published"`
	Deleted          bool     `json:"deleted"`
	Views            int      `json:"views"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// Visible reports whether the product may appear in public listings.
func (p *Product) Visible() bool {
	return !p.Deleted && p.Published
}

// Record converts the product to its document form.
func (p Product) Record() (store.Record, error) {
	return toRecord(p)
}

// ProductFromRecord decodes a stored document into a Product.
func ProductFromRecord(rec store.Record) (Product, error) {
	var p Product
	err := fromRecord(rec, &p)
	return p, err
}
