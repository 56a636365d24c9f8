// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "byteclave/internal/store"

// Category describes one branch of the catalog taxonomy. The name is both
// display label and record id; renaming means delete and recreate.
// Subcategories define the allowed subcategory values for products in
// this category; an empty list means products carry no subcategory.
type Category struct {
	Name          string   `json:"name" yaml:"name"`
	Icon          string   `json:"icon" yaml:"icon"`
	Purpose       string   `json:"purpose" yaml:"purpose"`
	Subcategories []string `json:"subcategories" yaml:"subcategories"`
	Tags          []string `json:"tags" yaml:"tags"`
	Format        string   `json:"format,omitempty" yaml:"format,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty" yaml:"-"`
}

// Record converts the category to its document form, keyed by name.
func (c Category) Record() (store.Record, error) {
	rec, err := toRecord(c)
	if err != nil {
		return nil, err
	}
	rec["id"] = c.Name
	return rec, nil
}

// CategoryFromRecord decodes a stored document into a Category.
func CategoryFromRecord(rec store.Record) (Category, error) {
	var c Category
	err := fromRecord(rec, &c)
	return c, err
}
