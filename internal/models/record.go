// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the catalog entities and their conversion to and
// from the schemaless records the store layer persists. Field names match
// the document shape, so both backends and the bundled snapshot share one
// representation.
package models

import (
	"encoding/json"
	"fmt"

	"byteclave/internal/store"
)

// toRecord converts an entity to its document form via a JSON round-trip.
func toRecord(v any) (store.Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode entity: %w", err)
	}
	var rec store.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode entity record: %w", err)
	}
	return rec, nil
}

// fromRecord decodes a document into the entity pointed to by v.
func fromRecord(rec store.Record, v any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
