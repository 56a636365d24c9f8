// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides durable keyed record storage over a small fixed
// set of named collections. Records are schemaless JSON documents keyed by
// a string id; entity semantics live entirely in the catalog layer above.
// Two interchangeable backends implement the RecordStore contract: an
// embedded bbolt file (Bolt) and a PostgreSQL document table (Postgres).
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Collection names. Each is an independent keyspace.
const (
	Products   = "products"
	Articles   = "articles"
	Categories = "categories"
	Settings   = "settings"
	Files      = "files"
)

// Collections lists every known collection, used by backends that must
// provision their keyspaces up front.
var Collections = []string{Products, Articles, Categories, Settings, Files}

// ErrNotFound is returned by Update when no record exists at the given id.
// Reads signal absence with a nil record instead.
var ErrNotFound = errors.New("record not found")

// Record is a single persisted document: a mapping from field name to
// value with a mandatory unique "id" string field.
type Record map[string]any

// ID returns the record's id field, or "" if absent.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of r with fields laid over it. Fields present in
// the overlay fully replace same-named fields; everything else is kept.
func (r Record) Merge(fields Record) Record {
	out := r.Clone()
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// RecordStore is the persistence contract shared by both backends.
// All operations may suspend on I/O and honor context cancellation where
// the underlying driver supports it.
type RecordStore interface {
	// Create writes (or overwrites) the record keyed by its id, generating
	// a fresh id when the record has none. Returns the stored record.
	Create(ctx context.Context, collection string, rec Record) (Record, error)

	// Get returns the record at id, or nil (and no error) when absent.
	Get(ctx context.Context, collection, id string) (Record, error)

	// Update shallow-merges fields over the existing record and persists
	// the result. Returns ErrNotFound when no record exists at id.
	Update(ctx context.Context, collection, id string, fields Record) (Record, error)

	// Delete removes the record at id. Idempotent: absent keys are not an error.
	Delete(ctx context.Context, collection, id string) error

	// List returns every record in the collection, unordered.
	List(ctx context.Context, collection string) ([]Record, error)
}

// withID returns a copy of rec carrying a definite id, generating a UUID
// when the record has none.
func withID(rec Record) Record {
	out := rec.Clone()
	if out.ID() == "" {
		out["id"] = uuid.NewString()
	}
	return out
}
