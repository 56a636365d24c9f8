// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements the domain operations of the ByteClave
// storefront on top of the record store: slug uniqueness, soft-delete and
// publish visibility, category validation, filtering and sorting. It is
// written once against the RecordStore interface and works identically on
// both backends.
package catalog

import (
	"time"

	"byteclave/internal/store"
)

// Repository owns the write path for every entity kind. The record store
// beneath it has no knowledge of entity semantics.
type Repository struct {
	store store.RecordStore
	now   func() time.Time
}

// New creates a Repository over the given record store.
func New(s store.RecordStore) *Repository {
	return &Repository{store: s, now: time.Now}
}

// timestampLayout is RFC 3339 with a fixed three-digit fraction, the
// shape Date.toISOString emits. The width must stay fixed: listing sorts
// compare these strings lexicographically, and a trimmed fraction like
// "05.1Z" would order above "05.12Z".
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// timestamp returns the current time as the string stored on records.
func (r *Repository) timestamp() string {
	return r.now().UTC().Format(timestampLayout)
}

// ValidationError reports malformed or missing input, caught before any
// write is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// validationError builds a ValidationError with a plain message.
func validationError(msg string) error {
	return &ValidationError{Msg: msg}
}
