// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// metaBucket holds store-level bookkeeping, separate from the collections.
	metaBucket = "meta"
	// schemaVersion is the current on-disk schema generation. A file written
	// by a different generation is rejected rather than silently migrated.
	schemaVersion = "1"
)

var schemaVersionKey = []byte("schema_version")

// Bolt is the local durable backend: one bbolt bucket per collection,
// values JSON-encoded, keyed by the record id.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the database file at path and
// provisions a bucket for every known collection.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt open: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if err != nil {
			return fmt.Errorf("create meta bucket: %w", err)
		}
		switch v := meta.Get(schemaVersionKey); {
		case v == nil:
			if err := meta.Put(schemaVersionKey, []byte(schemaVersion)); err != nil {
				return fmt.Errorf("write schema version: %w", err)
			}
		case string(v) != schemaVersion:
			return fmt.Errorf("unsupported schema version %q (want %q)", v, schemaVersion)
		}

		for _, name := range Collections {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

// Close releases the underlying database file.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// Create writes the record keyed by its id, generating one when absent.
func (b *Bolt) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	stored := withID(rec)
	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(collection))
		if bkt == nil {
			return fmt.Errorf("unknown collection %q", collection)
		}
		return bkt.Put([]byte(stored.ID()), payload)
	})
	if err != nil {
		return nil, fmt.Errorf("bolt create in %s: %w", collection, err)
	}
	return stored, nil
}

// Get returns the record at id, or nil when absent.
func (b *Bolt) Get(ctx context.Context, collection, id string) (Record, error) {
	var rec Record
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(collection))
		if bkt == nil {
			return fmt.Errorf("unknown collection %q", collection)
		}
		raw := bkt.Get([]byte(id))
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &rec)
	})
	if err != nil {
		return nil, fmt.Errorf("bolt get %s/%s: %w", collection, id, err)
	}
	return rec, nil
}

// Update merges fields over the existing record within a single write
// transaction. Returns ErrNotFound when the id does not exist.
func (b *Bolt) Update(ctx context.Context, collection, id string, fields Record) (Record, error) {
	var merged Record
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(collection))
		if bkt == nil {
			return fmt.Errorf("unknown collection %q", collection)
		}
		raw := bkt.Get([]byte(id))
		if raw == nil {
			return ErrNotFound
		}
		var existing Record
		if err := json.Unmarshal(raw, &existing); err != nil {
			return fmt.Errorf("decode record: %w", err)
		}
		merged = existing.Merge(fields)
		payload, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		return bkt.Put([]byte(id), payload)
	})
	if err == ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("bolt update %s/%s: %w", collection, id, err)
	}
	return merged, nil
}

// Delete removes the record at id. Absent keys are not an error.
func (b *Bolt) Delete(ctx context.Context, collection, id string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(collection))
		if bkt == nil {
			return fmt.Errorf("unknown collection %q", collection)
		}
		return bkt.Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("bolt delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// List returns every record in the collection in key order.
func (b *Bolt) List(ctx context.Context, collection string) ([]Record, error) {
	var records []Record
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(collection))
		if bkt == nil {
			return fmt.Errorf("unknown collection %q", collection)
		}
		return bkt.ForEach(func(_, raw []byte) error {
			var rec Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("bolt list %s: %w", collection, err)
	}
	return records, nil
}
