// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// snapshot.go provides the static bundled fallback used when the remote
// backend is unreachable for a read. The snapshot covers products and
// articles only, is compiled into the binary, and is never written back.
package store

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed snapshot/products.json snapshot/articles.json
var snapshotFS embed.FS

// Snapshot holds the bundled read-only records per collection.
type Snapshot struct {
	records map[string][]Record
}

// LoadSnapshot parses the embedded snapshot files.
func LoadSnapshot() (*Snapshot, error) {
	s := &Snapshot{records: make(map[string][]Record)}
	for _, collection := range []string{Products, Articles} {
		raw, err := snapshotFS.ReadFile("snapshot/" + collection + ".json")
		if err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", collection, err)
		}
		var records []Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", collection, err)
		}
		s.records[collection] = records
	}
	return s, nil
}

// List returns copies of the snapshot records for the collection.
func (s *Snapshot) List(collection string) ([]Record, bool) {
	records, ok := s.records[collection]
	if !ok {
		return nil, false
	}
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out, true
}

// Get returns a copy of the snapshot record with the given id.
func (s *Snapshot) Get(collection, id string) (Record, bool) {
	for _, rec := range s.records[collection] {
		if rec.ID() == id {
			return rec.Clone(), true
		}
	}
	return nil, false
}
