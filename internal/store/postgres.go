// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Postgres is the remote document backend: one row per record in a single
// jsonb table, keyed by (collection, id). When a read against the products
// or articles collection fails, it degrades to the embedded snapshot so
// the public catalog keeps rendering; writes never degrade.
type Postgres struct {
	db       *sql.DB
	snapshot *Snapshot
}

// NewPostgres wraps an open database connection. snapshot may be nil to
// disable the read fallback.
func NewPostgres(db *sql.DB, snapshot *Snapshot) *Postgres {
	return &Postgres{db: db, snapshot: snapshot}
}

// Create writes the record keyed by its id, generating one when absent.
// An existing row with the same key is overwritten.
func (p *Postgres) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	stored := withID(rec)
	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO records (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id)
		DO UPDATE SET data = EXCLUDED.data
	`, collection, stored.ID(), payload)
	if err != nil {
		return nil, fmt.Errorf("create record in %s: %w", collection, err)
	}
	return stored, nil
}

// Get returns the record at id, or nil when absent. Infrastructure
// failures on products/articles fall back to the bundled snapshot.
func (p *Postgres) Get(ctx context.Context, collection, id string) (Record, error) {
	var raw []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		if rec, ok := p.snapshotGet(collection, id); ok {
			slog.Warn("record read failed, serving snapshot",
				"collection", collection, "id", id, "error", err)
			return rec, nil
		}
		return nil, fmt.Errorf("get record %s/%s: %w", collection, id, err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s/%s: %w", collection, id, err)
	}
	return rec, nil
}

// Update merges fields over the existing record inside a transaction.
// Returns ErrNotFound when the id does not exist; the merge never
// creates a row, keeping parity with the local backend.
func (p *Postgres) Update(ctx context.Context, collection, id string, fields Record) (Record, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update record %s/%s: %w", collection, id, err)
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.QueryRowContext(ctx,
		`SELECT data FROM records WHERE collection = $1 AND id = $2 FOR UPDATE`,
		collection, id,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update record %s/%s: %w", collection, id, err)
	}

	var existing Record
	if err := json.Unmarshal(raw, &existing); err != nil {
		return nil, fmt.Errorf("decode record %s/%s: %w", collection, id, err)
	}
	merged := existing.Merge(fields)
	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE records SET data = $1 WHERE collection = $2 AND id = $3`,
		payload, collection, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update record %s/%s: %w", collection, id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update record %s/%s: %w", collection, id, err)
	}
	return merged, nil
}

// Delete removes the record at id. Absent keys are not an error.
func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete record %s/%s: %w", collection, id, err)
	}
	return nil
}

// List returns every record in the collection. Infrastructure failures on
// products/articles fall back to the bundled snapshot, whether the query
// itself fails or the connection drops while streaming rows.
func (p *Postgres) List(ctx context.Context, collection string) ([]Record, error) {
	records, err := p.listRows(ctx, collection)
	if err != nil {
		if recs, ok := p.snapshotList(collection); ok {
			slog.Warn("collection read failed, serving snapshot",
				"collection", collection, "error", err)
			return recs, nil
		}
		return nil, fmt.Errorf("list records in %s: %w", collection, err)
	}
	return records, nil
}

// listRows streams and decodes the collection's rows.
func (p *Postgres) listRows(ctx context.Context, collection string) ([]Record, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT data FROM records WHERE collection = $1`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// snapshotGet looks up a single record in the snapshot, when the fallback
// applies to the collection.
func (p *Postgres) snapshotGet(collection, id string) (Record, bool) {
	if p.snapshot == nil || !snapshotCollection(collection) {
		return nil, false
	}
	return p.snapshot.Get(collection, id)
}

// snapshotList returns the snapshot's records for the collection, when the
// fallback applies.
func (p *Postgres) snapshotList(collection string) ([]Record, bool) {
	if p.snapshot == nil || !snapshotCollection(collection) {
		return nil, false
	}
	return p.snapshot.List(collection)
}

// snapshotCollection reports whether reads of the collection may degrade
// to the snapshot. Only the public catalog collections qualify.
func snapshotCollection(collection string) bool {
	return collection == Products || collection == Articles
}
