// Package store persists reference records in a local sqlite database.
// Records are stored as JSON documents with a few indexed columns pulled
// out for listing.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/bunken-app/bunken/reference"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("store: reference not found")

const schema = `
CREATE TABLE IF NOT EXISTS refs (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	year       INTEGER NOT NULL DEFAULT 0,
	data_json  TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_refs_type ON refs (type);
`

type DB struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// modernc sqlite does not tolerate concurrent writers on one file.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// List returns every stored record, migrated to the current shape,
// ordered by creation time.
func (d *DB) List() ([]reference.Reference, error) {
	rows, err := d.db.Query(`SELECT data_json FROM refs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	defer rows.Close()

	refs := []reference.Reference{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var r reference.Reference
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decoding stored reference: %w", err)
		}
		refs = append(refs, reference.Migrate(r))
	}
	return refs, rows.Err()
}

func (d *DB) Get(id string) (reference.Reference, error) {
	var raw string
	err := d.db.QueryRow(`SELECT data_json FROM refs WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return reference.Reference{}, ErrNotFound
	}
	if err != nil {
		return reference.Reference{}, err
	}
	var r reference.Reference
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return reference.Reference{}, fmt.Errorf("decoding stored reference: %w", err)
	}
	return reference.Migrate(r), nil
}

// Put inserts or replaces a record.
func (d *DB) Put(r reference.Reference) error {
	if r.ID == "" {
		return fmt.Errorf("store: reference has no id")
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding reference: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO refs (id, type, title, year, data_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			year = excluded.year,
			data_json = excluded.data_json,
			updated_at = excluded.updated_at`,
		r.ID, string(r.Type), r.Title, int(r.EffectiveYear()), string(raw), r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("storing reference: %w", err)
	}
	return nil
}

func (d *DB) Delete(id string) error {
	res, err := d.db.Exec(`DELETE FROM refs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting reference: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
