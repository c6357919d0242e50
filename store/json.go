package store

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/bunken-app/bunken/reference"
)

// ImportStats summarizes an import run.
type ImportStats struct {
	Imported   int                  `json:"imported"`
	Duplicates int                  `json:"duplicates"`
	Clean      reference.CleanStats `json:"clean"`
}

// ExportJSON writes every stored record as a pretty-printed JSON array,
// the same shape the import side accepts.
func (d *DB) ExportJSON(w io.Writer) error {
	refs, err := d.List()
	if err != nil {
		return err
	}
	cleaned, _ := reference.ValidateAndClean(refs)
	out, err := json.MarshalIndent(cleaned, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// ImportJSON reads a JSON array of records and merges it into the store.
// Incoming records are migrated to the current shape and checked against
// existing ones by id, then by content for legacy records whose ids do not
// line up. Survivors get a fresh id and an import timestamp.
func (d *DB) ImportJSON(rd io.Reader) (ImportStats, error) {
	var stats ImportStats

	var incoming []reference.Reference
	if err := json.NewDecoder(rd).Decode(&incoming); err != nil {
		return stats, fmt.Errorf("decoding import: %w", err)
	}

	for i := range incoming {
		if incoming[i].ID == "" {
			incoming[i].ID = uuid.NewString()
		}
		incoming[i] = reference.Migrate(incoming[i])
	}
	cleaned, cleanStats := reference.ValidateAndClean(incoming)
	stats.Clean = cleanStats

	existing, err := d.List()
	if err != nil {
		return stats, err
	}

	now := time.Now().Format(time.RFC3339)
	for _, r := range cleaned {
		if reference.IsDuplicate(existing, r) {
			stats.Duplicates++
			continue
		}
		r.ID = uuid.NewString()
		r.ImportedAt = now
		if r.CreatedAt == "" {
			r.CreatedAt = now
		}
		r.UpdatedAt = now
		if err := d.Put(r); err != nil {
			return stats, err
		}
		existing = append(existing, r)
		stats.Imported++
	}
	return stats, nil
}
