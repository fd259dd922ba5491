// Package registry persists compiled reference vectors in a SQLite
// database so judgment commands do not re-embed the value set on every
// run.
package registry

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"
)

// Errors returned by registry operations.
var (
	ErrEmpty         = errors.New("registry has no compiled vectors")
	ErrModelMismatch = errors.New("registry was compiled with a different model")
)

// Entry is one persisted reference vector.
type Entry struct {
	Name   string
	Kind   string // "value" or "norm"
	Vector []float32
}

// Meta describes how the registry contents were produced.
type Meta struct {
	Model      string
	Dimensions int
	CompiledAt time.Time
}

// DB is a handle to the vector registry.
type DB struct {
	db *sql.DB
}

// Open opens (creating if necessary) the registry at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS vectors (
  name TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  position INTEGER NOT NULL,
  vector BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS _meta (
  key TEXT PRIMARY KEY,
  value TEXT
)`

// Close releases the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// Replace swaps the registry contents for the given entries in one
// transaction, recording the compile metadata alongside.
func (d *DB) Replace(entries []Entry, meta Meta) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM vectors"); err != nil {
		return fmt.Errorf("clearing vectors: %w", err)
	}

	for i, entry := range entries {
		_, err := tx.Exec(
			"INSERT INTO vectors (name, kind, position, vector) VALUES (?, ?, ?, ?)",
			entry.Name, entry.Kind, i, encodeVector(entry.Vector),
		)
		if err != nil {
			return fmt.Errorf("inserting %q: %w", entry.Name, err)
		}
	}

	metaRows := map[string]string{
		"model":       meta.Model,
		"dimensions":  fmt.Sprintf("%d", meta.Dimensions),
		"compiled_at": meta.CompiledAt.Format(time.RFC3339),
	}
	for key, value := range metaRows {
		_, err := tx.Exec("INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)", key, value)
		if err != nil {
			return fmt.Errorf("storing meta %q: %w", key, err)
		}
	}

	return tx.Commit()
}

// Entries returns all persisted vectors in compile order.
func (d *DB) Entries() ([]Entry, error) {
	rows, err := d.db.Query("SELECT name, kind, vector FROM vectors ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var blob []byte
		if err := rows.Scan(&entry.Name, &entry.Kind, &blob); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}
		entry.Vector = decodeVector(blob)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	return entries, nil
}

// Meta returns the compile metadata, or ErrEmpty when the registry has
// never been compiled.
func (d *DB) Meta() (Meta, error) {
	rows, err := d.db.Query("SELECT key, value FROM _meta")
	if err != nil {
		return Meta{}, fmt.Errorf("querying meta: %w", err)
	}
	defer rows.Close()

	raw := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Meta{}, fmt.Errorf("scanning meta: %w", err)
		}
		raw[key] = value
	}
	if err := rows.Err(); err != nil {
		return Meta{}, err
	}

	if raw["model"] == "" {
		return Meta{}, ErrEmpty
	}

	meta := Meta{Model: raw["model"]}
	fmt.Sscanf(raw["dimensions"], "%d", &meta.Dimensions)
	if t, err := time.Parse(time.RFC3339, raw["compiled_at"]); err == nil {
		meta.CompiledAt = t
	}
	return meta, nil
}

// VerifyModel checks that the registry was compiled with the given model
// and dimensionality. Scores across models are meaningless, so a mismatch
// requires recompiling rather than silent reuse.
func (d *DB) VerifyModel(model string, dimensions int) error {
	meta, err := d.Meta()
	if err != nil {
		return err
	}
	if meta.Model != model || meta.Dimensions != dimensions {
		return fmt.Errorf("%w: registry has %s/%d, config wants %s/%d (run 'valign compile')",
			ErrModelMismatch, meta.Model, meta.Dimensions, model, dimensions)
	}
	return nil
}

// encodeVector packs a vector as little-endian float32s.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

// decodeVector unpacks a little-endian float32 blob.
func decodeVector(buf []byte) []float32 {
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return v
}
