// Package snapshot implements the durable codec for the entire entity
// store: a single self-describing JSON document containing a format
// version and the library/document/chunk arrays in dependency order.
// Materialized indexes are never serialized — only each library's
// index configuration — so Load always leaves every library's index
// EMPTY, rebuilt lazily on first search.
//
// Save writes atomically via write-to-temp-then-rename in the target
// directory, so a crash mid-write never corrupts an existing snapshot.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yezz123/vectorai/pkg/entity"
)

// CurrentVersion is the snapshot format version this codec writes.
// Version is a monotonic integer; Load rejects any version it does
// not recognize.
const CurrentVersion = 1

// Document is the on-disk snapshot shape.
type Document struct {
	Version   int               `json:"version"`
	Libraries []entity.Library  `json:"libraries"`
	Documents []entity.Document `json:"documents"`
	Chunks    []entity.Chunk    `json:"chunks"`
}

// Save writes libs/docs/chunks to path as a single CurrentVersion
// snapshot, atomically: the document is written to a temp file in
// the same directory and then renamed over path, so a crash mid-write
// never corrupts an existing snapshot and a failed write never
// mutates on-disk state.
func Save(path string, libs []entity.Library, docs []entity.Document, chunks []entity.Chunk) error {
	doc := Document{
		Version:   CurrentVersion,
		Libraries: libs,
		Documents: docs,
		Chunks:    chunks,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("snapshot: rename into place: %w", err)
	}
	return nil
}

// Load reads and decodes the snapshot at path. Load is all-or-nothing:
// a partial or corrupt file, or an unrecognized version, fails with a
// decode error and the caller's existing in-memory state (if any) is
// left untouched, since Load never mutates anything beyond its own
// return value.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("snapshot: read: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	if doc.Version != CurrentVersion {
		return Document{}, fmt.Errorf("snapshot: unsupported version %d (want %d)", doc.Version, CurrentVersion)
	}
	return doc, nil
}
