// Package entity defines the three data-model types the store owns:
// Library, Document and Chunk, plus the schemaless scalar Metadata map
// they carry. The entity store itself (the tables keyed by these
// types, and the secondary indexes over them) lives in pkg/catalog,
// which exclusively owns all entities — these types are plain data,
// not aggregate roots.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// IndexKind tags which pluggable nearest-neighbour index variant a
// library currently uses. Mirrors pkg/index.Kind but is declared here
// too so pkg/entity does not need to import pkg/index (entities are
// lower in the dependency graph than indexes).
type IndexKind string

const (
	IndexLinear IndexKind = "linear"
	IndexKDTree IndexKind = "kdtree"
	IndexLSH    IndexKind = "lsh"
)

// Library is the top-level container. Its dimension is fixed on first
// chunk insert and never changes afterward.
type Library struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Metadata      Metadata
	CreatedAt     time.Time
	UpdatedAt     time.Time
	IndexKind     IndexKind
	IndexBuiltAt  *time.Time
	Dimension     *int
	// Strict governs the LSH index's fallback behaviour: when true, a
	// search that surfaces fewer than k matches after filtering
	// returns fewer results (Degraded) instead of padding from a
	// linear scan.
	Strict bool
}

// Document is a logical text unit within a library; it owns chunks.
type Document struct {
	ID        uuid.UUID
	LibraryID uuid.UUID
	Name      string
	Metadata  Metadata
	CreatedAt time.Time
}

// Chunk is an indexed unit: text, a fixed-dimension embedding and a
// metadata map. Chunks are immutable apart from their metadata.
type Chunk struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	LibraryID  uuid.UUID // denormalized for filter lookups without a document join
	Text       string
	Embedding  []float64
	Metadata   Metadata
	CreatedAt  time.Time
}
