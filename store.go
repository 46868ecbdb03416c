// Package vectorai implements an in-memory vector database core: a
// schemaless entity store (libraries, documents, chunks) layered over
// three pluggable nearest-neighbour indexes (linear scan, KD-tree,
// LSH), with metadata filtering and optional JSON snapshotting.
//
// Store is the single entry point. It wraps pkg/catalog (the entity
// store and concurrency envelope) and pkg/snapshot (the durable
// codec), re-exporting the handful of pkg/entity, pkg/filter and
// pkg/index types callers need as aliases so most programs only ever
// need to import this one package.
package vectorai

import (
	"github.com/google/uuid"

	"github.com/yezz123/vectorai/pkg/catalog"
	"github.com/yezz123/vectorai/pkg/entity"
	"github.com/yezz123/vectorai/pkg/filter"
	"github.com/yezz123/vectorai/pkg/index"
	"github.com/yezz123/vectorai/pkg/snapshot"
	"github.com/yezz123/vectorai/pkg/verr"
)

// Re-exported entity types, so callers never need to import
// pkg/entity directly.
type (
	Library  = entity.Library
	Document = entity.Document
	Chunk    = entity.Chunk
	Value    = entity.Value
	Metadata = entity.Metadata
	IndexKind = entity.IndexKind
)

const (
	IndexLinear = entity.IndexLinear
	IndexKDTree = entity.IndexKDTree
	IndexLSH    = entity.IndexLSH
)

// Value constructors, re-exported for callers building metadata maps.
var (
	StringValue = entity.String
	IntValue    = entity.Int
	FloatValue  = entity.Float
	BoolValue   = entity.Bool
)

// Re-exported filter types and constructors.
type (
	Filter = filter.Filter
	Clause = filter.Clause
)

var (
	Eq    = filter.EqClause
	In    = filter.InClause
	Range = filter.RangeClause
)

// NewChunk is the caller-supplied shape for a chunk to be inserted.
type NewChunk = catalog.NewChunk

// SearchHit is a single ranked, resolved search result.
type SearchHit = catalog.SearchHit

// Stats reports a library's index statistics and entity counts.
type Stats = catalog.Stats

// IndexStats is the pluggable index's own self-reported statistics
// (kind, size, build time, dimension, tuning parameters).
type IndexStats = index.Stats

// Store is the vector database core: an entity store guarded by the
// concurrency envelope described in pkg/catalog, plus snapshot
// persistence.
type Store struct {
	cfg Config
	cat *catalog.Store
	log Logger
}

// New constructs an empty Store from cfg.
func New(cfg Config, log Logger) *Store {
	if log == nil {
		log = NopLogger()
	}
	return &Store{
		cfg: cfg,
		cat: catalog.New(cfg.toIndexConfig(), log),
		log: log,
	}
}

// CreateLibrary creates a new, empty library. If kind is empty, the
// store's DefaultIndexKind is used.
func (s *Store) CreateLibrary(name, description string, metadata Metadata, kind IndexKind, strict bool) (Library, error) {
	if kind == "" {
		kind = s.cfg.DefaultIndexKind
	}
	lib, err := s.cat.CreateLibrary(name, description, metadata, kind, strict)
	if err != nil {
		return Library{}, err
	}
	s.log.Debug("library created", "library_id", lib.ID, "kind", kind)
	return lib, nil
}

// GetLibrary returns a snapshot of the library's attributes.
func (s *Store) GetLibrary(id uuid.UUID) (Library, error) { return s.cat.GetLibrary(id) }

// ListLibraries returns a snapshot of every library's attributes.
func (s *Store) ListLibraries() []Library { return s.cat.ListLibraries() }

// UpdateLibrary mutates a library's name/description/metadata/strict
// flag in place. Pass nil for any field that should stay unchanged.
func (s *Store) UpdateLibrary(id uuid.UUID, name, description *string, metadata Metadata, strict *bool) (Library, error) {
	return s.cat.UpdateLibrary(id, name, description, metadata, strict)
}

// DeleteLibrary removes a library and cascades to its documents and chunks.
func (s *Store) DeleteLibrary(id uuid.UUID) error {
	if err := s.cat.DeleteLibrary(id); err != nil {
		return err
	}
	s.log.Debug("library deleted", "library_id", id)
	return nil
}

// CreateDocument creates a document under libraryID.
func (s *Store) CreateDocument(libraryID uuid.UUID, name string, metadata Metadata) (Document, error) {
	return s.cat.CreateDocument(libraryID, name, metadata)
}

// GetDocument returns a document within libraryID.
func (s *Store) GetDocument(libraryID, documentID uuid.UUID) (Document, error) {
	return s.cat.GetDocument(libraryID, documentID)
}

// ListDocuments returns every document in libraryID.
func (s *Store) ListDocuments(libraryID uuid.UUID) ([]Document, error) {
	return s.cat.ListDocuments(libraryID)
}

// DeleteDocument removes documentID and cascades to its chunks.
func (s *Store) DeleteDocument(libraryID, documentID uuid.UUID) error {
	return s.cat.DeleteDocument(libraryID, documentID)
}

// AddChunks appends chunks to documentID within libraryID. The
// library's vector dimension is fixed from the very first chunk ever
// inserted into it; every later chunk must match.
func (s *Store) AddChunks(libraryID, documentID uuid.UUID, chunks []NewChunk) ([]Chunk, error) {
	out, err := s.cat.AddChunks(libraryID, documentID, chunks)
	if err != nil {
		return nil, err
	}
	s.log.Debug("chunks added", "library_id", libraryID, "document_id", documentID, "count", len(out))
	return out, nil
}

// GetChunk returns a single chunk within libraryID.
func (s *Store) GetChunk(libraryID, chunkID uuid.UUID) (Chunk, error) {
	return s.cat.GetChunk(libraryID, chunkID)
}

// ListChunks returns every chunk belonging to documentID, in insertion order.
func (s *Store) ListChunks(libraryID, documentID uuid.UUID) ([]Chunk, error) {
	return s.cat.ListChunks(libraryID, documentID)
}

// UpdateChunkMetadata replaces a chunk's metadata map.
func (s *Store) UpdateChunkMetadata(libraryID, chunkID uuid.UUID, metadata Metadata) (Chunk, error) {
	return s.cat.UpdateChunkMetadata(libraryID, chunkID, metadata)
}

// DeleteChunk removes a single chunk.
func (s *Store) DeleteChunk(libraryID, chunkID uuid.UUID) error {
	return s.cat.DeleteChunk(libraryID, chunkID)
}

// BuildIndex performs an explicit rebuild of libraryID's index, using
// kind if non-empty or the library's currently configured kind
// otherwise.
func (s *Store) BuildIndex(libraryID uuid.UUID, kind IndexKind) (Library, error) {
	lib, err := s.cat.BuildIndex(libraryID, kind)
	if err != nil {
		return Library{}, err
	}
	s.log.Info("index built", "library_id", libraryID, "kind", lib.IndexKind)
	return lib, nil
}

// Search performs a k-NN query against a single library, applying f
// as a metadata filter. The index is built lazily if it is stale or
// has never been built. degraded is true only when the library's LSH
// index (in strict mode) surfaced fewer than k matches.
func (s *Store) Search(libraryID uuid.UUID, query []float64, k int, f Filter) ([]SearchHit, bool, error) {
	return s.cat.Search(libraryID, query, k, f)
}

// LibrarySearchResult is one library's outcome within a
// SearchLibraries fan-out.
type LibrarySearchResult struct {
	LibraryID uuid.UUID
	Hits      []SearchHit
	Degraded  bool
	Err       error
}

// SearchLibraries runs Search independently against each of
// libraryIDs. Each library's index is built (or not) on its own
// schedule; one library failing does not prevent the others from
// returning results. Cross-library search consistency is per-library,
// not a single global snapshot.
func (s *Store) SearchLibraries(libraryIDs []uuid.UUID, query []float64, k int, f Filter) []LibrarySearchResult {
	out := make([]LibrarySearchResult, len(libraryIDs))
	for i, id := range libraryIDs {
		hits, degraded, err := s.cat.Search(id, query, k, f)
		out[i] = LibrarySearchResult{LibraryID: id, Hits: hits, Degraded: degraded, Err: err}
	}
	return out
}

// GetStats returns the current index statistics and entity counts for libraryID.
func (s *Store) GetStats(libraryID uuid.UUID) (Stats, error) { return s.cat.GetStats(libraryID) }

// SaveSnapshot writes the entire store to path as a single JSON
// document. If path is empty, the store's configured SnapshotPath is
// used; it is an error for both to be empty.
func (s *Store) SaveSnapshot(path string) error {
	if path == "" {
		path = s.cfg.SnapshotPath
	}
	if path == "" {
		return verr.New("save_snapshot", verr.Invalid, "no snapshot path configured or supplied")
	}
	libs, docs, chunks := s.cat.ExportAll()
	if err := snapshot.Save(path, libs, docs, chunks); err != nil {
		return verr.Wrap("save_snapshot", verr.Io, err)
	}
	s.log.Info("snapshot saved", "path", path, "libraries", len(libs), "documents", len(docs), "chunks", len(chunks))
	return nil
}

// LoadSnapshot replaces the store's contents with the snapshot at
// path. If path is empty, the store's configured SnapshotPath is
// used. Every library's index starts empty after load and is rebuilt
// lazily on first search.
func (s *Store) LoadSnapshot(path string) error {
	if path == "" {
		path = s.cfg.SnapshotPath
	}
	if path == "" {
		return verr.New("load_snapshot", verr.Invalid, "no snapshot path configured or supplied")
	}
	doc, err := snapshot.Load(path)
	if err != nil {
		return verr.Wrap("load_snapshot", verr.Io, err)
	}
	s.cat = catalog.NewFromExport(s.cfg.toIndexConfig(), s.log, doc.Libraries, doc.Documents, doc.Chunks)
	s.log.Info("snapshot loaded", "path", path, "libraries", len(doc.Libraries), "documents", len(doc.Documents), "chunks", len(doc.Chunks))
	return nil
}
