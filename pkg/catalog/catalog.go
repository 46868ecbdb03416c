// Package catalog implements the entity store and the concurrency
// envelope around it: a catalogue-wide RWMutex guarding library
// membership, and one RWMutex per library guarding that library's
// documents, chunks and index. Search requests that find a STALE or
// EMPTY index upgrade to the per-library write lock and build inline;
// Go's RWMutex itself provides the "concurrent searchers wait on a
// single build" coalescing — a second searcher blocked on the same
// write lock simply observes state READY once it acquires its own
// lock, with no separate future/condvar object required. This is
// recorded as a deliberate, idiomatic-Go simplification in DESIGN.md.
package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yezz123/vectorai/pkg/entity"
	"github.com/yezz123/vectorai/pkg/filter"
	"github.com/yezz123/vectorai/pkg/index"
	"github.com/yezz123/vectorai/pkg/verr"
	"github.com/yezz123/vectorai/pkg/vlog"
)

// state is the per-library index lifecycle:
// EMPTY -> BUILDING -> READY -> STALE -> BUILDING -> ... machine.
// BUILDING is never observed at rest here (it exists only for the
// instant a goroutine holds the write lock performing a build) since
// the write lock itself serializes builders.
type state int

const (
	stateEmpty state = iota
	stateReady
	stateStale
)

// libraryEntry is the per-library aggregate: documents, chunks, index
// state and the index object itself, all guarded by mu.
type libraryEntry struct {
	mu sync.RWMutex

	lib entity.Library

	documents map[uuid.UUID]*entity.Document
	chunks    map[uuid.UUID]*entity.Chunk
	// docChunks is the by_document secondary index: ordered chunk ids
	// per document, insertion order.
	docChunks map[uuid.UUID][]uuid.UUID

	state state
	idx   index.Index

	// nextSeq counts the chunks inserted into this library. It is not
	// stored on chunks or passed to the indexes: buildIndex collects
	// points in chunk-map order, so the order of hits at equal distance
	// is not defined across rebuilds.
	nextSeq int
}

// Store is the entity store plus concurrency envelope: the catalogue
// lock plus the collection of per-library entries.
type Store struct {
	mu        sync.RWMutex
	libraries map[uuid.UUID]*libraryEntry
	indexCfg  index.Config
	log       vlog.Logger
}

// New constructs an empty Store. indexCfg supplies the construction
// parameters (KD leaf size, LSH bands/hashes/seed) used whenever a
// library's index is (re)built.
func New(indexCfg index.Config, log vlog.Logger) *Store {
	if log == nil {
		log = vlog.Nop()
	}
	return &Store{
		libraries: make(map[uuid.UUID]*libraryEntry),
		indexCfg:  indexCfg,
		log:       log,
	}
}

func (s *Store) lookup(id uuid.UUID) (*libraryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.libraries[id]
	if !ok {
		return nil, verr.New("lookup_library", verr.NotFound, "library not found")
	}
	return e, nil
}

// filterAccept compiles a filter.Filter into an index.Accept closure
// bound to this library's chunk/document metadata, resolved under the
// entry lock the caller already holds. Indexes never see
// filter.Filter or entity.Metadata directly.
func filterAccept(e *libraryEntry, f filter.Filter) index.Accept {
	if len(f) == 0 {
		return nil
	}
	return func(id string) bool {
		cid, err := uuid.Parse(id)
		if err != nil {
			return false
		}
		chunk, ok := e.chunks[cid]
		if !ok {
			return false
		}
		var docMeta entity.Metadata
		if doc, ok := e.documents[chunk.DocumentID]; ok {
			docMeta = doc.Metadata
		}
		return filter.Match(f, chunk.Metadata, docMeta)
	}
}

func now() time.Time { return time.Now() }
