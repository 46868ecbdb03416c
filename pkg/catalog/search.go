package catalog

import (
	"github.com/google/uuid"
	"github.com/yezz123/vectorai/pkg/entity"
	"github.com/yezz123/vectorai/pkg/filter"
	"github.com/yezz123/vectorai/pkg/index"
	"github.com/yezz123/vectorai/pkg/vectormath"
	"github.com/yezz123/vectorai/pkg/verr"
)

// SearchHit is a single ranked, resolved search result: the full
// chunk plus its distance to the query.
type SearchHit struct {
	Chunk    entity.Chunk
	Distance float64
}

// buildIndex constructs a fresh index.Index over e's current chunks,
// using kind and s.indexCfg. The caller must hold e.mu for writing.
func (s *Store) buildIndex(e *libraryEntry, kind entity.IndexKind) (index.Index, error) {
	points := make([]index.Point, 0, len(e.chunks))
	for id, c := range e.chunks {
		points = append(points, index.Point{ID: id.String(), Vector: c.Embedding})
	}

	cfg := s.indexCfg
	if e.lib.Dimension != nil {
		cfg.Dimension = *e.lib.Dimension
	}
	cfg.LSHStrict = e.lib.Strict

	idx, err := index.New(indexKindOf(kind), cfg)
	if err != nil {
		return nil, verr.Wrap("build_index", verr.Invalid, err)
	}
	if err := idx.Build(points); err != nil {
		return nil, verr.Wrap("build_index", verr.Internal, err)
	}
	return idx, nil
}

func indexKindOf(k entity.IndexKind) index.Kind {
	switch k {
	case entity.IndexKDTree:
		return index.KindKDTree
	case entity.IndexLSH:
		return index.KindLSH
	default:
		return index.KindLinear
	}
}

// BuildIndex performs an explicit rebuild of libraryID's index using
// its currently configured IndexKind, or kind if non-empty. Building
// over an empty library is a Conflict.
func (s *Store) BuildIndex(libraryID uuid.UUID, kind entity.IndexKind) (entity.Library, error) {
	e, err := s.lookup(libraryID)
	if err != nil {
		return entity.Library{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.chunks) == 0 {
		return entity.Library{}, verr.New("build_index", verr.Conflict, "cannot build an index over an empty library")
	}
	if kind != "" {
		e.lib.IndexKind = kind
	}

	idx, err := s.buildIndex(e, e.lib.IndexKind)
	if err != nil {
		return entity.Library{}, err
	}
	e.idx = idx
	e.state = stateReady
	t := now()
	e.lib.IndexBuiltAt = &t
	return e.lib, nil
}

// Search performs a k-NN query against libraryID, applying f as a
// metadata filter, building the index lazily if it is EMPTY or STALE.
// degraded is true only when LSH strict mode returned fewer than k
// results.
func (s *Store) Search(libraryID uuid.UUID, query []float64, k int, f filter.Filter) ([]SearchHit, bool, error) {
	if k < 0 {
		return nil, false, verr.New("search", verr.Invalid, "k must be non-negative")
	}
	if !vectormath.Finite(query) {
		return nil, false, verr.New("search", verr.Invalid, "query embedding contains a non-finite value")
	}

	e, err := s.lookup(libraryID)
	if err != nil {
		return nil, false, err
	}

	e.mu.RLock()
	if e.state == stateReady {
		if e.lib.Dimension != nil && len(query) != *e.lib.Dimension {
			e.mu.RUnlock()
			return nil, false, verr.New("search", verr.Invalid, "query dimension does not match library dimension")
		}
		hits, degraded, err := e.idx.Search(query, k, filterAccept(e, f))
		if err != nil {
			e.mu.RUnlock()
			return nil, false, verr.Wrap("search", verr.Internal, err)
		}
		resolved := s.resolveHits(e, hits)
		e.mu.RUnlock()
		return resolved, degraded, nil
	}
	e.mu.RUnlock()

	// Index is EMPTY or STALE: upgrade to the write lock and build.
	// Any other searcher racing for the same upgrade queues on this
	// same write lock and observes state READY once it acquires it,
	// coalescing concurrent builds without a separate future object.
	e.mu.Lock()
	if e.state != stateReady {
		if len(e.chunks) == 0 {
			e.mu.Unlock()
			return []SearchHit{}, false, nil
		}
		idx, err := s.buildIndex(e, e.lib.IndexKind)
		if err != nil {
			e.mu.Unlock()
			return nil, false, err
		}
		e.idx = idx
		e.state = stateReady
		t := now()
		e.lib.IndexBuiltAt = &t
	}
	if e.lib.Dimension != nil && len(query) != *e.lib.Dimension {
		e.mu.Unlock()
		return nil, false, verr.New("search", verr.Invalid, "query dimension does not match library dimension")
	}
	hits, degraded, err := e.idx.Search(query, k, filterAccept(e, f))
	if err != nil {
		e.mu.Unlock()
		return nil, false, verr.Wrap("search", verr.Internal, err)
	}
	resolved := s.resolveHits(e, hits)
	e.mu.Unlock()
	return resolved, degraded, nil
}

// resolveHits turns index.Hit ids (chunk id strings) back into full
// chunks via the chunk table — the index only ever held weak
// references. Caller must hold e.mu.
func (s *Store) resolveHits(e *libraryEntry, hits []index.Hit) []SearchHit {
	out := make([]SearchHit, 0, len(hits))
	for _, h := range hits {
		id, err := uuid.Parse(h.ID)
		if err != nil {
			continue
		}
		c, ok := e.chunks[id]
		if !ok {
			continue
		}
		out = append(out, SearchHit{Chunk: *c, Distance: h.Distance})
	}
	return out
}

// Stats reports index stats plus document/chunk counts for
// GET /libraries/{id}/stats.
type Stats struct {
	Index     index.Stats
	Documents int
	Chunks    int
}

// GetStats returns the current index stats (possibly for an index
// that has not been built yet: Stats.Index.Size will read 0) and
// entity counts.
func (s *Store) GetStats(libraryID uuid.UUID) (Stats, error) {
	e, err := s.lookup(libraryID)
	if err != nil {
		return Stats{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	st := Stats{Documents: len(e.documents), Chunks: len(e.chunks)}
	if e.idx != nil {
		st.Index = e.idx.Stats()
	}
	return st, nil
}
