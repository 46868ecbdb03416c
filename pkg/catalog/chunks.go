package catalog

import (
	"github.com/google/uuid"
	"github.com/yezz123/vectorai/pkg/entity"
	"github.com/yezz123/vectorai/pkg/vectormath"
	"github.com/yezz123/vectorai/pkg/verr"
)

// NewChunk is the caller-supplied shape for a chunk to be appended;
// ID and CreatedAt are assigned by AddChunks.
type NewChunk struct {
	Text      string
	Embedding []float64
	Metadata  entity.Metadata
}

// AddChunks appends chunks to documentID within libraryID. The
// library's dimension is fixed from the first chunk ever inserted
// (across the library's lifetime) and every subsequent chunk —
// including chunks in this same call — must match it. A successful
// insert transitions a READY index to STALE; EMPTY stays EMPTY since
// there is nothing to go stale yet.
func (s *Store) AddChunks(libraryID, documentID uuid.UUID, news []NewChunk) ([]entity.Chunk, error) {
	e, err := s.lookup(libraryID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.documents[documentID]; !ok {
		return nil, verr.New("add_chunks", verr.NotFound, "document not found")
	}

	var dim int
	if e.lib.Dimension != nil {
		dim = *e.lib.Dimension
	} else if len(news) > 0 {
		dim = len(news[0].Embedding)
	}
	for _, nc := range news {
		if !vectormath.Finite(nc.Embedding) {
			return nil, verr.New("add_chunks", verr.Invalid, "embedding contains a non-finite value")
		}
		if len(nc.Embedding) != dim {
			return nil, verr.New("add_chunks", verr.Conflict, "embedding dimension does not match library dimension")
		}
	}
	if e.lib.Dimension == nil && len(news) > 0 {
		e.lib.Dimension = &dim
	}

	out := make([]entity.Chunk, 0, len(news))
	t := now()
	for _, nc := range news {
		c := entity.Chunk{
			ID:         uuid.New(),
			DocumentID: documentID,
			LibraryID:  libraryID,
			Text:       nc.Text,
			Embedding:  append([]float64(nil), nc.Embedding...),
			Metadata:   nc.Metadata.Clone(),
			CreatedAt:  t,
		}
		e.chunks[c.ID] = &c
		e.docChunks[documentID] = append(e.docChunks[documentID], c.ID)
		e.nextSeq++
		out = append(out, c)
	}

	if len(news) > 0 && e.state == stateReady {
		e.state = stateStale
	}
	e.lib.UpdatedAt = t
	return out, nil
}

// GetChunk returns a single chunk within libraryID.
func (s *Store) GetChunk(libraryID, chunkID uuid.UUID) (entity.Chunk, error) {
	e, err := s.lookup(libraryID)
	if err != nil {
		return entity.Chunk{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.chunks[chunkID]
	if !ok {
		return entity.Chunk{}, verr.New("get_chunk", verr.NotFound, "chunk not found")
	}
	return *c, nil
}

// ListChunks returns every chunk belonging to documentID, in
// insertion order.
func (s *Store) ListChunks(libraryID, documentID uuid.UUID) ([]entity.Chunk, error) {
	e, err := s.lookup(libraryID)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := e.docChunks[documentID]
	out := make([]entity.Chunk, 0, len(ids))
	for _, id := range ids {
		if c, ok := e.chunks[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

// UpdateChunkMetadata replaces a chunk's metadata map. Chunks are
// otherwise immutable — this does not affect index staleness since
// embeddings never change.
func (s *Store) UpdateChunkMetadata(libraryID, chunkID uuid.UUID, metadata entity.Metadata) (entity.Chunk, error) {
	e, err := s.lookup(libraryID)
	if err != nil {
		return entity.Chunk{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.chunks[chunkID]
	if !ok {
		return entity.Chunk{}, verr.New("update_chunk_metadata", verr.NotFound, "chunk not found")
	}
	c.Metadata = metadata.Clone()
	return *c, nil
}

// DeleteChunk removes a single chunk, marking a READY index STALE.
func (s *Store) DeleteChunk(libraryID, chunkID uuid.UUID) error {
	e, err := s.lookup(libraryID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.chunks[chunkID]
	if !ok {
		return verr.New("delete_chunk", verr.NotFound, "chunk not found")
	}
	delete(e.chunks, chunkID)
	ids := e.docChunks[c.DocumentID]
	for i, id := range ids {
		if id == chunkID {
			e.docChunks[c.DocumentID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if e.state == stateReady {
		e.state = stateStale
	}
	return nil
}
