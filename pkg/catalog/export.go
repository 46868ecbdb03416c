package catalog

import (
	"github.com/google/uuid"
	"github.com/yezz123/vectorai/pkg/entity"
	"github.com/yezz123/vectorai/pkg/index"
	"github.com/yezz123/vectorai/pkg/vlog"
)

// ExportAll returns a flat snapshot of every library, document and
// chunk currently in the store, in a stable dependency order
// (libraries, then documents, then chunks) for pkg/snapshot to
// serialize. Index objects are never included — only each library's
// IndexKind configuration travels; indexes themselves are rebuilt on
// load, never serialized.
func (s *Store) ExportAll() (libs []entity.Library, docs []entity.Document, chunks []entity.Chunk) {
	s.mu.RLock()
	entries := make([]*libraryEntry, 0, len(s.libraries))
	for _, e := range s.libraries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	for _, e := range entries {
		e.mu.RLock()
		libs = append(libs, e.lib)
		for _, d := range e.documents {
			docs = append(docs, *d)
		}
		// Walk docChunks so chunk order within each document is
		// preserved on reload (by_document ordering invariant).
		for _, ids := range e.docChunks {
			for _, id := range ids {
				if c, ok := e.chunks[id]; ok {
					chunks = append(chunks, *c)
				}
			}
		}
		e.mu.RUnlock()
	}
	return libs, docs, chunks
}

// NewFromExport reconstructs a Store from a previously-exported set
// of libraries, documents and chunks (e.g. after a snapshot load).
// Every library's index starts EMPTY — indexes are always rebuilt
// lazily on first search, never deserialized.
func NewFromExport(indexCfg index.Config, log vlog.Logger, libs []entity.Library, docs []entity.Document, chunks []entity.Chunk) *Store {
	s := New(indexCfg, log)

	for _, lib := range libs {
		l := lib
		s.libraries[l.ID] = &libraryEntry{
			lib:       l,
			documents: make(map[uuid.UUID]*entity.Document),
			chunks:    make(map[uuid.UUID]*entity.Chunk),
			docChunks: make(map[uuid.UUID][]uuid.UUID),
			state:     stateEmpty,
		}
	}
	for _, doc := range docs {
		d := doc
		if e, ok := s.libraries[d.LibraryID]; ok {
			e.documents[d.ID] = &d
		}
	}
	for _, chunk := range chunks {
		c := chunk
		if e, ok := s.libraries[c.LibraryID]; ok {
			e.chunks[c.ID] = &c
			e.docChunks[c.DocumentID] = append(e.docChunks[c.DocumentID], c.ID)
			e.nextSeq++
		}
	}
	return s
}
