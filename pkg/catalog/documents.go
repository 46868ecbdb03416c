package catalog

import (
	"github.com/google/uuid"
	"github.com/yezz123/vectorai/pkg/entity"
	"github.com/yezz123/vectorai/pkg/verr"
)

// CreateDocument creates a document under libraryID.
func (s *Store) CreateDocument(libraryID uuid.UUID, name string, metadata entity.Metadata) (entity.Document, error) {
	e, err := s.lookup(libraryID)
	if err != nil {
		return entity.Document{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := entity.Document{
		ID:        uuid.New(),
		LibraryID: libraryID,
		Name:      name,
		Metadata:  metadata.Clone(),
		CreatedAt: now(),
	}
	e.documents[doc.ID] = &doc
	return doc, nil
}

// GetDocument returns a document within libraryID.
func (s *Store) GetDocument(libraryID, documentID uuid.UUID) (entity.Document, error) {
	e, err := s.lookup(libraryID)
	if err != nil {
		return entity.Document{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	doc, ok := e.documents[documentID]
	if !ok {
		return entity.Document{}, verr.New("get_document", verr.NotFound, "document not found")
	}
	return *doc, nil
}

// ListDocuments returns every document in libraryID.
func (s *Store) ListDocuments(libraryID uuid.UUID) ([]entity.Document, error) {
	e, err := s.lookup(libraryID)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]entity.Document, 0, len(e.documents))
	for _, d := range e.documents {
		out = append(out, *d)
	}
	return out, nil
}

// DeleteDocument removes documentID and cascades to its chunks,
// marking the library's index STALE if any chunks were removed.
func (s *Store) DeleteDocument(libraryID, documentID uuid.UUID) error {
	e, err := s.lookup(libraryID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.documents[documentID]; !ok {
		return verr.New("delete_document", verr.NotFound, "document not found")
	}
	delete(e.documents, documentID)

	chunkIDs := e.docChunks[documentID]
	delete(e.docChunks, documentID)
	for _, cid := range chunkIDs {
		delete(e.chunks, cid)
	}
	if len(chunkIDs) > 0 && e.state == stateReady {
		e.state = stateStale
	}
	return nil
}
