package catalog

import (
	"github.com/google/uuid"
	"github.com/yezz123/vectorai/pkg/entity"
	"github.com/yezz123/vectorai/pkg/verr"
)

// CreateLibrary creates a new, empty library. name need not be
// unique.
func (s *Store) CreateLibrary(name, description string, metadata entity.Metadata, kind entity.IndexKind, strict bool) (entity.Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	t := now()
	lib := entity.Library{
		ID:          id,
		Name:        name,
		Description: description,
		Metadata:    metadata.Clone(),
		CreatedAt:   t,
		UpdatedAt:   t,
		IndexKind:   kind,
		Strict:      strict,
	}
	s.libraries[id] = &libraryEntry{
		lib:       lib,
		documents: make(map[uuid.UUID]*entity.Document),
		chunks:    make(map[uuid.UUID]*entity.Chunk),
		docChunks: make(map[uuid.UUID][]uuid.UUID),
		state:     stateEmpty,
	}
	return lib, nil
}

// GetLibrary returns a snapshot of the library's attributes.
func (s *Store) GetLibrary(id uuid.UUID) (entity.Library, error) {
	e, err := s.lookup(id)
	if err != nil {
		return entity.Library{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lib, nil
}

// ListLibraries returns a snapshot of every library's attributes.
func (s *Store) ListLibraries() []entity.Library {
	s.mu.RLock()
	entries := make([]*libraryEntry, 0, len(s.libraries))
	for _, e := range s.libraries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]entity.Library, 0, len(entries))
	for _, e := range entries {
		e.mu.RLock()
		out = append(out, e.lib)
		e.mu.RUnlock()
	}
	return out
}

// UpdateLibrary mutates a library's name/description/metadata/strict
// flag in place.
func (s *Store) UpdateLibrary(id uuid.UUID, name, description *string, metadata entity.Metadata, strict *bool) (entity.Library, error) {
	e, err := s.lookup(id)
	if err != nil {
		return entity.Library{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if name != nil {
		e.lib.Name = *name
	}
	if description != nil {
		e.lib.Description = *description
	}
	if metadata != nil {
		e.lib.Metadata = metadata.Clone()
	}
	if strict != nil {
		e.lib.Strict = *strict
	}
	e.lib.UpdatedAt = now()
	return e.lib, nil
}

// DeleteLibrary removes a library and cascades to all of its
// documents and chunks.
func (s *Store) DeleteLibrary(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.libraries[id]; !ok {
		return verr.New("delete_library", verr.NotFound, "library not found")
	}
	delete(s.libraries, id)
	return nil
}

// LibraryCounts reports document/chunk counts for stats endpoints.
func (s *Store) LibraryCounts(id uuid.UUID) (documents int, chunks int, err error) {
	e, err := s.lookup(id)
	if err != nil {
		return 0, 0, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.documents), len(e.chunks), nil
}
