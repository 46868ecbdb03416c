package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yezz123/vectorai/pkg/entity"
)

func sampleDocument() ([]entity.Library, []entity.Document, []entity.Chunk) {
	libID := uuid.New()
	docID := uuid.New()
	dim := 3
	lib := entity.Library{
		ID:        libID,
		Name:      "papers",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		IndexKind: entity.IndexLinear,
		Dimension: &dim,
	}
	doc := entity.Document{ID: docID, LibraryID: libID, Name: "paper-1", CreatedAt: time.Now()}
	chunk := entity.Chunk{
		ID:         uuid.New(),
		DocumentID: docID,
		LibraryID:  libID,
		Text:       "hello world",
		Embedding:  []float64{1.5, -2.25, 3.125},
		Metadata:   entity.Metadata{"lang": entity.String("en")},
		CreatedAt:  time.Now(),
	}
	return []entity.Library{lib}, []entity.Document{doc}, []entity.Chunk{chunk}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")

	libs, docs, chunks := sampleDocument()
	require.NoError(t, Save(path, libs, docs, chunks))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, doc.Version)
	require.Len(t, doc.Libraries, 1)
	require.Len(t, doc.Documents, 1)
	require.Len(t, doc.Chunks, 1)
	assert.Equal(t, libs[0].ID, doc.Libraries[0].ID)
	assert.Equal(t, chunks[0].Embedding, doc.Chunks[0].Embedding, "floating-point values round-trip with full precision")
}

func TestSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")

	libs, docs, chunks := sampleDocument()
	require.NoError(t, Save(path, libs, docs, chunks))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no leftover temp file should remain after a successful save")
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":999,"libraries":[],"documents":[],"chunks":[]}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}
