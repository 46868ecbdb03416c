package verr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap("op", Internal, nil))
}

func TestKindOf(t *testing.T) {
	err := New("get_chunk", NotFound, "chunk not found")
	assert.Equal(t, NotFound, KindOf(err))
	assert.Equal(t, Internal, KindOf(errors.New("plain error")))
}

func TestErrorUnwrapAndIs(t *testing.T) {
	sentinel := errors.New("boom")
	err := Wrap("search", Io, sentinel)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, sentinel, errors.Unwrap(err))
}

func TestErrorMessageIncludesOpAndKind(t *testing.T) {
	err := New("build_index", Conflict, "cannot build an index over an empty library")
	assert.Contains(t, err.Error(), "build_index")
	assert.Contains(t, err.Error(), "conflict")
}
