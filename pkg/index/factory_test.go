package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructsEachKind(t *testing.T) {
	tests := []struct {
		kind Kind
		want Kind
	}{
		{KindLinear, KindLinear},
		{KindKDTree, KindKDTree},
		{KindLSH, KindLSH},
	}
	for _, tt := range tests {
		idx, err := New(tt.kind, Config{Dimension: 3, KDLeafSize: 4, LSHBands: 2, LSHHashes: 2})
		require.NoError(t, err)
		assert.Equal(t, tt.want, idx.Stats().Kind)
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind("bogus"), Config{})
	assert.Error(t, err)
}
