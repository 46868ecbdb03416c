package vectormath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityFunctions(t *testing.T) {
	tests := []struct {
		name       string
		a, b       []float64
		wantCosine float64
		wantDot    float64
	}{
		{"identical", []float64{1, 0, 0}, []float64{1, 0, 0}, 1.0, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0, -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cos, ok := Cosine(tt.a, tt.b)
			require.True(t, ok)
			assert.InDelta(t, tt.wantCosine, cos, 1e-9)
			assert.InDelta(t, tt.wantDot, Dot(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineDegenerate(t *testing.T) {
	_, ok := Cosine([]float64{0, 0, 0}, []float64{1, 0, 0})
	assert.False(t, ok, "cosine of a zero vector is undefined")
}

func TestL2(t *testing.T) {
	got := L2([]float64{0, 0}, []float64{3, 4})
	assert.InDelta(t, 5.0, got, 1e-9)
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, 5.0, Norm([]float64{3, 4}), 1e-9)
}

func TestNormalize(t *testing.T) {
	n := Normalize([]float64{3, 4})
	assert.InDelta(t, 1.0, Norm(n), 1e-9)

	zero := Normalize([]float64{0, 0, 0})
	assert.Equal(t, []float64{0, 0, 0}, zero)
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite([]float64{1, 2, 3}))
	assert.False(t, Finite([]float64{1, math.NaN()}))
	assert.False(t, Finite([]float64{math.Inf(1), 0}))
}
