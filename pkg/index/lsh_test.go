package index

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yezz123/vectorai/pkg/vectormath"
)

func randomUnitVectors(r *rand.Rand, n, dim int) []Point {
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		v := make([]float64, dim)
		for d := range v {
			v[d] = r.NormFloat64()
		}
		points[i] = Point{ID: fmt.Sprintf("p%d", i), Vector: vectormath.Normalize(v)}
	}
	return points
}

// TestLSHRecallMeetsConfiguredFloor reproduces the default-sizing
// recall scenario: 1000 random unit vectors in R^16, B=10 bands, H=6
// hashes per band, recall@10 against 100 random queries averaged
// across the batch must meet the floor the defaults are expected to
// provide.
func TestLSHRecallMeetsConfiguredFloor(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	dim := 16
	points := randomUnitVectors(r, 1000, dim)

	lsh := NewLSH(LSHConfig{Bands: 10, Hashes: 6, Dimension: dim, Seed: 42})
	require.NoError(t, lsh.Build(points))
	linear := NewLinear()
	require.NoError(t, linear.Build(points))

	const numQueries = 100
	const k = 10
	var totalRecall float64
	for i := 0; i < numQueries; i++ {
		query := points[i].Vector

		want, _, err := linear.Search(query, k, nil)
		require.NoError(t, err)
		got, _, err := lsh.Search(query, k, nil)
		require.NoError(t, err)

		wantSet := make(map[string]bool, len(want))
		for _, h := range want {
			wantSet[h.ID] = true
		}
		overlap := 0
		for _, h := range got {
			if wantSet[h.ID] {
				overlap++
			}
		}
		totalRecall += float64(overlap) / float64(len(want))
	}

	avgRecall := totalRecall / numQueries
	assert.GreaterOrEqual(t, avgRecall, 0.85, "recall@10 vs linear at B=10,H=6 must meet the configured floor over 100 random queries")
}

func TestLSHStrictModeDegrades(t *testing.T) {
	points := []Point{
		{ID: "a", Vector: []float64{1, 0, 0, 0}},
	}
	lsh := NewLSH(LSHConfig{Bands: 4, Hashes: 8, Dimension: 4, Seed: 3, Strict: true})
	require.NoError(t, lsh.Build(points))

	hits, degraded, err := lsh.Search([]float64{1, 0, 0, 0}, 5, nil)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Len(t, hits, 1)
}

func TestLSHNonStrictFallsBackToLinearScan(t *testing.T) {
	points := []Point{
		{ID: "a", Vector: []float64{1, 0, 0, 0}},
		{ID: "b", Vector: []float64{0, 1, 0, 0}},
		{ID: "c", Vector: []float64{0, 0, 1, 0}},
	}
	lsh := NewLSH(LSHConfig{Bands: 1, Hashes: 16, Dimension: 4, Seed: 9, Strict: false})
	require.NoError(t, lsh.Build(points))

	hits, _, err := lsh.Search([]float64{1, 0, 0, 0}, 3, nil)
	require.NoError(t, err)
	assert.Len(t, hits, 3, "non-strict search should pad from a fallback linear scan")
}

func TestLSHBuildIsDeterministicForSameSeed(t *testing.T) {
	points := []Point{
		{ID: "a", Vector: []float64{1, 2, 3}},
		{ID: "b", Vector: []float64{4, 5, 6}},
	}
	l1 := NewLSH(LSHConfig{Bands: 4, Hashes: 4, Dimension: 3, Seed: 99})
	l2 := NewLSH(LSHConfig{Bands: 4, Hashes: 4, Dimension: 3, Seed: 99})
	require.NoError(t, l1.Build(points))
	require.NoError(t, l2.Build(points))

	h1, _, err := l1.Search([]float64{1, 2, 3}, 2, nil)
	require.NoError(t, err)
	h2, _, err := l2.Search([]float64{1, 2, 3}, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "same seed must produce the same hyperplane family and thus identical results")
}

func TestSuggestHashes(t *testing.T) {
	assert.GreaterOrEqual(t, SuggestHashes(1), 2)
	assert.LessOrEqual(t, SuggestHashes(1_000_000), 20)
}

func TestLSHDimensionMismatch(t *testing.T) {
	lsh := NewLSH(LSHConfig{Dimension: 4, Seed: 1})
	require.NoError(t, lsh.Build(nil))
	_, _, err := lsh.Search([]float64{1, 2}, 1, nil)
	assert.Error(t, err)
}
