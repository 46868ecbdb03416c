package index

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDTreeMatchesLinearExact(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	points := make([]Point, 200)
	for i := range points {
		v := []float64{r.Float64() * 10, r.Float64() * 10, r.Float64() * 10}
		points[i] = Point{ID: idFor(i), Vector: v}
	}

	linear := NewLinear()
	require.NoError(t, linear.Build(points))
	kd := NewKDTreeWithLeafSize(8)
	require.NoError(t, kd.Build(points))

	query := []float64{5, 5, 5}
	wantHits, _, err := linear.Search(query, 10, nil)
	require.NoError(t, err)
	gotHits, degraded, err := kd.Search(query, 10, nil)
	require.NoError(t, err)
	require.False(t, degraded)
	require.Len(t, gotHits, len(wantHits))

	for i := range wantHits {
		assert.Equal(t, wantHits[i].ID, gotHits[i].ID, "branch-and-bound must return the same exact top-k as a linear scan")
		assert.InDelta(t, wantHits[i].Distance, gotHits[i].Distance, 1e-9)
	}
}

func TestKDTreeSearchWithAccept(t *testing.T) {
	points := []Point{
		{ID: "a", Vector: []float64{0, 0}},
		{ID: "b", Vector: []float64{1, 0}},
		{ID: "c", Vector: []float64{2, 0}},
		{ID: "d", Vector: []float64{3, 0}},
	}
	kd := NewKDTreeWithLeafSize(1)
	require.NoError(t, kd.Build(points))

	acc := func(id string) bool { return id == "c" || id == "d" }
	hits, _, err := kd.Search([]float64{0, 0}, 1, acc)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c", hits[0].ID)
}

func TestKDTreeEmptyBuild(t *testing.T) {
	kd := NewKDTree()
	require.NoError(t, kd.Build(nil))
	hits, degraded, err := kd.Search([]float64{1, 2}, 5, nil)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Empty(t, hits)
}

func TestKDTreeStats(t *testing.T) {
	kd := NewKDTreeWithLeafSize(4)
	require.NoError(t, kd.Build([]Point{{ID: "a", Vector: []float64{1, 2}}}))
	st := kd.Stats()
	assert.Equal(t, KindKDTree, st.Kind)
	assert.Equal(t, 4, st.Config["leaf_size"])
}

func idFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	if i < len(letters) {
		return string(letters[i])
	}
	return string(letters[i%len(letters)]) + string(letters[(i/len(letters))%len(letters)])
}
