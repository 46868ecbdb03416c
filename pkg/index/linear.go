package index

import (
	"container/heap"
	"sync"
	"time"

	"github.com/yezz123/vectorai/pkg/vectormath"
)

// Linear is an exhaustive-scan index: O(1) build beyond the copy,
// O(n) search against every point. Always exact. A bounded max-heap
// via container/heap keeps the running top-k instead of sorting the
// whole point set; Build always copies vectors rather than aliasing
// caller memory.
type Linear struct {
	mu      sync.RWMutex
	points  []linearPoint
	builtAt time.Time
	dim     int
}

type linearPoint struct {
	id     string
	vector []float64
	seq    int // insertion order, for stable tie-breaking
}

// NewLinear constructs an empty linear index.
func NewLinear() *Linear {
	return &Linear{}
}

// Build replaces any prior state with an index over points.
func (l *Linear) Build(points []Point) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ps := make([]linearPoint, len(points))
	dim := 0
	for i, p := range points {
		v := make([]float64, len(p.Vector))
		copy(v, p.Vector)
		ps[i] = linearPoint{id: p.ID, vector: v, seq: i}
		if i == 0 {
			dim = len(v)
		}
	}
	l.points = ps
	l.dim = dim
	l.builtAt = time.Now()
	return nil
}

// Search performs exact brute-force k-NN.
func (l *Linear) Search(query []float64, k int, acc Accept) ([]Hit, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if k <= 0 {
		return nil, false, nil
	}

	h := &linearHeap{}
	heap.Init(h)

	for _, p := range l.points {
		if !accept(acc, p.id) {
			continue
		}
		d := vectormath.L2(query, p.vector)
		item := linearHeapItem{id: p.id, distance: d, seq: p.seq}
		if h.Len() < k {
			heap.Push(h, item)
		} else if less(item, (*h)[0]) {
			heap.Pop(h)
			heap.Push(h, item)
		}
	}

	results := make([]linearHeapItem, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(h).(linearHeapItem)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{ID: r.id, Distance: r.distance}
	}
	return hits, false, nil
}

// Stats reports size, build time, kind and config echo.
func (l *Linear) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		Kind:      KindLinear,
		Size:      len(l.points),
		BuiltAt:   l.builtAt,
		Dimension: l.dim,
		Config:    map[string]any{},
	}
}

// less reports whether a ranks strictly before b: smaller distance
// first, ties broken by earlier insertion order.
func less(a, b linearHeapItem) bool {
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	return a.seq < b.seq
}

type linearHeapItem struct {
	id       string
	distance float64
	seq      int
}

// linearHeap is a bounded max-heap ("worst at top") keyed by (distance,
// seq) so the item that should be evicted first is always at index 0.
type linearHeap []linearHeapItem

func (h linearHeap) Len() int { return len(h) }
func (h linearHeap) Less(i, j int) bool {
	// max-heap: the "larger" (worse) item floats to the top.
	return less(h[j], h[i])
}
func (h linearHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linearHeap) Push(x any) {
	*h = append(*h, x.(linearHeapItem))
}

func (h *linearHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
