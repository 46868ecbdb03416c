package index

import (
	"container/heap"
	"sort"
	"sync"
	"time"

	"github.com/yezz123/vectorai/pkg/vectormath"
)

// DefaultKDLeafSize is the point count below which a subtree is
// stored as a flat leaf scored linearly.
const DefaultKDLeafSize = 16

// kdFilterExpansion widens the candidate pool to max(k, k*4) when a
// filter is attached, so a selective filter is less likely to starve
// the final top-k.
const kdFilterExpansion = 4

// KDTree is a balanced KD-tree built by recursive median split on the
// axis of maximum variance, searched by best-first branch-and-bound.
// It shares the heap-based top-k pattern used by Linear
// (pkg/index/linear.go), scoring within a partition exactly once a
// branch can no longer contain a closer point than the current worst
// retained hit.
type KDTree struct {
	mu       sync.RWMutex
	root     *kdNode
	leafSize int
	builtAt  time.Time
	dim      int
	size     int
}

type kdNode struct {
	// internal node fields
	axis  int
	split float64
	left  *kdNode
	right *kdNode

	// leaf fields (left == nil && right == nil)
	leaf []linearPoint
}

// NewKDTree constructs an empty KD-tree index with the default leaf size.
func NewKDTree() *KDTree {
	return &KDTree{leafSize: DefaultKDLeafSize}
}

// NewKDTreeWithLeafSize constructs an empty KD-tree with a custom leaf size.
func NewKDTreeWithLeafSize(leafSize int) *KDTree {
	if leafSize <= 0 {
		leafSize = DefaultKDLeafSize
	}
	return &KDTree{leafSize: leafSize}
}

// Build constructs the tree from scratch over points. O(n log n)
// amortized via per-level median selection.
func (t *KDTree) Build(points []Point) error {
	t.mu.Lock()
	defer t.mu.Unlock()

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

	t.root = buildKDNode(ps, t.leafSize)
	t.dim = dim
	t.size = len(ps)
	t.builtAt = time.Now()
	return nil
}

func buildKDNode(points []linearPoint, leafSize int) *kdNode {
	if len(points) <= leafSize {
		return &kdNode{leaf: points}
	}

	axis := maxVarianceAxis(points)
	mid := len(points) / 2
	selectNth(points, axis, mid)
	split := points[mid].vector[axis]

	left := buildKDNode(points[:mid], leafSize)
	right := buildKDNode(points[mid:], leafSize)

	return &kdNode{axis: axis, split: split, left: left, right: right}
}

// maxVarianceAxis returns the dimension with the largest sample
// variance across points: splitting on this axis tends to separate
// points more evenly than a round-robin axis choice.
func maxVarianceAxis(points []linearPoint) int {
	if len(points) == 0 || len(points[0].vector) == 0 {
		return 0
	}
	dim := len(points[0].vector)
	n := float64(len(points))

	mean := make([]float64, dim)
	for _, p := range points {
		for i, x := range p.vector {
			mean[i] += x
		}
	}
	for i := range mean {
		mean[i] /= n
	}

	variance := make([]float64, dim)
	for _, p := range points {
		for i, x := range p.vector {
			d := x - mean[i]
			variance[i] += d * d
		}
	}

	best := 0
	for i := 1; i < dim; i++ {
		if variance[i] > variance[best] {
			best = i
		}
	}
	return best
}

// selectNth partitions points in place (quickselect, Hoare-style) so
// that points[n] holds the element that would sit at index n were
// points fully sorted by vector[axis], with everything before it no
// greater and everything after it no smaller.
func selectNth(points []linearPoint, axis, n int) {
	lo, hi := 0, len(points)-1
	for lo < hi {
		pivot := points[(lo+hi)/2].vector[axis]
		i, j := lo, hi
		for i <= j {
			for points[i].vector[axis] < pivot {
				i++
			}
			for points[j].vector[axis] > pivot {
				j--
			}
			if i <= j {
				points[i], points[j] = points[j], points[i]
				i++
				j--
			}
		}
		if n <= j {
			hi = j
		} else if n >= i {
			lo = i
		} else {
			return
		}
	}
}

// Search performs best-first branch-and-bound k-NN.
func (t *KDTree) Search(query []float64, k int, acc Accept) ([]Hit, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if k <= 0 || t.root == nil {
		return nil, false, nil
	}

	want := k
	if acc != nil {
		want = k * kdFilterExpansion
		if want < k {
			want = k
		}
	}

	h := &linearHeap{}
	heap.Init(h)
	searchKDNode(t.root, query, want, acc, h)

	results := make([]linearHeapItem, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(h).(linearHeapItem)
	}
	sort.Slice(results, func(i, j int) bool { return less(results[i], results[j]) })
	if len(results) > k {
		results = results[:k]
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{ID: r.id, Distance: r.distance}
	}
	return hits, false, nil
}

func searchKDNode(n *kdNode, query []float64, want int, acc Accept, h *linearHeap) {
	if n == nil {
		return
	}
	if n.left == nil && n.right == nil {
		for _, p := range n.leaf {
			if !accept(acc, p.id) {
				continue
			}
			item := linearHeapItem{id: p.id, distance: vectormath.L2(query, p.vector), seq: p.seq}
			if h.Len() < want {
				heap.Push(h, item)
			} else if less(item, (*h)[0]) {
				heap.Pop(h)
				heap.Push(h, item)
			}
		}
		return
	}

	diff := query[n.axis] - n.split
	near, far := n.left, n.right
	if diff > 0 {
		near, far = n.right, n.left
	}

	searchKDNode(near, query, want, acc, h)

	// Visit the far side only if it could still contain a closer
	// point than the current worst retained hit, or we haven't
	// filled the bound yet.
	if h.Len() < want {
		searchKDNode(far, query, want, acc, h)
		return
	}
	worst := (*h)[0].distance
	if diff < 0 {
		diff = -diff
	}
	if diff < worst {
		searchKDNode(far, query, want, acc, h)
	}
}

// Stats reports size, build time, kind and config echo (leaf size,
// split strategy).
func (t *KDTree) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Stats{
		Kind:      KindKDTree,
		Size:      t.size,
		BuiltAt:   t.builtAt,
		Dimension: t.dim,
		Config: map[string]any{
			"leaf_size":    t.leafSize,
			"split_axis":   "max_variance",
			"filter_expand": kdFilterExpansion,
		},
	}
}
