// Package index implements three pluggable nearest-neighbour index
// variants (exhaustive linear scan, a balanced KD-tree, and
// random-hyperplane LSH) behind one shared contract, plus a factory
// that selects a variant by tag.
//
// Indexes hold only chunk ids and vectors — never chunk objects or
// metadata. Metadata filtering is injected as an Accept predicate the
// caller (pkg/catalog) compiles from a pkg/filter.Filter and the
// entity store; pkg/index never imports pkg/filter or pkg/entity.
package index

import "time"

// Point is a (id, vector) pair as presented to Build. The id is
// opaque to the index; callers pass chunk id strings.
type Point struct {
	ID     string
	Vector []float64
}

// Hit is a single ranked search result.
type Hit struct {
	ID       string
	Distance float64
}

// Accept is a metadata-filter predicate compiled by the caller. A nil
// Accept matches everything.
type Accept func(id string) bool

func accept(a Accept, id string) bool {
	return a == nil || a(id)
}

// Kind tags which index variant is in use.
type Kind string

const (
	KindLinear Kind = "linear"
	KindKDTree Kind = "kdtree"
	KindLSH    Kind = "lsh"
)

// Stats describes an index's current state: size, build timestamp,
// kind tag and a configuration echo.
type Stats struct {
	Kind      Kind
	Size      int
	BuiltAt   time.Time
	Dimension int
	Config    map[string]any
}

// Index is the common contract every variant satisfies: build,
// search, introspect. Build replaces any prior state and is the only
// maintenance path (no incremental update) — idempotent by
// construction since it always starts from scratch.
type Index interface {
	// Build replaces any prior state with an index over points.
	Build(points []Point) error

	// Search returns up to k (id, distance) pairs sorted by
	// ascending distance. k may be undershot if accept eliminates
	// candidates. degraded reports whether fewer than k results were
	// returned because an approximate index ran out of candidates
	// (only ever true for LSH in strict mode; exact indexes never
	// set it).
	Search(query []float64, k int, acc Accept) (hits []Hit, degraded bool, err error)

	// Stats reports size, build time, kind tag and config echo.
	Stats() Stats
}
