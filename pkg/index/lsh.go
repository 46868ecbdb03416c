package index

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/yezz123/vectorai/pkg/vectormath"
)

// DefaultLSHBands and DefaultLSHHashes are the out-of-the-box sizing:
// B=10 bands, and H chosen so 2^H is comparable to sqrt(n) — since n
// isn't known at construction time this falls back to a fixed H=6
// (2^6=64) as a reasonable starting point; callers with a known corpus
// size should set LSHConfig.Hashes explicitly, or use SuggestHashes.
const (
	DefaultLSHBands  = 10
	DefaultLSHHashes = 6
)

// LSHConfig configures the LSH index.
type LSHConfig struct {
	Bands     int   // B: number of bands
	Hashes    int   // H: hash functions per band
	Dimension int   // vector dimension
	Seed      int64 // PRNG seed, for reproducible hash families
	// Strict, when true, makes Search return fewer than k results
	// instead of padding from a fallback linear scan when the
	// banded candidate set is short.
	Strict bool
}

// LSH implements random-hyperplane locality-sensitive hashing over
// L2-normalized vectors, scored exactly by L2 on the banded candidate
// set. Each band has its own family of H Gaussian-projection hash
// functions; a point's signature within a band packs the sign bit of
// each projection's dot product into one uint64 ("|= 1<<i on a
// positive dot product"), and candidates are the union of every
// band's bucket matching the query's signature.
type LSH struct {
	mu sync.RWMutex

	cfg LSHConfig

	// hashFunctions[band][hashIdx] is one random unit Gaussian vector.
	hashFunctions [][][]float64
	// buckets[band][signature] -> candidate ids
	buckets []map[uint64][]string

	vectors map[string][]float64
	order   map[string]int // insertion order, for stable fallback scan

	builtAt time.Time
	dim     int
}

// NewLSH constructs an LSH index from cfg, generating its random
// hyperplane family from cfg.Seed: the PRNG is per-index and
// deterministic given its seed, so two indexes built with the same
// seed and the same points produce identical buckets.
func NewLSH(cfg LSHConfig) *LSH {
	if cfg.Bands <= 0 {
		cfg.Bands = DefaultLSHBands
	}
	if cfg.Hashes <= 0 {
		cfg.Hashes = DefaultLSHHashes
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	hashFunctions := make([][][]float64, cfg.Bands)
	for b := 0; b < cfg.Bands; b++ {
		hashFunctions[b] = make([][]float64, cfg.Hashes)
		for h := 0; h < cfg.Hashes; h++ {
			vec := make([]float64, cfg.Dimension)
			for d := 0; d < cfg.Dimension; d++ {
				vec[d] = rng.NormFloat64()
			}
			hashFunctions[b][h] = vec
		}
	}

	buckets := make([]map[uint64][]string, cfg.Bands)
	for b := range buckets {
		buckets[b] = make(map[uint64][]string)
	}

	return &LSH{
		cfg:           cfg,
		hashFunctions: hashFunctions,
		buckets:       buckets,
		vectors:       make(map[string][]float64),
		order:         make(map[string]int),
		dim:           cfg.Dimension,
	}
}

// Build replaces any prior state with an index over points. The
// random hyperplane family itself is not regenerated on rebuild — it
// was fixed at construction from cfg.Seed, so repeated Build calls
// over the same points produce identical buckets.
func (l *LSH) Build(points []Point) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for b := range l.buckets {
		l.buckets[b] = make(map[uint64][]string)
	}
	l.vectors = make(map[string][]float64)
	l.order = make(map[string]int)

	for i, p := range points {
		v := vectormath.Normalize(p.Vector)
		l.vectors[p.ID] = v
		l.order[p.ID] = i
		for b := 0; b < l.cfg.Bands; b++ {
			sig := l.signature(v, b)
			l.buckets[b][sig] = append(l.buckets[b][sig], p.ID)
		}
	}
	l.builtAt = time.Now()
	return nil
}

// signature packs the H sign bits of band b's random projections into
// a uint64.
func (l *LSH) signature(v []float64, band int) uint64 {
	var sig uint64
	for i, proj := range l.hashFunctions[band] {
		if vectormath.Dot(v, proj) > 0 {
			sig |= 1 << uint(i)
		}
	}
	return sig
}

// Search unions the candidate ids across all B band buckets matching
// the query's signature, scores them exactly by L2, applies the
// accept predicate, and returns the top-k. If fewer than k candidates
// remain after filtering, results are padded from a fallback linear
// scan unless cfg.Strict is set, in which case degraded is reported
// instead.
func (l *LSH) Search(query []float64, k int, acc Accept) ([]Hit, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if k <= 0 {
		return nil, false, nil
	}
	if len(query) != l.dim {
		return nil, false, fmt.Errorf("lsh: dimension mismatch: expected %d, got %d", l.dim, len(query))
	}

	q := vectormath.Normalize(query)

	candidates := make(map[string]struct{})
	for b := 0; b < l.cfg.Bands; b++ {
		sig := l.signature(q, b)
		for _, id := range l.buckets[b][sig] {
			candidates[id] = struct{}{}
		}
	}

	hits := l.scoreAndFilter(q, candidates, acc)

	if len(hits) >= k || l.cfg.Strict {
		if len(hits) > k {
			hits = hits[:k]
		}
		return hits, len(hits) < k, nil
	}

	// Non-strict fallback: pad from a full linear scan over every
	// stored vector so the caller still gets k results when possible.
	all := make(map[string]struct{}, len(l.vectors))
	for id := range l.vectors {
		all[id] = struct{}{}
	}
	// The fallback scan is exhaustive, so a short result here only
	// means fewer than k points match; it is not degraded.
	hits = l.scoreAndFilter(q, all, acc)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, false, nil
}

func (l *LSH) scoreAndFilter(q []float64, candidates map[string]struct{}, acc Accept) []Hit {
	hits := make([]Hit, 0, len(candidates))
	for id := range candidates {
		if !accept(acc, id) {
			continue
		}
		v, ok := l.vectors[id]
		if !ok {
			continue
		}
		hits = append(hits, Hit{ID: id, Distance: vectormath.L2(q, v)})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return l.order[hits[i].ID] < l.order[hits[j].ID]
	})
	return hits
}

// Stats reports size, build time, kind and config echo.
func (l *LSH) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		Kind:      KindLSH,
		Size:      len(l.vectors),
		BuiltAt:   l.builtAt,
		Dimension: l.dim,
		Config: map[string]any{
			"bands":  l.cfg.Bands,
			"hashes": l.cfg.Hashes,
			"seed":   l.cfg.Seed,
			"strict": l.cfg.Strict,
		},
	}
}

// approxSqrt is a small helper for picking a hash count from an
// expected corpus size: H should be chosen so 2^H is comparable to
// sqrt(n).
func approxSqrt(n int) float64 {
	return math.Sqrt(float64(n))
}

// SuggestHashes returns an H such that 2^H is approximately sqrt(n),
// clamped to a sane range.
func SuggestHashes(n int) int {
	if n <= 1 {
		return 2
	}
	target := approxSqrt(n)
	h := int(math.Round(math.Log2(target)))
	if h < 2 {
		h = 2
	}
	if h > 20 {
		h = 20
	}
	return h
}
