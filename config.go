package vectorai

import "github.com/yezz123/vectorai/pkg/index"

// LSHConfig mirrors pkg/index.LSHConfig at the facade layer so callers
// configuring a Store never need to import pkg/index directly.
type LSHConfig struct {
	// Bands is the number of hash tables ("LSH with B bands, H hashes per band").
	Bands int
	// Hashes is the number of hash functions per band.
	Hashes int
	// Seed fixes the random hyperplane projections for reproducible
	// builds across restarts, same dataset in, same buckets out.
	Seed int64
	// Strict is copied into the index configuration, but every index
	// build replaces it with the library's own Strict flag (set at
	// CreateLibrary or UpdateLibrary), so this field does not change
	// search behaviour.
	Strict bool
}

// Config is the store-wide configuration a Store is constructed with.
// It is an immutable record: constructed once, passed by value into
// New, and never mutated or re-read from the environment by the store
// itself. The host process owns loading it from flags, env, or a
// config file.
type Config struct {
	// DefaultIndexKind is the index a newly created library uses when
	// the caller does not name one explicitly.
	DefaultIndexKind IndexKind

	// KDLeafSize bounds the number of points kept in a KD-tree leaf
	// before it stops splitting (pkg/index.DefaultKDLeafSize if zero).
	KDLeafSize int

	// LSH configures every LSH index built by this store. Bands and
	// Hashes default to pkg/index.DefaultLSHBands/DefaultLSHHashes
	// when zero.
	LSH LSHConfig

	// SnapshotPath is where SaveSnapshot/LoadSnapshot read and write
	// by default when called with an empty path. Empty means the
	// store is in-memory only and a path must be supplied explicitly.
	SnapshotPath string

	// EmbeddingAuth is an opaque bag of credentials for an
	// EmbeddingProvider implementation; the store never reads it or
	// passes it on.
	EmbeddingAuth map[string]string
}

// DefaultConfig returns the configuration a new Store uses when none
// is supplied: linear search, default KD-tree leaf size, default LSH
// sizing, no snapshot path.
func DefaultConfig() Config {
	return Config{
		DefaultIndexKind: IndexLinear,
		KDLeafSize:       index.DefaultKDLeafSize,
		LSH: LSHConfig{
			Bands:  index.DefaultLSHBands,
			Hashes: index.DefaultLSHHashes,
		},
	}
}

// toIndexConfig translates the store-wide Config into the
// pkg/index.Config the catalog package builds indexes from. Dimension
// is left zero; the catalog fills it in per library at build time.
func (c Config) toIndexConfig() index.Config {
	leaf := c.KDLeafSize
	if leaf <= 0 {
		leaf = index.DefaultKDLeafSize
	}
	bands := c.LSH.Bands
	if bands <= 0 {
		bands = index.DefaultLSHBands
	}
	hashes := c.LSH.Hashes
	if hashes <= 0 {
		hashes = index.DefaultLSHHashes
	}
	return index.Config{
		KDLeafSize: leaf,
		LSHBands:   bands,
		LSHHashes:  hashes,
		LSHSeed:    c.LSH.Seed,
		LSHStrict:  c.LSH.Strict,
	}
}
