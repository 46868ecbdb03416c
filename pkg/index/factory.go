package index

import "fmt"

// Config carries the construction-time parameters for whichever
// index Kind is selected. Fields irrelevant to the chosen Kind are
// ignored.
type Config struct {
	Dimension int

	KDLeafSize int

	LSHBands  int
	LSHHashes int
	LSHSeed   int64
	LSHStrict bool
}

// New constructs an Index variant by tag. Unknown kinds are a caller
// programming error, reported as a plain error rather than one of
// vectorai's ErrorKind values — pkg/index does not depend on the root
// error taxonomy.
func New(kind Kind, cfg Config) (Index, error) {
	switch kind {
	case KindLinear:
		return NewLinear(), nil
	case KindKDTree:
		return NewKDTreeWithLeafSize(cfg.KDLeafSize), nil
	case KindLSH:
		return NewLSH(LSHConfig{
			Bands:     cfg.LSHBands,
			Hashes:    cfg.LSHHashes,
			Dimension: cfg.Dimension,
			Seed:      cfg.LSHSeed,
			Strict:    cfg.LSHStrict,
		}), nil
	default:
		return nil, fmt.Errorf("index: unknown kind %q", kind)
	}
}
