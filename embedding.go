package vectorai

import "context"

// Purpose distinguishes embedding text meant to be indexed from
// embedding a query about to be searched against an index. Some
// providers compute different vectors for the two cases (asymmetric
// embedding models), so the discriminator travels with every call
// even though most providers ignore it.
type Purpose int

const (
	PurposeDocument Purpose = iota
	PurposeQuery
)

// EmbeddingProvider turns raw text into the fixed-dimension vectors
// chunks are indexed by. It is an external interface seam: the core
// store never calls out to a model itself and accepts chunks with
// embeddings already attached, but callers that only have text can
// wrap a provider implementation to compute them before calling
// AddChunks.
//
// Implementations are expected to be safe for concurrent use; the
// store never serializes calls into a configured provider.
type EmbeddingProvider interface {
	// Embed returns one vector per input text, in the same order.
	// A provider that cannot embed a given text returns an error for
	// the whole batch rather than a partial result. purpose lets a
	// provider use a different embedding path for documents than for
	// queries.
	Embed(ctx context.Context, texts []string, purpose Purpose) ([][]float64, error)

	// Dimension reports the fixed vector length this provider
	// produces, so callers can validate before the first chunk is
	// inserted into a library.
	Dimension() int
}
