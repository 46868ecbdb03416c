// Package filter implements the metadata predicate evaluator: a
// conjunction of clauses over a chunk's (and its parent document's)
// scalar metadata map. A closed three-form tagged variant (Eq, In,
// Range) rather than a recursive AND/OR/string-parsed expression tree,
// since the query surface this evaluator needs to serve never
// requires boolean composition beyond a conjunction of per-field
// clauses.
package filter

import "github.com/yezz123/vectorai/pkg/entity"

// Kind selects which predicate form a Clause uses.
type Kind int

const (
	// Eq holds iff the field equals a scalar exactly (same Kind, same value).
	Eq Kind = iota
	// In holds iff the field equals any member of a scalar set.
	In
	// Range holds iff the field's value falls within [Lo, Hi] inclusive.
	// Omitting Lo or Hi leaves that side open.
	Range
)

// Clause is a single predicate on one metadata field.
type Clause struct {
	Kind Kind

	// Eq
	Value entity.Value

	// In
	Set []entity.Value

	// Range
	Lo, Hi *entity.Value

	// AllowNull lets the clause hold when the field is absent from
	// both the chunk and document metadata maps. Default (false)
	// means a missing field fails the predicate.
	AllowNull bool
}

// EqClause builds an equality clause.
func EqClause(v entity.Value) Clause { return Clause{Kind: Eq, Value: v} }

// InClause builds a membership clause.
func InClause(vs ...entity.Value) Clause { return Clause{Kind: In, Set: vs} }

// RangeClause builds an inclusive range clause. Pass nil for an open bound.
func RangeClause(lo, hi *entity.Value) Clause { return Clause{Kind: Range, Lo: lo, Hi: hi} }

// Filter is a conjunction of clauses keyed by field name.
type Filter map[string]Clause

// Match reports whether every clause in f holds against the chunk
// metadata, falling back to the document metadata when a field is
// absent from the chunk map (chunk keys shadow document keys).
func Match(f Filter, chunkMeta, docMeta entity.Metadata) bool {
	for field, clause := range f {
		v, ok := lookup(field, chunkMeta, docMeta)
		if !ok {
			if clause.AllowNull {
				continue
			}
			return false
		}
		if !holds(clause, v) {
			return false
		}
	}
	return true
}

func lookup(field string, chunkMeta, docMeta entity.Metadata) (entity.Value, bool) {
	if chunkMeta != nil {
		if v, ok := chunkMeta[field]; ok {
			return v, true
		}
	}
	if docMeta != nil {
		if v, ok := docMeta[field]; ok {
			return v, true
		}
	}
	return entity.Value{}, false
}

func holds(c Clause, v entity.Value) bool {
	switch c.Kind {
	case Eq:
		return v.Equal(c.Value)
	case In:
		for _, cand := range c.Set {
			if v.Equal(cand) {
				return true
			}
		}
		return false
	case Range:
		if c.Lo != nil {
			cmp, ok := v.Compare(*c.Lo)
			if !ok || cmp < 0 {
				return false
			}
		}
		if c.Hi != nil {
			cmp, ok := v.Compare(*c.Hi)
			if !ok || cmp > 0 {
				return false
			}
		}
		return true
	default:
		return false
	}
}
