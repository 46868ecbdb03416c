package entity

import "fmt"

// Kind tags which scalar type a Value holds. Metadata maps are
// restricted to these four scalar kinds: string, integer, real,
// boolean. Avoiding interface{}/any comparisons here keeps predicate
// evaluation in pkg/filter free of stringly-typed surprises.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a tagged scalar metadata value.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// String constructs a string-kinded Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int constructs an int-kinded Value.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float constructs a float-kinded Value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Bool constructs a bool-kinded Value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Equal reports whether v and o hold the same kind and scalar value.
// Int and Float never compare equal across kinds even when
// numerically identical — the filter evaluator treats kind mismatch
// as "predicate does not hold" rather than attempting coercion.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindBool:
		return v.Bool == o.Bool
	default:
		return false
	}
}

// numeric reports whether v can participate in an ordered range
// comparison, and its float64 projection.
func (v Value) numeric() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Compare returns -1, 0, 1 comparing v to o. Strings compare
// lexicographically, numerics (Int/Float) compare across kinds by
// numeric value, and Bool is not orderable (ok is false). Mismatched
// non-numeric kinds are not orderable either.
func (v Value) Compare(o Value) (result int, ok bool) {
	if v.Kind == KindString && o.Kind == KindString {
		switch {
		case v.Str < o.Str:
			return -1, true
		case v.Str > o.Str:
			return 1, true
		default:
			return 0, true
		}
	}
	vn, vok := v.numeric()
	on, ook := o.numeric()
	if vok && ook {
		switch {
		case vn < on:
			return -1, true
		case vn > on:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return ""
	}
}

// Metadata is a schemaless scalar map attached to documents and chunks.
type Metadata map[string]Value

// Clone returns a shallow copy of m (Value is itself a plain struct,
// so a shallow copy is a deep copy for our purposes).
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
