package entity

import (
	"encoding/json"
	"fmt"
)

// valueJSON is the wire shape for a tagged Value: a kind discriminator
// plus a single typed field, so the snapshot codec (pkg/snapshot)
// round-trips full floating-point precision without needing a bespoke
// binary format.
type valueJSON struct {
	Kind  string   `json:"kind"`
	Str   *string  `json:"str,omitempty"`
	Int   *int64   `json:"int,omitempty"`
	Float *float64 `json:"float,omitempty"`
	Bool  *bool    `json:"bool,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var j valueJSON
	j.Kind = v.Kind.String()
	switch v.Kind {
	case KindString:
		j.Str = &v.Str
	case KindInt:
		j.Int = &v.Int
	case KindFloat:
		j.Float = &v.Float
	case KindBool:
		j.Bool = &v.Bool
	default:
		return nil, fmt.Errorf("entity: cannot marshal value of unknown kind %v", v.Kind)
	}
	return json.Marshal(j)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var j valueJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	switch j.Kind {
	case "string":
		v.Kind = KindString
		if j.Str != nil {
			v.Str = *j.Str
		}
	case "int":
		v.Kind = KindInt
		if j.Int != nil {
			v.Int = *j.Int
		}
	case "float":
		v.Kind = KindFloat
		if j.Float != nil {
			v.Float = *j.Float
		}
	case "bool":
		v.Kind = KindBool
		if j.Bool != nil {
			v.Bool = *j.Bool
		}
	default:
		return fmt.Errorf("entity: cannot unmarshal value of unknown kind %q", j.Kind)
	}
	return nil
}
