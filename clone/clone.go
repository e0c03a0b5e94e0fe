// Package clone produces structurally independent copies of nested values,
// used wherever snapshot-for-diffing or undo semantics are required.
package clone

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Value returns a deep copy of a value built from maps, slices, and
// primitives. The copy shares no ownership with the input and is safe to
// mutate independently. Unknown types are copied via a JSON round trip;
// values that cannot round-trip clone to nil.
func Value(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Value(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	default:
		out, err := roundTrip(v)
		if err != nil {
			// Non-JSON-safe input is outside the supported shapes. Returning
			// the input would alias it, breaking the no-shared-ownership
			// contract, so unsupported values clone to nil.
			return nil
		}
		return out
	}
}

// Of returns a deep copy of a typed snapshot via serialize/deserialize.
// Supported shapes are JSON-safe structs and collections; the error reports
// anything else.
func Of[T any](v T) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("clone: marshal: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("clone: unmarshal: %w", err)
	}
	return out, nil
}

// MustOf is Of for values known to be JSON-safe, such as the entity types in
// this module. It panics on marshal failure, which cannot happen for
// supported shapes.
func MustOf[T any](v T) T {
	out, err := Of(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Equal reports whether two values have identical deep structure. Typed
// snapshots are compared through the same JSON normalization used by Of, so a
// nil slice and an empty slice compare the way they serialize.
func Equal(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(aj) == string(bj)
}

func roundTrip(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
