// Package multisort implements ordered multi-column sort state: a URL-encoded
// representation, the click-to-sort-state transition (with shift stacking),
// and a stable multi-key comparator. The order of keys encodes priority; the
// first key is primary.
package multisort

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Direction of a single sort key.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Key is one column/direction pair in the ordered sort list.
type Key struct {
	Column    string
	Direction Direction
}

// Parse decodes the URL query representation: a comma-separated list of
// "column:direction" tokens, order preserved. Malformed tokens are skipped;
// a missing or unknown direction falls back to ascending.
func Parse(raw string) []Key {
	if raw == "" {
		return nil
	}
	var keys []Key
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		column, dir, _ := strings.Cut(token, ":")
		if column == "" {
			continue
		}
		d := Asc
		if Direction(dir) == Desc {
			d = Desc
		}
		keys = append(keys, Key{Column: column, Direction: d})
	}
	return keys
}

// Encode serializes sort keys back to the URL query representation,
// preserving order. An empty list encodes as the empty string.
func Encode(keys []Key) string {
	if len(keys) == 0 {
		return ""
	}
	tokens := make([]string, len(keys))
	for i, k := range keys {
		tokens[i] = k.Column + ":" + string(k.Direction)
	}
	return strings.Join(tokens, ",")
}

// HandleClick computes the next sort state for a column-header click.
//
// Without shift the gesture replaces: if the column is the sole sort key its
// direction cycles (asc → desc → removed); otherwise the result is a fresh
// single-entry ascending sort on that column. With shift the gesture stacks:
// an existing key cycles in place (asc → desc → removed, later keys shifting
// up in priority), an absent column is appended as the lowest-priority key.
func HandleClick(column string, current []Key, shift bool) []Key {
	if !shift {
		if len(current) == 1 && current[0].Column == column {
			switch current[0].Direction {
			case Asc:
				return []Key{{Column: column, Direction: Desc}}
			default:
				return nil
			}
		}
		return []Key{{Column: column, Direction: Asc}}
	}

	for i, k := range current {
		if k.Column != column {
			continue
		}
		next := make([]Key, 0, len(current))
		next = append(next, current[:i]...)
		if k.Direction == Asc {
			next = append(next, Key{Column: column, Direction: Desc})
		}
		return append(next, current[i+1:]...)
	}
	next := make([]Key, 0, len(current)+1)
	next = append(next, current...)
	return append(next, Key{Column: column, Direction: Asc})
}

// ValueFunc extracts a column's value from an item for comparison.
type ValueFunc[T any] func(item T, column string) any

// Apply returns the items ordered by the given keys. The sort is stable:
// items equal under every key keep their original relative order, and an
// empty key list returns the items in insertion order. Columns named in
// numericColumns compare as numbers; all others compare case-insensitively as
// strings. A descending key inverts only that key's comparison, so multi-key
// tie-breaking stays correct.
func Apply[T any](items []T, keys []Key, value ValueFunc[T], numericColumns map[string]bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	if len(keys) == 0 {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, k := range keys {
			cmp := compare(value(out[i], k.Column), value(out[j], k.Column), numericColumns[k.Column])
			if cmp == 0 {
				continue
			}
			if k.Direction == Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return out
}

func compare(a, b any, numeric bool) int {
	if numeric {
		fa, okA := toFloat(a)
		fb, okB := toFloat(b)
		if okA && okB {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
		// Unparseable values fall through to string comparison.
	}
	sa := strings.ToLower(toString(a))
	sb := strings.ToLower(toString(b))
	return strings.Compare(sa, sb)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
