package schema

import (
	"fmt"
)

// Item is one record of a collection: arbitrary fields around a mandatory
// "id". Items are transient copies of server state, merged in place after a
// confirmed mutation.
type Item = map[string]any

// Value walks the path through nested maps, reporting ok=false on any
// missing segment instead of panicking.
func Value(item Item, path []string) (any, bool) {
	if item == nil || len(path) == 0 {
		return nil, false
	}

	var current any = item
	for _, segment := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// SetValue writes a value at path, creating intermediate maps as needed. A
// non-map intermediate value is replaced; drafts own their nested shape.
func SetValue(item Item, path []string, value any) {
	if item == nil || len(path) == 0 {
		return
	}

	node := item
	for _, segment := range path[:len(path)-1] {
		next, ok := node[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[segment] = next
		}
		node = next
	}
	node[path[len(path)-1]] = value
}

// ItemID returns the record's id claim.
func ItemID(item Item) (any, bool) {
	id, ok := item["id"]
	if !ok || id == nil {
		return nil, false
	}
	return id, true
}

// SameID compares two id values loosely: the wire may deliver the same
// numeric id as int, int64 or float64 depending on the decode path.
func SameID(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// IsEmpty reports whether a draft value fails a required-presence check.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

// Merge shallow-merges src over dst, returning dst.
func Merge(dst, src Item) Item {
	if dst == nil {
		dst = make(Item, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

// Clone copies an item one level deep.
func Clone(item Item) Item {
	if item == nil {
		return nil
	}
	out := make(Item, len(item))
	for key, value := range item {
		out[key] = value
	}
	return out
}

// Compare is the null-safe default column comparator: missing values sort
// last, numbers numerically, everything else by string form.
func Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	na, aIsNum := toFloat(a)
	nb, bIsNum := toFloat(b)
	if aIsNum && bIsNum {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}

	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
