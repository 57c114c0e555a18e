package schema

import (
	"strconv"
	"strings"
)

// Document is a decoded object being validated. It resolves references for
// comparison bounds using dotted paths: "limits.max", "items.0.price" and
// "items[0].price" are all accepted.
type Document map[string]any

// Lookup returns the value at path and whether it exists.
func (d Document) Lookup(path string) (any, bool) {
	if d == nil || path == "" {
		return nil, false
	}
	var current any = map[string]any(d)
	for _, part := range splitPath(path) {
		next, ok := step(current, part)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func step(current any, key string) (any, bool) {
	switch node := current.(type) {
	case map[string]any:
		v, ok := node[key]
		return v, ok
	case Document:
		v, ok := node[key]
		return v, ok
	case map[any]any:
		v, ok := node[key]
		return v, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(node) {
			return nil, false
		}
		return node[i], true
	default:
		return nil, false
	}
}

// splitPath turns "items[0].price" into ["items", "0", "price"].
func splitPath(path string) []string {
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
