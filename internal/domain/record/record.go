// Package record defines the nested document representation and the
// flattening step that turns it into comparable field paths.
package record

import (
	"sort"
	"strings"
)

// Separator joins key segments into a field path, e.g. "person.address.city".
const Separator = "."

// Record is an arbitrarily nested mapping from keys to scalar leaves or
// nested records. It is the decoded form of a gold or prediction JSON
// document.
type Record map[string]any

// FlatMap maps a dot-joined field path to its scalar value.
type FlatMap map[string]any

// Flatten converts a nested record into a flat field map. Nested maps extend
// the path with a separator; scalar leaves bind the accumulated path. Keys of
// empty nested records vanish entirely rather than mapping to a placeholder.
func Flatten(r Record) FlatMap {
	out := make(FlatMap, len(r))
	flattenInto(out, "", r)
	return out
}

func flattenInto(out FlatMap, prefix string, r Record) {
	for key, value := range r {
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(out, path, nested)
			continue
		}
		out[path] = value
	}
}

// NormalizeKeys returns a copy of the flat map with literal spaces in field
// paths replaced by underscores. Gold and prediction sources tokenize
// multi-word keys differently, so paths must agree before comparison.
func (m FlatMap) NormalizeKeys() FlatMap {
	out := make(FlatMap, len(m))
	for path, value := range m {
		out[strings.ReplaceAll(path, " ", "_")] = value
	}
	return out
}

// WithoutPrefix returns a copy of the flat map with every path under prefix
// removed. Used to drop metadata paths, which describe provenance rather
// than document content.
func (m FlatMap) WithoutPrefix(prefix string) FlatMap {
	out := make(FlatMap, len(m))
	for path, value := range m {
		if strings.HasPrefix(path, prefix) {
			continue
		}
		out[path] = value
	}
	return out
}

// Paths returns the field paths of the flat map in lexicographic order.
func (m FlatMap) Paths() []string {
	paths := make([]string, 0, len(m))
	for path := range m {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
