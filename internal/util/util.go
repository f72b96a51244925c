package util

import (
	"sort"
	"time"
)

func TimePtr(t time.Time) *time.Time {
	return &t
}

// SortedMapKeys returns the keys of m in ascending order. Date-keyed maps
// use YYYY-MM-DD keys, so this is also chronological.
func SortedMapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
