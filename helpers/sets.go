package helpers

import (
	"sort"

	"golang.org/x/exp/maps"
)

// SliceToLookup builds a set from a slice of names.
func SliceToLookup(names []string) map[string]struct{} {
	lookup := make(map[string]struct{}, len(names))
	for _, n := range names {
		lookup[n] = struct{}{}
	}
	return lookup
}

// MissingFrom returns the keys of want which are not present in have, sorted.
func MissingFrom(want, have map[string]struct{}) []string {
	missing := make(map[string]struct{})
	for k := range want {
		if _, ok := have[k]; !ok {
			missing[k] = struct{}{}
		}
	}
	res := maps.Keys(missing)
	sort.Strings(res)
	return res
}
