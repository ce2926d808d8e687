package card

import (
	"cmp"
	"slices"
)

// SortByDistance returns the aircraft in ascending distance order.
// Aircraft without a distance sort after every aircraft with one; ties
// (including among the distance-less) break on ascending hex, so the
// result is a deterministic total order independent of input order.
// The input slice is not modified.
func SortByDistance(list []Aircraft) []Aircraft {
	sorted := slices.Clone(list)
	slices.SortFunc(sorted, compareAircraft)
	return sorted
}

// compareAircraft is a proper three-way comparator: transitive and
// consistent for every pair, which a boolean less-than over nilable
// distances cannot guarantee.
func compareAircraft(a, b Aircraft) int {
	switch {
	case a.Distance == nil && b.Distance == nil:
		return cmp.Compare(a.Hex, b.Hex)
	case a.Distance == nil:
		return 1
	case b.Distance == nil:
		return -1
	}
	if c := cmp.Compare(*a.Distance, *b.Distance); c != 0 {
		return c
	}
	return cmp.Compare(a.Hex, b.Hex)
}
