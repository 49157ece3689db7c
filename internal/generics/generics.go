// Package generics implements generic slice helpers missing from the stdlib.
package generics

import (
	"cmp"
	"slices"
)

// SliceMap executes the given function sequentially for every element on in, and returns a mapped slice.
func SliceMap[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// ArgSortStable returns the indices of values ordered by increasing value.
//
// Equal values keep their relative index order, so the result is deterministic: for
// values {1, 0, 1} it returns {1, 0, 2}.
func ArgSortStable[T cmp.Ordered](values []T) []int {
	indices := make([]int, len(values))
	for ii := range indices {
		indices[ii] = ii
	}
	slices.SortStableFunc(indices, func(a, b int) int {
		return cmp.Compare(values[a], values[b])
	})
	return indices
}
