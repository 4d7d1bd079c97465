// Package position computes gap-based order keys for items inside a container.
//
// Keys are float64 and only their relative order is meaningful. A new key is
// derived from the immediate neighbours of the insertion slot, so inserting
// never rewrites sibling keys. Repeated midpoint insertion between the same
// two neighbours halves the gap each time and eventually exhausts float64
// precision; Exhausted reports that case and Resequence renumbers a whole
// sequence when a caller chooses to rebalance.
package position

import "math"

const (
	// Baseline is the key of the first item in an empty container and the
	// gap used when extending the tail.
	Baseline = 1000.0

	// DefaultGap is the spacing used by Resequence.
	DefaultGap = 1000.0
)

// Allocate returns a key for an item inserted between before and after.
// A nil bound means there is no neighbour on that side.
func Allocate(before, after *float64) float64 {
	switch {
	case before == nil && after == nil:
		return Baseline
	case before == nil:
		if *after <= 0 {
			return *after - Baseline
		}
		return *after / 2
	case after == nil:
		return *before + Baseline
	default:
		return midpoint(*before, *after)
	}
}

// midpoint halves the gap, or each bound when the gap itself overflows.
func midpoint(a, b float64) float64 {
	if gap := b - a; !math.IsInf(gap, 0) {
		return a + gap/2
	}
	return a/2 + b/2
}

// Exhausted reports whether no float64 strictly between before and after
// exists, i.e. Allocate can no longer separate the two neighbours.
func Exhausted(before, after float64) bool {
	if before >= after {
		return true
	}
	mid := midpoint(before, after)
	return mid <= before || mid >= after
}

// Between returns the key for a new element inserted at index into a
// sequence whose keys are given in ascending order. Index is clamped to
// [0, len(keys)].
func Between(keys []float64, index int) float64 {
	if index < 0 {
		index = 0
	}
	if index > len(keys) {
		index = len(keys)
	}

	var before, after *float64
	if index > 0 {
		before = &keys[index-1]
	}
	if index < len(keys) {
		after = &keys[index]
	}
	return Allocate(before, after)
}

// Resequence returns n evenly spaced keys, (i+1)*gap for i in [0, n).
// Numbering starts at gap rather than zero so the head keeps room for
// Allocate's after/2 rule.
func Resequence(n int, gap float64) []float64 {
	if gap <= 0 || math.IsNaN(gap) || math.IsInf(gap, 0) {
		gap = DefaultGap
	}
	keys := make([]float64, n)
	for i := range keys {
		keys[i] = float64(i+1) * gap
	}
	return keys
}

// Ptr is a small helper for building optional bounds.
func Ptr(v float64) *float64 {
	return &v
}
