// Package testutil provides fixtures shared by the tests of the search
// packages.
package testutil

import (
	"math/rand/v2"
	"slices"
)

// ReferenceKey is the target of the reference configuration; it sits at
// ReferenceIndex in Reference().
const (
	ReferenceKey   = 77
	ReferenceIndex = 42
	ReferenceSize  = 100
)

// Reference returns 100 distinct ascending integers, 2*i - 7 for i in
// [0, 100), so that 77 is at index 42.
func Reference() []int {
	values := make([]int, ReferenceSize)
	for i := range values {
		values[i] = 2*i - 7
	}
	return values
}

// RandomSorted returns n non-decreasing integers drawn from [lo, hi].
func RandomSorted(rng *rand.Rand, n, lo, hi int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = lo + rng.IntN(hi-lo+1)
	}
	slices.Sort(values)
	return values
}

// Absent returns values in [lo-2, hi+2] that do not occur in sorted.
func Absent(sorted []int, lo, hi int) []int {
	var out []int
	for v := lo - 2; v <= hi+2; v++ {
		if _, found := slices.BinarySearch(sorted, v); !found {
			out = append(out, v)
		}
	}
	return out
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
