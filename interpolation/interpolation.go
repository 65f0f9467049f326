// Package interpolation provides the sequential interpolation search that
// every parallel strategy in forGoSearch runs on its share of the array.
package interpolation

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// NotFound is the index reported when the key does not occur in the searched
// range.
const NotFound = -1

// A Sequence is a read-only, non-decreasing sequence of integers.
type Sequence[T constraints.Integer] interface {
	Len() int
	At(i int) T
}

// Slice adapts a plain slice to the Sequence interface. The slice must be
// sorted in non-decreasing order and must not be modified during a search.
type Slice[T constraints.Integer] []T

func (s Slice[T]) Len() int { return len(s) }

func (s Slice[T]) At(i int) T { return s[i] }

// A ProbeFunc computes the probe position for the inclusive range [l, r]. It
// is only called with l < r and seq.At(l) < seq.At(r), and must return an
// index within [l, r].
type ProbeFunc func(l, r int) (int, error)

// Probe estimates where key lies in [l, r] by linear interpolation between
// the endpoint values, truncating toward zero. If both endpoints hold the
// same value there is nothing to interpolate and Probe returns l.
//
// Differences are taken in float64 so that ranges spanning more than the
// element type can represent do not overflow. The result is clamped to
// [l, r].
func Probe[T constraints.Integer](seq Sequence[T], l, r int, key T) int {
	lo, hi := seq.At(l), seq.At(r)
	if lo == hi {
		return l
	}
	span := float64(hi) - float64(lo)
	offset := float64(key) - float64(lo)
	pos := l + int(float64(r-l)/span*offset)
	switch {
	case pos < l:
		return l
	case pos > r:
		return r
	}
	return pos
}

// Search looks for key in the inclusive range [l, r] of seq and returns its
// index, or NotFound.
//
// The loop only runs while key lies between seq.At(l) and seq.At(r). A range
// that is out of bounds, inverted, or whose values do not bracket key yields
// NotFound.
func Search[T constraints.Integer](seq Sequence[T], l, r int, key T) int {
	index, _, _ := Loop(seq, l, r, key, func(l, r int) (int, error) {
		return Probe(seq, l, r, key), nil
	})
	return index
}

// Loop is Search with the probe computation delegated to probe. It returns
// the index found (or NotFound), the number of probes computed, and the
// first error returned by probe, which stops the loop.
//
// Loop panics if probe returns an index outside [l, r].
func Loop[T constraints.Integer](
	seq Sequence[T],
	l, r int,
	key T,
	probe ProbeFunc,
) (index, probes int, err error) {
	if l < 0 || r >= seq.Len() {
		return NotFound, 0, nil
	}
	for l <= r {
		lo, hi := seq.At(l), seq.At(r)
		if key < lo || key > hi {
			break
		}
		// Equal endpoints mean key == lo == hi given the guard above, so the
		// range needs no probe and the interpolation would divide by zero.
		if l == r || lo == hi {
			return l, probes, nil
		}
		var pos int
		pos, err = probe(l, r)
		probes++
		if err != nil {
			return NotFound, probes, err
		}
		if pos < l || pos > r {
			panic(fmt.Sprintf("probe position %v outside range [%v, %v]", pos, l, r))
		}
		switch v := seq.At(pos); {
		case v == key:
			return pos, probes, nil
		case v < key:
			l = pos + 1
		default:
			r = pos - 1
		}
	}
	return NotFound, probes, nil
}
