// Package sorted provides the immutable, non-decreasing integer array that
// the search strategies operate on, and a reader that loads one from a stream
// of whitespace-delimited numbers.
package sorted

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

// DefaultSize is the number of elements in the reference configuration.
const DefaultSize = 100

var (
	// ErrDataUnavailable is wrapped by every error that means the array could
	// not be loaded in full.
	ErrDataUnavailable = errors.New("array data unavailable")

	// ErrShortInput means the input ended before the requested number of
	// elements was read.
	ErrShortInput = fmt.Errorf("%w: short input", ErrDataUnavailable)
)

// UnsortedError reports the first position at which a sequence decreases.
type UnsortedError struct {
	Index    int
	Previous string
	Value    string
}

func (e *UnsortedError) Error() string {
	return fmt.Sprintf("values not sorted: element %d (%s) is smaller than its predecessor (%s)",
		e.Index, e.Value, e.Previous)
}

// Array is an immutable, non-decreasing sequence of integers. The zero value
// is an empty array. Arrays are safe for concurrent use by any number of
// readers.
type Array[T constraints.Integer] struct {
	values []T
}

// New returns an Array holding a copy of values, or an *UnsortedError if
// values is not in non-decreasing order.
func New[T constraints.Integer](values []T) (Array[T], error) {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return Array[T]{}, &UnsortedError{
				Index:    i,
				Previous: fmt.Sprint(values[i-1]),
				Value:    fmt.Sprint(values[i]),
			}
		}
	}
	return Array[T]{values: slices.Clone(values)}, nil
}

// Trusted wraps values without copying or checking the order. The caller
// must guarantee that values is sorted and is never modified afterwards.
func Trusted[T constraints.Integer](values []T) Array[T] {
	return Array[T]{values: values}
}

// Len returns the number of elements.
func (a Array[T]) Len() int { return len(a.values) }

// At returns the element at index i.
func (a Array[T]) At(i int) T { return a.values[i] }

// Values returns a copy of the elements.
func (a Array[T]) Values() []T { return slices.Clone(a.values) }
