package sorted

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/constraints"
)

// ParseError reports a token that is not an integer of the element type.
type ParseError struct {
	Index int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("element %d: cannot parse %q: %v", e.Index, e.Token, e.Err)
}

// Unwrap returns both the parse failure and ErrDataUnavailable, so callers
// can test for either.
func (e *ParseError) Unwrap() []error { return []error{e.Err, ErrDataUnavailable} }

// Scanner reads whitespace-delimited integers from a stream.
type Scanner[T constraints.Integer] struct {
	*bufio.Scanner
	index int
	value T
	err   error
}

// NewScanner returns a Scanner reading from r.
func NewScanner[T constraints.Integer](r io.Reader) *Scanner[T] {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &Scanner[T]{Scanner: s}
}

// Next advances to the next integer. It returns false at the end of the input
// or on the first error, which is then available from Err.
func (s *Scanner[T]) Next() bool {
	if s.err != nil || !s.Scan() {
		return false
	}
	v, err := parse[T](s.Text())
	if err != nil {
		s.err = &ParseError{Index: s.index, Token: s.Text(), Err: err}
		return false
	}
	s.value = v
	s.index++
	return true
}

// Value returns the integer read by the last successful call to Next.
func (s *Scanner[T]) Value() T { return s.value }

// Err returns the first parse or read error.
func (s *Scanner[T]) Err() error {
	if s.err != nil {
		return s.err
	}
	if err := s.Scanner.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	return nil
}

// Read loads exactly n integers from r into an Array. If n <= 0, Read loads
// everything up to the end of r. Input beyond the first n integers is
// ignored. The result is checked for order like New does.
func Read[T constraints.Integer](r io.Reader, n int) (Array[T], error) {
	s := NewScanner[T](r)
	var values []T
	if n > 0 {
		values = make([]T, 0, n)
	}
	for (n <= 0 || len(values) < n) && s.Next() {
		values = append(values, s.Value())
	}
	if err := s.Err(); err != nil {
		return Array[T]{}, err
	}
	if n > 0 && len(values) < n {
		return Array[T]{}, fmt.Errorf("%w: read %d of %d elements", ErrShortInput, len(values), n)
	}
	return New(values)
}

func parse[T constraints.Integer](token string) (T, error) {
	var zero T
	if zero-1 < zero {
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return zero, err
		}
		if int64(T(v)) != v {
			return zero, strconv.ErrRange
		}
		return T(v), nil
	}
	u, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return zero, err
	}
	if uint64(T(u)) != u {
		return zero, strconv.ErrRange
	}
	return T(u), nil
}
