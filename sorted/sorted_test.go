package sorted_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/intel/forGoSearch/internal/testutil"
	"github.com/intel/forGoSearch/sorted"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("CopiesInput", func(t *testing.T) {
		values := []int{1, 2, 2, 9}
		a, err := sorted.New(values)
		require.NoError(t, err)
		values[0] = 100
		assert.Equal(t, 1, a.At(0))
		assert.Equal(t, 4, a.Len())

		out := a.Values()
		out[1] = -5
		assert.Equal(t, 2, a.At(1))
	})

	t.Run("RejectsUnsorted", func(t *testing.T) {
		_, err := sorted.New([]int{1, 3, 2, 4})
		var ue *sorted.UnsortedError
		require.True(t, errors.As(err, &ue))
		assert.Equal(t, 2, ue.Index)
		assert.Equal(t, "3", ue.Previous)
		assert.Equal(t, "2", ue.Value)
	})

	t.Run("Empty", func(t *testing.T) {
		a, err := sorted.New[int](nil)
		require.NoError(t, err)
		assert.Zero(t, a.Len())
	})

	t.Run("Trusted", func(t *testing.T) {
		a := sorted.Trusted([]uint16{3, 4})
		assert.Equal(t, uint16(4), a.At(1))
	})
}

func TestRead(t *testing.T) {
	t.Run("Reference", func(t *testing.T) {
		var b strings.Builder
		for i, v := range testutil.Reference() {
			if i%7 == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString(" \t")
			}
			b.WriteString(strconv.Itoa(v))
		}
		a, err := sorted.Read[int](strings.NewReader(b.String()), sorted.DefaultSize)
		require.NoError(t, err)
		assert.Equal(t, testutil.Reference(), a.Values())
	})

	t.Run("IgnoresTrailingInput", func(t *testing.T) {
		a, err := sorted.Read[int](strings.NewReader("1 2 3 garbage"), 3)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, a.Values())
	})

	t.Run("ReadsAll", func(t *testing.T) {
		a, err := sorted.Read[int64](strings.NewReader("-4\n-4\n0\n12\n"), 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{-4, -4, 0, 12}, a.Values())
	})

	t.Run("ShortInput", func(t *testing.T) {
		_, err := sorted.Read[int](strings.NewReader("1 2 3"), 100)
		assert.ErrorIs(t, err, sorted.ErrShortInput)
		assert.ErrorIs(t, err, sorted.ErrDataUnavailable)
	})

	t.Run("BadToken", func(t *testing.T) {
		_, err := sorted.Read[int](strings.NewReader("1 2 x3 4"), 4)
		var pe *sorted.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 2, pe.Index)
		assert.Equal(t, "x3", pe.Token)
		assert.ErrorIs(t, err, sorted.ErrDataUnavailable)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := sorted.Read[int8](strings.NewReader("1 300"), 2)
		assert.ErrorIs(t, err, strconv.ErrRange)

		_, err = sorted.Read[uint](strings.NewReader("1 -3"), 2)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("Unsorted", func(t *testing.T) {
		_, err := sorted.Read[int](strings.NewReader("5 4"), 2)
		var ue *sorted.UnsortedError
		assert.True(t, errors.As(err, &ue))
	})

	t.Run("ReadFailure", func(t *testing.T) {
		_, err := sorted.Read[int](iotest.ErrReader(iotest.ErrTimeout), 1)
		assert.ErrorIs(t, err, iotest.ErrTimeout)
		assert.ErrorIs(t, err, sorted.ErrDataUnavailable)
	})
}
