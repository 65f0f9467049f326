package gsync_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/intel/forGoSearch/config"
	"github.com/intel/forGoSearch/gsync"
	"github.com/intel/forGoSearch/interpolation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot(t *testing.T) {
	t.Run("Initial", func(t *testing.T) {
		index, writes := gsync.NewSlot(config.LastWriterWins).Load()
		assert.Equal(t, interpolation.NotFound, index)
		assert.Zero(t, writes)
	})

	t.Run("Policies", func(t *testing.T) {
		cases := []struct {
			policy config.MergePolicy
			want   int
			stored []bool
		}{
			{config.LastWriterWins, 3, []bool{true, true, true}},
			{config.FirstWriterWins, 7, []bool{true, false, false}},
			{config.LowestIndexWins, 2, []bool{true, true, false}},
		}
		for _, c := range cases {
			t.Run(c.policy.String(), func(t *testing.T) {
				s := gsync.NewSlot(c.policy)
				var stored []bool
				for _, i := range []int{7, 2, 3} {
					stored = append(stored, s.Store(i))
				}
				index, writes := s.Load()
				assert.Equal(t, c.want, index)
				assert.Equal(t, 3, writes)
				assert.Equal(t, c.stored, stored)
			})
		}
	})

	t.Run("Concurrent", func(t *testing.T) {
		s := gsync.NewSlot(config.LowestIndexWins)
		var wg sync.WaitGroup
		for i := 100; i > 0; i-- {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Store(i)
			}()
		}
		wg.Wait()
		index, writes := s.Load()
		assert.Equal(t, 1, index)
		assert.Equal(t, 100, writes)
	})
}

func TestFuture(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		f := gsync.NewFuture[int]()
		go f.Complete(42)
		v, err := f.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		f.Complete(7)
		v, _ = f.Wait(context.Background())
		assert.Equal(t, 42, v)
	})

	t.Run("Fail", func(t *testing.T) {
		f := gsync.NewFuture[int]()
		f.Fail("boom")
		assert.PanicsWithValue(t, "boom", func() { _, _ = f.Wait(context.Background()) })
	})

	t.Run("Canceled", func(t *testing.T) {
		f := gsync.NewFuture[string]()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := f.Wait(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		select {
		case <-f.Done():
			t.Fatal("future completed without a value")
		default:
		}
	})
}
