package pool_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/intel/forGoSearch/config"
	"github.com/intel/forGoSearch/gsync"
	"github.com/intel/forGoSearch/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleSubmit() {
	p, _ := pool.New(4)
	defer p.Close()

	f, _ := pool.Submit(context.Background(), p, func() int { return 6 * 7 })
	v, _ := f.Wait(context.Background())
	fmt.Println(v)

	// Output:
	// 42
}

func TestNew(t *testing.T) {
	_, err := pool.New(0)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	p, err := pool.New(3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Workers())
	p.Close()
}

func TestSubmitBoundsConcurrency(t *testing.T) {
	const workers = 3
	p, err := pool.New(workers)
	require.NoError(t, err)
	defer p.Close()

	var running, peak atomic.Int32
	ctx := context.Background()
	futures := make([]*gsync.Future[int], 0, 30)
	for i := 0; i < 30; i++ {
		f, err := pool.Submit(ctx, p, func() int {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
			return i
		})
		require.NoError(t, err)
		futures = append(futures, f)
	}
	for i, f := range futures {
		v, err := f.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.LessOrEqual(t, peak.Load(), int32(workers))
}

func TestSubmitCanceledWhileSaturated(t *testing.T) {
	p, err := pool.New(1)
	require.NoError(t, err)

	release := make(chan struct{})
	_, err = pool.Submit(context.Background(), p, func() struct{} {
		<-release
		return struct{}{}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = pool.Submit(ctx, p, func() int { return 1 })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	p.Close()
}

func TestSubmitAfterClose(t *testing.T) {
	p, err := pool.New(2)
	require.NoError(t, err)
	p.Close()
	p.Close()

	_, err = pool.Submit(context.Background(), p, func() int { return 1 })
	assert.ErrorIs(t, err, pool.ErrClosed)
}

func TestSubmitPanics(t *testing.T) {
	p, err := pool.New(2)
	require.NoError(t, err)
	defer p.Close()

	f, err := pool.Submit(context.Background(), p, func() int { panic("probe failed") })
	require.NoError(t, err)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Contains(t, fmt.Sprint(r), "probe failed")
	}()
	_, _ = f.Wait(context.Background())
}

func TestCloseWaitsForTasks(t *testing.T) {
	p, err := pool.New(4)
	require.NoError(t, err)

	var done atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = pool.Submit(context.Background(), p, func() bool {
				time.Sleep(2 * time.Millisecond)
				done.Add(1)
				return true
			})
		}()
	}
	wg.Wait()
	p.Close()
	assert.Equal(t, int32(8), done.Load())
}
