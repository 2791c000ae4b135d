package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPool_RunsTasksConcurrently(t *testing.T) {
	pool := New(4, 8, zap.NewNop())
	defer pool.Shutdown()

	var running, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		require.True(t, pool.Submit(context.Background(), func() {
			defer wg.Done()
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(50 * time.Millisecond)
			atomic.AddInt32(&running, -1)
		}))
	}
	wg.Wait()

	assert.Greater(t, atomic.LoadInt32(&peak), int32(1))
}

func TestGo_PreservesSubmissionOrderForResults(t *testing.T) {
	pool := New(3, 8, zap.NewNop())
	defer pool.Shutdown()

	futures := make([]*Future[int], 7)
	for i := range futures {
		i := i
		futures[i] = Go(context.Background(), pool, func() int {
			// later submissions finish first
			time.Sleep(time.Duration(7-i) * 5 * time.Millisecond)
			return i * 10
		})
	}

	for i, f := range futures {
		assert.Equal(t, i*10, f.Wait())
	}
}

func TestGo_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	pool := New(1, 1, zap.New(core))
	defer pool.Shutdown()

	f := Go(context.Background(), pool, func() string { panic("boom") })

	assert.Equal(t, "", f.Wait())

	// the single worker survives the panic and has logged it before taking the next task
	assert.Equal(t, "ok", Go(context.Background(), pool, func() string { return "ok" }).Wait())
	assert.Equal(t, 1, logs.FilterMessage("Task panic recovered").Len())
}

func TestGo_RunsInlineAfterShutdown(t *testing.T) {
	pool := New(2, 2, zap.NewNop())
	pool.Shutdown()
	pool.Shutdown()

	assert.False(t, pool.Submit(context.Background(), func() {}))
	assert.Equal(t, 42, Go(context.Background(), pool, func() int { return 42 }).Wait())
}

func TestSubmit_ReturnsWhenContextEndsOnFullQueue(t *testing.T) {
	pool := New(1, 1, zap.NewNop())
	defer pool.Shutdown()

	release := make(chan struct{})
	started := make(chan struct{})
	require.True(t, pool.Submit(context.Background(), func() {
		close(started)
		<-release
	}))
	<-started
	// the only worker is busy, this fills the queue
	require.True(t, pool.Submit(context.Background(), func() {}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	assert.False(t, pool.Submit(ctx, func() {}))
	assert.Less(t, time.Since(start), time.Second)

	// Go falls back to the caller's goroutine
	assert.Equal(t, 7, Go(ctx, pool, func() int { return 7 }).Wait())

	close(release)
}

func TestGo_ResolvesFuturesRacingShutdown(t *testing.T) {
	for round := 0; round < 20; round++ {
		pool := New(2, 4, zap.NewNop())

		var wg sync.WaitGroup
		futures := make(chan *Future[int], 64)
		for i := 0; i < 64; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				futures <- Go(context.Background(), pool, func() int { return i })
			}(i)
		}
		pool.Shutdown()
		wg.Wait()
		close(futures)

		for f := range futures {
			select {
			case <-f.done:
			case <-time.After(time.Second):
				t.Fatalf("future left unresolved after shutdown (round %d)", round)
			}
		}
	}
}
