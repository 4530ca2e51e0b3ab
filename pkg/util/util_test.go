package util

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := NewPool(3, 4)
	var n atomic.Int32
	for i := 0; i < 20; i++ {
		require.NoError(t, p.Submit(context.Background(), func() { n.Add(1) }))
	}
	p.Close()
	assert.Equal(t, int32(20), n.Load())

	assert.ErrorIs(t, p.Submit(context.Background(), func() {}), ErrPoolClosed)
}

func TestPoolSubmitHonoursContext(t *testing.T) {
	p := NewPool(1, 0)
	block := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Submit(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
	p.Close()
}

func TestLanesKeepOrderPerKey(t *testing.T) {
	l := NewLanes()
	var mu sync.Mutex
	got := map[string][]int{}

	for i := 0; i < 50; i++ {
		for _, key := range []string{"a", "b"} {
			i, key := i, key
			l.Go(key, func() {
				mu.Lock()
				got[key] = append(got[key], i)
				mu.Unlock()
			})
		}
	}
	l.Wait()

	for _, key := range []string{"a", "b"} {
		require.Len(t, got[key], 50)
		for i, v := range got[key] {
			assert.Equal(t, i, v)
		}
	}
	assert.Equal(t, 0, l.Active())
}

func TestLanesRunKeysInParallel(t *testing.T) {
	l := NewLanes()
	release := make(chan struct{})
	done := make(chan struct{})

	l.Go("slow", func() { <-release })
	l.Go("fast", func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fast lane blocked behind slow lane")
	}
	close(release)
	l.Wait()
}
