package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetOrBuild(t *testing.T) {
	cache := NewCache[*row](time.Minute)
	var builds atomic.Int32

	build := func(context.Context) (*row, error) {
		builds.Add(1)
		return &row{id: 1}, nil
	}

	first, err := cache.GetOrBuild(context.Background(), "k", build)
	require.NoError(t, err)
	second, err := cache.GetOrBuild(context.Background(), "k", build)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), builds.Load())

	cache.Invalidate("k")
	_, err = cache.GetOrBuild(context.Background(), "k", build)
	require.NoError(t, err)
	assert.Equal(t, int32(2), builds.Load())
}

func TestCache_Expiry(t *testing.T) {
	cache := NewCache[int](time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	calls := 0
	build := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, _ := cache.GetOrBuild(context.Background(), "k", build)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	v, _ = cache.GetOrBuild(context.Background(), "k", build)
	assert.Equal(t, 2, v)
}

func TestCache_PrunesExpiredEntries(t *testing.T) {
	cache := NewCache[int](time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	build := func(context.Context) (int, error) { return 1, nil }

	_, _ = cache.GetOrBuild(context.Background(), "meet.mdb@1", build)
	now = now.Add(2 * time.Minute)
	_, _ = cache.GetOrBuild(context.Background(), "meet.mdb@2", build)

	assert.Len(t, cache.entries, 1)
	assert.Contains(t, cache.entries, "meet.mdb@2")
}

func TestCache_BuildError(t *testing.T) {
	cache := NewCache[int](time.Minute)

	_, err := cache.GetOrBuild(context.Background(), "k", func(context.Context) (int, error) {
		return 0, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	v, err := cache.GetOrBuild(context.Background(), "k", func(context.Context) (int, error) {
		return 5, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestCache_ConcurrentMissesShareBuild(t *testing.T) {
	cache := NewCache[int](time.Minute)
	var builds atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cache.GetOrBuild(context.Background(), "k", func(context.Context) (int, error) {
				builds.Add(1)
				<-release
				return 1, nil
			})
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, builds.Load(), int32(2))
}
