package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"alcyxob/fitness-ai/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestReadThrough_ServesFromCacheWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	loads := 0
	c := cache.New(10*time.Minute, func(_ context.Context, key string) (int, error) {
		loads++
		return len(key) * loads, nil
	}, cache.WithClock(clock))

	ctx := context.Background()
	v, err := c.Get(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	clock.Advance(9 * time.Minute)
	v, err = c.Get(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, loads)

	clock.Advance(time.Minute)
	v, err = c.Get(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, 6, v)
	assert.Equal(t, 2, loads)
}

func TestReadThrough_LoadErrorIsNotCached(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	fail := true
	c := cache.New(time.Minute, func(context.Context, string) (string, error) {
		if fail {
			return "", errors.New("store down")
		}
		return "ok", nil
	}, cache.WithClock(clock))

	_, err := c.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Zero(t, c.Len())

	fail = false
	v, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestReadThrough_Invalidate(t *testing.T) {
	loads := 0
	c := cache.New(time.Hour, func(context.Context, int) (int, error) {
		loads++
		return loads, nil
	})

	ctx := context.Background()
	_, _ = c.Get(ctx, 1)
	c.Invalidate(1)
	v, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestReadThrough_ConcurrentColdKeyLoadsOnce(t *testing.T) {
	var mu sync.Mutex
	loads := 0
	c := cache.New(time.Hour, func(context.Context, string) (int, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		return 42, nil
	})

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get(context.Background(), "k")
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, loads)
}

func TestReadThrough_SlowLoadDoesNotBlockOtherKeys(t *testing.T) {
	release := make(chan struct{})
	c := cache.New(time.Hour, func(_ context.Context, key string) (string, error) {
		if key == "slow" {
			<-release
		}
		return "value:" + key, nil
	})

	ctx := context.Background()
	_, err := c.Get(ctx, "warm")
	require.NoError(t, err)

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		v, err := c.Get(ctx, "slow")
		assert.NoError(t, err)
		assert.Equal(t, "value:slow", v)
	}()

	hit := make(chan string, 1)
	go func() {
		v, _ := c.Get(ctx, "warm")
		hit <- v
	}()

	select {
	case v := <-hit:
		assert.Equal(t, "value:warm", v)
	case <-time.After(2 * time.Second):
		t.Fatal("cached key was blocked by an unrelated load")
	}
	close(release)
	<-slowDone
}

type entry struct {
	Name    string   `json:"name"`
	Muscles []string `json:"muscles"`
}

func TestReadThrough_StructValues(t *testing.T) {
	loads := 0
	c := cache.New(time.Minute, func(context.Context, string) ([]entry, error) {
		loads++
		return []entry{{Name: "Squat", Muscles: []string{"Quadriceps"}}}, nil
	}, cache.WithSizeMB(1))

	ctx := context.Background()
	first, err := c.Get(ctx, "all")
	require.NoError(t, err)
	second, err := c.Get(ctx, "all")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loads)
	assert.Equal(t, 1, c.Len())
}
