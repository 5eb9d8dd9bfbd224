// Package cache provides a small keyed read-through cache with a fixed TTL,
// backed by freecache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	megabyte           = 1024 * 1024
	defaultCacheSizeMB = 64
)

// Clock returns the current time. Tests inject a fake one.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// timer exposes a Clock as the second-resolution freecache.Timer.
type timer struct {
	clock Clock
}

func (t timer) Now() uint32 { return uint32(t.clock.Now().Unix()) }

// LoadFunc fetches the value for key when the cached copy is missing or stale.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// ReadThrough caches the result of a LoadFunc per key for ttl. Values are
// stored JSON encoded. A failed load is not cached.
type ReadThrough[K comparable, V any] struct {
	ttlSeconds int
	load       LoadFunc[K, V]
	store      *freecache.Cache
	loads      singleflight.Group
}

type Option func(*options)

type options struct {
	clock  Clock
	sizeMB int
}

// WithClock replaces the wall clock used for expiry.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithSizeMB sets the memory reserved for cached values. A single value may
// use at most 1/1024 of it.
func WithSizeMB(mb int) Option {
	return func(o *options) {
		if mb > 0 {
			o.sizeMB = mb
		}
	}
}

// New returns a cache that fills misses with load and keeps values for ttl,
// rounded down to whole seconds with a one second minimum.
func New[K comparable, V any](ttl time.Duration, load LoadFunc[K, V], opts ...Option) *ReadThrough[K, V] {
	o := options{clock: SystemClock, sizeMB: defaultCacheSizeMB}
	for _, opt := range opts {
		opt(&o)
	}
	return &ReadThrough[K, V]{
		ttlSeconds: max(1, int(ttl/time.Second)),
		load:       load,
		store:      freecache.NewCacheCustomTimer(o.sizeMB*megabyte, timer{clock: o.clock}),
	}
}

// Get returns the cached value for key, loading it first when it is absent or
// older than the TTL. Concurrent callers for the same cold key share a single
// load; other keys are served while it runs.
func (c *ReadThrough[K, V]) Get(ctx context.Context, key K) (V, error) {
	k := keyOf(key)
	if v, ok := c.cached(k); ok {
		return v, nil
	}

	res, err, _ := c.loads.Do(string(k), func() (any, error) {
		if v, ok := c.cached(k); ok {
			return v, nil
		}
		v, err := c.load(ctx, key)
		if err != nil {
			return v, err
		}
		c.put(k, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Invalidate drops key so the next Get reloads it.
func (c *ReadThrough[K, V]) Invalidate(key K) {
	c.store.Del(keyOf(key))
}

// Len reports how many keys are currently held, stale or not.
func (c *ReadThrough[K, V]) Len() int {
	return int(c.store.EntryCount())
}

func (c *ReadThrough[K, V]) cached(k []byte) (V, bool) {
	var v V
	raw, err := c.store.Get(k)
	if err != nil {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		logrus.Errorf("cache: failed to decode value for %s: %s", k, err)
		c.store.Del(k)
		return v, false
	}
	return v, true
}

func (c *ReadThrough[K, V]) put(k []byte, v V) {
	raw, err := json.Marshal(v)
	if err != nil {
		logrus.Errorf("cache: failed to encode value for %s: %s", k, err)
		return
	}
	if err := c.store.Set(k, raw, c.ttlSeconds); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			logrus.Warnf("cache: value for %s is %d bytes, too large to cache", k, len(raw))
			return
		}
		logrus.Errorf("cache: failed to store value for %s: %s", k, err)
	}
}

func keyOf[K comparable](key K) []byte {
	return fmt.Appendf(nil, "%v", key)
}
