package querycache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "idle"
	}
}

// State is a point-in-time view of one cache entry. Data holds the last good
// result even when Err reports a later failure.
type State struct {
	Status    Status
	Data      any
	Err       error
	UpdatedAt time.Time
	Stale     bool
}

type entry struct {
	key       Key
	data      any
	hasData   bool
	err       error
	loading   bool
	stale     bool
	gen       uint64
	updatedAt time.Time
}

// Cache de-duplicates fetches per key and remembers their outcome.
type Cache struct {
	mu      sync.Mutex
	group   singleflight.Group
	entries map[string]*entry
	log     *zap.Logger
	now     func() time.Time
}

func New(log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		entries: make(map[string]*entry),
		log:     log,
		now:     time.Now,
	}
}

// Fetch returns the cached value for key when it is present and not stale,
// otherwise it runs fn. Concurrent callers for the same key share one call.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := c.fresh(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	return run(ctx, c, key, fn)
}

// Refetch runs fn regardless of what is cached. A call already in flight for
// key is joined instead of starting a second one.
func Refetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	return run(ctx, c, key, fn)
}

func run[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	// The shared call outlives any single caller; a caller that gives up
	// only stops waiting.
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (any, error) {
		gen := c.begin(key)
		v, err := fn(detached)
		c.finish(key, gen, v, err)
		return v, err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (c *Cache) fresh(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok || !e.hasData || e.stale || e.err != nil {
		return nil, false
	}
	return e.data, true
}

func (c *Cache) begin(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	e.loading = true
	return e.gen
}

func (c *Cache) finish(key Key, gen uint64, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	e.loading = false
	if err != nil {
		e.err = err
		c.log.Debug("query failed", zap.Stringer("key", key), zap.Error(err))
		return
	}

	e.data = v
	e.hasData = true
	e.err = nil
	e.updatedAt = c.now()
	// Invalidated while in flight: the result may predate the invalidation.
	e.stale = gen != e.gen
	if e.stale {
		c.log.Debug("query result superseded by invalidation", zap.Stringer("key", key))
	}
}

func (c *Cache) entryLocked(key Key) *entry {
	k := key.String()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{key: append(Key(nil), key...)}
		c.entries[k] = e
	}
	return e
}

// Invalidate marks every entry under prefix as stale so the next Fetch goes
// to the network. It returns the number of entries marked.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
			e.gen++
			n++
		}
	}
	c.log.Debug("queries invalidated", zap.Stringer("prefix", prefix), zap.Int("count", n))
	return n
}

func (c *Cache) Snapshot(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return State{Status: StatusIdle}
	}

	st := State{Data: e.data, Err: e.err, UpdatedAt: e.updatedAt, Stale: e.stale}
	switch {
	case e.loading:
		st.Status = StatusLoading
	case e.err != nil:
		st.Status = StatusError
	case e.hasData:
		st.Status = StatusSuccess
	default:
		st.Status = StatusIdle
	}
	return st
}

// Remove drops the entry for key. An in-flight call still records its result.
func (c *Cache) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.String())
}

func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}
