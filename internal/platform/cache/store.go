package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// sweepInterval is how many writes pass between scans for expired entries.
const sweepInterval = 256

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// Store is a process-local TTL cache. Concurrent misses on one key share a
// single loader call; a zero ttl keeps entries until they are deleted.
type Store struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu     sync.RWMutex
	items  map[string]entry
	writes int

	group singleflight.Group
}

func NewStore(ttl time.Duration) *Store {
	return NewStoreWithClock(ttl, nil)
}

func NewStoreWithClock(ttl time.Duration, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{ttl: ttl, clock: clock, items: make(map[string]entry)}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || e.expired(s.clock.Now()) {
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	now := s.clock.Now()
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = e
	s.writes++
	if s.writes%sweepInterval == 0 {
		for k, item := range s.items {
			if item.expired(now) {
				delete(s.items, k)
			}
		}
	}
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix. An empty prefix is
// ignored rather than clearing the store.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}
	s.mu.Lock()
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			delete(s.items, k)
		}
	}
	s.mu.Unlock()
}

// Len counts stored entries, expired ones included until they are swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// GetOrLoad returns the cached value for key or runs loader once for all
// concurrent callers. The load is detached from any single caller's
// cancellation; a caller whose ctx ends stops waiting with ctx.Err().
// Errors are returned but never cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		if v, ok := s.Get(loadCtx, key); ok {
			return v, nil
		}
		v, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		s.Set(loadCtx, key, v)
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GetOrLoadAs is GetOrLoad with the type assertion done for the caller.
func GetOrLoadAs[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached value for %q has type %T, want %T", key, v, zero)
	}
	return typed, nil
}
