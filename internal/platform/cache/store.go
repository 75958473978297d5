package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// defaultSweepThreshold is the entry count above which Set drops expired entries.
const defaultSweepThreshold = 1024

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process TTL cache. A zero ttl keeps entries until they are overwritten.
// Keys that are never read again are dropped by a sweep on Set once the store grows past
// a threshold, at most once per ttl.
type Store struct {
	mu             sync.RWMutex
	entries        map[string]entry
	ttl            time.Duration
	flight         singleflight.Group
	now            func() time.Time
	sweepThreshold int
	nextSweep      time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries:        make(map[string]entry),
		ttl:            ttl,
		now:            time.Now,
		sweepThreshold: defaultSweepThreshold,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && current.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	now := s.now()
	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl > 0 && len(s.entries) >= s.sweepThreshold && !now.Before(s.nextSweep) {
		s.sweepLocked(now)
	}
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
}

func (s *Store) sweepLocked(now time.Time) {
	for key, e := range s.entries {
		if !e.expiresAt.After(now) {
			delete(s.entries, key)
		}
	}
	s.nextSweep = now.Add(s.ttl)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key, calling loader at most once per key across
// concurrent callers on a miss. Loader errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
