// Package cache is a process-local TTL cache. The dashboard is read-heavy
// and single-instance, so there is no external cache tier to coordinate
// with; invalidation is a local delete on write.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/glovework/keeper-stats/internal/platform/resilience"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// expired reports whether the entry's deadline has passed. A zero deadline
// means the entry never expires.
func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

type Store struct {
	mu     sync.RWMutex
	byKey  map[string]entry
	ttl    time.Duration
	flight resilience.SingleFlight
}

// NewStore builds a store with the given TTL. A non-positive TTL means
// entries never expire.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		byKey: make(map[string]entry),
		ttl:   ttl,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.byKey[key]
	s.mu.RUnlock()

	switch {
	case !ok:
		return nil, false
	case e.expired(time.Now()):
		s.Delete(context.Background(), key)
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	var deadline time.Time
	if s.ttl > 0 {
		deadline = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.byKey[key] = entry{value: value, expiresAt: deadline}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.byKey, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.byKey {
		if strings.HasPrefix(key, prefix) {
			delete(s.byKey, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers, caching a successful result.
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
		// A duplicate caller may have populated the key while this one
		// was waiting on the flight lock.
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
