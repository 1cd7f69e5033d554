package query

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type mapStore struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

func newMapStore() *mapStore {
	return &mapStore{entries: make(map[string]*Entry)}
}

func (s *mapStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[key].Clone(), nil
}

func (s *mapStore) Set(_ context.Context, e *Entry, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Key] = e.Clone()
	return nil
}

func (s *mapStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *mapStore) Invalidate(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, e := range s.entries {
		if MatchesPrefix(k, prefix) {
			e.Invalidated = true
			n++
		}
	}
	return n, nil
}

func (s *mapStore) entry(key Key) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[key.String()].Clone()
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// backend counts calls and serves the current items
type backend struct {
	calls atomic.Int32
	mu    sync.Mutex
	items []string
	err   error
	gate  chan struct{}
}

func (b *backend) list(ctx context.Context) ([]string, error) {
	b.calls.Add(1)
	if b.gate != nil {
		select {
		case <-b.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	return append([]string(nil), b.items...), nil
}

func (b *backend) add(item string) {
	b.mu.Lock()
	b.items = append(b.items, item)
	b.mu.Unlock()
}

func newTestClient(store Store, clock *fakeClock, opts ...Option) *Client {
	base := []Option{WithClock(clock.Now), WithRetry(NoRetry)}
	return NewClient(store, append(base, opts...)...)
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
