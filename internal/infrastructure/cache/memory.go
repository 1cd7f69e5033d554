// Package cache holds the query cache stores: an in-memory L1, a Redis L2,
// a tiered store combining both, and the Redis Pub/Sub channel that shares
// invalidations between dashboard sessions.
package cache

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/application/query"
)

const (
	defaultCleanupInterval = 30 * time.Second
	defaultMaxEntries      = 1000
)

// MemoryStore keeps entries in process memory. Entries are dropped once
// their TTL passes and the oldest are evicted beyond MaxEntries.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	maxEntries      int
	cleanupInterval time.Duration
	now             func() time.Time
	logger          *zap.Logger
	stopCh          chan struct{}
	stopped         int32

	hits   int64
	misses int64
}

// memoryEntry wraps an entry with its expiration time. A zero expiresAt
// never expires.
type memoryEntry struct {
	entry     *query.Entry
	expiresAt time.Time
}

func (e *memoryEntry) isExpired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryOption configures a MemoryStore
type MemoryOption func(*MemoryStore)

// WithMaxEntries bounds the number of entries; 0 disables the bound
func WithMaxEntries(n int) MemoryOption {
	return func(s *MemoryStore) {
		s.maxEntries = n
	}
}

// WithCleanupInterval sets how often expired entries are removed
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if d > 0 {
			s.cleanupInterval = d
		}
	}
}

// WithMemoryLogger sets the logger
func WithMemoryLogger(logger *zap.Logger) MemoryOption {
	return func(s *MemoryStore) {
		s.logger = logger
	}
}

// WithMemoryClock replaces time.Now
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates an in-memory store and starts its cleanup loop
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries:         make(map[string]*memoryEntry),
		maxEntries:      defaultMaxEntries,
		cleanupInterval: defaultCleanupInterval,
		now:             time.Now,
		logger:          zap.NewNop(),
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupExpired()

	return s
}

// Get returns a copy of the entry for key, or nil
func (s *MemoryStore) Get(_ context.Context, key string) (*query.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		if !e.isExpired(s.now()) {
			atomic.AddInt64(&s.hits, 1)
			return e.entry.Clone(), nil
		}
		delete(s.entries, key)
	}
	atomic.AddInt64(&s.misses, 1)
	return nil, nil
}

// Set stores a copy of entry for ttl; ttl <= 0 keeps it until evicted
func (s *MemoryStore) Set(_ context.Context, entry *query.Entry, ttl time.Duration) error {
	if entry == nil {
		return nil
	}
	e := &memoryEntry{entry: entry.Clone()}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Key] = e
	s.evictLocked()
	return nil
}

// Delete removes key
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Invalidate marks every entry under prefix for refetch
func (s *MemoryStore) Invalidate(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, e := range s.entries {
		if query.MatchesPrefix(key, prefix) {
			e.entry.Invalidated = true
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored entries, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stats returns hit and miss counts
func (s *MemoryStore) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&s.hits), atomic.LoadInt64(&s.misses)
}

// Close stops the cleanup loop
func (s *MemoryStore) Close() error {
	if atomic.CompareAndSwapInt32(&s.stopped, 0, 1) {
		close(s.stopCh)
	}
	return nil
}

// evictLocked drops the least recently fetched entries beyond maxEntries
func (s *MemoryStore) evictLocked() {
	if s.maxEntries <= 0 || len(s.entries) <= s.maxEntries {
		return
	}
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return s.entries[keys[i]].entry.FetchedAt.Before(s.entries[keys[j]].entry.FetchedAt)
	})
	excess := len(s.entries) - s.maxEntries
	for _, k := range keys[:excess] {
		delete(s.entries, k)
	}
	s.logger.Debug("Evicted cache entries", zap.Int("evicted", excess))
}

func (s *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.doCleanup()
		}
	}
}

func (s *MemoryStore) doCleanup() {
	s.mu.Lock()
	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if e.isExpired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Debug("Cleaned up expired cache entries", zap.Int("removed", removed))
	}
}

var _ query.Store = (*MemoryStore)(nil)
