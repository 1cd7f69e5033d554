package cache

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/application/query"
)

const defaultL1TTL = time.Minute

// TieredStore reads through a local L1 to a shared L2. Writes and
// invalidations go to both. L2 failures degrade to L1 only.
type TieredStore struct {
	l1     *MemoryStore
	l2     query.Store
	l1TTL  time.Duration
	logger *zap.Logger

	l1Hits   int64
	l1Misses int64
	l2Hits   int64
	l2Misses int64
}

// TieredOption configures a TieredStore
type TieredOption func(*TieredStore)

// WithL1TTL caps how long L1 keeps an entry read from L2
func WithL1TTL(d time.Duration) TieredOption {
	return func(s *TieredStore) {
		if d > 0 {
			s.l1TTL = d
		}
	}
}

// WithTieredLogger sets the logger
func WithTieredLogger(logger *zap.Logger) TieredOption {
	return func(s *TieredStore) {
		s.logger = logger
	}
}

// NewTieredStore combines l1 and l2
func NewTieredStore(l1 *MemoryStore, l2 query.Store, opts ...TieredOption) *TieredStore {
	s := &TieredStore{
		l1:     l1,
		l2:     l2,
		l1TTL:  defaultL1TTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the entry from L1, else from L2 (copying it into L1)
func (s *TieredStore) Get(ctx context.Context, key string) (*query.Entry, error) {
	entry, err := s.l1.Get(ctx, key)
	if err != nil {
		s.logger.Warn("L1 cache error", zap.String("key", key), zap.Error(err))
	}
	if entry != nil {
		atomic.AddInt64(&s.l1Hits, 1)
		return entry, nil
	}
	atomic.AddInt64(&s.l1Misses, 1)

	entry, err = s.l2.Get(ctx, key)
	if err != nil {
		s.logger.Warn("L2 cache error, treating as miss", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	if entry == nil {
		atomic.AddInt64(&s.l2Misses, 1)
		return nil, nil
	}
	atomic.AddInt64(&s.l2Hits, 1)

	if err := s.l1.Set(ctx, entry, s.l1TTL); err != nil {
		s.logger.Warn("Failed to populate L1", zap.String("key", key), zap.Error(err))
	}
	return entry, nil
}

// Set writes to both tiers; L1 keeps the entry for at most the L1 TTL
func (s *TieredStore) Set(ctx context.Context, entry *query.Entry, ttl time.Duration) error {
	l1TTL := s.l1TTL
	if ttl > 0 && ttl < l1TTL {
		l1TTL = ttl
	}
	if err := s.l1.Set(ctx, entry, l1TTL); err != nil {
		return err
	}
	if err := s.l2.Set(ctx, entry, ttl); err != nil {
		s.logger.Warn("Failed to write L2", zap.String("key", entry.Key), zap.Error(err))
	}
	return nil
}

// Delete removes key from both tiers
func (s *TieredStore) Delete(ctx context.Context, key string) error {
	if err := s.l1.Delete(ctx, key); err != nil {
		return err
	}
	if err := s.l2.Delete(ctx, key); err != nil {
		s.logger.Warn("Failed to delete from L2", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Invalidate marks prefix stale in both tiers and returns the larger count
func (s *TieredStore) Invalidate(ctx context.Context, prefix string) (int, error) {
	n1, err := s.l1.Invalidate(ctx, prefix)
	if err != nil {
		return 0, err
	}
	n2, err := s.l2.Invalidate(ctx, prefix)
	if err != nil {
		s.logger.Warn("Failed to invalidate L2", zap.String("prefix", prefix), zap.Error(err))
		return n1, nil
	}
	return max(n1, n2), nil
}

// Stats returns per-tier hit and miss counts
func (s *TieredStore) Stats() (l1Hits, l1Misses, l2Hits, l2Misses int64) {
	return atomic.LoadInt64(&s.l1Hits), atomic.LoadInt64(&s.l1Misses),
		atomic.LoadInt64(&s.l2Hits), atomic.LoadInt64(&s.l2Misses)
}

// Close stops the L1 cleanup loop
func (s *TieredStore) Close() error {
	return s.l1.Close()
}

var _ query.Store = (*TieredStore)(nil)
