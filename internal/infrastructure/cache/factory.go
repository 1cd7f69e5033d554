package cache

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/application/query"
)

// Drivers
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverTiered = "tiered"
)

// Options selects and tunes a store
type Options struct {
	Driver          string
	MaxEntries      int
	CleanupInterval time.Duration
	KeyPrefix       string
	Channel         string
	Broadcast       bool
	Redis           RedisConfig
}

// Stores is what the factory built. Invalidator is nil unless Redis is in
// use and broadcasting is enabled.
type Stores struct {
	Store       query.Store
	Invalidator *RedisInvalidator
	closers     []io.Closer
}

// Close releases every store
func (s *Stores) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Factory creates the configured store
type Factory struct {
	opts                  Options
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory and the stores it creates
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to
// the in-memory store. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a factory
func NewFactory(opts Options, fopts ...FactoryOption) *Factory {
	f := &Factory{
		opts:                  opts,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range fopts {
		opt(f)
	}
	return f
}

// Create builds the store for the configured driver
func (f *Factory) Create(ctx context.Context) (*Stores, error) {
	switch f.opts.Driver {
	case "", DriverMemory:
		return f.memoryOnly(), nil
	case DriverRedis, DriverTiered:
	default:
		return nil, fmt.Errorf("unknown cache driver %q", f.opts.Driver)
	}

	client, err := NewRedisClient(ctx, f.opts.Redis)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis required for cache driver %s but unavailable: %w", f.opts.Driver, err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory query cache. "+
			"Invalidations will not be shared with other sessions.",
			zap.Error(err))
		return f.memoryOnly(), nil
	}

	out := &Stores{closers: []io.Closer{client}}
	l2 := NewRedisStoreWithClient(client,
		WithKeyPrefix(f.opts.KeyPrefix),
		WithRedisLogger(f.logger.Named("redis")))

	if f.opts.Driver == DriverTiered {
		l1 := f.memory()
		out.closers = append(out.closers, l1)
		out.Store = NewTieredStore(l1, l2, WithTieredLogger(f.logger.Named("tiered")))
	} else {
		out.Store = l2
	}

	if f.opts.Broadcast {
		opts := []InvalidatorOption{WithInvalidatorLogger(f.logger.Named("invalidator"))}
		if f.opts.Channel != "" {
			opts = append(opts, WithChannel(f.opts.Channel))
		}
		out.Invalidator = NewRedisInvalidatorWithClient(client, opts...)
		out.closers = append(out.closers, out.Invalidator)
	}

	f.logger.Info("Using Redis query cache",
		zap.String("driver", f.opts.Driver),
		zap.String("addr", f.opts.Redis.Addr),
		zap.Bool("broadcast", f.opts.Broadcast))
	return out, nil
}

func (f *Factory) memory() *MemoryStore {
	return NewMemoryStore(
		WithMaxEntries(f.opts.MaxEntries),
		WithCleanupInterval(f.opts.CleanupInterval),
		WithMemoryLogger(f.logger.Named("memory")))
}

func (f *Factory) memoryOnly() *Stores {
	m := f.memory()
	return &Stores{Store: m, closers: []io.Closer{m}}
}
