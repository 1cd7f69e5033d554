package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// ErrClosed is returned by reads issued after Close
var ErrClosed = errors.New("query client closed")

// Client owns the read cache. It is safe for concurrent use.
type Client struct {
	store       Store
	logger      *zap.Logger
	metrics     Recorder
	broadcaster Broadcaster
	now         func() time.Time
	policy      StalePolicy
	staleTime   time.Duration
	gcTime      time.Duration
	retry       RetryPolicy

	group singleflight.Group

	// commitMu orders storing a fetch result against invalidation, so a
	// result that was superseded is never stored as fresh.
	commitMu sync.Mutex

	mu        sync.Mutex
	flights   map[string]*flight
	lastErr   map[string]error
	observers map[uint64]watcher
	nextID    uint64
	closed    bool

	ctx    context.Context
	cancel context.CancelFunc
}

// flight tracks one execution of a fetch
type flight struct {
	superseded bool
	started    time.Time
	done       chan struct{}
}

type watcher interface {
	watchKey() Key
	invalidated()
	close()
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics sets the event recorder
func WithMetrics(r Recorder) Option {
	return func(c *Client) {
		c.metrics = r
	}
}

// WithBroadcaster shares local invalidations with other sessions
func WithBroadcaster(b Broadcaster) Option {
	return func(c *Client) {
		c.broadcaster = b
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithStalePolicy sets per-resource stale times
func WithStalePolicy(p StalePolicy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithStaleTime sets the stale time for resources missing from the policy
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) {
		c.staleTime = d
	}
}

// WithGCTime sets how long entries are retained after going stale
func WithGCTime(d time.Duration) Option {
	return func(c *Client) {
		c.gcTime = d
	}
}

// WithRetry sets the default retry policy of reads
func WithRetry(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// NewClient creates a query client over store
func NewClient(store Store, opts ...Option) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		store:     store,
		logger:    zap.NewNop(),
		metrics:   nopRecorder{},
		now:       time.Now,
		policy:    DefaultStalePolicy(),
		staleTime: DefaultStaleTime,
		gcTime:    DefaultGCTime,
		retry:     DefaultRetryPolicy(),
		flights:   make(map[string]*flight),
		lastErr:   make(map[string]error),
		observers: make(map[uint64]watcher),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StaleTimeFor returns the stale time of a resource
func (c *Client) StaleTimeFor(resource string) time.Duration {
	return c.policy.For(resource, c.staleTime)
}

// Invalidate marks every entry under the prefixes stale, supersedes
// matching in-flight fetches, refetches mounted observers and broadcasts
// the prefixes.
func (c *Client) Invalidate(ctx context.Context, prefixes ...Key) error {
	err := c.invalidate(ctx, prefixes)
	if c.broadcaster != nil {
		for _, p := range prefixes {
			if perr := c.broadcaster.Publish(ctx, p.String()); perr != nil {
				c.logger.Warn("Failed to broadcast invalidation",
					zap.String("prefix", p.String()),
					zap.Error(perr))
			}
		}
	}
	return err
}

// InvalidateRemote applies an invalidation received from another session.
// It is not broadcast again.
func (c *Client) InvalidateRemote(ctx context.Context, prefix string) error {
	return c.invalidate(ctx, []Key{ParseKey(prefix)})
}

func (c *Client) invalidate(ctx context.Context, prefixes []Key) error {
	var errs []error
	var affected []watcher

	c.commitMu.Lock()
	for _, prefix := range prefixes {
		p := prefix.String()

		c.mu.Lock()
		for key, fl := range c.flights {
			if MatchesPrefix(key, p) {
				fl.superseded = true
				delete(c.flights, key)
				c.group.Forget(key)
			}
		}
		for key := range c.lastErr {
			if MatchesPrefix(key, p) {
				delete(c.lastErr, key)
			}
		}
		for _, w := range c.observers {
			if w.watchKey().HasPrefix(prefix) {
				affected = append(affected, w)
			}
		}
		c.mu.Unlock()

		n, err := c.store.Invalidate(ctx, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalidate %s: %w", p, err))
			continue
		}
		c.metrics.Invalidated(prefix.Resource(), n)
		c.logger.Debug("Invalidated cache entries",
			zap.String("prefix", p),
			zap.Int("entries", n))
	}
	c.commitMu.Unlock()

	seen := make(map[watcher]bool, len(affected))
	for _, w := range affected {
		if !seen[w] {
			seen[w] = true
			w.invalidated()
		}
	}
	return errors.Join(errs...)
}

// Remove drops a single entry
func (c *Client) Remove(ctx context.Context, key Key) error {
	return c.store.Delete(ctx, key.String())
}

// IsFetching reports whether a fetch for key is in flight
func (c *Client) IsFetching(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.flights[key.String()]
	return ok
}

// Await blocks until the in-flight fetch for key, if any, has finished
func Await(ctx context.Context, c *Client, key Key) error {
	c.mu.Lock()
	fl, ok := c.flights[key.String()]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case <-fl.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels background fetches and detaches every observer. Late
// results are discarded.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	observers := make([]watcher, 0, len(c.observers))
	for _, w := range c.observers {
		observers = append(observers, w)
	}
	c.mu.Unlock()

	c.cancel()
	for _, w := range observers {
		w.close()
	}
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) lookup(ctx context.Context, key string) *Entry {
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Cache read failed, treating as miss",
			zap.String("key", key),
			zap.Error(err))
		return nil
	}
	return entry
}

// start runs fn for key unless a fetch for key is already in flight, in
// which case the caller joins it.
func (c *Client) start(key Key, staleTime time.Duration, retry RetryPolicy, fn func(context.Context) ([]byte, error)) <-chan singleflight.Result {
	k := key.String()
	resource := key.Resource()

	c.mu.Lock()
	_, joined := c.flights[k]
	c.mu.Unlock()
	if joined {
		c.metrics.FetchJoined(resource)
	}

	return c.group.DoChan(k, func() (any, error) {
		return c.run(k, resource, staleTime, retry, fn)
	})
}

func (c *Client) run(key, resource string, staleTime time.Duration, retry RetryPolicy, fn func(context.Context) ([]byte, error)) (any, error) {
	fl := &flight{started: c.now(), done: make(chan struct{})}
	c.mu.Lock()
	c.flights[key] = fl
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.flights[key] == fl {
			delete(c.flights, key)
		}
		c.mu.Unlock()
		close(fl.done)
	}()

	c.metrics.FetchStarted(resource)
	c.logger.Debug("Fetching", zap.String("key", key))

	data, err := retry.do(c.ctx, fn)
	if err != nil {
		c.metrics.FetchFailed(resource, shared.KindOf(err))
		c.logger.Debug("Fetch failed", zap.String("key", key), zap.Error(err))
		c.mu.Lock()
		if !fl.superseded {
			c.lastErr[key] = err
		}
		if c.flights[key] == fl {
			delete(c.flights, key)
		}
		c.mu.Unlock()
		return nil, err
	}

	now := c.now()
	entry := &Entry{
		Key:        key,
		Data:       data,
		FetchedAt:  now,
		StaleAfter: now.Add(staleTime),
	}

	c.commitMu.Lock()
	defer c.commitMu.Unlock()
	c.mu.Lock()
	entry.Invalidated = fl.superseded
	delete(c.lastErr, key)
	c.mu.Unlock()

	// a fetch started after the invalidation has already committed; the
	// superseded result is dropped
	if entry.Invalidated {
		if cur := c.lookup(c.ctx, key); cur != nil && (!cur.Invalidated || cur.FetchedAt.After(fl.started)) {
			c.logger.Debug("Dropped superseded fetch result", zap.String("key", key))
			return cur, nil
		}
	}

	if err := c.store.Set(c.ctx, entry, staleTime+c.gcTime); err != nil {
		c.logger.Warn("Failed to store fetch result",
			zap.String("key", key),
			zap.Error(err))
	}
	if entry.Invalidated {
		c.logger.Debug("Stored superseded fetch result as invalidated", zap.String("key", key))
	}
	return entry, nil
}

func (c *Client) register(w watcher) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, false
	}
	c.nextID++
	c.observers[c.nextID] = w
	return c.nextID, true
}

func (c *Client) unregister(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.observers, id)
}
