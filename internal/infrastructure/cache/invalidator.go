package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/application/query"
)

const (
	defaultCloseTimeout  = 5 * time.Second
	defaultPubSubChannel = "sooquk:query:invalidate"
)

// InvalidationMessage announces that a key prefix went stale
type InvalidationMessage struct {
	Prefix    string `json:"prefix"`
	Origin    string `json:"origin"`
	Timestamp int64  `json:"timestamp"`
}

// RedisInvalidator shares invalidations between dashboard sessions over
// Redis Pub/Sub. Messages published by this instance are not delivered
// back to it.
type RedisInvalidator struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	origin     string
	logger     *zap.Logger
	cancelFn   context.CancelFunc
	doneCh     chan struct{}
	doneOnce   sync.Once
	mu         sync.Mutex
	isRunning  bool
}

// InvalidatorOption configures a RedisInvalidator
type InvalidatorOption func(*RedisInvalidator)

// WithChannel sets the Pub/Sub channel name
func WithChannel(channel string) InvalidatorOption {
	return func(i *RedisInvalidator) {
		i.channel = channel
	}
}

// WithInvalidatorLogger sets the logger
func WithInvalidatorLogger(logger *zap.Logger) InvalidatorOption {
	return func(i *RedisInvalidator) {
		i.logger = logger
	}
}

// NewRedisInvalidator connects to Redis and creates an invalidator that
// owns the client
func NewRedisInvalidator(ctx context.Context, cfg RedisConfig, opts ...InvalidatorOption) (*RedisInvalidator, error) {
	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	i := NewRedisInvalidatorWithClient(client, opts...)
	i.ownsClient = true
	return i, nil
}

// NewRedisInvalidatorWithClient creates an invalidator over an existing
// client. The caller keeps ownership of the client.
func NewRedisInvalidatorWithClient(client *redis.Client, opts ...InvalidatorOption) *RedisInvalidator {
	i := &RedisInvalidator{
		client:  client,
		channel: defaultPubSubChannel,
		origin:  uuid.NewString(),
		logger:  zap.NewNop(),
		doneCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Origin identifies this instance in published messages
func (i *RedisInvalidator) Origin() string {
	return i.origin
}

// Publish announces that prefix went stale
func (i *RedisInvalidator) Publish(ctx context.Context, prefix string) error {
	data, err := json.Marshal(InvalidationMessage{
		Prefix:    prefix,
		Origin:    i.origin,
		Timestamp: time.Now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := i.client.Publish(ctx, i.channel, data).Err(); err != nil {
		i.logger.Error("Failed to publish invalidation",
			zap.String("channel", i.channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	i.logger.Debug("Published invalidation",
		zap.String("prefix", prefix),
		zap.String("channel", i.channel))
	return nil
}

// Subscribe delivers prefixes invalidated by other instances to callback
// until ctx is cancelled or Close is called. It blocks.
func (i *RedisInvalidator) Subscribe(ctx context.Context, callback func(prefix string)) error {
	i.mu.Lock()
	if i.isRunning {
		i.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	i.isRunning = true
	subCtx, cancel := context.WithCancel(ctx)
	i.cancelFn = cancel
	i.mu.Unlock()

	stop := func() {
		i.mu.Lock()
		i.isRunning = false
		i.mu.Unlock()
		i.markDone()
	}

	pubsub := i.client.Subscribe(subCtx, i.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(subCtx); err != nil {
		stop()
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	i.logger.Info("Subscribed to cache invalidation channel", zap.String("channel", i.channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-subCtx.Done():
			i.logger.Info("Cache invalidation subscription stopped")
			stop()
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				i.logger.Warn("Cache invalidation channel closed")
				stop()
				return nil
			}

			var m InvalidationMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				i.logger.Error("Failed to unmarshal invalidation message",
					zap.String("payload", msg.Payload),
					zap.Error(err))
				continue
			}
			if m.Origin == i.origin {
				continue
			}

			i.logger.Debug("Received invalidation", zap.String("prefix", m.Prefix))
			i.dispatch(callback, m.Prefix)
		}
	}
}

func (i *RedisInvalidator) dispatch(callback func(string), prefix string) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("Panic in invalidation callback", zap.Any("panic", r))
		}
	}()
	callback(prefix)
}

func (i *RedisInvalidator) markDone() {
	i.doneOnce.Do(func() {
		close(i.doneCh)
	})
}

// Close stops the subscription and closes the client if it is owned
func (i *RedisInvalidator) Close() error {
	i.mu.Lock()
	cancelFn := i.cancelFn
	i.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-i.doneCh:
		case <-time.After(defaultCloseTimeout):
			i.logger.Warn("Timeout waiting for subscription to stop")
		}
	}

	if i.ownsClient {
		return i.client.Close()
	}
	return nil
}

// Follow applies invalidations from other sessions to c. It blocks like
// Subscribe.
func Follow(ctx context.Context, i *RedisInvalidator, c *query.Client) error {
	return i.Subscribe(ctx, func(prefix string) {
		if err := c.InvalidateRemote(ctx, prefix); err != nil {
			i.logger.Warn("Failed to apply remote invalidation",
				zap.String("prefix", prefix),
				zap.Error(err))
		}
	})
}

var _ query.Broadcaster = (*RedisInvalidator)(nil)
