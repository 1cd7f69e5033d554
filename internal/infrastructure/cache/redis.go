package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/application/query"
)

const (
	defaultScanBatchSize = 100
	defaultKeyPrefix     = "sooquk:query:"
)

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps entries in Redis so several dashboard sessions share
// one cache. Entries are stored as JSON under keyPrefix + key.
type RedisStore struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
	logger     *zap.Logger
}

// RedisOption configures a RedisStore
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the namespace of stored keys
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.keyPrefix = prefix
	}
}

// WithRedisLogger sets the logger
func WithRedisLogger(logger *zap.Logger) RedisOption {
	return func(s *RedisStore) {
		s.logger = logger
	}
}

// NewRedisStore connects to Redis and creates a store that owns the client
func NewRedisStore(ctx context.Context, cfg RedisConfig, opts ...RedisOption) (*RedisStore, error) {
	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := NewRedisStoreWithClient(client, opts...)
	s.ownsClient = true
	return s, nil
}

// NewRedisStoreWithClient creates a store over an existing client. The
// caller keeps ownership of the client.
func NewRedisStoreWithClient(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) redisKey(key string) string {
	return s.keyPrefix + key
}

// Get returns the entry for key, or nil. Undecodable entries are removed
// and reported as a miss.
func (s *RedisStore) Get(ctx context.Context, key string) (*query.Entry, error) {
	rk := s.redisKey(key)
	data, err := s.client.Get(ctx, rk).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	var entry query.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = s.client.Del(ctx, rk)
		return nil, nil
	}
	return &entry, nil
}

// Set stores entry for ttl; ttl <= 0 stores it without expiry
func (s *RedisStore) Set(ctx context.Context, entry *query.Entry, ttl time.Duration) error {
	if entry == nil {
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.redisKey(entry.Key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// Delete removes key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Invalidate marks every entry under prefix for refetch, keeping each
// entry's remaining TTL
func (s *RedisStore) Invalidate(ctx context.Context, prefix string) (int, error) {
	pattern := s.keyPrefix + globEscape(prefix) + "*"
	var cursor uint64
	n := 0
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return n, fmt.Errorf("failed to scan cache keys: %w", err)
		}
		for _, rk := range keys {
			key := strings.TrimPrefix(rk, s.keyPrefix)
			if !query.MatchesPrefix(key, prefix) {
				continue
			}
			ok, err := s.markInvalidated(ctx, rk)
			if err != nil {
				return n, err
			}
			if ok {
				n++
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return n, nil
}

func (s *RedisStore) markInvalidated(ctx context.Context, rk string) (bool, error) {
	data, err := s.client.Get(ctx, rk).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	var entry query.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false, s.client.Del(ctx, rk).Err()
	}
	if entry.Invalidated {
		return true, nil
	}
	entry.Invalidated = true
	if data, err = json.Marshal(entry); err != nil {
		return false, fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := s.client.Set(ctx, rk, data, redis.KeepTTL).Err(); err != nil {
		return false, fmt.Errorf("failed to mark cache entry invalidated: %w", err)
	}
	return true, nil
}

// Close closes the client if the store created it
func (s *RedisStore) Close() error {
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}

// globEscape quotes the Redis glob metacharacters in s
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var _ query.Store = (*RedisStore)(nil)
