package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Status is the lifecycle state of a read
type Status string

const (
	StatusDisabled Status = "disabled"
	StatusLoading  Status = "loading"
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
)

// Query describes one cached read
type Query[T any] struct {
	Key Key
	Fn  func(ctx context.Context) (T, error)
	// StaleTime overrides the resource policy when positive
	StaleTime time.Duration
	// Disabled reads never issue a request, e.g. districts before a city
	// is chosen
	Disabled bool
	// Retry overrides the client retry policy when set
	Retry *RetryPolicy
}

// Result is what a page renders. Data may be set together with Err when a
// refetch of a stale value failed.
type Result[T any] struct {
	Status     Status
	Data       T
	Err        error
	HasData    bool
	IsStale    bool
	IsFetching bool
	UpdatedAt  time.Time
}

// IsLoading reports whether nothing can be shown yet
func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }

// IsError reports whether the last fetch failed
func (r Result[T]) IsError() bool { return r.Status == StatusError }

// IsDisabled reports whether the read is switched off
func (r Result[T]) IsDisabled() bool { return r.Status == StatusDisabled }

func (c *Client) options(resource string, staleTime time.Duration, retry *RetryPolicy) (time.Duration, RetryPolicy) {
	if staleTime <= 0 {
		staleTime = c.StaleTimeFor(resource)
	}
	r := c.retry
	if retry != nil {
		r = *retry
	}
	return staleTime, r
}

func (q Query[T]) encoded() func(context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		v, err := q.Fn(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", q.Key, err)
		}
		return data, nil
	}
}

func decode[T any](e *Entry) (T, error) {
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", e.Key, err)
	}
	return v, nil
}

func resultFrom[T any](e *Entry, now time.Time) Result[T] {
	v, err := decode[T](e)
	if err != nil {
		return Result[T]{Status: StatusError, Err: err}
	}
	return Result[T]{
		Status:    StatusSuccess,
		Data:      v,
		HasData:   true,
		IsStale:   e.IsStale(now),
		UpdatedAt: e.FetchedAt,
	}
}

// Fetch returns the value of q, blocking until it is available. A fresh
// cached value is returned without a request; otherwise a deduplicated
// fetch is awaited. ctx bounds the wait only; the fetch itself runs on the
// client lifetime so joined readers are not cancelled by one caller.
func Fetch[T any](ctx context.Context, c *Client, q Query[T]) Result[T] {
	if q.Disabled {
		return Result[T]{Status: StatusDisabled}
	}
	if err := q.validate(); err != nil {
		return Result[T]{Status: StatusError, Err: err}
	}
	if c.isClosed() {
		return Result[T]{Status: StatusError, Err: ErrClosed}
	}

	key := q.Key.String()
	resource := q.Key.Resource()
	now := c.now()

	cached := c.lookup(ctx, key)
	if cached != nil && !cached.IsStale(now) {
		c.metrics.Hit(resource)
		return resultFrom[T](cached, now)
	}
	if cached == nil {
		c.metrics.Miss(resource)
	} else {
		c.metrics.StaleHit(resource)
	}

	staleTime, retry := c.options(resource, q.StaleTime, q.Retry)
	ch := c.start(q.Key, staleTime, retry, q.encoded())

	select {
	case <-ctx.Done():
		return failed[T](cached, ctx.Err(), now)
	case res := <-ch:
		if res.Err != nil {
			return failed[T](cached, res.Err, now)
		}
		return resultFrom[T](res.Val.(*Entry), c.now())
	}
}

func failed[T any](cached *Entry, err error, now time.Time) Result[T] {
	out := Result[T]{Status: StatusError, Err: err}
	if cached != nil {
		if v, derr := decode[T](cached); derr == nil {
			out.Data = v
			out.HasData = true
			out.IsStale = true
			out.UpdatedAt = cached.FetchedAt
		}
	}
	return out
}

// Read returns a snapshot without blocking on the network. A stale value is
// returned as is while a background refetch runs; a cold miss returns
// StatusLoading and starts the fetch.
func Read[T any](ctx context.Context, c *Client, q Query[T]) Result[T] {
	if q.Disabled {
		return Result[T]{Status: StatusDisabled}
	}
	if err := q.validate(); err != nil {
		return Result[T]{Status: StatusError, Err: err}
	}
	if c.isClosed() {
		return Result[T]{Status: StatusError, Err: ErrClosed}
	}

	key := q.Key.String()
	resource := q.Key.Resource()
	now := c.now()

	cached := c.lookup(ctx, key)
	if cached != nil && !cached.IsStale(now) {
		c.metrics.Hit(resource)
		return resultFrom[T](cached, now)
	}

	if cached == nil {
		c.mu.Lock()
		lastErr, failedBefore := c.lastErr[key]
		_, inFlight := c.flights[key]
		c.mu.Unlock()
		if failedBefore && !inFlight {
			return Result[T]{Status: StatusError, Err: lastErr}
		}
		c.metrics.Miss(resource)
	} else {
		c.metrics.StaleHit(resource)
	}

	staleTime, retry := c.options(resource, q.StaleTime, q.Retry)
	c.background(q.Key, staleTime, retry, q.encoded())

	if cached == nil {
		return Result[T]{Status: StatusLoading, IsFetching: true}
	}
	out := resultFrom[T](cached, now)
	out.IsFetching = out.Status == StatusSuccess
	return out
}

func (c *Client) background(key Key, staleTime time.Duration, retry RetryPolicy, fn func(context.Context) ([]byte, error)) {
	ch := c.start(key, staleTime, retry, fn)
	go func() {
		if res := <-ch; res.Err != nil && !errors.Is(res.Err, context.Canceled) {
			c.logger.Debug("Background fetch failed",
				zap.String("key", key.String()),
				zap.Error(res.Err))
		}
	}()
}

// Prefetch warms the cache for q without waiting
func Prefetch[T any](ctx context.Context, c *Client, q Query[T]) {
	if q.Disabled || q.validate() != nil || c.isClosed() {
		return
	}
	if e := c.lookup(ctx, q.Key.String()); e != nil && !e.IsStale(c.now()) {
		return
	}
	staleTime, retry := c.options(q.Key.Resource(), q.StaleTime, q.Retry)
	c.background(q.Key, staleTime, retry, q.encoded())
}

// Cached returns the cached value of key, fresh or not
func Cached[T any](ctx context.Context, c *Client, key Key) (T, bool) {
	var zero T
	e := c.lookup(ctx, key.String())
	if e == nil {
		return zero, false
	}
	v, err := decode[T](e)
	if err != nil {
		return zero, false
	}
	return v, true
}

func (q Query[T]) validate() error {
	if len(q.Key) == 0 {
		return errors.New("query key is empty")
	}
	if q.Fn == nil {
		return fmt.Errorf("query %s has no fetch function", q.Key)
	}
	return nil
}

// Deref adapts a client call that returns a pointer into a query function
// result
func Deref[T any](p *T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if p == nil {
		return zero, nil
	}
	return *p, nil
}
