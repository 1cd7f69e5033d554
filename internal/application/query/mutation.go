package query

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Mutation is one write operation. Invalidates lists the key prefixes a
// successful call makes stale; it is not consulted on failure.
type Mutation[In, Out any] struct {
	Name        string
	Fn          func(ctx context.Context, in In) (Out, error)
	Invalidates func(in In, out Out) []Key
}

// MutationResult is the outcome of a mutation
type MutationResult[Out any] struct {
	Data        Out
	Err         error
	Invalidated []Key
}

// OK reports whether the mutation succeeded
func (r MutationResult[Out]) OK() bool { return r.Err == nil }

// Mutate runs m and, only on success, invalidates the keys it names.
// Writes are pessimistic: the cache is never updated before the backend
// confirms.
func Mutate[In, Out any](ctx context.Context, c *Client, m Mutation[In, Out], in In) MutationResult[Out] {
	out, err := m.Fn(ctx, in)
	if err != nil {
		c.logger.Info("Mutation failed",
			zap.String("mutation", m.Name),
			zap.String("kind", string(shared.KindOf(err))),
			zap.Error(err))
		return MutationResult[Out]{Err: err}
	}

	var keys []Key
	if m.Invalidates != nil {
		keys = m.Invalidates(in, out)
	}
	if len(keys) > 0 {
		if ierr := c.Invalidate(ctx, keys...); ierr != nil {
			c.logger.Warn("Invalidation after mutation failed",
				zap.String("mutation", m.Name),
				zap.Error(ierr))
		}
	}
	c.logger.Debug("Mutation succeeded",
		zap.String("mutation", m.Name),
		zap.Int("invalidated_prefixes", len(keys)))
	return MutationResult[Out]{Data: out, Invalidated: keys}
}

// Mutator binds a mutation to a client and rejects a second submission
// while one is in flight.
type Mutator[In, Out any] struct {
	c       *Client
	m       Mutation[In, Out]
	pending atomic.Bool
}

// NewMutator creates a mutator for m
func NewMutator[In, Out any](c *Client, m Mutation[In, Out]) *Mutator[In, Out] {
	return &Mutator[In, Out]{c: c, m: m}
}

// Submit runs the mutation, or fails with ErrMutationPending
func (m *Mutator[In, Out]) Submit(ctx context.Context, in In) MutationResult[Out] {
	if !m.pending.CompareAndSwap(false, true) {
		return MutationResult[Out]{Err: shared.ErrMutationPending}
	}
	defer m.pending.Store(false)
	return Mutate(ctx, m.c, m.m, in)
}

// IsPending reports whether a submission is in flight
func (m *Mutator[In, Out]) IsPending() bool {
	return m.pending.Load()
}

// Name returns the mutation name
func (m *Mutator[In, Out]) Name() string {
	return m.m.Name
}
