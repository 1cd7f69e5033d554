package query

import (
	"context"
	"sync"
)

// Observer is a mounted read. It refetches when its key is invalidated and
// delivers each settled result to the change callback. After Close no
// result is delivered, including responses already in flight.
type Observer[T any] struct {
	c        *Client
	onChange func(Result[T])

	mu      sync.Mutex
	id      uint64
	q       Query[T]
	gen     uint64
	closed  bool
	current Result[T]
	settled chan struct{}
	once    sync.Once

	// deliverMu is held while the callback runs so Close waits for it
	deliverMu sync.Mutex
}

// Watch mounts q and starts loading it. onChange must not call Close on
// the same observer.
func Watch[T any](c *Client, q Query[T], onChange func(Result[T])) *Observer[T] {
	o := &Observer[T]{
		c:        c,
		onChange: onChange,
		q:        q,
		current:  Result[T]{Status: StatusLoading, IsFetching: true},
		settled:  make(chan struct{}),
	}
	if q.Disabled {
		o.current = Result[T]{Status: StatusDisabled}
	}
	id, ok := c.register(o)
	if !ok {
		o.closed = true
		o.current = Result[T]{Status: StatusError, Err: ErrClosed}
		o.once.Do(func() { close(o.settled) })
		return o
	}
	o.id = id
	if !q.Disabled {
		// a cached value is shown at once, stale or not, while the load runs
		if snap := Read(c.ctx, c, q); snap.HasData {
			o.current = snap
		}
	}
	o.refresh(c.ctx)
	return o
}

// Current returns the last delivered result
func (o *Observer[T]) Current() Result[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Await blocks until the first result has settled
func (o *Observer[T]) Await(ctx context.Context) Result[T] {
	select {
	case <-o.settled:
	case <-ctx.Done():
	}
	return o.Current()
}

// SetQuery swaps the observed query, e.g. after a filter change, and loads it
func (o *Observer[T]) SetQuery(q Query[T]) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.q = q
	o.mu.Unlock()
	o.refresh(o.c.ctx)
}

// Refetch loads the query again and waits for the result
func (o *Observer[T]) Refetch(ctx context.Context) Result[T] {
	o.mu.Lock()
	if o.closed {
		r := o.current
		o.mu.Unlock()
		return r
	}
	o.gen++
	gen, q := o.gen, o.q
	o.mu.Unlock()

	res := Fetch(ctx, o.c, q)
	o.deliver(gen, res)
	return res
}

// Close detaches the observer
func (o *Observer[T]) Close() {
	o.close()
	o.c.unregister(o.id)
}

func (o *Observer[T]) close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	// wait for a delivery in progress
	o.deliverMu.Lock()
	o.deliverMu.Unlock()
}

func (o *Observer[T]) watchKey() Key {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.q.Key
}

func (o *Observer[T]) invalidated() {
	o.refresh(o.c.ctx)
}

// refresh starts a fetch for the current query. Only the newest fetch may
// deliver.
func (o *Observer[T]) refresh(ctx context.Context) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.gen++
	gen, q := o.gen, o.q
	if q.Disabled {
		o.mu.Unlock()
		o.deliver(gen, Result[T]{Status: StatusDisabled})
		return
	}
	if o.current.HasData {
		o.current.IsFetching = true
	}
	o.mu.Unlock()

	go func() {
		o.deliver(gen, Fetch(ctx, o.c, q))
	}()
}

func (o *Observer[T]) deliver(gen uint64, res Result[T]) {
	o.deliverMu.Lock()
	defer o.deliverMu.Unlock()

	o.mu.Lock()
	if o.closed || gen != o.gen {
		o.mu.Unlock()
		return
	}
	o.current = res
	o.mu.Unlock()
	o.once.Do(func() { close(o.settled) })

	if o.onChange != nil {
		o.onChange(res)
	}
}
