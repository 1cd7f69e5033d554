// Package memdb is the in-memory storage of the stub backend: one
// goroutine-safe table per resource, seeded with fake marketplace data.
package memdb

import (
	"sync"
	"sync/atomic"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = shared.NewDomainError("NOT_FOUND", "Resource not found")

// Table holds rows of one resource keyed by ID. Rows are listed newest
// first.
type Table[K comparable, T any] struct {
	mu    sync.RWMutex
	rows  map[K]T
	order []K
	key   func(T) K
}

// NewTable creates an empty table; key extracts a row's ID
func NewTable[K comparable, T any](key func(T) K) *Table[K, T] {
	return &Table[K, T]{
		rows: make(map[K]T),
		key:  key,
	}
}

// Get returns the row with id
func (t *Table[K, T]) Get(id K) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// Put inserts row or replaces the row with the same ID
func (t *Table[K, T]) Put(row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.key(row)
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

// Update applies fn to the row with id under the write lock. The row is
// left untouched when fn fails.
func (t *Table[K, T]) Update(id K, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	if err := fn(&row); err != nil {
		var zero T
		return zero, err
	}
	t.rows[id] = row
	return row, nil
}

// Delete removes the row with id and reports whether it existed
func (t *Table[K, T]) Delete(id K) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Find returns the rows matching match, newest first. A nil match returns
// every row.
func (t *Table[K, T]) Find(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for i := len(t.order) - 1; i >= 0; i-- {
		row := t.rows[t.order[i]]
		if match == nil || match(row) {
			out = append(out, row)
		}
	}
	return out
}

// Any reports whether some row matches
func (t *Table[K, T]) Any(match func(T) bool) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if match(row) {
			return true
		}
	}
	return false
}

// Len returns the number of rows
func (t *Table[K, T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Sequence hands out increasing int64 IDs
type Sequence struct {
	n atomic.Int64
}

// Next returns the next ID, starting at 1
func (s *Sequence) Next() int64 {
	return s.n.Add(1)
}

// Page slices one page out of rows. Pages are 1-based; out of range pages
// are empty.
func Page[T any](rows []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+size, len(rows))
	return rows[start:end]
}
