// Package querytest provides an inspectable store and client for tests of
// code built on the query cache.
package querytest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sooquk/dashboard/internal/application/query"
)

// Store is a map-backed query.Store that records invalidated prefixes
type Store struct {
	mu          sync.Mutex
	entries     map[string]*query.Entry
	invalidated []string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{entries: make(map[string]*query.Entry)}
}

func (s *Store) Get(_ context.Context, key string) (*query.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[key].Clone(), nil
}

func (s *Store) Set(_ context.Context, e *query.Entry, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Key] = e.Clone()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *Store) Invalidate(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated = append(s.invalidated, prefix)
	n := 0
	for k, e := range s.entries {
		if query.MatchesPrefix(k, prefix) {
			e.Invalidated = true
			n++
		}
	}
	return n, nil
}

// Entry returns a copy of the entry under key, or nil
func (s *Store) Entry(key query.Key) *query.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[key.String()].Clone()
}

// Keys returns every stored key
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for k := range s.entries {
		out = append(out, k)
	}
	return out
}

// Invalidated returns the prefixes passed to Invalidate, in order
func (s *Store) Invalidated() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.invalidated...)
}

// Reset forgets recorded invalidations
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated = nil
}

// NewClient returns a client over a fresh Store without retries. The client
// is closed when the test ends.
func NewClient(t testing.TB, opts ...query.Option) (*query.Client, *Store) {
	t.Helper()
	store := NewStore()
	base := []query.Option{query.WithRetry(query.NoRetry)}
	c := query.NewClient(store, append(base, opts...)...)
	t.Cleanup(c.Close)
	return c, store
}

// Strings renders keys the way stores see them
func Strings(keys ...query.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
