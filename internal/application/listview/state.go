// Package listview holds the filter and paging state of a list page.
package listview

import (
	"strconv"
	"sync"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Filter is any filter that serializes into query parameters
type Filter interface {
	Params() shared.Params
}

// State is the local state of one list page. Changing the filter always
// returns to the first page.
type State[F Filter] struct {
	mu         sync.Mutex
	filter     F
	page       int
	pageSize   int
	totalPages int
	pageParam  string
	sizeParam  string
}

// Option configures a State
type Option func(*config)

type config struct {
	pageSize  int
	pageParam string
	sizeParam string
}

// WithPageSize sets the page size
func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithPagingParams sets the paging parameter names, for endpoints that use
// e.g. page/limit
func WithPagingParams(page, size string) Option {
	return func(c *config) {
		c.pageParam, c.sizeParam = page, size
	}
}

// New creates list state with an initial filter
func New[F Filter](initial F, opts ...Option) *State[F] {
	cfg := config{
		pageSize:  shared.DefaultPageSize,
		pageParam: shared.ParamPageNumber,
		sizeParam: shared.ParamPageSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &State[F]{
		filter:    initial,
		page:      shared.DefaultPageNumber,
		pageSize:  cfg.pageSize,
		pageParam: cfg.pageParam,
		sizeParam: cfg.sizeParam,
	}
}

// Filter returns the current filter
func (s *State[F]) Filter() F {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Page returns the current page number
func (s *State[F]) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Update changes the filter and resets to page 1
func (s *State[F]) Update(fn func(*F)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.filter)
	s.page = shared.DefaultPageNumber
	s.totalPages = 0
}

// SetFilter replaces the filter and resets to page 1
func (s *State[F]) SetFilter(f F) {
	s.Update(func(cur *F) { *cur = f })
}

// SetPage moves to page n. Once a response is known the page is clamped to
// [1, totalPages].
func (s *State[F]) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = s.clamp(n)
}

// Next moves one page forward, unless on the last page
func (s *State[F]) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = s.clamp(s.page + 1)
}

// Prev moves one page back
func (s *State[F]) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = s.clamp(s.page - 1)
}

// Observe records the pagination of the latest response. A page beyond the
// last one is pulled back.
func (s *State[F]) Observe(p shared.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalPages = p.TotalPages
	s.page = s.clamp(s.page)
}

func (s *State[F]) clamp(n int) int {
	if s.totalPages > 0 && n > s.totalPages {
		n = s.totalPages
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Params merges the filter with the paging parameters
func (s *State[F]) Params() shared.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.filter.Params()
	if p == nil {
		p = shared.NewParams()
	}
	p[s.pageParam] = strconv.Itoa(s.page)
	p[s.sizeParam] = strconv.Itoa(s.pageSize)
	return p
}
