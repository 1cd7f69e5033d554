package shared

import "fmt"

// Pagination describes one page of a list response
type Pagination struct {
	PageNumber      int   `json:"pageNumber"`
	PageSize        int   `json:"pageSize"`
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPagination computes the derived fields for a page
func NewPagination(pageNumber, pageSize int, totalCount int64) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}
	return Pagination{
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasNextPage:     pageNumber < totalPages,
		HasPreviousPage: pageNumber > 1,
	}
}

// ListResponse is a page of resources
type ListResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewListResponse creates a list response for the given page
func NewListResponse[T any](items []T, pageNumber, pageSize int, totalCount int64) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:      items,
		Pagination: NewPagination(pageNumber, pageSize, totalCount),
	}
}

// Validate checks the page invariants
func (r ListResponse[T]) Validate() error {
	p := r.Pagination
	if p.PageSize > 0 && len(r.Items) > p.PageSize {
		return fmt.Errorf("page holds %d items but page size is %d", len(r.Items), p.PageSize)
	}
	if p.PageSize > 0 {
		want := NewPagination(p.PageNumber, p.PageSize, p.TotalCount)
		if p.TotalPages != want.TotalPages {
			return fmt.Errorf("total pages %d does not match ceil(%d/%d)=%d", p.TotalPages, p.TotalCount, p.PageSize, want.TotalPages)
		}
	}
	if p.HasNextPage != (p.PageNumber < p.TotalPages) {
		return fmt.Errorf("hasNextPage=%t inconsistent with page %d of %d", p.HasNextPage, p.PageNumber, p.TotalPages)
	}
	return nil
}

// IsEmpty reports whether the page has no items
func (r ListResponse[T]) IsEmpty() bool {
	return len(r.Items) == 0
}
