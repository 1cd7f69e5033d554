// Package catalog exposes category and review reads and writes.
package catalog

import (
	"context"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

// CategoryAPI is the backend surface the category service needs
type CategoryAPI interface {
	List(ctx context.Context, params shared.Params) (*shared.ListResponse[catalog.Category], error)
	Get(ctx context.Context, id int64) (*catalog.Category, error)
	Create(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error)
	Update(ctx context.Context, id int64, in catalog.CategoryInput) (*catalog.Category, error)
	Delete(ctx context.Context, id int64) error
}

// UpdateCategory is the input of the update mutation
type UpdateCategory struct {
	ID    int64
	Input catalog.CategoryInput
}

// CategoryService builds category queries and mutations
type CategoryService struct {
	api CategoryAPI
	qc  *query.Client
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(api CategoryAPI, qc *query.Client) *CategoryService {
	return &CategoryService{api: api, qc: qc}
}

// ListQuery reads one page of categories
func (s *CategoryService) ListQuery(params shared.Params) query.Query[shared.ListResponse[catalog.Category]] {
	return query.Query[shared.ListResponse[catalog.Category]]{
		Key: query.ListKey(query.ResourceCategories, params),
		Fn: func(ctx context.Context) (shared.ListResponse[catalog.Category], error) {
			return query.Deref(s.api.List(ctx, params))
		},
	}
}

// DetailQuery reads one category
func (s *CategoryService) DetailQuery(id int64) query.Query[catalog.Category] {
	return query.Query[catalog.Category]{
		Key: query.DetailKey(query.ResourceCategories, id),
		Fn: func(ctx context.Context) (catalog.Category, error) {
			return query.Deref(s.api.Get(ctx, id))
		},
	}
}

// CreateMutation creates a category, uploading its image if one is set
func (s *CategoryService) CreateMutation() query.Mutation[catalog.CategoryInput, *catalog.Category] {
	return query.Mutation[catalog.CategoryInput, *catalog.Category]{
		Name: "create category",
		Fn: func(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error) {
			if err := in.Validate(); err != nil {
				return nil, err
			}
			return s.api.Create(ctx, in)
		},
		Invalidates: func(catalog.CategoryInput, *catalog.Category) []query.Key {
			return query.OnCreate(query.ResourceCategories)
		},
	}
}

// UpdateMutation updates a category. A category cannot become its own parent.
func (s *CategoryService) UpdateMutation() query.Mutation[UpdateCategory, *catalog.Category] {
	return query.Mutation[UpdateCategory, *catalog.Category]{
		Name: "update category",
		Fn: func(ctx context.Context, in UpdateCategory) (*catalog.Category, error) {
			if err := in.Input.Validate(); err != nil {
				return nil, err
			}
			if in.Input.ParentID != nil && *in.Input.ParentID == in.ID {
				verr := shared.NewValidationError()
				verr.Add("parentId", "A category cannot be its own parent")
				return nil, verr
			}
			return s.api.Update(ctx, in.ID, in.Input)
		},
		Invalidates: func(in UpdateCategory, _ *catalog.Category) []query.Key {
			return query.OnUpdate(query.ResourceCategories, in.ID)
		},
	}
}

// DeleteMutation deletes a category. The backend refuses with a conflict
// while products or subcategories reference it.
func (s *CategoryService) DeleteMutation() query.Mutation[int64, struct{}] {
	return query.Mutation[int64, struct{}]{
		Name: "delete category",
		Fn: func(ctx context.Context, id int64) (struct{}, error) {
			return struct{}{}, s.api.Delete(ctx, id)
		},
		Invalidates: func(id int64, _ struct{}) []query.Key {
			return query.OnDelete(query.ResourceCategories, id)
		},
	}
}

// List fetches a page of categories through the cache
func (s *CategoryService) List(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[catalog.Category]] {
	return query.Fetch(ctx, s.qc, s.ListQuery(params))
}

// Get fetches one category through the cache
func (s *CategoryService) Get(ctx context.Context, id int64) query.Result[catalog.Category] {
	return query.Fetch(ctx, s.qc, s.DetailQuery(id))
}

// Create runs the create mutation
func (s *CategoryService) Create(ctx context.Context, in catalog.CategoryInput) query.MutationResult[*catalog.Category] {
	return query.Mutate(ctx, s.qc, s.CreateMutation(), in)
}

// Update runs the update mutation
func (s *CategoryService) Update(ctx context.Context, id int64, in catalog.CategoryInput) query.MutationResult[*catalog.Category] {
	return query.Mutate(ctx, s.qc, s.UpdateMutation(), UpdateCategory{ID: id, Input: in})
}

// Delete runs the delete mutation
func (s *CategoryService) Delete(ctx context.Context, id int64) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.DeleteMutation(), id)
}

// Client returns the query client the service reads through
func (s *CategoryService) Client() *query.Client {
	return s.qc
}
