package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// CategoryAPI manages product categories. Writes are multipart so an
// image can be attached.
type CategoryAPI struct {
	res *Resource[catalog.Category, int64]
}

// NewCategoryAPI creates the categories client
func NewCategoryAPI(c *apiclient.Client) *CategoryAPI {
	return &CategoryAPI{res: NewResource[catalog.Category, int64](c, "categories")}
}

// List returns a page of categories
func (a *CategoryAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[catalog.Category], error) {
	return a.res.List(ctx, params)
}

// Get returns one category
func (a *CategoryAPI) Get(ctx context.Context, id int64) (*catalog.Category, error) {
	return a.res.Get(ctx, id)
}

// Create adds a category
func (a *CategoryAPI) Create(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error) {
	return a.res.Create(ctx, CategoryForm(in))
}

// Update replaces a category with PATCH
func (a *CategoryAPI) Update(ctx context.Context, id int64, in catalog.CategoryInput) (*catalog.Category, error) {
	return a.res.Update(ctx, id, CategoryForm(in))
}

// Delete soft deletes a category
func (a *CategoryAPI) Delete(ctx context.Context, id int64) error {
	return a.res.Delete(ctx, id, DeleteOptions{})
}

// CategoryForm encodes a category input as multipart form data
func CategoryForm(in catalog.CategoryInput) *apiclient.Form {
	return apiclient.NewForm().
		String("name", in.Name).
		String("nameAr", in.NameAr).
		OptionalString("description", in.Description).
		OptionalInt("parentId", in.ParentID).
		Bool("isActive", in.IsActive).
		Int("displayOrder", int64(in.DisplayOrder)).
		File("image", in.Image)
}

// ReviewAPI moderates reviews of one kind: products, vendors or shipping
type ReviewAPI struct {
	kind catalog.ReviewKind
	res  *Resource[catalog.Review, int64]
}

// NewReviewAPI creates the reviews client for kind
func NewReviewAPI(c *apiclient.Client, kind catalog.ReviewKind) (*ReviewAPI, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_REVIEW_KIND", fmt.Sprintf("unknown review kind %q", kind))
	}
	return &ReviewAPI{
		kind: kind,
		res:  NewResource[catalog.Review, int64](c, join("reviews", string(kind))),
	}, nil
}

// Kind returns the review kind
func (a *ReviewAPI) Kind() catalog.ReviewKind {
	return a.kind
}

// List returns a page of reviews
func (a *ReviewAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[catalog.Review], error) {
	return a.res.List(ctx, params)
}

// Get returns one review
func (a *ReviewAPI) Get(ctx context.Context, id int64) (*catalog.Review, error) {
	return a.res.Get(ctx, id)
}

// Moderate approves or rejects a review
func (a *ReviewAPI) Moderate(ctx context.Context, id int64, req catalog.ModerateReviewRequest) (*catalog.Review, error) {
	return apiclient.Decode[catalog.Review](ctx, a.res.client, apiclient.Request{
		Method: http.MethodPut,
		Path:   a.res.ItemPath(id, "status"),
		Body:   apiclient.JSON(req),
	})
}

// Delete removes a review
func (a *ReviewAPI) Delete(ctx context.Context, id int64) error {
	return a.res.Delete(ctx, id, DeleteOptions{})
}
