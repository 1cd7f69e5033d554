package catalog

import (
	"context"
	"strconv"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/catalog"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

// ReviewAPI is the backend surface for reviews of one kind
type ReviewAPI interface {
	Kind() catalog.ReviewKind
	List(ctx context.Context, params shared.Params) (*shared.ListResponse[catalog.Review], error)
	Get(ctx context.Context, id int64) (*catalog.Review, error)
	Moderate(ctx context.Context, id int64, req catalog.ModerateReviewRequest) (*catalog.Review, error)
	Delete(ctx context.Context, id int64) error
}

// ModerateReview is the input of the moderate mutation
type ModerateReview struct {
	ID      int64
	Request catalog.ModerateReviewRequest
}

// ReviewService builds review queries and mutations for one kind. Keys
// carry the kind so moderating a product review leaves vendor reviews
// cached.
type ReviewService struct {
	api  ReviewAPI
	kind string
	qc   *query.Client
}

// NewReviewService creates a new ReviewService
func NewReviewService(api ReviewAPI, qc *query.Client) *ReviewService {
	return &ReviewService{api: api, kind: string(api.Kind()), qc: qc}
}

// Kind returns the review kind
func (s *ReviewService) Kind() catalog.ReviewKind {
	return catalog.ReviewKind(s.kind)
}

// ListPrefix matches every list read of this kind
func (s *ReviewService) ListPrefix() query.Key {
	return query.Prefix(query.ResourceReviews, query.OpList, s.kind)
}

func (s *ReviewService) detailKey(id int64) query.Key {
	return query.NewKey(query.ResourceReviews, query.OpDetail, s.kind, strconv.FormatInt(id, 10))
}

func (s *ReviewService) changed(id int64) []query.Key {
	return []query.Key{s.ListPrefix(), s.detailKey(id)}
}

// ListQuery reads one page of reviews
func (s *ReviewService) ListQuery(params shared.Params) query.Query[shared.ListResponse[catalog.Review]] {
	return query.Query[shared.ListResponse[catalog.Review]]{
		Key: s.ListPrefix().Append(params.Encode()),
		Fn: func(ctx context.Context) (shared.ListResponse[catalog.Review], error) {
			return query.Deref(s.api.List(ctx, params))
		},
	}
}

// DetailQuery reads one review
func (s *ReviewService) DetailQuery(id int64) query.Query[catalog.Review] {
	return query.Query[catalog.Review]{
		Key: s.detailKey(id),
		Fn: func(ctx context.Context) (catalog.Review, error) {
			return query.Deref(s.api.Get(ctx, id))
		},
	}
}

// ModerateMutation approves or rejects a review
func (s *ReviewService) ModerateMutation() query.Mutation[ModerateReview, *catalog.Review] {
	return query.Mutation[ModerateReview, *catalog.Review]{
		Name: "moderate " + s.kind + " review",
		Fn: func(ctx context.Context, in ModerateReview) (*catalog.Review, error) {
			if err := in.Request.Validate(); err != nil {
				return nil, err
			}
			return s.api.Moderate(ctx, in.ID, in.Request)
		},
		Invalidates: func(in ModerateReview, _ *catalog.Review) []query.Key {
			return s.changed(in.ID)
		},
	}
}

// DeleteMutation deletes a review
func (s *ReviewService) DeleteMutation() query.Mutation[int64, struct{}] {
	return query.Mutation[int64, struct{}]{
		Name: "delete " + s.kind + " review",
		Fn: func(ctx context.Context, id int64) (struct{}, error) {
			return struct{}{}, s.api.Delete(ctx, id)
		},
		Invalidates: func(id int64, _ struct{}) []query.Key {
			return s.changed(id)
		},
	}
}

// List fetches a page of reviews through the cache
func (s *ReviewService) List(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[catalog.Review]] {
	return query.Fetch(ctx, s.qc, s.ListQuery(params))
}

// Get fetches one review through the cache
func (s *ReviewService) Get(ctx context.Context, id int64) query.Result[catalog.Review] {
	return query.Fetch(ctx, s.qc, s.DetailQuery(id))
}

// Moderate runs the moderate mutation
func (s *ReviewService) Moderate(ctx context.Context, id int64, req catalog.ModerateReviewRequest) query.MutationResult[*catalog.Review] {
	return query.Mutate(ctx, s.qc, s.ModerateMutation(), ModerateReview{ID: id, Request: req})
}

// Delete runs the delete mutation
func (s *ReviewService) Delete(ctx context.Context, id int64) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.DeleteMutation(), id)
}

// Client returns the query client the service reads through
func (s *ReviewService) Client() *query.Client {
	return s.qc
}
