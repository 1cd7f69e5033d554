// Package promotion exposes coupon reads and writes.
package promotion

import (
	"context"
	"time"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/promotion"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

// CouponAPI is the backend surface the service needs
type CouponAPI interface {
	List(ctx context.Context, params shared.Params) (*shared.ListResponse[promotion.Coupon], error)
	Get(ctx context.Context, id int64) (*promotion.Coupon, error)
	Create(ctx context.Context, in promotion.CouponInput) (*promotion.Coupon, error)
	Update(ctx context.Context, id int64, in promotion.CouponInput) (*promotion.Coupon, error)
	Delete(ctx context.Context, id int64) error
}

// UpdateCoupon is the input of the update mutation
type UpdateCoupon struct {
	ID    int64
	Input promotion.CouponInput
}

// CouponRow is a coupon as displayed: the derived status is shown, and a
// disagreement with the stored status is flagged
type CouponRow struct {
	promotion.Coupon
	Display  promotion.CouponStatus
	Mismatch bool
}

// CouponService builds coupon queries and mutations
type CouponService struct {
	api CouponAPI
	qc  *query.Client
	now func() time.Time
}

// NewCouponService creates a new CouponService
func NewCouponService(api CouponAPI, qc *query.Client) *CouponService {
	return &CouponService{api: api, qc: qc, now: time.Now}
}

// WithClock replaces time.Now for status derivation
func (s *CouponService) WithClock(now func() time.Time) *CouponService {
	s.now = now
	return s
}

// ListQuery reads one page of coupons
func (s *CouponService) ListQuery(params shared.Params) query.Query[shared.ListResponse[promotion.Coupon]] {
	return query.Query[shared.ListResponse[promotion.Coupon]]{
		Key: query.ListKey(query.ResourceCoupons, params),
		Fn: func(ctx context.Context) (shared.ListResponse[promotion.Coupon], error) {
			return query.Deref(s.api.List(ctx, params))
		},
	}
}

// DetailQuery reads one coupon
func (s *CouponService) DetailQuery(id int64) query.Query[promotion.Coupon] {
	return query.Query[promotion.Coupon]{
		Key: query.DetailKey(query.ResourceCoupons, id),
		Fn: func(ctx context.Context) (promotion.Coupon, error) {
			return query.Deref(s.api.Get(ctx, id))
		},
	}
}

// Rows derives the displayed status of each coupon
func (s *CouponService) Rows(coupons []promotion.Coupon) []CouponRow {
	now := s.now()
	rows := make([]CouponRow, len(coupons))
	for i, c := range coupons {
		rows[i] = CouponRow{
			Coupon:   c,
			Display:  promotion.DeriveStatus(c, now),
			Mismatch: promotion.StatusMismatch(c, now),
		}
	}
	return rows
}

// CreateMutation creates a coupon
func (s *CouponService) CreateMutation() query.Mutation[promotion.CouponInput, *promotion.Coupon] {
	return query.Mutation[promotion.CouponInput, *promotion.Coupon]{
		Name: "create coupon",
		Fn: func(ctx context.Context, in promotion.CouponInput) (*promotion.Coupon, error) {
			if err := in.Validate(); err != nil {
				return nil, err
			}
			return s.api.Create(ctx, in)
		},
		Invalidates: func(promotion.CouponInput, *promotion.Coupon) []query.Key {
			return query.OnCreate(query.ResourceCoupons)
		},
	}
}

// UpdateMutation updates a coupon
func (s *CouponService) UpdateMutation() query.Mutation[UpdateCoupon, *promotion.Coupon] {
	return query.Mutation[UpdateCoupon, *promotion.Coupon]{
		Name: "update coupon",
		Fn: func(ctx context.Context, in UpdateCoupon) (*promotion.Coupon, error) {
			if err := in.Input.Validate(); err != nil {
				return nil, err
			}
			return s.api.Update(ctx, in.ID, in.Input)
		},
		Invalidates: func(in UpdateCoupon, _ *promotion.Coupon) []query.Key {
			return query.OnUpdate(query.ResourceCoupons, in.ID)
		},
	}
}

// DeleteMutation deletes a coupon
func (s *CouponService) DeleteMutation() query.Mutation[int64, struct{}] {
	return query.Mutation[int64, struct{}]{
		Name: "delete coupon",
		Fn: func(ctx context.Context, id int64) (struct{}, error) {
			return struct{}{}, s.api.Delete(ctx, id)
		},
		Invalidates: func(id int64, _ struct{}) []query.Key {
			return query.OnDelete(query.ResourceCoupons, id)
		},
	}
}

// List fetches a page of coupons through the cache
func (s *CouponService) List(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[promotion.Coupon]] {
	return query.Fetch(ctx, s.qc, s.ListQuery(params))
}

// Get fetches one coupon through the cache
func (s *CouponService) Get(ctx context.Context, id int64) query.Result[promotion.Coupon] {
	return query.Fetch(ctx, s.qc, s.DetailQuery(id))
}

// Create runs the create mutation
func (s *CouponService) Create(ctx context.Context, in promotion.CouponInput) query.MutationResult[*promotion.Coupon] {
	return query.Mutate(ctx, s.qc, s.CreateMutation(), in)
}

// Update runs the update mutation
func (s *CouponService) Update(ctx context.Context, id int64, in promotion.CouponInput) query.MutationResult[*promotion.Coupon] {
	return query.Mutate(ctx, s.qc, s.UpdateMutation(), UpdateCoupon{ID: id, Input: in})
}

// Delete runs the delete mutation
func (s *CouponService) Delete(ctx context.Context, id int64) query.MutationResult[struct{}] {
	return query.Mutate(ctx, s.qc, s.DeleteMutation(), id)
}

// Client returns the query client the service reads through
func (s *CouponService) Client() *query.Client {
	return s.qc
}
