package api

import (
	"context"

	"github.com/sooquk/dashboard/internal/domain/promotion"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// CouponAPI manages discount coupons
type CouponAPI struct {
	res *Resource[promotion.Coupon, int64]
}

// NewCouponAPI creates the coupons client
func NewCouponAPI(c *apiclient.Client) *CouponAPI {
	return &CouponAPI{res: NewResource[promotion.Coupon, int64](c, "coupons")}
}

// List returns a page of coupons
func (a *CouponAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[promotion.Coupon], error) {
	return a.res.List(ctx, params)
}

// Get returns one coupon
func (a *CouponAPI) Get(ctx context.Context, id int64) (*promotion.Coupon, error) {
	return a.res.Get(ctx, id)
}

// Create adds a coupon
func (a *CouponAPI) Create(ctx context.Context, in promotion.CouponInput) (*promotion.Coupon, error) {
	return a.res.Create(ctx, apiclient.JSON(in))
}

// Update replaces a coupon
func (a *CouponAPI) Update(ctx context.Context, id int64, in promotion.CouponInput) (*promotion.Coupon, error) {
	return a.res.Update(ctx, id, apiclient.JSON(in))
}

// Delete soft deletes a coupon
func (a *CouponAPI) Delete(ctx context.Context, id int64) error {
	return a.res.Delete(ctx, id, DeleteOptions{})
}
