package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	promotionapp "github.com/sooquk/dashboard/internal/application/promotion"
	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/promotion"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

// CouponsPage lists coupons with their derived status and edits them
type CouponsPage struct {
	svc  *promotionapp.CouponService
	deps Deps
	List *ListPage[promotion.Coupon, promotion.CouponFilter]

	create *query.Mutator[promotion.CouponInput, *promotion.Coupon]
	update *query.Mutator[promotionapp.UpdateCoupon, *promotion.Coupon]
	remove *query.Mutator[int64, struct{}]
}

// NewCouponsPage creates the coupons page
func NewCouponsPage(svc *promotionapp.CouponService, deps Deps, filter promotion.CouponFilter) *CouponsPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	p := &CouponsPage{
		svc:    svc,
		deps:   deps,
		create: query.NewMutator(qc, svc.CreateMutation()),
		update: query.NewMutator(qc, svc.UpdateMutation()),
		remove: query.NewMutator(qc, svc.DeleteMutation()),
	}
	p.List = NewListPage(qc, deps, ListSpec[promotion.Coupon, promotion.CouponFilter]{
		Title:  "Coupons",
		Roles:  adminOnly,
		Filter: filter,
		Query:  svc.ListQuery,
		Columns: []Column[promotion.Coupon]{
			{Header: "ID", Value: func(c promotion.Coupon) string { return id64(c.ID) }},
			{Header: "Code", Value: func(c promotion.Coupon) string { return c.Code }},
			{Header: "Discount", Value: discount},
			{Header: "Valid", Value: func(c promotion.Coupon) string { return date(c.StartDate) + " → " + date(c.EndDate) }},
			{Header: "Used", Value: usage},
			{Header: "Status", Value: p.status},
		},
	})
	return p
}

// status shows the derived status, marked when the stored one disagrees
func (p *CouponsPage) status(c promotion.Coupon) string {
	row := p.svc.Rows([]promotion.Coupon{c})[0]
	s := badge(string(row.Display), row.Display.Tone())
	if row.Mismatch {
		s += fmt.Sprintf(" (stored: %s)", c.Status)
	}
	return s
}

func discount(c promotion.Coupon) string {
	if c.DiscountType == promotion.DiscountPercentage {
		return c.DiscountValue.String() + "%"
	}
	return money(c.DiscountValue)
}

func usage(c promotion.Coupon) string {
	if c.UsageLimit == 0 {
		return strconv.Itoa(c.UsedCount)
	}
	return fmt.Sprintf("%d/%d", c.UsedCount, c.UsageLimit)
}

// Show renders one coupon
func (p *CouponsPage) Show(ctx context.Context, w io.Writer, id int64) error {
	if err := p.deps.require("coupon", adminOnly...); err != nil {
		return err
	}
	return showDetail(w, p.svc.Get(ctx, id), func(c promotion.Coupon) []Field {
		return []Field{
			{"ID", id64(c.ID)},
			{"Code", c.Code},
			{"Description", c.Description},
			{"Discount", discount(c)},
			{"Min order", optMoney(c.MinOrderAmount)},
			{"Max discount", optMoney(c.MaxDiscountAmount)},
			{"Starts", stamp(c.StartDate)},
			{"Ends", stamp(c.EndDate)},
			{"Used", usage(c)},
			{"Status", p.status(c)},
		}
	})
}

// Create adds a coupon
func (p *CouponsPage) Create(ctx context.Context, in promotion.CouponInput) (*promotion.Coupon, error) {
	if err := p.deps.require("coupons", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.create.Name(), Subject: "Coupon", Success: i18n.ToastCreated},
		func(ctx context.Context) query.MutationResult[*promotion.Coupon] {
			return p.create.Submit(ctx, in)
		})
}

// Update replaces the editable fields of a coupon
func (p *CouponsPage) Update(ctx context.Context, id int64, in promotion.CouponInput) (*promotion.Coupon, error) {
	if err := p.deps.require("coupons", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.update.Name(), Subject: "Coupon", Success: i18n.ToastUpdated},
		func(ctx context.Context) query.MutationResult[*promotion.Coupon] {
			return p.update.Submit(ctx, promotionapp.UpdateCoupon{ID: id, Input: in})
		})
}

// Delete removes a coupon after confirmation
func (p *CouponsPage) Delete(ctx context.Context, id int64) error {
	if err := p.deps.require("coupons", adminOnly...); err != nil {
		return err
	}
	_, err := Run(ctx, p.deps, deleteAction(p.deps, p.remove.Name(), "Coupon", fmt.Sprintf("coupon #%d", id)),
		func(ctx context.Context) query.MutationResult[struct{}] {
			return p.remove.Submit(ctx, id)
		})
	return err
}
