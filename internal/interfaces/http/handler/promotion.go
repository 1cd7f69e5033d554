package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sooquk/dashboard/internal/domain/promotion"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
)

// CouponHandler serves discount coupons
type CouponHandler struct {
	BaseHandler
	db  *memdb.DB
	now func() time.Time
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(db *memdb.DB) *CouponHandler {
	return &CouponHandler{db: db, now: time.Now}
}

// RegisterRoutes registers the coupon routes
func (h *CouponHandler) RegisterRoutes(rg *gin.RouterGroup) {
	coupons := rg.Group("/coupons")
	{
		coupons.GET("", h.List)
		coupons.POST("", h.Create)
		coupons.GET("/:id", h.Get)
		coupons.PUT("/:id", h.Update)
		coupons.DELETE("/:id", h.Delete)
	}
}

// List returns a page of coupons. A status filter matches the stored or
// the derived status.
func (h *CouponHandler) List(c *gin.Context) {
	status := promotion.CouponStatus(c.Query("status"))
	discountType := promotion.DiscountType(c.Query("discountType"))
	search := c.Query("search")
	now := h.now()

	rows := h.db.Coupons.Find(func(cp promotion.Coupon) bool {
		return (status == "" || cp.Status == status || promotion.DeriveStatus(cp, now) == status) &&
			(discountType == "" || cp.DiscountType == discountType) &&
			matches(search, cp.Code, cp.Description)
	})
	sendPage(&h.BaseHandler, c, rows)
}

// Get returns one coupon
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	cp, ok := h.db.Coupons.Get(id)
	if !ok {
		h.NotFound(c, "Coupon not found")
		return
	}
	h.Success(c, cp)
}

// Create adds a coupon with a unique code
func (h *CouponHandler) Create(c *gin.Context) {
	var in promotion.CouponInput
	if !h.bindValid(c, &in) || !h.uniqueCode(c, 0, in.Code) {
		return
	}
	cp := promotion.Coupon{ID: h.db.CouponIDs.Next()}
	applyCoupon(&cp, in)
	h.db.Coupons.Put(cp)
	h.Created(c, cp)
}

// Update replaces a coupon. The usage count is kept.
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var in promotion.CouponInput
	if !h.bindValid(c, &in) || !h.uniqueCode(c, id, in.Code) {
		return
	}
	cp, err := h.db.Coupons.Update(id, func(cp *promotion.Coupon) error {
		applyCoupon(cp, in)
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Coupon not found")
		return
	}
	h.Success(c, cp)
}

// Delete removes a coupon
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if !h.db.Coupons.Delete(id) {
		h.NotFound(c, "Coupon not found")
		return
	}
	h.Message(c, "Coupon deleted")
}

func (h *CouponHandler) uniqueCode(c *gin.Context, self int64, code string) bool {
	taken := h.db.Coupons.Any(func(cp promotion.Coupon) bool {
		return cp.ID != self && strings.EqualFold(cp.Code, code)
	})
	if taken {
		h.HandleError(c, shared.NewDomainError("ALREADY_EXISTS", "A coupon with code "+code+" already exists"))
	}
	return !taken
}

func applyCoupon(cp *promotion.Coupon, in promotion.CouponInput) {
	cp.Code = strings.ToUpper(in.Code)
	cp.Description = in.Description
	cp.DiscountType = in.DiscountType
	cp.DiscountValue = in.DiscountValue
	cp.MinOrderAmount = in.MinOrderAmount
	cp.MaxDiscountAmount = in.MaxDiscountAmount
	cp.StartDate = in.StartDate
	cp.EndDate = in.EndDate
	cp.UsageLimit = in.UsageLimit
	cp.Status = in.Status
}
