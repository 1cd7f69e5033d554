// Package promotion holds discount coupons and the rules for showing their
// effective status.
package promotion

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// DiscountType selects how a coupon discount is computed
type DiscountType string

const (
	DiscountPercentage  DiscountType = "Percentage"
	DiscountFixedAmount DiscountType = "FixedAmount"
)

// IsValid checks if the discount type is known
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixedAmount
}

// CouponStatus is the status of a coupon. Active, Inactive and Expired are
// stored by the backend; Scheduled and Exhausted are only derived.
type CouponStatus string

const (
	CouponActive    CouponStatus = "Active"
	CouponInactive  CouponStatus = "Inactive"
	CouponExpired   CouponStatus = "Expired"
	CouponScheduled CouponStatus = "Scheduled"
	CouponExhausted CouponStatus = "Exhausted"
)

// AllCouponStatuses lists every status, stored and derived
func AllCouponStatuses() []CouponStatus {
	return []CouponStatus{CouponActive, CouponInactive, CouponExpired, CouponScheduled, CouponExhausted}
}

// IsStored reports whether the backend persists this status
func (s CouponStatus) IsStored() bool {
	switch s {
	case CouponActive, CouponInactive, CouponExpired:
		return true
	}
	return false
}

// Tone returns the badge emphasis for the status
func (s CouponStatus) Tone() shared.Tone {
	switch s {
	case CouponActive:
		return shared.ToneSuccess
	case CouponInactive:
		return shared.ToneNeutral
	case CouponExpired:
		return shared.ToneDanger
	case CouponScheduled:
		return shared.ToneInfo
	case CouponExhausted:
		return shared.ToneWarning
	}
	return shared.ToneNeutral
}

// Coupon is a discount code
type Coupon struct {
	ID                int64            `json:"id"`
	Code              string           `json:"code"`
	Description       string           `json:"description,omitempty"`
	DiscountType      DiscountType     `json:"discountType"`
	DiscountValue     decimal.Decimal  `json:"discountValue"`
	MinOrderAmount    *decimal.Decimal `json:"minOrderAmount,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount,omitempty"`
	StartDate         time.Time        `json:"startDate"`
	EndDate           time.Time        `json:"endDate"`
	UsageLimit        int              `json:"usageLimit"`
	UsedCount         int              `json:"usedCount"`
	Status            CouponStatus     `json:"status"`
}

// DeriveStatus computes the status to display at now. Expiry comes from the
// end date alone; a stored Expired is ignored and shows up in StatusMismatch.
// A stored Inactive wins over the remaining checks.
func DeriveStatus(c Coupon, now time.Time) CouponStatus {
	switch {
	case !c.EndDate.IsZero() && now.After(c.EndDate):
		return CouponExpired
	case !c.StartDate.IsZero() && now.Before(c.StartDate):
		return CouponScheduled
	case c.Status == CouponInactive:
		return CouponInactive
	case c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit:
		return CouponExhausted
	default:
		return CouponActive
	}
}

// StatusMismatch reports whether the derived status disagrees with the
// stored one. A derived Scheduled or Exhausted on an Active coupon is not
// a mismatch.
func StatusMismatch(c Coupon, now time.Time) bool {
	derived := DeriveStatus(c, now)
	switch derived {
	case CouponScheduled, CouponExhausted:
		return c.Status != CouponActive
	}
	return derived != c.Status
}

// Discount returns the discount the coupon grants on subtotal
func (c Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if c.MinOrderAmount != nil && subtotal.LessThan(*c.MinOrderAmount) {
		return decimal.Zero
	}
	var d decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		d = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	case DiscountFixedAmount:
		d = c.DiscountValue
	}
	if c.MaxDiscountAmount != nil && d.GreaterThan(*c.MaxDiscountAmount) {
		d = *c.MaxDiscountAmount
	}
	if d.GreaterThan(subtotal) {
		d = subtotal
	}
	return d.Round(2)
}

// CouponFilter narrows the coupon list
type CouponFilter struct {
	Search       string
	Status       CouponStatus
	DiscountType DiscountType
}

// Params converts the filter into query parameters
func (f CouponFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("search", f.Search).
		SetString("status", string(f.Status)).
		SetString("discountType", string(f.DiscountType))
}

// CouponInput is the editable field set of a coupon
type CouponInput struct {
	Code              string           `json:"code" validate:"required,min=3,max=30"`
	Description       string           `json:"description" validate:"max=250"`
	DiscountType      DiscountType     `json:"discountType" validate:"required,oneof=Percentage FixedAmount"`
	DiscountValue     decimal.Decimal  `json:"discountValue"`
	MinOrderAmount    *decimal.Decimal `json:"minOrderAmount,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount,omitempty"`
	StartDate         time.Time        `json:"startDate" validate:"required"`
	EndDate           time.Time        `json:"endDate" validate:"required,gtfield=StartDate"`
	UsageLimit        int              `json:"usageLimit" validate:"gte=0"`
	Status            CouponStatus     `json:"status" validate:"required,oneof=Active Inactive"`
}

// Validate checks the input before it is submitted. Decimal rules are
// checked by hand since the validator cannot compare decimals.
func (in CouponInput) Validate() error {
	out := shared.NewValidationError()
	if err := shared.ValidateStruct(in); err != nil {
		verr, ok := err.(*shared.ValidationError)
		if !ok {
			return err
		}
		out = verr
	}
	if !in.DiscountValue.IsPositive() {
		out.Add("discountValue", "discountValue must be greater than 0")
	} else if in.DiscountType == DiscountPercentage && in.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		out.Add("discountValue", "discountValue must be at most 100")
	}
	if in.MinOrderAmount != nil && in.MinOrderAmount.IsNegative() {
		out.Add("minOrderAmount", "minOrderAmount must be at least 0")
	}
	if in.MaxDiscountAmount != nil && !in.MaxDiscountAmount.IsPositive() {
		out.Add("maxDiscountAmount", "maxDiscountAmount must be greater than 0")
	}
	return out.Err()
}
