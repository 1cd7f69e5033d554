// Package loyalty holds the points terms and the referral/points settings.
package loyalty

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// PointTerm is one rule or condition of the points program shown to customers
type PointTerm struct {
	PointTermID   int64     `json:"pointTermId"`
	Title         string    `json:"title"`
	TitleAr       string    `json:"titleAr"`
	Description   string    `json:"description"`
	DescriptionAr string    `json:"descriptionAr,omitempty"`
	Points        int       `json:"points"`
	DisplayOrder  int       `json:"displayOrder"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// PointTermFilter narrows the terms list
type PointTermFilter struct {
	Search   string
	IsActive *bool
}

// Params converts the filter into query parameters
func (f PointTermFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("search", f.Search).
		SetBoolPtr("isActive", f.IsActive)
}

// PointTermInput is the editable field set of a term
type PointTermInput struct {
	Title         string `json:"title" validate:"required,max=150"`
	TitleAr       string `json:"titleAr" validate:"required,max=150"`
	Description   string `json:"description" validate:"required,max=1000"`
	DescriptionAr string `json:"descriptionAr" validate:"max=1000"`
	Points        int    `json:"points" validate:"gte=0"`
	DisplayOrder  int    `json:"displayOrder" validate:"gte=0"`
	IsActive      bool   `json:"isActive"`
}

// Validate checks the input before it is submitted
func (in PointTermInput) Validate() error {
	return shared.ValidateStruct(in)
}

// PointsSettings is the singleton configuration of points and referrals
type PointsSettings struct {
	PointsPerCurrencyUnit decimal.Decimal `json:"pointsPerCurrencyUnit"`
	PointValue            decimal.Decimal `json:"pointValue"`
	ReferrerPoints        int             `json:"referrerPoints" validate:"gte=0"`
	RefereePoints         int             `json:"refereePoints" validate:"gte=0"`
	MinRedeemPoints       int             `json:"minRedeemPoints" validate:"gte=0"`
	IsReferralEnabled     bool            `json:"isReferralEnabled"`
	UpdatedAt             time.Time       `json:"updatedAt,omitempty"`
}

// Validate checks the settings before they are submitted
func (s PointsSettings) Validate() error {
	out := shared.NewValidationError()
	if err := shared.ValidateStruct(s); err != nil {
		verr, ok := err.(*shared.ValidationError)
		if !ok {
			return err
		}
		out = verr
	}
	if s.PointsPerCurrencyUnit.IsNegative() {
		out.Add("pointsPerCurrencyUnit", "pointsPerCurrencyUnit must be at least 0")
	}
	if !s.PointValue.IsPositive() {
		out.Add("pointValue", "pointValue must be greater than 0")
	}
	if s.IsReferralEnabled && s.ReferrerPoints == 0 && s.RefereePoints == 0 {
		out.Add("referrerPoints", "referrals need points for the referrer or the referee")
	}
	return out.Err()
}

// RedeemValue returns the currency value of points, or zero below the minimum
func (s PointsSettings) RedeemValue(points int) decimal.Decimal {
	if points < s.MinRedeemPoints || points <= 0 {
		return decimal.Zero
	}
	return s.PointValue.Mul(decimal.NewFromInt(int64(points)))
}
