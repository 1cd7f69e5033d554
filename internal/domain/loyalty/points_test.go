package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

func TestPointsSettings_Validate(t *testing.T) {
	s := PointsSettings{
		PointsPerCurrencyUnit: decimal.NewFromInt(1),
		PointValue:            decimal.RequireFromString("0.05"),
		ReferrerPoints:        100,
		MinRedeemPoints:       200,
		IsReferralEnabled:     true,
	}
	require.NoError(t, s.Validate())

	s.ReferrerPoints = 0
	s.PointValue = decimal.Zero
	s.MinRedeemPoints = -1
	var verr *shared.ValidationError
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Contains(t, verr.Fields, "referrerPoints")
	assert.Contains(t, verr.Fields, "pointValue")
	assert.Contains(t, verr.Fields, "minRedeemPoints")
}

func TestPointsSettings_RedeemValue(t *testing.T) {
	s := PointsSettings{PointValue: decimal.RequireFromString("0.05"), MinRedeemPoints: 200}
	assert.True(t, s.RedeemValue(199).IsZero())
	assert.Equal(t, "10", s.RedeemValue(200).String())
}

func TestPointTermInput_Validate(t *testing.T) {
	require.NoError(t, PointTermInput{Title: "Earn", TitleAr: "اكسب", Description: "1 point per JOD", Points: 1}.Validate())
	assert.Error(t, PointTermInput{Title: "Earn", Points: -5}.Validate())
}
