package handler

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/loyalty"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

func TestPoints_Settings(t *testing.T) {
	db := fixtureDB()
	engine := asAdmin(NewPointsHandler(db))

	rec, env := do(t, engine, http.MethodPut, "/api/points/settings", apiclient.JSON(loyalty.PointsSettings{
		PointsPerCurrencyUnit: decimal.NewFromInt(-1),
		IsReferralEnabled:     true,
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "pointsPerCurrencyUnit")
	assert.Contains(t, env.Errors, "pointValue")
	assert.Contains(t, env.Errors, "referrerPoints")

	rec, env = do(t, engine, http.MethodPut, "/api/points/settings", apiclient.JSON(loyalty.PointsSettings{
		PointsPerCurrencyUnit: decimal.NewFromInt(2),
		PointValue:            decimal.RequireFromString("0.05"),
		ReferrerPoints:        100,
		IsReferralEnabled:     true,
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, data[loyalty.PointsSettings](t, env).UpdatedAt.IsZero())
	assert.Equal(t, 100, db.Settings().ReferrerPoints)

	_, env = do(t, engine, http.MethodGet, "/api/points/settings", nil)
	assert.True(t, decimal.RequireFromString("0.05").Equal(data[loyalty.PointsSettings](t, env).PointValue))
}

func TestPoints_TermsAreOrdered(t *testing.T) {
	engine := asAdmin(NewPointsHandler(fixtureDB()))
	for _, in := range []loyalty.PointTermInput{
		{Title: "Reviews", TitleAr: "المراجعات", Description: "Earn by reviewing", Points: 5, DisplayOrder: 2, IsActive: true},
		{Title: "Purchases", TitleAr: "المشتريات", Description: "Earn by buying", Points: 10, DisplayOrder: 1, IsActive: true},
	} {
		rec, _ := do(t, engine, http.MethodPost, "/api/points/terms", apiclient.JSON(in))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	_, env := do(t, engine, http.MethodGet, "/api/points/terms", nil)
	page := data[listData[loyalty.PointTerm]](t, env)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Purchases", page.Items[0].Title)
	assert.Equal(t, "Reviews", page.Items[1].Title)

	rec, env := do(t, engine, http.MethodPost, "/api/points/terms", apiclient.JSON(loyalty.PointTermInput{Points: -1}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "points")
	assert.Contains(t, env.Errors, "title")

	rec, _ = do(t, engine, http.MethodDelete, "/api/points/terms/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, engine, http.MethodGet, "/api/points/terms/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
