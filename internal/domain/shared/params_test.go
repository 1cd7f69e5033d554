package shared

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParams_OmitsUnsetValues(t *testing.T) {
	var cityID *int64
	var active *bool

	p := NewParams().
		SetString("search", "  ").
		SetInt64Ptr("cityId", cityID).
		SetBoolPtr("isActive", active).
		SetInt("pageNumber", 0).
		SetIntPtr("minRating", nil).
		SetDecimalPtr("minTotal", nil).
		SetTimePtr("fromDate", nil)

	assert.Empty(t, p)
	assert.Equal(t, "", p.Encode())
}

func TestParams_SetValues(t *testing.T) {
	cityID := int64(3)
	active := false
	min := decimal.RequireFromString("12.50")
	from := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	minRating := 0

	p := NewParams().
		SetString("search", "tla").
		SetInt64Ptr("cityId", &cityID).
		SetIntPtr("minRating", &minRating).
		SetBoolPtr("isActive", &active).
		SetDecimalPtr("minTotal", &min).
		SetTimePtr("fromDate", &from)

	assert.Equal(t, "3", p["cityId"])
	assert.Equal(t, "0", p["minRating"], "zero is a valid lower bound")
	assert.Equal(t, "false", p["isActive"])
	assert.Equal(t, "12.5", p["minTotal"])
	assert.Equal(t, "2026-01-02T03:04:05Z", p["fromDate"])
	assert.Equal(t, []string{"cityId", "fromDate", "isActive", "minRating", "minTotal", "search"}, p.Keys())
}

func TestParams_EncodeIsCanonical(t *testing.T) {
	a := Params{"b": "2", "a": "1", "c": "3"}
	b := Params{"c": "3", "a": "1", "b": "2"}
	assert.Equal(t, a.Encode(), b.Encode())
	assert.Equal(t, "a=1&b=2&c=3", a.Encode())
	assert.NotEqual(t, a.Encode(), Params{"a": "1", "b": "2"}.Encode())
}

func TestParams_WithDefaults(t *testing.T) {
	t.Run("fills missing paging", func(t *testing.T) {
		p := Params{"cityId": "3"}
		out := p.WithDefaults(ParamPageNumber, ParamPageSize, 0)
		assert.Equal(t, "1", out[ParamPageNumber])
		assert.Equal(t, "10", out[ParamPageSize])
		assert.Equal(t, "3", out["cityId"])
		_, mutated := p[ParamPageNumber]
		assert.False(t, mutated)
	})

	t.Run("keeps explicit paging", func(t *testing.T) {
		p := Params{"page": "4", "limit": "50"}
		out := p.WithDefaults("page", "limit", 20)
		assert.Equal(t, "4", out["page"])
		assert.Equal(t, "50", out["limit"])
	})

	t.Run("endpoint specific default size", func(t *testing.T) {
		out := Params{}.WithDefaults("page", "limit", 20)
		assert.Equal(t, "20", out["limit"])
	})
}
