package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sooquk/dashboard/internal/domain/promotion"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/trade"
)

func TestState_FilterChangeResetsPage(t *testing.T) {
	s := New(promotion.CouponFilter{})
	s.Observe(shared.NewPagination(1, 10, 95))
	s.SetPage(4)
	assert.Equal(t, 4, s.Page())

	s.Update(func(f *promotion.CouponFilter) { f.Search = "SPR" })
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, "SPR", s.Filter().Search)

	s.SetPage(3)
	s.SetFilter(promotion.CouponFilter{Status: promotion.CouponExpired})
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, "pageNumber=1&pageSize=10&status=Expired", s.Params().Encode())
}

func TestState_PageIsClampedToKnownRange(t *testing.T) {
	s := New(promotion.CouponFilter{}, WithPageSize(20))
	s.SetPage(7)
	assert.Equal(t, 7, s.Page(), "unknown total, no upper clamp")

	s.Observe(shared.NewPagination(7, 20, 45))
	assert.Equal(t, 3, s.Page())

	s.Next()
	assert.Equal(t, 3, s.Page())
	s.SetPage(0)
	assert.Equal(t, 1, s.Page())
	s.Prev()
	assert.Equal(t, 1, s.Page())
}

func TestState_EmptyEnumMeansNoFilter(t *testing.T) {
	s := New(trade.OrderFilter{}, WithPagingParams(trade.OrderPageParam, trade.OrderSizeParam))
	p := s.Params()
	assert.Equal(t, []string{"limit", "page"}, p.Keys())

	s.Update(func(f *trade.OrderFilter) { f.Status = trade.OrderShipped })
	assert.Equal(t, "limit=10&page=1&status=Shipped", s.Params().Encode())
}
