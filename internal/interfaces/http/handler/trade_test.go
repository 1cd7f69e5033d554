package handler

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/trade"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
	"github.com/sooquk/dashboard/internal/interfaces/http/dto"
)

func TestOrders_ListUsesFlatPageShape(t *testing.T) {
	engine := asAdmin(NewOrderHandler(fixtureDB()))

	rec, env := do(t, engine, http.MethodGet, "/api/orders?page=1&limit=5&status=Pending", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	page := data[dto.PageData[trade.Order]](t, env)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "ORD-1", page.Data[0].OrderNumber)

	_, env = do(t, engine, http.MethodGet, "/api/orders?minTotal=30", nil)
	assert.Zero(t, data[dto.PageData[trade.Order]](t, env).Total)

	_, env = do(t, engine, http.MethodGet, "/api/orders?fromDate=2026-02-01&toDate=2026-02-28&search=lina", nil)
	assert.Equal(t, int64(1), data[dto.PageData[trade.Order]](t, env).Total)
}

func TestOrders_StatusTransitions(t *testing.T) {
	db := fixtureDB()
	engine := asAdmin(NewOrderHandler(db))

	rec, env := do(t, engine, http.MethodPut, "/api/orders/1/status",
		apiclient.JSON(trade.UpdateOrderStatusRequest{Status: trade.OrderDelivered}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, env.Error.Code)

	rec, _ = do(t, engine, http.MethodPut, "/api/orders/1/status",
		apiclient.JSON(trade.UpdateOrderStatusRequest{Status: "Lost"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, engine, http.MethodPut, "/api/orders/1/status",
		apiclient.JSON(trade.UpdateOrderStatusRequest{Status: trade.OrderConfirmed}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, trade.OrderConfirmed, data[trade.Order](t, env).Status)

	vo, ok := db.VendorOrders.Get(1)
	require.True(t, ok)
	assert.Equal(t, trade.OrderConfirmed, vo.Status)
	other, _ := db.VendorOrders.Get(2)
	assert.Equal(t, trade.OrderShipped, other.Status)

	rec, _ = do(t, engine, http.MethodPut, "/api/orders/404/status",
		apiclient.JSON(trade.UpdateOrderStatusRequest{Status: trade.OrderConfirmed}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrders_PaymentStatus(t *testing.T) {
	engine := asAdmin(NewOrderHandler(fixtureDB()))

	rec, env := do(t, engine, http.MethodPut, "/api/orders/1/payment-status",
		apiclient.JSON(trade.UpdatePaymentStatusRequest{PaymentStatus: "Maybe"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "paymentStatus")

	rec, env = do(t, engine, http.MethodPut, "/api/orders/1/payment-status",
		apiclient.JSON(trade.UpdatePaymentStatusRequest{PaymentStatus: trade.PaymentPaid}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, trade.PaymentPaid, data[trade.Order](t, env).PaymentStatus)
}

func TestOrders_Statistics(t *testing.T) {
	db := fixtureDB()
	db.Orders.Put(trade.Order{
		OrderID: db.OrderIDs.Next(), OrderNumber: "ORD-2", Status: trade.OrderDelivered,
		PaymentStatus: trade.PaymentPaid, Total: decimal.RequireFromString("40.50"),
	})
	engine := asAdmin(NewOrderHandler(db))

	_, env := do(t, engine, http.MethodGet, "/api/orders/statistics", nil)

	stats := data[trade.OrderStatistics](t, env)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.DeliveredOrders)
	assert.True(t, decimal.RequireFromString("40.5").Equal(stats.TotalRevenue))
}

func TestVendorOrders_VendorSeesOnlyOwn(t *testing.T) {
	engine := serve(NewVendorOrderHandler(fixtureDB()), identity.RoleVendor, vendorID)

	_, env := do(t, engine, http.MethodGet, "/api/vendor/orders", nil)
	page := data[listData[trade.VendorOrder]](t, env)
	require.Len(t, page.Items, 1)
	assert.Equal(t, vendorID, page.Items[0].VendorID)

	rec, _ := do(t, engine, http.MethodGet, "/api/vendor/orders/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, engine, http.MethodPut, "/api/vendor/orders/2/status",
		apiclient.JSON(trade.UpdateOrderStatusRequest{Status: trade.OrderDelivered}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, engine, http.MethodPut, "/api/vendor/orders/1/status",
		apiclient.JSON(trade.UpdateOrderStatusRequest{Status: trade.OrderConfirmed}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, trade.OrderConfirmed, data[trade.VendorOrder](t, env).Status)
}

func TestVendorOrders_AdminSeesAll(t *testing.T) {
	engine := asAdmin(NewVendorOrderHandler(fixtureDB()))

	_, env := do(t, engine, http.MethodGet, "/api/vendor/orders", nil)
	assert.Len(t, data[listData[trade.VendorOrder]](t, env).Items, 2)

	_, env = do(t, engine, http.MethodGet, "/api/vendor/orders?vendorId=vendor-2&status=Shipped", nil)
	assert.Len(t, data[listData[trade.VendorOrder]](t, env).Items, 1)
}
