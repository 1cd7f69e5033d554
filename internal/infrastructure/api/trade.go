package api

import (
	"context"
	"net/http"

	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/trade"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
)

// OrderAPI manages customer orders. The orders endpoint pages with
// page/limit instead of pageNumber/pageSize.
type OrderAPI struct {
	res *Resource[trade.Order, int64]
}

// NewOrderAPI creates the orders client
func NewOrderAPI(c *apiclient.Client) *OrderAPI {
	return &OrderAPI{res: NewResource[trade.Order, int64](c, "orders",
		WithPaging(trade.OrderPageParam, trade.OrderSizeParam))}
}

// List returns a page of orders
func (a *OrderAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[trade.Order], error) {
	return a.res.List(ctx, params)
}

// Get returns one order with its items
func (a *OrderAPI) Get(ctx context.Context, id int64) (*trade.Order, error) {
	return a.res.Get(ctx, id)
}

// UpdateStatus moves an order to another fulfilment state
func (a *OrderAPI) UpdateStatus(ctx context.Context, id int64, req trade.UpdateOrderStatusRequest) (*trade.Order, error) {
	return apiclient.Decode[trade.Order](ctx, a.res.client, apiclient.Request{
		Method: http.MethodPut,
		Path:   a.res.ItemPath(id, "status"),
		Body:   apiclient.JSON(req),
	})
}

// UpdatePaymentStatus changes the settlement state of an order
func (a *OrderAPI) UpdatePaymentStatus(ctx context.Context, id int64, req trade.UpdatePaymentStatusRequest) (*trade.Order, error) {
	return apiclient.Decode[trade.Order](ctx, a.res.client, apiclient.Request{
		Method: http.MethodPut,
		Path:   a.res.ItemPath(id, "payment-status"),
		Body:   apiclient.JSON(req),
	})
}

// Statistics returns the order aggregates, narrowed by params
func (a *OrderAPI) Statistics(ctx context.Context, params shared.Params) (*trade.OrderStatistics, error) {
	out, err := apiclient.Decode[trade.OrderStatistics](ctx, a.res.client, apiclient.Request{
		Method: http.MethodGet,
		Path:   join(a.res.path, "statistics"),
		Query:  params,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = &trade.OrderStatistics{}
	}
	return out, nil
}

// VendorOrderAPI manages the per-vendor parts of orders
type VendorOrderAPI struct {
	res *Resource[trade.VendorOrder, int64]
}

// NewVendorOrderAPI creates the vendor orders client
func NewVendorOrderAPI(c *apiclient.Client) *VendorOrderAPI {
	return &VendorOrderAPI{res: NewResource[trade.VendorOrder, int64](c, "vendor/orders")}
}

// List returns a page of vendor orders
func (a *VendorOrderAPI) List(ctx context.Context, params shared.Params) (*shared.ListResponse[trade.VendorOrder], error) {
	return a.res.List(ctx, params)
}

// Get returns one vendor order
func (a *VendorOrderAPI) Get(ctx context.Context, id int64) (*trade.VendorOrder, error) {
	return a.res.Get(ctx, id)
}

// UpdateStatus moves a vendor order to another fulfilment state
func (a *VendorOrderAPI) UpdateStatus(ctx context.Context, id int64, req trade.UpdateOrderStatusRequest) (*trade.VendorOrder, error) {
	return apiclient.Decode[trade.VendorOrder](ctx, a.res.client, apiclient.Request{
		Method: http.MethodPut,
		Path:   a.res.ItemPath(id, "status"),
		Body:   apiclient.JSON(req),
	})
}
