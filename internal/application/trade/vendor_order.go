package trade

import (
	"context"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/trade"
)

// VendorOrderAPI is the backend surface the vendor order service needs
type VendorOrderAPI interface {
	List(ctx context.Context, params shared.Params) (*shared.ListResponse[trade.VendorOrder], error)
	Get(ctx context.Context, id int64) (*trade.VendorOrder, error)
	UpdateStatus(ctx context.Context, id int64, req trade.UpdateOrderStatusRequest) (*trade.VendorOrder, error)
}

// VendorOrderService builds vendor order queries and mutations
type VendorOrderService struct {
	api VendorOrderAPI
	qc  *query.Client
}

// NewVendorOrderService creates a new VendorOrderService
func NewVendorOrderService(api VendorOrderAPI, qc *query.Client) *VendorOrderService {
	return &VendorOrderService{api: api, qc: qc}
}

// ListQuery reads one page of vendor orders
func (s *VendorOrderService) ListQuery(params shared.Params) query.Query[shared.ListResponse[trade.VendorOrder]] {
	return query.Query[shared.ListResponse[trade.VendorOrder]]{
		Key: query.ListKey(query.ResourceVendorOrders, params),
		Fn: func(ctx context.Context) (shared.ListResponse[trade.VendorOrder], error) {
			return query.Deref(s.api.List(ctx, params))
		},
	}
}

// DetailQuery reads one vendor order
func (s *VendorOrderService) DetailQuery(id int64) query.Query[trade.VendorOrder] {
	return query.Query[trade.VendorOrder]{
		Key: query.DetailKey(query.ResourceVendorOrders, id),
		Fn: func(ctx context.Context) (trade.VendorOrder, error) {
			return query.Deref(s.api.Get(ctx, id))
		},
	}
}

// UpdateStatusMutation moves a vendor order to a new status. The parent
// order is refreshed too since its status follows its vendor orders.
func (s *VendorOrderService) UpdateStatusMutation() query.Mutation[ChangeOrderStatus, *trade.VendorOrder] {
	return query.Mutation[ChangeOrderStatus, *trade.VendorOrder]{
		Name: "update vendor order status",
		Fn: func(ctx context.Context, in ChangeOrderStatus) (*trade.VendorOrder, error) {
			if err := checkStatusChange(in.From, in.Request); err != nil {
				return nil, err
			}
			return s.api.UpdateStatus(ctx, in.ID, in.Request)
		},
		Invalidates: func(in ChangeOrderStatus, out *trade.VendorOrder) []query.Key {
			keys := query.Also(query.OnUpdate(query.ResourceVendorOrders, in.ID), StatisticsPrefix())
			if out != nil && out.OrderID > 0 {
				keys = append(keys, query.DetailKey(query.ResourceOrders, out.OrderID))
			}
			return keys
		},
	}
}

// List fetches a page of vendor orders through the cache
func (s *VendorOrderService) List(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[trade.VendorOrder]] {
	return query.Fetch(ctx, s.qc, s.ListQuery(params))
}

// Get fetches one vendor order through the cache
func (s *VendorOrderService) Get(ctx context.Context, id int64) query.Result[trade.VendorOrder] {
	return query.Fetch(ctx, s.qc, s.DetailQuery(id))
}

// UpdateStatus runs the status mutation
func (s *VendorOrderService) UpdateStatus(ctx context.Context, in ChangeOrderStatus) query.MutationResult[*trade.VendorOrder] {
	return query.Mutate(ctx, s.qc, s.UpdateStatusMutation(), in)
}

// Client returns the query client the service reads through
func (s *VendorOrderService) Client() *query.Client {
	return s.qc
}
