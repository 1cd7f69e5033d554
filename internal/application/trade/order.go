// Package trade exposes order and vendor order reads and status changes.
// Status changes also refresh the order statistics header.
package trade

import (
	"context"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/trade"
)

// OrderAPI is the backend surface the order service needs
type OrderAPI interface {
	List(ctx context.Context, params shared.Params) (*shared.ListResponse[trade.Order], error)
	Get(ctx context.Context, id int64) (*trade.Order, error)
	UpdateStatus(ctx context.Context, id int64, req trade.UpdateOrderStatusRequest) (*trade.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int64, req trade.UpdatePaymentStatusRequest) (*trade.Order, error)
	Statistics(ctx context.Context, params shared.Params) (*trade.OrderStatistics, error)
}

// ChangeOrderStatus is the input of the status mutation. When From is set
// the transition is checked before the request is sent.
type ChangeOrderStatus struct {
	ID      int64
	From    trade.OrderStatus
	Request trade.UpdateOrderStatusRequest
}

// ChangePaymentStatus is the input of the payment status mutation
type ChangePaymentStatus struct {
	ID      int64
	Request trade.UpdatePaymentStatusRequest
}

// StatisticsPrefix matches every cached statistics read
func StatisticsPrefix() query.Key {
	return query.Prefix(query.ResourceOrderStatistics)
}

// checkStatusChange validates req and, when the current status is known,
// the transition
func checkStatusChange(from trade.OrderStatus, req trade.UpdateOrderStatusRequest) error {
	if err := shared.ValidateStruct(req); err != nil {
		return err
	}
	if from == "" {
		if !req.Status.IsValid() {
			return shared.NewDomainError("INVALID_STATUS", "unknown order status "+string(req.Status))
		}
		return nil
	}
	return from.CheckTransition(req.Status)
}

// OrderService builds order queries and mutations
type OrderService struct {
	api OrderAPI
	qc  *query.Client
}

// NewOrderService creates a new OrderService
func NewOrderService(api OrderAPI, qc *query.Client) *OrderService {
	return &OrderService{api: api, qc: qc}
}

// ListQuery reads one page of orders
func (s *OrderService) ListQuery(params shared.Params) query.Query[shared.ListResponse[trade.Order]] {
	return query.Query[shared.ListResponse[trade.Order]]{
		Key: query.ListKey(query.ResourceOrders, params),
		Fn: func(ctx context.Context) (shared.ListResponse[trade.Order], error) {
			return query.Deref(s.api.List(ctx, params))
		},
	}
}

// DetailQuery reads one order
func (s *OrderService) DetailQuery(id int64) query.Query[trade.Order] {
	return query.Query[trade.Order]{
		Key: query.DetailKey(query.ResourceOrders, id),
		Fn: func(ctx context.Context) (trade.Order, error) {
			return query.Deref(s.api.Get(ctx, id))
		},
	}
}

// StatisticsQuery reads the statistics header for the filtered range
func (s *OrderService) StatisticsQuery(params shared.Params) query.Query[trade.OrderStatistics] {
	return query.Query[trade.OrderStatistics]{
		Key: StatisticsPrefix().Append(params.Encode()),
		Fn: func(ctx context.Context) (trade.OrderStatistics, error) {
			return query.Deref(s.api.Statistics(ctx, params))
		},
	}
}

// UpdateStatusMutation moves an order to a new status
func (s *OrderService) UpdateStatusMutation() query.Mutation[ChangeOrderStatus, *trade.Order] {
	return query.Mutation[ChangeOrderStatus, *trade.Order]{
		Name: "update order status",
		Fn: func(ctx context.Context, in ChangeOrderStatus) (*trade.Order, error) {
			if err := checkStatusChange(in.From, in.Request); err != nil {
				return nil, err
			}
			return s.api.UpdateStatus(ctx, in.ID, in.Request)
		},
		Invalidates: func(in ChangeOrderStatus, _ *trade.Order) []query.Key {
			return query.Also(query.OnUpdate(query.ResourceOrders, in.ID), StatisticsPrefix())
		},
	}
}

// UpdatePaymentStatusMutation sets the payment status of an order
func (s *OrderService) UpdatePaymentStatusMutation() query.Mutation[ChangePaymentStatus, *trade.Order] {
	return query.Mutation[ChangePaymentStatus, *trade.Order]{
		Name: "update payment status",
		Fn: func(ctx context.Context, in ChangePaymentStatus) (*trade.Order, error) {
			if !in.Request.PaymentStatus.IsValid() {
				verr := shared.NewValidationError()
				verr.Add("paymentStatus", "Unknown payment status")
				return nil, verr
			}
			return s.api.UpdatePaymentStatus(ctx, in.ID, in.Request)
		},
		Invalidates: func(in ChangePaymentStatus, _ *trade.Order) []query.Key {
			return query.Also(query.OnUpdate(query.ResourceOrders, in.ID), StatisticsPrefix())
		},
	}
}

// List fetches a page of orders through the cache
func (s *OrderService) List(ctx context.Context, params shared.Params) query.Result[shared.ListResponse[trade.Order]] {
	return query.Fetch(ctx, s.qc, s.ListQuery(params))
}

// Get fetches one order through the cache
func (s *OrderService) Get(ctx context.Context, id int64) query.Result[trade.Order] {
	return query.Fetch(ctx, s.qc, s.DetailQuery(id))
}

// Statistics fetches the statistics header through the cache
func (s *OrderService) Statistics(ctx context.Context, params shared.Params) query.Result[trade.OrderStatistics] {
	return query.Fetch(ctx, s.qc, s.StatisticsQuery(params))
}

// UpdateStatus runs the status mutation
func (s *OrderService) UpdateStatus(ctx context.Context, in ChangeOrderStatus) query.MutationResult[*trade.Order] {
	return query.Mutate(ctx, s.qc, s.UpdateStatusMutation(), in)
}

// UpdatePaymentStatus runs the payment status mutation
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id int64, status trade.PaymentStatus) query.MutationResult[*trade.Order] {
	return query.Mutate(ctx, s.qc, s.UpdatePaymentStatusMutation(), ChangePaymentStatus{
		ID:      id,
		Request: trade.UpdatePaymentStatusRequest{PaymentStatus: status},
	})
}

// Client returns the query client the service reads through
func (s *OrderService) Client() *query.Client {
	return s.qc
}
