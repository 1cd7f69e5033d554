package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/sooquk/dashboard/internal/application/listview"
	"github.com/sooquk/dashboard/internal/application/query"
	tradeapp "github.com/sooquk/dashboard/internal/application/trade"
	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/trade"
	"github.com/sooquk/dashboard/internal/infrastructure/i18n"
)

var vendorRoles = []identity.Role{identity.RoleAdmin, identity.RoleVendor}

// OrdersPage lists customer orders under a statistics header and moves them
// through fulfilment and payment states
type OrdersPage struct {
	svc  *tradeapp.OrderService
	deps Deps
	List *ListPage[trade.Order, trade.OrderFilter]

	status  *query.Mutator[tradeapp.ChangeOrderStatus, *trade.Order]
	payment *query.Mutator[tradeapp.ChangePaymentStatus, *trade.Order]
}

// NewOrdersPage creates the orders page. The orders endpoint pages with
// page/limit.
func NewOrdersPage(svc *tradeapp.OrderService, deps Deps, filter trade.OrderFilter) *OrdersPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	return &OrdersPage{
		svc:  svc,
		deps: deps,
		List: NewListPage(qc, deps, ListSpec[trade.Order, trade.OrderFilter]{
			Title:  "Orders",
			Roles:  adminOnly,
			Filter: filter,
			Query:  svc.ListQuery,
			Paging: []listview.Option{listview.WithPagingParams(trade.OrderPageParam, trade.OrderSizeParam)},
			Columns: []Column[trade.Order]{
				{Header: "ID", Value: func(o trade.Order) string { return id64(o.OrderID) }},
				{Header: "Number", Value: func(o trade.Order) string { return o.OrderNumber }},
				{Header: "Customer", Value: func(o trade.Order) string { return o.CustomerName }},
				{Header: "Total", Value: func(o trade.Order) string { return money(o.Total) }},
				{Header: "Status", Value: func(o trade.Order) string { return badge(o.Status.Label(), o.Status.Tone()) }},
				{Header: "Payment", Value: func(o trade.Order) string { return badge(o.PaymentStatus.Label(), o.PaymentStatus.Tone()) }},
				{Header: "Placed", Value: func(o trade.Order) string { return stamp(o.CreatedAt) }},
			},
		}),
		status:  query.NewMutator(qc, svc.UpdateStatusMutation()),
		payment: query.NewMutator(qc, svc.UpdatePaymentStatusMutation()),
	}
}

// RenderStatistics writes the statistics header for the current filter
func (p *OrdersPage) RenderStatistics(ctx context.Context, w io.Writer) error {
	if err := p.deps.require("orders", adminOnly...); err != nil {
		return err
	}
	res := p.svc.Statistics(ctx, p.List.State().Filter().Params())
	if !res.HasData {
		return res.Err
	}
	s := res.Data
	return RenderDetail(w, []Field{
		{"Orders", strconv.FormatInt(s.TotalOrders, 10)},
		{"Pending", strconv.FormatInt(s.PendingOrders, 10)},
		{"Delivered", strconv.FormatInt(s.DeliveredOrders, 10)},
		{"Cancelled", strconv.FormatInt(s.CancelledOrders, 10)},
		{"Revenue", money(s.TotalRevenue)},
	})
}

// Show renders one order with its items
func (p *OrdersPage) Show(ctx context.Context, w io.Writer, id int64) error {
	if err := p.deps.require("order", adminOnly...); err != nil {
		return err
	}
	res := p.svc.Get(ctx, id)
	if err := showDetail(w, res, orderFields); err != nil {
		return err
	}
	if len(res.Data.Items) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	return RenderTable(w, itemColumns, res.Data.Items)
}

func orderFields(o trade.Order) []Field {
	return []Field{
		{"ID", id64(o.OrderID)},
		{"Number", o.OrderNumber},
		{"Customer", o.CustomerName},
		{"Vendor", o.VendorName},
		{"Status", badge(o.Status.Label(), o.Status.Tone())},
		{"Payment", badge(o.PaymentStatus.Label(), o.PaymentStatus.Tone())},
		{"Method", string(o.PaymentMethod)},
		{"Subtotal", money(o.SubTotal)},
		{"Discount", money(o.Discount)},
		{"Shipping", money(o.ShippingFee)},
		{"Total", money(o.Total)},
		{"Coupon", o.CouponCode},
		{"Placed", stamp(o.CreatedAt)},
	}
}

var itemColumns = []Column[trade.OrderItem]{
	{Header: "Product", Value: func(i trade.OrderItem) string { return i.ProductName }},
	{Header: "Qty", Value: func(i trade.OrderItem) string { return strconv.Itoa(i.Quantity) }},
	{Header: "Unit", Value: func(i trade.OrderItem) string { return money(i.UnitPrice) }},
	{Header: "Total", Value: func(i trade.OrderItem) string { return money(i.Total) }},
}

// UpdateStatus moves an order to status. The current status is read first
// so an impossible transition is refused without a request.
func (p *OrdersPage) UpdateStatus(ctx context.Context, id int64, status trade.OrderStatus, note string) (*trade.Order, error) {
	if err := p.deps.require("orders", adminOnly...); err != nil {
		return nil, err
	}
	var from trade.OrderStatus
	if cur := p.svc.Get(ctx, id); cur.HasData {
		from = cur.Data.Status
	}
	a := Action{Name: p.status.Name(), Subject: "Order", Success: i18n.ToastUpdated}
	if status == trade.OrderCancelled {
		a.Confirm = fmt.Sprintf("Cancel order #%d?", id)
	}
	return Run(ctx, p.deps, a, func(ctx context.Context) query.MutationResult[*trade.Order] {
		return p.status.Submit(ctx, tradeapp.ChangeOrderStatus{
			ID:      id,
			From:    from,
			Request: trade.UpdateOrderStatusRequest{Status: status, Note: note},
		})
	})
}

// UpdatePaymentStatus changes the payment status of an order
func (p *OrdersPage) UpdatePaymentStatus(ctx context.Context, id int64, status trade.PaymentStatus) (*trade.Order, error) {
	if err := p.deps.require("orders", adminOnly...); err != nil {
		return nil, err
	}
	return Run(ctx, p.deps, Action{Name: p.payment.Name(), Subject: "Order", Success: i18n.ToastUpdated},
		func(ctx context.Context) query.MutationResult[*trade.Order] {
			return p.payment.Submit(ctx, tradeapp.ChangePaymentStatus{
				ID:      id,
				Request: trade.UpdatePaymentStatusRequest{PaymentStatus: status},
			})
		})
}

// VendorOrdersPage lists the per-vendor splits of orders. Vendors see it
// too.
type VendorOrdersPage struct {
	svc  *tradeapp.VendorOrderService
	deps Deps
	List *ListPage[trade.VendorOrder, trade.VendorOrderFilter]

	status *query.Mutator[tradeapp.ChangeOrderStatus, *trade.VendorOrder]
}

// NewVendorOrdersPage creates the vendor orders page
func NewVendorOrdersPage(svc *tradeapp.VendorOrderService, deps Deps, filter trade.VendorOrderFilter) *VendorOrdersPage {
	deps = deps.withDefaults()
	qc := svc.Client()
	return &VendorOrdersPage{
		svc:  svc,
		deps: deps,
		List: NewListPage(qc, deps, ListSpec[trade.VendorOrder, trade.VendorOrderFilter]{
			Title:  "Vendor orders",
			Roles:  vendorRoles,
			Filter: filter,
			Query:  svc.ListQuery,
			Columns: []Column[trade.VendorOrder]{
				{Header: "ID", Value: func(o trade.VendorOrder) string { return id64(o.VendorOrderID) }},
				{Header: "Order", Value: func(o trade.VendorOrder) string { return o.OrderNumber }},
				{Header: "Vendor", Value: func(o trade.VendorOrder) string { return o.VendorName }},
				{Header: "Total", Value: func(o trade.VendorOrder) string { return money(o.Total) }},
				{Header: "Status", Value: func(o trade.VendorOrder) string { return badge(o.Status.Label(), o.Status.Tone()) }},
				{Header: "Placed", Value: func(o trade.VendorOrder) string { return stamp(o.CreatedAt) }},
			},
		}),
		status: query.NewMutator(qc, svc.UpdateStatusMutation()),
	}
}

// Show renders one vendor order
func (p *VendorOrdersPage) Show(ctx context.Context, w io.Writer, id int64) error {
	if err := p.deps.require("vendor order", vendorRoles...); err != nil {
		return err
	}
	res := p.svc.Get(ctx, id)
	err := showDetail(w, res, func(o trade.VendorOrder) []Field {
		return []Field{
			{"ID", id64(o.VendorOrderID)},
			{"Order", fmt.Sprintf("%s (#%d)", o.OrderNumber, o.OrderID)},
			{"Vendor", o.VendorName},
			{"Status", badge(o.Status.Label(), o.Status.Tone())},
			{"Total", money(o.Total)},
			{"Placed", stamp(o.CreatedAt)},
		}
	})
	if err != nil || len(res.Data.Items) == 0 {
		return err
	}
	fmt.Fprintln(w)
	return RenderTable(w, itemColumns, res.Data.Items)
}

// UpdateStatus moves a vendor order to status
func (p *VendorOrdersPage) UpdateStatus(ctx context.Context, id int64, status trade.OrderStatus, note string) (*trade.VendorOrder, error) {
	if err := p.deps.require("vendor orders", vendorRoles...); err != nil {
		return nil, err
	}
	var from trade.OrderStatus
	if cur := p.svc.Get(ctx, id); cur.HasData {
		from = cur.Data.Status
	}
	return Run(ctx, p.deps, Action{Name: p.status.Name(), Subject: "Vendor order", Success: i18n.ToastUpdated},
		func(ctx context.Context) query.MutationResult[*trade.VendorOrder] {
			return p.status.Submit(ctx, tradeapp.ChangeOrderStatus{
				ID:      id,
				From:    from,
				Request: trade.UpdateOrderStatusRequest{Status: status, Note: note},
			})
		})
}
