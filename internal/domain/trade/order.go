package trade

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// OrderItem is one line of an order
type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	VendorID    string          `json:"vendorId,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// Order is a customer order
type Order struct {
	OrderID       int64           `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName"`
	VendorName    string          `json:"vendorName,omitempty"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	SubTotal      decimal.Decimal `json:"subTotal"`
	Discount      decimal.Decimal `json:"discount"`
	ShippingFee   decimal.Decimal `json:"shippingFee"`
	Total         decimal.Decimal `json:"total"`
	CouponCode    string          `json:"couponCode,omitempty"`
	Items         []OrderItem     `json:"items,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ComputedTotal recomputes the total from its parts
func (o Order) ComputedTotal() decimal.Decimal {
	return o.SubTotal.Sub(o.Discount).Add(o.ShippingFee)
}

// Paging parameter names of the order endpoints
const (
	OrderPageParam = "page"
	OrderSizeParam = "limit"
)

// OrderFilter narrows the order list
type OrderFilter struct {
	Search        string
	Status        OrderStatus
	PaymentStatus PaymentStatus
	From          *time.Time
	To            *time.Time
	MinTotal      *decimal.Decimal
	MaxTotal      *decimal.Decimal
}

// Params converts the filter into query parameters
func (f OrderFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("search", f.Search).
		SetString("status", string(f.Status)).
		SetString("paymentStatus", string(f.PaymentStatus)).
		SetTimePtr("fromDate", f.From).
		SetTimePtr("toDate", f.To).
		SetDecimalPtr("minTotal", f.MinTotal).
		SetDecimalPtr("maxTotal", f.MaxTotal)
}

// UpdateOrderStatusRequest moves an order to a new status
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
	Note   string      `json:"note,omitempty" validate:"max=500"`
}

// UpdatePaymentStatusRequest sets the settlement state of an order
type UpdatePaymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"required"`
}

// VendorOrder is the share of an order fulfilled by one vendor
type VendorOrder struct {
	VendorOrderID int64           `json:"vendorOrderId"`
	OrderID       int64           `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	VendorID      string          `json:"vendorId"`
	VendorName    string          `json:"vendorName"`
	Status        OrderStatus     `json:"status"`
	Total         decimal.Decimal `json:"total"`
	Items         []OrderItem     `json:"items,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// VendorOrderFilter narrows the vendor order list
type VendorOrderFilter struct {
	Status   OrderStatus
	VendorID string
}

// Params converts the filter into query parameters
func (f VendorOrderFilter) Params() shared.Params {
	return shared.NewParams().
		SetString("status", string(f.Status)).
		SetString("vendorId", f.VendorID)
}

// OrderStatistics summarizes all orders
type OrderStatistics struct {
	TotalOrders     int64                 `json:"totalOrders"`
	PendingOrders   int64                 `json:"pendingOrders"`
	DeliveredOrders int64                 `json:"deliveredOrders"`
	CancelledOrders int64                 `json:"cancelledOrders"`
	TotalRevenue    decimal.Decimal       `json:"totalRevenue"`
	CountsByStatus  map[OrderStatus]int64 `json:"countsByStatus,omitempty"`
}

// ComputeStatistics aggregates orders. Revenue counts delivered, paid orders.
func ComputeStatistics(orders []Order) OrderStatistics {
	stats := OrderStatistics{CountsByStatus: make(map[OrderStatus]int64)}
	for _, o := range orders {
		stats.TotalOrders++
		stats.CountsByStatus[o.Status]++
		switch o.Status {
		case OrderPending:
			stats.PendingOrders++
		case OrderDelivered:
			stats.DeliveredOrders++
			if o.PaymentStatus == PaymentPaid {
				stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
			}
		case OrderCancelled:
			stats.CancelledOrders++
		}
	}
	return stats
}
