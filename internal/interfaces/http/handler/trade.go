package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/trade"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
	"github.com/sooquk/dashboard/internal/interfaces/http/dto"
	"github.com/sooquk/dashboard/internal/interfaces/http/middleware"
)

// OrderHandler serves customer orders
type OrderHandler struct {
	BaseHandler
	db *memdb.DB
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(db *memdb.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/statistics", h.Statistics)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.PUT("/:id/payment-status", h.UpdatePaymentStatus)
	}
}

// List returns a page of orders in the {data, page, limit, total} shape
func (h *OrderHandler) List(c *gin.Context) {
	status := trade.OrderStatus(c.Query("status"))
	payment := trade.PaymentStatus(c.Query("paymentStatus"))
	from, to := queryTime(c, "fromDate"), queryTime(c, "toDate")
	minTotal, maxTotal := queryDecimal(c, "minTotal"), queryDecimal(c, "maxTotal")
	search := c.Query("search")

	rows := h.db.Orders.Find(func(o trade.Order) bool {
		return (status == "" || o.Status == status) &&
			(payment == "" || o.PaymentStatus == payment) &&
			inRange(o.CreatedAt, from, to) &&
			(minTotal == nil || !o.Total.LessThan(*minTotal)) &&
			(maxTotal == nil || !o.Total.GreaterThan(*maxTotal)) &&
			matches(search, o.OrderNumber, o.CustomerName, o.VendorName)
	})
	page, size := paging(c, trade.OrderPageParam, trade.OrderSizeParam)
	h.Success(c, dto.PageData[trade.Order]{
		Data:  memdb.Page(rows, page, size),
		Page:  page,
		Limit: size,
		Total: int64(len(rows)),
	})
}

// Statistics returns order counts and revenue over every order
func (h *OrderHandler) Statistics(c *gin.Context) {
	h.Success(c, trade.ComputeStatistics(h.db.Orders.Find(nil)))
}

// Get returns one order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	o, ok := h.db.Orders.Get(id)
	if !ok {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, o)
}

// UpdateStatus moves an order along its lifecycle. The vendor orders
// follow.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.UpdateOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	o, err := h.db.Orders.Update(id, func(o *trade.Order) error {
		if err := o.Status.CheckTransition(req.Status); err != nil {
			return err
		}
		o.Status = req.Status
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Order not found")
		return
	}
	for _, vo := range h.db.VendorOrders.Find(func(vo trade.VendorOrder) bool { return vo.OrderID == id }) {
		_, _ = h.db.VendorOrders.Update(vo.VendorOrderID, func(vo *trade.VendorOrder) error {
			vo.Status = o.Status
			return nil
		})
	}
	h.Success(c, o)
}

// UpdatePaymentStatus records a payment outcome
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.UpdatePaymentStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !req.PaymentStatus.IsValid() {
		verr := shared.NewValidationError()
		verr.Add("paymentStatus", "Must be one of: Pending Paid Failed Refunded")
		h.HandleError(c, verr)
		return
	}
	o, err := h.db.Orders.Update(id, func(o *trade.Order) error {
		o.PaymentStatus = req.PaymentStatus
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Order not found")
		return
	}
	h.Success(c, o)
}

// VendorOrderHandler serves the per-vendor split of orders. Vendors only
// see their own.
type VendorOrderHandler struct {
	BaseHandler
	db *memdb.DB
}

// NewVendorOrderHandler creates a new VendorOrderHandler
func NewVendorOrderHandler(db *memdb.DB) *VendorOrderHandler {
	return &VendorOrderHandler{db: db}
}

// RegisterRoutes registers the vendor order routes
func (h *VendorOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/vendor/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id/status", h.UpdateStatus)
	}
}

// owner returns the vendor the caller is limited to, "" for admins
func owner(c *gin.Context) string {
	if claims := middleware.GetJWTClaims(c); claims != nil && claims.Role == identity.RoleVendor {
		return claims.UserID
	}
	return ""
}

func visible(c *gin.Context, vo trade.VendorOrder) bool {
	o := owner(c)
	return o == "" || vo.VendorID == o
}

// List returns a page of vendor orders
func (h *VendorOrderHandler) List(c *gin.Context) {
	status := trade.OrderStatus(c.Query("status"))
	vendorID := c.Query("vendorId")

	rows := h.db.VendorOrders.Find(func(vo trade.VendorOrder) bool {
		return visible(c, vo) &&
			(status == "" || vo.Status == status) &&
			(vendorID == "" || vo.VendorID == vendorID)
	})
	sendPage(&h.BaseHandler, c, rows)
}

// Get returns one vendor order
func (h *VendorOrderHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	vo, ok := h.db.VendorOrders.Get(id)
	if !ok || !visible(c, vo) {
		h.NotFound(c, "Vendor order not found")
		return
	}
	h.Success(c, vo)
}

// UpdateStatus moves a vendor order along the order lifecycle
func (h *VendorOrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trade.UpdateOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if vo, ok := h.db.VendorOrders.Get(id); !ok || !visible(c, vo) {
		h.NotFound(c, "Vendor order not found")
		return
	}
	vo, err := h.db.VendorOrders.Update(id, func(vo *trade.VendorOrder) error {
		if err := vo.Status.CheckTransition(req.Status); err != nil {
			return err
		}
		vo.Status = req.Status
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Vendor order not found")
		return
	}
	h.Success(c, vo)
}
