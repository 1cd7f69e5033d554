// Package trade holds customer orders, their per-vendor splits and the
// order statistics shown on the orders page.
package trade

import (
	"fmt"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderConfirmed  OrderStatus = "Confirmed"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
	OrderReturned   OrderStatus = "Returned"
)

// AllOrderStatuses lists every fulfilment state in display order
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderReturned}
}

// IsValid checks if the status is known
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderReturned:
		return true
	}
	return false
}

// Label returns the display name of the status
func (s OrderStatus) Label() string {
	switch s {
	case OrderPending:
		return "Pending"
	case OrderConfirmed:
		return "Confirmed"
	case OrderProcessing:
		return "Processing"
	case OrderShipped:
		return "Shipped"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	case OrderReturned:
		return "Returned"
	}
	return string(s)
}

// Tone returns the badge emphasis for the status
func (s OrderStatus) Tone() shared.Tone {
	switch s {
	case OrderPending:
		return shared.ToneWarning
	case OrderConfirmed, OrderProcessing, OrderShipped:
		return shared.ToneInfo
	case OrderDelivered:
		return shared.ToneSuccess
	case OrderCancelled, OrderReturned:
		return shared.ToneDanger
	}
	return shared.ToneNeutral
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return len(s.Next()) == 0
}

// Next returns the statuses an admin may move an order to
func (s OrderStatus) Next() []OrderStatus {
	switch s {
	case OrderPending:
		return []OrderStatus{OrderConfirmed, OrderCancelled}
	case OrderConfirmed:
		return []OrderStatus{OrderProcessing, OrderCancelled}
	case OrderProcessing:
		return []OrderStatus{OrderShipped, OrderCancelled}
	case OrderShipped:
		return []OrderStatus{OrderDelivered}
	case OrderDelivered:
		return []OrderStatus{OrderReturned}
	}
	return nil
}

// CanTransitionTo reports whether moving to target is allowed
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range s.Next() {
		if next == target {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidState when moving to target is not allowed
func (s OrderStatus) CheckTransition(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("unknown order status %q", target))
	}
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("order cannot move from %s to %s: %w", s, target, shared.ErrInvalidState)
	}
	return nil
}

// PaymentStatus is the settlement state of an order
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// AllPaymentStatuses lists every settlement state
func AllPaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}
}

// IsValid checks if the status is known
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Label returns the display name of the status
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentPaid:
		return "Paid"
	case PaymentFailed:
		return "Failed"
	case PaymentRefunded:
		return "Refunded"
	}
	return string(s)
}

// Tone returns the badge emphasis for the status
func (s PaymentStatus) Tone() shared.Tone {
	switch s {
	case PaymentPending:
		return shared.ToneWarning
	case PaymentPaid:
		return shared.ToneSuccess
	case PaymentFailed:
		return shared.ToneDanger
	case PaymentRefunded:
		return shared.ToneInfo
	}
	return shared.ToneNeutral
}

// PaymentMethod is how the customer pays
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CashOnDelivery"
	PaymentCard           PaymentMethod = "Card"
	PaymentWallet         PaymentMethod = "Wallet"
)
