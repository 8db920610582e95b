package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ToOrderStatus parses a raw status string, reporting whether it is known.
func ToOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	_, ok := validOrderStatuses[status]
	return status, ok
}

// allowedTransitions is the single source of truth for status progression.
// delivered and cancelled are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
}

// TransitionAllowed reports whether an order may move from one status to another.
func TransitionAllowed(from, to OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentStatus describes the state of the payment backing an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentInfo carries the gateway identifiers attached to an order.
type PaymentInfo struct {
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Status           PaymentStatus
}

// LineItem is one purchased product position.
type LineItem struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Address is the free-form shipping destination.
type Address struct {
	Name       string `json:"name,omitempty"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Order describes one settled purchase.
type Order struct {
	ID              uuid.UUID
	UserID          int64
	Items           []LineItem
	TotalAmount     decimal.Decimal
	ShippingAddress *Address
	Payment         PaymentInfo
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ItemsTotal sums quantity times unit price across line items.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// OrderStats aggregates ledger numbers for the admin dashboard.
type OrderStats struct {
	TotalOrders    int64
	CountsByStatus map[OrderStatus]int64
	TotalRevenue   decimal.Decimal
	RecentOrders   int64
	RecentRevenue  decimal.Decimal
}
