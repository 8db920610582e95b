package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/threadcart/backend/internal/domain/model"
)

// LineItemResponse is one order line as served to clients.
type LineItemResponse struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// PaymentInfoResponse exposes the gateway identifiers of an order.
type PaymentInfoResponse struct {
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Status           string `json:"status"`
}

// OrderResponse is a ledger entry as served to clients.
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          int64               `json:"userId"`
	Items           []LineItemResponse  `json:"items"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	ShippingAddress *model.Address      `json:"shippingAddress,omitempty"`
	Payment         PaymentInfoResponse `json:"payment"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ToOrderResponse maps an order to its wire shape. The gateway signature is
// deliberately omitted from responses.
func ToOrderResponse(order model.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		Payment: PaymentInfoResponse{
			GatewayOrderID:   order.Payment.GatewayOrderID,
			GatewayPaymentID: order.Payment.GatewayPaymentID,
			Status:           string(order.Payment.Status),
		},
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

// OrderListResponse is one page of the order ledger.
type OrderListResponse struct {
	Success bool            `json:"success"`
	Orders  []OrderResponse `json:"orders"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
}

// UpdateOrderStatusRequest moves an order to a new fulfilment status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderStatsResponse is the admin dashboard aggregate.
type OrderStatsResponse struct {
	Success        bool             `json:"success"`
	TotalOrders    int64            `json:"totalOrders"`
	CountsByStatus map[string]int64 `json:"countsByStatus"`
	TotalRevenue   decimal.Decimal  `json:"totalRevenue"`
	RecentOrders   int64            `json:"recentOrders"`
	RecentRevenue  decimal.Decimal  `json:"recentRevenue"`
}

// ToOrderStatsResponse maps ledger stats to the wire shape.
func ToOrderStatsResponse(stats model.OrderStats) OrderStatsResponse {
	counts := make(map[string]int64, len(stats.CountsByStatus))
	for status, count := range stats.CountsByStatus {
		counts[string(status)] = count
	}
	return OrderStatsResponse{
		Success:        true,
		TotalOrders:    stats.TotalOrders,
		CountsByStatus: counts,
		TotalRevenue:   stats.TotalRevenue,
		RecentOrders:   stats.RecentOrders,
		RecentRevenue:  stats.RecentRevenue,
	}
}
