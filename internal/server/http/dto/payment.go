package dto

import (
	"github.com/shopspring/decimal"

	"github.com/threadcart/backend/internal/domain/model"
)

// CreatePaymentRequest opens a payment intent at the gateway.
type CreatePaymentRequest struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

// CreatePaymentResponse returns everything the checkout widget needs.
type CreatePaymentResponse struct {
	Success        bool   `json:"success"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	KeyID          string `json:"keyId"`
}

// ConfirmationInput carries the identifiers returned by the gateway checkout.
type ConfirmationInput struct {
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	GatewaySignature string `json:"gatewaySignature"`
}

// VerifyPaymentResponse reports signature verification outcome.
type VerifyPaymentResponse struct {
	Success  bool `json:"success"`
	Verified bool `json:"verified"`
}

// LineItemInput is one order line in a settlement request.
type LineItemInput struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ConfirmPaymentRequest settles a verified payment into an order.
type ConfirmPaymentRequest struct {
	ConfirmationInput
	Items           []LineItemInput `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress *model.Address  `json:"shippingAddress"`
}
