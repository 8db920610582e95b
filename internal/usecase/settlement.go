package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/threadcart/backend/internal/adapter/gateway"
	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/domain/repository"
	"github.com/threadcart/backend/internal/pkg/signature"
)

// PaymentIntent is what the client needs to drive the gateway checkout UI.
type PaymentIntent struct {
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
	Receipt        string
	DisplayKey     string
}

// Confirmation carries the gateway identifiers returned by the client after
// an out-of-band checkout.
type Confirmation struct {
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
}

// OrderInput is the client-supplied order payload settled after verification.
type OrderInput struct {
	UserID          int64
	Items           []model.LineItem
	TotalAmount     decimal.Decimal
	ShippingAddress *model.Address
}

// SettlementUseCase sequences gateway, signature verifier and order ledger.
// It is the only path that can persist an order, so every stored order has
// passed signature verification.
type SettlementUseCase struct {
	gateway  gateway.Client
	verifier *signature.Verifier
	orders   repository.OrderRepository
	logger   *slog.Logger
}

// NewSettlementUseCase constructs SettlementUseCase.
func NewSettlementUseCase(gw gateway.Client, verifier *signature.Verifier, orders repository.OrderRepository, logger *slog.Logger) *SettlementUseCase {
	return &SettlementUseCase{gateway: gw, verifier: verifier, orders: orders, logger: logger}
}

// InitiatePayment opens a payment intent at the gateway.
func (u *SettlementUseCase) InitiatePayment(ctx context.Context, amount decimal.Decimal, currency, receipt string, notes map[string]string) (*PaymentIntent, error) {
	remote, err := u.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, err
	}

	return &PaymentIntent{
		GatewayOrderID: remote.ID,
		AmountMinor:    remote.Amount,
		Currency:       remote.Currency,
		Receipt:        remote.Receipt,
		DisplayKey:     u.gateway.KeyID(),
	}, nil
}

// VerifyPayment checks a confirmation's authenticity without persisting.
func (u *SettlementUseCase) VerifyPayment(c Confirmation) error {
	return u.verifier.Verify(c.GatewayOrderID, c.GatewayPaymentID, c.GatewaySignature)
}

// ConfirmAndSettle verifies the confirmation and, only on success, persists
// the order with a completed payment. Duplicate confirmations for the same
// gateway payment return the already-settled order.
func (u *SettlementUseCase) ConfirmAndSettle(ctx context.Context, c Confirmation, input OrderInput) (*model.Order, error) {
	if err := u.verifier.Verify(c.GatewayOrderID, c.GatewayPaymentID, c.GatewaySignature); err != nil {
		return nil, err
	}

	order, err := buildOrder(c, input)
	if err != nil {
		return nil, err
	}

	stored, created, err := u.orders.Create(ctx, *order)
	if err != nil {
		// The payment is already captured at the gateway; losing the
		// write here leaves money without a ledger record.
		u.logger.Error("payment verified but order persistence failed",
			slog.String("gateway_payment_id", c.GatewayPaymentID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if !created {
		u.logger.Warn("duplicate settlement for gateway payment",
			slog.String("gateway_payment_id", c.GatewayPaymentID),
			slog.String("order_id", stored.ID.String()),
		)
	}
	return stored, nil
}

// StalePending returns payment-pending orders older than the cutoff, for
// reconciliation against the gateway.
func (u *SettlementUseCase) StalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return u.orders.SelectStalePending(ctx, olderThan, limit)
}

// FetchRemote asks the gateway for the authoritative state of an intent.
func (u *SettlementUseCase) FetchRemote(ctx context.Context, gatewayOrderID string) (*gateway.RemoteOrder, error) {
	return u.gateway.FetchOrder(ctx, gatewayOrderID)
}

// SetPaymentStatus overwrites the recorded payment state of an order.
func (u *SettlementUseCase) SetPaymentStatus(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) error {
	return u.orders.UpdatePaymentStatus(ctx, orderID, status)
}

func buildOrder(c Confirmation, input OrderInput) (*model.Order, error) {
	if input.UserID == 0 || len(input.Items) == 0 {
		return nil, domainErrors.ErrMissingRequiredField
	}
	for _, item := range input.Items {
		if item.Quantity < 1 || item.UnitPrice.IsNegative() {
			return nil, domainErrors.ErrInvalidAmount
		}
	}
	if input.TotalAmount.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}

	order := model.Order{
		UserID:          input.UserID,
		Items:           input.Items,
		TotalAmount:     input.TotalAmount,
		ShippingAddress: input.ShippingAddress,
		Payment: model.PaymentInfo{
			GatewayOrderID:   c.GatewayOrderID,
			GatewayPaymentID: c.GatewayPaymentID,
			GatewaySignature: c.GatewaySignature,
			Status:           model.PaymentStatusCompleted,
		},
		Status: model.OrderStatusProcessing,
	}

	// The client-supplied total is not trusted; it must match the line
	// items exactly.
	if !order.TotalAmount.Equal(order.ItemsTotal()) {
		return nil, fmt.Errorf("%w: total does not match line items", domainErrors.ErrInvalidAmount)
	}

	return &order, nil
}
