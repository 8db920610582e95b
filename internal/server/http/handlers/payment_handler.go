package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/server/http/dto"
	"github.com/threadcart/backend/internal/usecase"
)

// PaymentHandler drives the checkout flow: intent creation, signature
// verification and final settlement.
type PaymentHandler struct {
	payments PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments PaymentFacade) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateOrder handles POST /api/payment/create-order.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	intent, err := h.payments.InitiatePayment(c.Request.Context(), req.Amount, req.Currency, req.Receipt, req.Notes)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreatePaymentResponse{
		Success:        true,
		GatewayOrderID: intent.GatewayOrderID,
		Amount:         intent.AmountMinor,
		Currency:       intent.Currency,
		Receipt:        intent.Receipt,
		KeyID:          intent.DisplayKey,
	})
}

// Verify handles POST /api/payment/verify.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.ConfirmationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := h.payments.VerifyPayment(toConfirmation(req)); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{Success: true, Verified: true})
}

// Confirm handles POST /api/payment/confirm. The only route that creates
// an order.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	items := make([]model.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	input := usecase.OrderInput{
		UserID:          CurrentUserID(c),
		Items:           items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
	}

	order, err := h.payments.ConfirmAndSettle(c.Request.Context(), toConfirmation(req.ConfirmationInput), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": dto.ToOrderResponse(*order)})
}

func toConfirmation(req dto.ConfirmationInput) usecase.Confirmation {
	return usecase.Confirmation{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		GatewaySignature: req.GatewaySignature,
	}
}
