package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadcart/backend/internal/server/http/dto"
)

// OrderAdminHandler exposes the order ledger to the back office.
type OrderAdminHandler struct {
	orders OrderAdminFacade
}

// NewOrderAdminHandler constructs OrderAdminHandler.
func NewOrderAdminHandler(orders OrderAdminFacade) *OrderAdminHandler {
	return &OrderAdminHandler{orders: orders}
}

// List handles GET /api/admin/orders.
func (h *OrderAdminHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 10)

	orders, total, err := h.orders.Orders(
		c.Request.Context(),
		c.Query("status"),
		c.Query("sortBy"),
		c.Query("direction"),
		page, pageSize,
	)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response := dto.OrderListResponse{
		Success: true,
		Orders:  make([]dto.OrderResponse, 0, len(orders)),
		Total:   total,
		Page:    page,
	}
	for _, order := range orders {
		response.Orders = append(response.Orders, dto.ToOrderResponse(order))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/admin/orders/:id.
func (h *OrderAdminHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, err := h.orders.Order(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": dto.ToOrderResponse(*order)})
}

// UpdateStatus handles PUT /api/admin/orders/:id/status.
func (h *OrderAdminHandler) UpdateStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": dto.ToOrderResponse(*order)})
}

// Delete handles DELETE /api/admin/orders/:id.
func (h *OrderAdminHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Stats handles GET /api/admin/orders/stats.
func (h *OrderAdminHandler) Stats(c *gin.Context) {
	stats, err := h.orders.OrderStats(c.Request.Context(), queryInt(c, "windowDays", 0))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderStatsResponse(*stats))
}

func orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid order identifier")
		return uuid.Nil, false
	}
	return id, true
}
