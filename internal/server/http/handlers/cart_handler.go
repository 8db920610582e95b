package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threadcart/backend/internal/server/http/dto"
)

// CartHandler manages the authenticated shopper's cart.
type CartHandler struct {
	cart CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(cart CartFacade) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get handles GET /api/user/cart.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cart.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Success: true, Cart: cart})
}

// Add handles POST /api/user/cart/add.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	cart, err := h.cart.AddToCart(c.Request.Context(), CurrentUserID(c), req.ProductID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Success: true, Cart: cart})
}

// Remove handles POST /api/user/cart/remove.
func (h *CartHandler) Remove(c *gin.Context) {
	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	cart, err := h.cart.RemoveFromCart(c.Request.Context(), CurrentUserID(c), req.ProductID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Success: true, Cart: cart})
}
