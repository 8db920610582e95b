package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/server/http/dto"
)

// ProductHandler serves the public catalog and admin product management.
type ProductHandler struct {
	catalog CatalogFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(catalog CatalogFacade) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// All handles GET /api/products.
func (h *ProductHandler) All(c *gin.Context) {
	products, err := h.catalog.Products(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// NewCollection handles GET /api/products/new-collection.
func (h *ProductHandler) NewCollection(c *gin.Context) {
	products, err := h.catalog.NewCollection(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// PopularInWomen handles GET /api/products/popular-women.
func (h *ProductHandler) PopularInWomen(c *gin.Context) {
	products, err := h.catalog.PopularInWomen(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// Related handles GET /api/products/related?category=.
func (h *ProductHandler) Related(c *gin.Context) {
	products, err := h.catalog.RelatedProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// Get handles GET /api/admin/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalog.Product(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": dto.ToProductResponse(*product)})
}

// Add handles POST /api/admin/products.
func (h *ProductHandler) Add(c *gin.Context) {
	var req dto.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	product, err := h.catalog.AddProduct(c.Request.Context(), productFromInput(req, 0))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": dto.ToProductResponse(*product)})
}

// Update handles PUT /api/admin/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), productFromInput(req, id))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": dto.ToProductResponse(*product)})
}

// Remove handles DELETE /api/admin/products/:id.
func (h *ProductHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.RemoveProduct(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func productFromInput(req dto.ProductInput, id int64) model.Product {
	return model.Product{
		ID:          id,
		DisplayID:   req.DisplayID,
		Name:        req.Name,
		Image:       req.Image,
		Category:    req.Category,
		Description: req.Description,
		NewPrice:    req.NewPrice,
		OldPrice:    req.OldPrice,
		Available:   req.Available,
	}
}
