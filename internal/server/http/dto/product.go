package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/threadcart/backend/internal/domain/model"
)

// ProductInput describes a catalog entry create/update payload.
type ProductInput struct {
	DisplayID   int64           `json:"id"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	NewPrice    decimal.Decimal `json:"new_price"`
	OldPrice    decimal.Decimal `json:"old_price"`
	Available   bool            `json:"available"`
}

// ProductResponse is a catalog entry as served to clients.
type ProductResponse struct {
	ID          int64           `json:"id"`
	DisplayID   int64           `json:"displayId"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	NewPrice    decimal.Decimal `json:"new_price"`
	OldPrice    decimal.Decimal `json:"old_price"`
	Date        time.Time       `json:"date"`
	Available   bool            `json:"available"`
}

// ToProductResponse maps a catalog product to its wire shape.
func ToProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		DisplayID:   p.DisplayID,
		Name:        p.Name,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		NewPrice:    p.NewPrice,
		OldPrice:    p.OldPrice,
		Date:        p.Date,
		Available:   p.Available,
	}
}

// ToProductResponses maps a product slice to wire shapes.
func ToProductResponses(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
