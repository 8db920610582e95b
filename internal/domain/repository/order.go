package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/threadcart/backend/internal/domain/model"
)

// SortDirection orders list results.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// OrderListOptions controls filtering, sorting and pagination of order lists.
type OrderListOptions struct {
	Status    *model.OrderStatus
	SortBy    string
	Direction SortDirection
	Page      int
	PageSize  int
}

// Normalize coerces pagination and sorting to safe values.
func (o OrderListOptions) Normalize() OrderListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = 10
	}
	if o.SortBy == "" {
		o.SortBy = "created_at"
	}
	if o.Direction != SortAsc {
		o.Direction = SortDesc
	}
	return o
}

// OrderRepository describes persistence operations with settled orders.
type OrderRepository interface {
	// Create persists a new order. When an order with the same gateway
	// payment ID already exists, the stored record is returned and the
	// second result is false.
	Create(ctx context.Context, order model.Order) (*model.Order, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, opts OrderListOptions) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Stats(ctx context.Context, window time.Duration) (*model.OrderStats, error)
	SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error)
}
