package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/domain/repository"
)

const defaultStatsWindowDays = 30

// OrderUseCase encapsulates ledger operations over settled orders.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Get fetches a single order.
func (u *OrderUseCase) Get(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns a page of orders plus the total match count. An unknown
// status filter fails before touching storage.
func (u *OrderUseCase) List(ctx context.Context, statusFilter string, sortBy, direction string, page, pageSize int) ([]model.Order, int64, error) {
	opts := repository.OrderListOptions{
		SortBy:    sortBy,
		Direction: repository.SortDirection(direction),
		Page:      page,
		PageSize:  pageSize,
	}
	if statusFilter != "" {
		status, ok := model.ToOrderStatus(statusFilter)
		if !ok {
			return nil, 0, domainErrors.ErrInvalidStatus
		}
		opts.Status = &status
	}
	return u.orders.List(ctx, opts)
}

// UpdateStatus moves an order along the fulfilment state machine.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*model.Order, error) {
	status, ok := model.ToOrderStatus(rawStatus)
	if !ok {
		return nil, domainErrors.ErrInvalidStatus
	}
	return u.orders.UpdateStatus(ctx, id, status)
}

// Delete removes an order permanently.
func (u *OrderUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	existed, err := u.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Stats aggregates dashboard numbers. The recency window is evaluated
// against wall-clock now, so repeated calls drift as time passes.
func (u *OrderUseCase) Stats(ctx context.Context, windowDays int) (*model.OrderStats, error) {
	if windowDays <= 0 {
		windowDays = defaultStatsWindowDays
	}
	return u.orders.Stats(ctx, time.Duration(windowDays)*24*time.Hour)
}
