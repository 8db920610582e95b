package usecase_test

import (
	. "github.com/threadcart/backend/internal/usecase"

	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/domain/repository"
	"github.com/threadcart/backend/internal/test"
)

func makeOrders(n int) []model.Order {
	orders := make([]model.Order, n)
	for i := range orders {
		orders[i] = model.Order{ID: uuid.New(), Status: model.OrderStatusProcessing}
	}
	return orders
}

func TestOrderListPaginatesFullCollection(t *testing.T) {
	all := makeOrders(25)
	stub := &test.OrderRepositoryStub{
		ListFn: func(_ context.Context, opts repository.OrderListOptions) ([]model.Order, int64, error) {
			opts = opts.Normalize()
			start := (opts.Page - 1) * opts.PageSize
			if start >= len(all) {
				return nil, int64(len(all)), nil
			}
			end := start + opts.PageSize
			if end > len(all) {
				end = len(all)
			}
			return all[start:end], int64(len(all)), nil
		},
	}
	uc := NewOrderUseCase(stub)

	seen := make(map[uuid.UUID]bool)
	pageSizes := []int{10, 10, 5}
	for page := 1; page <= 3; page++ {
		orders, total, err := uc.List(context.Background(), "", "", "", page, 10)
		if err != nil {
			t.Fatalf("page %d: unexpected error: %v", page, err)
		}
		if total != 25 {
			t.Fatalf("page %d: expected total 25, got %d", page, total)
		}
		if len(orders) != pageSizes[page-1] {
			t.Fatalf("page %d: expected %d orders, got %d", page, pageSizes[page-1], len(orders))
		}
		for _, o := range orders {
			if seen[o.ID] {
				t.Fatalf("order %s appeared on more than one page", o.ID)
			}
			seen[o.ID] = true
		}
	}
	if len(seen) != 25 {
		t.Fatalf("expected pages to cover all 25 orders, covered %d", len(seen))
	}
}

func TestOrderListRejectsUnknownStatus(t *testing.T) {
	uc := NewOrderUseCase(&test.OrderRepositoryStub{})

	_, _, err := uc.List(context.Background(), "refunded", "", "", 1, 10)
	if !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestOrderListPassesStatusFilter(t *testing.T) {
	var captured repository.OrderListOptions
	stub := &test.OrderRepositoryStub{
		ListFn: func(_ context.Context, opts repository.OrderListOptions) ([]model.Order, int64, error) {
			captured = opts
			return nil, 0, nil
		},
	}
	uc := NewOrderUseCase(stub)

	if _, _, err := uc.List(context.Background(), "shipped", "total_amount", "asc", 2, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Status == nil || *captured.Status != model.OrderStatusShipped {
		t.Fatalf("expected shipped filter, got %+v", captured.Status)
	}
	if captured.SortBy != "total_amount" || captured.Direction != repository.SortAsc {
		t.Fatalf("sorting options not forwarded: %+v", captured)
	}
}

func TestOrderUpdateStatusRejectsUnknownValue(t *testing.T) {
	uc := NewOrderUseCase(&test.OrderRepositoryStub{})

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), "returned")
	if !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestOrderUpdateStatusForwardsParsedStatus(t *testing.T) {
	stub := &test.OrderRepositoryStub{
		UpdateStatusFn: func(_ context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
			return &model.Order{ID: id, Status: status}, nil
		},
	}
	uc := NewOrderUseCase(stub)

	order, err := uc.UpdateStatus(context.Background(), uuid.New(), "delivered")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", order.Status)
	}
}

func TestOrderDeleteMissingOrder(t *testing.T) {
	uc := NewOrderUseCase(&test.OrderRepositoryStub{})

	err := uc.Delete(context.Background(), uuid.New())
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderStatsDefaultsWindowToThirtyDays(t *testing.T) {
	var window time.Duration
	stub := &test.OrderRepositoryStub{
		StatsFn: func(_ context.Context, w time.Duration) (*model.OrderStats, error) {
			window = w
			return &model.OrderStats{
				TotalOrders:  4,
				TotalRevenue: decimal.RequireFromString("350"),
			}, nil
		},
	}
	uc := NewOrderUseCase(stub)

	stats, err := uc.Stats(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window != 30*24*time.Hour {
		t.Fatalf("expected 30 day window, got %s", window)
	}
	if !stats.TotalRevenue.Equal(decimal.RequireFromString("350")) {
		t.Fatalf("expected revenue 350, got %s", stats.TotalRevenue)
	}
}
