package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/threadcart/backend/internal/adapter/gateway"
	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
)

var errGatewayDown = fmt.Errorf("%w: dial tcp refused", domainErrors.ErrGatewayUnavailable)

type paymentFacadeStub struct {
	mu       sync.Mutex
	batches  [][]model.Order
	call     int
	remote   map[string]*gateway.RemoteOrder
	fetchErr error
	updates  []model.PaymentStatus
}

func (s *paymentFacadeStub) StalePendingOrders(_ context.Context, _ time.Duration, _ int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.call < len(s.batches) {
		batch := s.batches[s.call]
		s.call++
		return batch, nil
	}
	return nil, nil
}

func (s *paymentFacadeStub) FetchGatewayOrder(_ context.Context, gatewayOrderID string) (*gateway.RemoteOrder, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if remote, ok := s.remote[gatewayOrderID]; ok {
		return remote, nil
	}
	return &gateway.RemoteOrder{ID: gatewayOrderID, Status: gateway.RemoteStatusCreated}, nil
}

func (s *paymentFacadeStub) UpdatePaymentStatus(_ context.Context, _ model.Order, status model.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, status)
	return nil
}

func (s *paymentFacadeStub) recordedUpdates() []model.PaymentStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PaymentStatus, len(s.updates))
	copy(out, s.updates)
	return out
}

func pendingOrder(gatewayOrderID string) model.Order {
	return model.Order{
		ID:     uuid.New(),
		Status: model.OrderStatusProcessing,
		Payment: model.PaymentInfo{
			GatewayOrderID: gatewayOrderID,
			Status:         model.PaymentStatusPending,
		},
	}
}

func runReconciler(t *testing.T, facade PaymentFacade) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	r := NewReconciler(facade, 5*time.Millisecond, 30*time.Minute, 4, 2, logger)
	r.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	r.Stop()
}

func TestReconcilerCompletesPaidOrders(t *testing.T) {
	facade := &paymentFacadeStub{
		batches: [][]model.Order{{pendingOrder("order_paid")}},
		remote: map[string]*gateway.RemoteOrder{
			"order_paid": {ID: "order_paid", Status: gateway.RemoteStatusPaid},
		},
	}

	runReconciler(t, facade)

	updates := facade.recordedUpdates()
	if len(updates) != 1 {
		t.Fatalf("expected one payment update, got %d", len(updates))
	}
	if updates[0] != model.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", updates[0])
	}
}

func TestReconcilerFailsUnpaidOrders(t *testing.T) {
	facade := &paymentFacadeStub{
		batches: [][]model.Order{{pendingOrder("order_stale")}},
	}

	runReconciler(t, facade)

	updates := facade.recordedUpdates()
	if len(updates) != 1 {
		t.Fatalf("expected one payment update, got %d", len(updates))
	}
	if updates[0] != model.PaymentStatusFailed {
		t.Fatalf("expected failed, got %s", updates[0])
	}
}

func TestReconcilerSkipsUpdateWhenGatewayUnavailable(t *testing.T) {
	facade := &paymentFacadeStub{
		batches:  [][]model.Order{{pendingOrder("order_x")}},
		fetchErr: errGatewayDown,
	}

	runReconciler(t, facade)

	if len(facade.recordedUpdates()) != 0 {
		t.Fatal("no update may be written while the gateway is unreachable")
	}
}

func TestReconcilerStopsCleanlyWithoutWork(t *testing.T) {
	facade := &paymentFacadeStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	r := NewReconciler(facade, 5*time.Millisecond, 30*time.Minute, 0, 0, logger)

	r.Start(context.Background())
	r.Stop()
}
