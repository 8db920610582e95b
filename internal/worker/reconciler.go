package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/threadcart/backend/internal/adapter/gateway"
	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by
// the reconciler.
type PaymentFacade interface {
	StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error)
	FetchGatewayOrder(ctx context.Context, gatewayOrderID string) (*gateway.RemoteOrder, error)
	UpdatePaymentStatus(ctx context.Context, order model.Order, status model.PaymentStatus) error
}

// Reconciler resolves orders whose payment never left the pending state.
// A checkout that dies between gateway capture and ledger confirmation
// leaves such an order behind; the reconciler asks the gateway for the
// authoritative state and settles the record either way.
type Reconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	failAfter    time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade PaymentFacade, pollInterval, failAfter time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		failAfter:    failAfter,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.StalePendingOrders(ctx, r.failAfter, r.batchSize)
	if err != nil {
		r.logger.Error("fetch stale pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.reconcile(ctx, order)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context, order model.Order) {
	remote, err := r.facade.FetchGatewayOrder(ctx, order.Payment.GatewayOrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrGatewayUnavailable) {
			// Transient; the next poll retries the same order.
			r.logger.Warn("gateway unavailable during reconcile",
				slog.String("order_id", order.ID.String()))
			return
		}
		r.logger.Error("gateway lookup failed",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()))
		return
	}

	var status model.PaymentStatus
	switch remote.Status {
	case gateway.RemoteStatusPaid:
		status = model.PaymentStatusCompleted
	default:
		// The intent was never paid within the allowed window.
		status = model.PaymentStatusFailed
	}

	if err := r.facade.UpdatePaymentStatus(ctx, order, status); err != nil {
		r.logger.Error("update payment status failed",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()))
		return
	}
	if status == model.PaymentStatusFailed {
		// Money may have moved at the gateway without reaching the ledger;
		// flag for manual reconciliation.
		r.logger.Error("payment marked failed",
			slog.String("order_id", order.ID.String()),
			slog.String("gateway_order_id", order.Payment.GatewayOrderID),
			slog.String("remote_status", string(remote.Status)))
		return
	}
	r.logger.Info("payment reconciled",
		slog.String("order_id", order.ID.String()),
		slog.String("payment_status", string(status)))
}
