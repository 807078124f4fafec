package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the worker.
type PaymentFacade interface {
	TransactionsForReconciliation(ctx context.Context, limit int) ([]model.Transaction, error)
	ReconcileTransaction(ctx context.Context, tx model.Transaction, now time.Time) error
}

// PaymentReconciler polls the payment gateway for transactions stuck in
// CREATED or PENDING and settles or expires them concurrently.
type PaymentReconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Transaction
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs reconciler worker pool.
func NewPaymentReconciler(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Transaction, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	transactions, err := p.facade.TransactionsForReconciliation(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch transactions for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, tx := range transactions {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- tx:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case tx, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := p.facade.ReconcileTransaction(ctx, tx, time.Now()); err != nil {
				p.logger.Error("reconcile transaction failed",
					slog.String("order_ref", tx.OrderRef),
					slog.String("error", err.Error()))
			}
		}
	}
}
