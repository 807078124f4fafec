package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (model.Actor, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password, name, phone string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, name, phone)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns the acting account for authenticated requests.
func (s AuthFacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Actor{AccountID: 1, Role: model.RoleCustomer}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn        func(context.Context, model.Actor, model.PlaceOrderRequest) (*model.Purchase, *model.Transaction, error)
	CancelFn       func(context.Context, model.Actor, int64) (*model.Purchase, error)
	ConfirmFn      func(context.Context, model.Actor, int64) (*model.Purchase, error)
	ChangeFn       func(context.Context, model.Actor, int64, model.PurchaseStatus) (*model.Purchase, error)
	UpgradeFn      func(context.Context, model.Actor, int64) (*model.Purchase, error)
	OrdersFn       func(context.Context, model.Actor) ([]model.Purchase, error)
	OrderFn        func(context.Context, model.Actor, int64) (*model.Purchase, error)
	TransactionsFn func(context.Context, model.Actor, int64) ([]model.Transaction, error)
}

// PlaceOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, actor model.Actor, req model.PlaceOrderRequest) (*model.Purchase, *model.Transaction, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, actor, req)
	}
	purchase := &model.Purchase{ID: 1, AccountID: actor.AccountID, Status: model.PurchaseStatusWaitingDownPayment}
	tx := &model.Transaction{ID: 1, PurchaseID: 1, OrderRef: "ref", Status: model.TransactionStatusCreated}
	return purchase, tx, nil
}

// CancelOrder delegates or returns a cancelled purchase.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, actor, purchaseID)
	}
	return &model.Purchase{ID: purchaseID, Status: model.PurchaseStatusCancelled}, nil
}

// ConfirmOrder delegates or returns a confirmed purchase.
func (s OrderFacadeStub) ConfirmOrder(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, actor, purchaseID)
	}
	return &model.Purchase{ID: purchaseID, Status: model.PurchaseStatusConfirmed}, nil
}

// ChangeOrderStatus delegates or echoes the target status.
func (s OrderFacadeStub) ChangeOrderStatus(ctx context.Context, actor model.Actor, purchaseID int64, target model.PurchaseStatus) (*model.Purchase, error) {
	if s.ChangeFn != nil {
		return s.ChangeFn(ctx, actor, purchaseID, target)
	}
	return &model.Purchase{ID: purchaseID, Status: target}, nil
}

// UpgradeOrderStatus delegates or returns the next lifecycle stage.
func (s OrderFacadeStub) UpgradeOrderStatus(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	if s.UpgradeFn != nil {
		return s.UpgradeFn(ctx, actor, purchaseID)
	}
	return &model.Purchase{ID: purchaseID, Status: model.PurchaseStatusProcessing}, nil
}

// Orders returns predefined purchases for the actor.
func (s OrderFacadeStub) Orders(ctx context.Context, actor model.Actor) ([]model.Purchase, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, actor)
	}
	return []model.Purchase{{ID: 1, AccountID: actor.AccountID}}, nil
}

// Order returns one predefined purchase.
func (s OrderFacadeStub) Order(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, purchaseID)
	}
	return &model.Purchase{ID: purchaseID, AccountID: actor.AccountID, Status: model.PurchaseStatusPending}, nil
}

// OrderTransactions returns predefined payment attempts.
func (s OrderFacadeStub) OrderTransactions(ctx context.Context, actor model.Actor, purchaseID int64) ([]model.Transaction, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, actor, purchaseID)
	}
	return []model.Transaction{{ID: 1, PurchaseID: purchaseID}}, nil
}

// NextStatuses reports reachable statuses.
func (s OrderFacadeStub) NextStatuses(status model.PurchaseStatus) []model.PurchaseStatus {
	return status.NextStatuses()
}

// WebhookFacadeStub records processed notifications.
type WebhookFacadeStub struct {
	ProcessFn     func(context.Context, model.PaymentNotification) error
	Notifications []model.PaymentNotification
}

// ProcessPaymentNotification records the payload.
func (s *WebhookFacadeStub) ProcessPaymentNotification(ctx context.Context, n model.PaymentNotification) error {
	s.Notifications = append(s.Notifications, n)
	if s.ProcessFn != nil {
		return s.ProcessFn(ctx, n)
	}
	return nil
}

// CalendarFacadeStub simulates calendar operations.
type CalendarFacadeStub struct {
	BetweenFn  func(context.Context, time.Time, time.Time) ([]model.ClosedDate, error)
	UpcomingFn func(context.Context, time.Time) ([]model.ClosedDate, error)
	CloseFn    func(context.Context, model.Actor, time.Time, string) error
	OpenFn     func(context.Context, model.Actor, time.Time) error
}

// CalendarBetween returns blocks within range.
func (s CalendarFacadeStub) CalendarBetween(ctx context.Context, from, to time.Time) ([]model.ClosedDate, error) {
	if s.BetweenFn != nil {
		return s.BetweenFn(ctx, from, to)
	}
	return nil, nil
}

// CalendarUpcoming returns future blocks.
func (s CalendarFacadeStub) CalendarUpcoming(ctx context.Context, from time.Time) ([]model.ClosedDate, error) {
	if s.UpcomingFn != nil {
		return s.UpcomingFn(ctx, from)
	}
	return nil, nil
}

// CloseDate executes configured closure handler.
func (s CalendarFacadeStub) CloseDate(ctx context.Context, actor model.Actor, date time.Time, reason string) error {
	if s.CloseFn != nil {
		return s.CloseFn(ctx, actor, date, reason)
	}
	return nil
}

// OpenDate executes configured reopening handler.
func (s CalendarFacadeStub) OpenDate(ctx context.Context, actor model.Actor, date time.Time) error {
	if s.OpenFn != nil {
		return s.OpenFn(ctx, actor, date)
	}
	return nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	AddFn   func(context.Context, model.Actor, int64, int) (*model.CartItem, error)
	ListFn  func(context.Context, model.Actor) ([]model.CartItem, error)
	ClearFn func(context.Context, model.Actor) error
}

// AddCartItem delegates or returns a default line.
func (s CartFacadeStub) AddCartItem(ctx context.Context, actor model.Actor, variantID int64, quantity int) (*model.CartItem, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, actor, variantID, quantity)
	}
	return &model.CartItem{ID: 1, AccountID: actor.AccountID, VariantID: variantID, Quantity: quantity}, nil
}

// CartItems returns predefined cart lines.
func (s CartFacadeStub) CartItems(ctx context.Context, actor model.Actor) ([]model.CartItem, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor)
	}
	return nil, nil
}

// ClearCart executes configured handler.
func (s CartFacadeStub) ClearCart(ctx context.Context, actor model.Actor) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, actor)
	}
	return nil
}

// BakeryFacadeStub aggregates facade dependencies for HTTP layer tests.
type BakeryFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	WebhookFacadeStub
	CalendarFacadeStub
	CartFacadeStub
}

// PingerStub reports configurable storage health.
type PingerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s PingerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}

// ReconcileCall stores information about ReconcileTransaction invocations.
type ReconcileCall struct {
	OrderRef string
}

// WorkerFacadeStub mimics worker interactions with the payment facade.
type WorkerFacadeStub struct {
	Batches     [][]model.Transaction
	BatchesFn   func(context.Context, int) ([]model.Transaction, error)
	ReconcileFn func(context.Context, model.Transaction, time.Time) error

	Reconciled []ReconcileCall
	mu         sync.Mutex
	callCount  int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// TransactionsForReconciliation returns batches from configured queue.
func (s *WorkerFacadeStub) TransactionsForReconciliation(ctx context.Context, limit int) ([]model.Transaction, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.callCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ReconcileTransaction records reconciliation requests.
func (s *WorkerFacadeStub) ReconcileTransaction(ctx context.Context, tx model.Transaction, now time.Time) error {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, tx, now)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reconciled = append(s.Reconciled, ReconcileCall{OrderRef: tx.OrderRef})
	return nil
}
