package app

import (
	"context"
	"time"

	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/usecase"
)

// BakeryFacade bundles application use cases behind a single surface for the
// HTTP handlers and the background reconciler.
type BakeryFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	ledger   *usecase.LedgerUseCase
	webhooks *usecase.WebhookUseCase
	calendar *usecase.CalendarUseCase
	carts    *usecase.CartUseCase
}

func NewBakeryFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	ledger *usecase.LedgerUseCase,
	webhooks *usecase.WebhookUseCase,
	calendar *usecase.CalendarUseCase,
	carts *usecase.CartUseCase,
) *BakeryFacade {
	return &BakeryFacade{
		auth:     auth,
		orders:   orders,
		ledger:   ledger,
		webhooks: webhooks,
		calendar: calendar,
		carts:    carts,
	}
}

func (f *BakeryFacade) Register(ctx context.Context, login, password, name, phone string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, name, phone)
	return token, err
}

func (f *BakeryFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *BakeryFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *BakeryFacade) PlaceOrder(ctx context.Context, actor model.Actor, req model.PlaceOrderRequest) (*model.Purchase, *model.Transaction, error) {
	return f.orders.PlaceOrder(ctx, actor, req)
}

func (f *BakeryFacade) CancelOrder(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	return f.orders.CancelOrder(ctx, actor, purchaseID)
}

func (f *BakeryFacade) ConfirmOrder(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	return f.orders.ConfirmOrder(ctx, actor, purchaseID)
}

func (f *BakeryFacade) ChangeOrderStatus(ctx context.Context, actor model.Actor, purchaseID int64, target model.PurchaseStatus) (*model.Purchase, error) {
	return f.orders.ChangeOrderStatus(ctx, actor, purchaseID, target)
}

func (f *BakeryFacade) UpgradeOrderStatus(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	return f.orders.UpgradeOrderStatus(ctx, actor, purchaseID)
}

func (f *BakeryFacade) Orders(ctx context.Context, actor model.Actor) ([]model.Purchase, error) {
	return f.orders.ListOrders(ctx, actor)
}

func (f *BakeryFacade) Order(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	return f.orders.GetOrder(ctx, actor, purchaseID)
}

func (f *BakeryFacade) OrderTransactions(ctx context.Context, actor model.Actor, purchaseID int64) ([]model.Transaction, error) {
	if _, err := f.orders.GetOrder(ctx, actor, purchaseID); err != nil {
		return nil, err
	}
	return f.ledger.ListByPurchase(ctx, purchaseID)
}

func (f *BakeryFacade) NextStatuses(status model.PurchaseStatus) []model.PurchaseStatus {
	return f.orders.AvailableNextStatuses(status)
}

func (f *BakeryFacade) ProcessPaymentNotification(ctx context.Context, n model.PaymentNotification) error {
	return f.webhooks.ProcessNotification(ctx, n)
}

func (f *BakeryFacade) TransactionsForReconciliation(ctx context.Context, limit int) ([]model.Transaction, error) {
	return f.ledger.ListUnsettled(ctx, limit)
}

func (f *BakeryFacade) ReconcileTransaction(ctx context.Context, tx model.Transaction, now time.Time) error {
	return f.webhooks.SyncWithGateway(ctx, tx, now)
}

func (f *BakeryFacade) CalendarBetween(ctx context.Context, from, to time.Time) ([]model.ClosedDate, error) {
	return f.calendar.ListBetween(ctx, from, to)
}

func (f *BakeryFacade) CalendarUpcoming(ctx context.Context, from time.Time) ([]model.ClosedDate, error) {
	return f.calendar.ListAfter(ctx, from)
}

func (f *BakeryFacade) CloseDate(ctx context.Context, actor model.Actor, date time.Time, reason string) error {
	return f.calendar.CloseDate(ctx, actor, date, reason)
}

func (f *BakeryFacade) OpenDate(ctx context.Context, actor model.Actor, date time.Time) error {
	return f.calendar.OpenDate(ctx, actor, date)
}

func (f *BakeryFacade) AddCartItem(ctx context.Context, actor model.Actor, variantID int64, quantity int) (*model.CartItem, error) {
	return f.carts.Add(ctx, actor, variantID, quantity)
}

func (f *BakeryFacade) CartItems(ctx context.Context, actor model.Actor) ([]model.CartItem, error) {
	return f.carts.List(ctx, actor)
}

func (f *BakeryFacade) ClearCart(ctx context.Context, actor model.Actor) error {
	return f.carts.Clear(ctx, actor)
}
