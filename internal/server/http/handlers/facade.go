package handlers

import (
	"context"
	"time"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, name, phone string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, actor model.Actor, req model.PlaceOrderRequest) (*model.Purchase, *model.Transaction, error)
	CancelOrder(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error)
	ConfirmOrder(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error)
	ChangeOrderStatus(ctx context.Context, actor model.Actor, purchaseID int64, target model.PurchaseStatus) (*model.Purchase, error)
	UpgradeOrderStatus(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error)
	Orders(ctx context.Context, actor model.Actor) ([]model.Purchase, error)
	Order(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error)
	OrderTransactions(ctx context.Context, actor model.Actor, purchaseID int64) ([]model.Transaction, error)
	NextStatuses(status model.PurchaseStatus) []model.PurchaseStatus
}

// WebhookFacade processes gateway payment notifications.
type WebhookFacade interface {
	ProcessPaymentNotification(ctx context.Context, n model.PaymentNotification) error
}

// CalendarFacade exposes calendar reads and admin closures.
type CalendarFacade interface {
	CalendarBetween(ctx context.Context, from, to time.Time) ([]model.ClosedDate, error)
	CalendarUpcoming(ctx context.Context, from time.Time) ([]model.ClosedDate, error)
	CloseDate(ctx context.Context, actor model.Actor, date time.Time, reason string) error
	OpenDate(ctx context.Context, actor model.Actor, date time.Time) error
}

// CartFacade exposes cart operations.
type CartFacade interface {
	AddCartItem(ctx context.Context, actor model.Actor, variantID int64, quantity int) (*model.CartItem, error)
	CartItems(ctx context.Context, actor model.Actor) ([]model.CartItem, error)
	ClearCart(ctx context.Context, actor model.Actor) error
}

// BakeryFacade aggregates the full set of operations used across handlers.
type BakeryFacade interface {
	AuthFacade
	OrderFacade
	WebhookFacade
	CalendarFacade
	CartFacade
}
