package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andinaft/bakeryd/internal/adapter/gateway"
	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/domain/repository"
	"github.com/andinaft/bakeryd/internal/pkg/geo"
)

// PaymentGateway is the slice of the gateway client the orchestrator needs.
type PaymentGateway interface {
	CreateTransaction(ctx context.Context, req gateway.CreateRequest) (*gateway.CreateResponse, error)
	Cancel(ctx context.Context, orderRef string) (model.TransactionStatus, error)
}

// Notifier delivers best-effort order confirmations.
type Notifier interface {
	OrderPlaced(ctx context.Context, purchase *model.Purchase, paymentURL string) error
}

// OrderSettings carries the pricing knobs the orchestrator applies.
type OrderSettings struct {
	VendorOrigin geo.Point
	RatePerKm    decimal.Decimal
	ServiceFee   decimal.Decimal
}

// OrderUseCase is the top-level coordinator for order lifecycle operations.
// Each call executes its steps strictly in order; the calendar reservation
// happens only after the gateway accepted the transaction so dates are never
// blocked for orders that can not be paid.
type OrderUseCase struct {
	purchases repository.PurchaseRepository
	accounts  repository.AccountRepository
	variants  repository.VariantRepository
	carts     repository.CartRepository
	machine   *PurchaseUseCase
	ledger    *LedgerUseCase
	calendar  *CalendarUseCase
	gateway   PaymentGateway
	notifier  Notifier
	settings  OrderSettings
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	purchases repository.PurchaseRepository,
	accounts repository.AccountRepository,
	variants repository.VariantRepository,
	carts repository.CartRepository,
	machine *PurchaseUseCase,
	ledger *LedgerUseCase,
	calendar *CalendarUseCase,
	gw PaymentGateway,
	notifier Notifier,
	settings OrderSettings,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		purchases: purchases,
		accounts:  accounts,
		variants:  variants,
		carts:     carts,
		machine:   machine,
		ledger:    ledger,
		calendar:  calendar,
		gateway:   gw,
		notifier:  notifier,
		settings:  settings,
		logger:    logger,
	}
}

// PlaceOrder creates a purchase, opens a payment at the gateway, and reserves
// the production calendar. When any later step fails, everything created
// before it is compensated away: no orphaned purchase, transaction, or block
// survives a failed placement.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, actor model.Actor, req model.PlaceOrderRequest) (*model.Purchase, *model.Transaction, error) {
	now := time.Now()

	active, err := u.ledger.HasActive(ctx, actor.AccountID)
	if err != nil {
		return nil, nil, err
	}
	if active {
		return nil, nil, fmt.Errorf("%w: an unpaid order is already in flight", domainErrors.ErrConflict)
	}

	eventDay := model.DateOnly(req.EventDate)
	if !model.DateOnly(now).Before(eventDay.AddDate(0, 0, -2)) {
		return nil, nil, fmt.Errorf("%w: event date %s leaves no preparation time", domainErrors.ErrValidation, eventDay.Format("2006-01-02"))
	}

	for offset := -2; offset <= 0; offset++ {
		day := eventDay.AddDate(0, 0, offset)
		available, err := u.calendar.IsAvailable(ctx, day)
		if err != nil {
			return nil, nil, err
		}
		if !available {
			return nil, nil, fmt.Errorf("%w: %s is already blocked", domainErrors.ErrDateUnavailable, day.Format("2006-01-02"))
		}
	}

	if len(req.Items) == 0 {
		return nil, nil, fmt.Errorf("%w: order has no items", domainErrors.ErrValidation)
	}
	items := make([]model.PurchaseItem, 0, len(req.Items))
	for _, line := range req.Items {
		variant, err := u.variants.GetByID(ctx, line.VariantID)
		if err != nil {
			return nil, nil, fmt.Errorf("variant %d: %w", line.VariantID, err)
		}
		if !variant.AllowsQuantity(line.Quantity) {
			return nil, nil, fmt.Errorf("%w: quantity %d outside allowed range for %s", domainErrors.ErrValidation, line.Quantity, variant.Name)
		}
		items = append(items, model.PurchaseItem{
			VariantID: variant.ID,
			Name:      variant.Name,
			Quantity:  line.Quantity,
			UnitPrice: variant.Price,
		})
	}

	fee := decimal.Zero
	if req.DeliveryFee != nil {
		fee = *req.DeliveryFee
	} else {
		fee, err = geo.DeliveryFee(u.settings.VendorOrigin, geo.Point{Lat: req.DeliveryLat, Lon: req.DeliveryLon}, u.settings.RatePerKm)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domainErrors.ErrValidation, err)
		}
	}

	purchase := &model.Purchase{
		AccountID:     actor.AccountID,
		InvoiceNumber: newInvoiceNumber(now),
		EventDate:     eventDay,
		DeliveryLat:   req.DeliveryLat,
		DeliveryLon:   req.DeliveryLon,
		DeliveryFee:   fee,
		Status:        model.PurchaseStatusPending,
		Items:         items,
	}
	if err := u.purchases.Create(ctx, purchase); err != nil {
		return nil, nil, err
	}

	tx := u.ledger.Build(purchase, actor.AccountID, model.TransactionKindDownPayment, u.settings.ServiceFee, now)
	if err := u.ledger.Create(ctx, tx); err != nil {
		u.compensate(ctx, purchase.ID, 0, "")
		return nil, nil, err
	}

	account, err := u.accounts.GetByID(ctx, actor.AccountID)
	if err != nil {
		u.compensate(ctx, purchase.ID, tx.ID, "")
		return nil, nil, err
	}

	created, err := u.gateway.CreateTransaction(ctx, buildGatewayRequest(purchase, tx, account, u.settings.ServiceFee))
	if err != nil {
		u.compensate(ctx, purchase.ID, tx.ID, "")
		return nil, nil, fmt.Errorf("%w: %v", domainErrors.ErrGateway, err)
	}

	if err := u.ledger.AttachGatewayReference(ctx, tx.ID, created.ReferenceID, created.RedirectURL); err != nil {
		u.compensate(ctx, purchase.ID, tx.ID, tx.OrderRef)
		return nil, nil, err
	}
	tx.GatewayRef = created.ReferenceID
	tx.PaymentURL = created.RedirectURL

	if err := u.calendar.ReserveForEvent(ctx, purchase.ID, eventDay); err != nil {
		// Lost the calendar race to a concurrent order.
		u.compensate(ctx, purchase.ID, tx.ID, tx.OrderRef)
		return nil, nil, err
	}

	if err := u.purchases.UpdateStatus(ctx, purchase.ID, model.PurchaseStatusWaitingDownPayment); err != nil {
		u.compensate(ctx, purchase.ID, tx.ID, tx.OrderRef)
		return nil, nil, err
	}
	purchase.Status = model.PurchaseStatusWaitingDownPayment

	if err := u.carts.Clear(ctx, actor.AccountID); err != nil {
		u.logger.Warn("cart cleanup failed",
			slog.Int64("account_id", actor.AccountID),
			slog.String("error", err.Error()))
	}
	if err := u.notifier.OrderPlaced(ctx, purchase, tx.PaymentURL); err != nil {
		u.logger.Warn("order confirmation notification failed",
			slog.String("invoice", purchase.InvoiceNumber),
			slog.String("error", err.Error()))
	}

	return purchase, tx, nil
}

// compensate rolls a half-built order back: cancels the gateway transaction
// when one was opened, frees any calendar blocks, then deletes the
// transaction and the purchase. Failures here are logged, not returned, so
// the original error surfaces.
func (u *OrderUseCase) compensate(ctx context.Context, purchaseID, txID int64, orderRef string) {
	if orderRef != "" {
		if _, err := u.gateway.Cancel(ctx, orderRef); err != nil {
			u.logger.Warn("compensating gateway cancel failed",
				slog.String("order_ref", orderRef),
				slog.String("error", err.Error()))
		}
	}
	if err := u.calendar.Release(ctx, purchaseID); err != nil {
		u.logger.Error("compensating calendar release failed",
			slog.Int64("purchase_id", purchaseID),
			slog.String("error", err.Error()))
	}
	if txID != 0 {
		if err := u.ledger.transactions.Delete(ctx, txID); err != nil {
			u.logger.Error("compensating transaction delete failed",
				slog.Int64("transaction_id", txID),
				slog.String("error", err.Error()))
		}
	}
	if err := u.purchases.Delete(ctx, purchaseID); err != nil {
		u.logger.Error("compensating purchase delete failed",
			slog.Int64("purchase_id", purchaseID),
			slog.String("error", err.Error()))
	}
}

// CancelOrder cancels the purchase, its payment attempts, and its calendar
// blocks. The state machine enforces ownership, the terminal-state rule, and
// the preparation-window cutoff.
func (u *OrderUseCase) CancelOrder(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	now := time.Now()

	purchase, err := u.machine.Cancel(ctx, actor, purchaseID, now)
	if err != nil {
		return nil, err
	}

	transactions, err := u.ledger.ListByPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	for _, tx := range transactions {
		if tx.Status.IsTerminal() || tx.GatewayRef == "" {
			continue
		}
		if _, err := u.gateway.Cancel(ctx, tx.OrderRef); err != nil {
			u.logger.Warn("gateway cancel failed",
				slog.String("order_ref", tx.OrderRef),
				slog.String("error", err.Error()))
		}
	}

	if err := u.ledger.CancelAllOf(ctx, purchaseID, now); err != nil {
		return nil, err
	}
	if err := u.calendar.Release(ctx, purchaseID); err != nil {
		return nil, err
	}

	return purchase, nil
}

// ConfirmOrder marks the purchase CONFIRMED. Administrators only.
func (u *OrderUseCase) ConfirmOrder(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	if !actor.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	return u.machine.Confirm(ctx, purchaseID)
}

// ChangeOrderStatus jumps the purchase to an explicit target status.
// Administrators only.
func (u *OrderUseCase) ChangeOrderStatus(ctx context.Context, actor model.Actor, purchaseID int64, target model.PurchaseStatus) (*model.Purchase, error) {
	if !actor.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	return u.machine.ChangeStatus(ctx, purchaseID, target)
}

// UpgradeOrderStatus advances the purchase one step. Administrators only.
func (u *OrderUseCase) UpgradeOrderStatus(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	if !actor.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	return u.machine.Upgrade(ctx, purchaseID)
}

// ListOrders returns all purchases for administrators and the actor's own
// purchases otherwise.
func (u *OrderUseCase) ListOrders(ctx context.Context, actor model.Actor) ([]model.Purchase, error) {
	if actor.IsAdmin() {
		return u.purchases.ListAll(ctx)
	}
	return u.purchases.ListByAccount(ctx, actor.AccountID)
}

// GetOrder fetches one purchase; customers see only their own.
func (u *OrderUseCase) GetOrder(ctx context.Context, actor model.Actor, purchaseID int64) (*model.Purchase, error) {
	purchase, err := u.purchases.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Owns(purchase.AccountID) {
		return nil, domainErrors.ErrForbidden
	}
	return purchase, nil
}

// GetTransaction fetches one payment attempt; customers see only their own.
func (u *OrderUseCase) GetTransaction(ctx context.Context, actor model.Actor, txID int64) (*model.Transaction, error) {
	tx, err := u.ledger.Get(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Owns(tx.AccountID) {
		return nil, domainErrors.ErrForbidden
	}
	return tx, nil
}

// AvailableNextStatuses exposes the state machine's forward affordances.
func (u *OrderUseCase) AvailableNextStatuses(status model.PurchaseStatus) []model.PurchaseStatus {
	return u.machine.AvailableNextStatuses(status)
}

func buildGatewayRequest(purchase *model.Purchase, tx *model.Transaction, account *model.Account, serviceFee decimal.Decimal) gateway.CreateRequest {
	req := gateway.CreateRequest{
		OrderRef:    tx.OrderRef,
		GrossAmount: tx.Amount,
		Customer:    gateway.Customer{Name: account.Name, Phone: account.Phone},
		ExpiresAt:   tx.ExpiresAt,
	}
	for _, item := range purchase.Items {
		req.Items = append(req.Items, gateway.LineItem{
			ID:       strconv.FormatInt(item.VariantID, 10),
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
	}
	if purchase.DeliveryFee.IsPositive() {
		req.Items = append(req.Items, gateway.LineItem{ID: "delivery", Name: "Delivery fee", Quantity: 1, Price: purchase.DeliveryFee})
	}
	if serviceFee.IsPositive() {
		req.Items = append(req.Items, gateway.LineItem{ID: "service", Name: "Service fee", Quantity: 1, Price: serviceFee})
	}
	return req
}

func newInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), uuid.NewString()[:8])
}
