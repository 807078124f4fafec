package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/domain/repository"
	"github.com/andinaft/bakeryd/internal/pkg/signature"
)

// StatusFetcher asks the gateway for the authoritative transaction status.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, orderRef string) (model.TransactionStatus, error)
}

// WebhookUseCase reconciles external payment-gateway truth into internal
// state. The gateway delivers notifications at least once and possibly out of
// order; idempotence comes from the rank, merchant, amount, and fraud guards
// rather than a dedup table.
type WebhookUseCase struct {
	transactions repository.TransactionRepository
	purchases    repository.PurchaseRepository
	calendar     repository.CalendarRepository
	ledger       *LedgerUseCase
	fetcher      StatusFetcher
	serverKey    string
	merchantID   string
	logger       *slog.Logger
}

// NewWebhookUseCase constructs WebhookUseCase.
func NewWebhookUseCase(
	transactions repository.TransactionRepository,
	purchases repository.PurchaseRepository,
	calendar repository.CalendarRepository,
	ledger *LedgerUseCase,
	fetcher StatusFetcher,
	serverKey, merchantID string,
	logger *slog.Logger,
) *WebhookUseCase {
	return &WebhookUseCase{
		transactions: transactions,
		purchases:    purchases,
		calendar:     calendar,
		ledger:       ledger,
		fetcher:      fetcher,
		serverKey:    serverKey,
		merchantID:   merchantID,
		logger:       logger,
	}
}

// ProcessNotification validates and applies one inbound notification.
// Unreconcilable payloads (stale rank, foreign merchant, amount mismatch) are
// logged and acknowledged as no-ops so the gateway stops retrying; only a bad
// signature or an unknown transaction surfaces as an error.
func (u *WebhookUseCase) ProcessNotification(ctx context.Context, n model.PaymentNotification) error {
	if !signature.Verify(n.SignatureKey, n.OrderID, n.StatusCode, n.GrossAmount, u.serverKey) {
		u.logger.Warn("webhook signature mismatch, possible spoofing",
			slog.String("order_ref", n.OrderID),
			slog.String("payment_type", n.PaymentType))
		return fmt.Errorf("%w: invalid notification signature", domainErrors.ErrForbidden)
	}

	tx, err := u.transactions.GetByOrderRef(ctx, n.OrderID)
	if err != nil {
		return fmt.Errorf("resolve transaction %s: %w", n.OrderID, err)
	}

	status, ok := model.ParseTransactionStatus(n.TransactionStatus)
	if !ok {
		u.logger.Warn("notification carries unknown status, ignoring",
			slog.String("order_ref", n.OrderID),
			slog.String("status", n.TransactionStatus))
		return nil
	}

	newRank, _ := status.Rank()
	currentRank, _ := tx.Status.Rank()
	if newRank < currentRank {
		u.logger.Info("stale notification ignored",
			slog.String("order_ref", n.OrderID),
			slog.String("stored", string(tx.Status)),
			slog.String("reported", string(status)))
		return nil
	}

	if u.merchantID != "" && n.MerchantID != u.merchantID {
		u.logger.Warn("notification for foreign merchant ignored",
			slog.String("order_ref", n.OrderID),
			slog.String("merchant_id", n.MerchantID))
		return nil
	}

	if n.GrossAmount != tx.GrossAmount() {
		u.logger.Warn("notification amount mismatch ignored",
			slog.String("order_ref", n.OrderID),
			slog.String("stored", tx.GrossAmount()),
			slog.String("reported", n.GrossAmount))
		return nil
	}

	if !n.FraudAccepted() && status.IsSuccessful() {
		// Money moved but fraud screening flagged it: treat as failed.
		u.logger.Warn("fraudulent payment flagged, cancelling purchase",
			slog.String("order_ref", n.OrderID),
			slog.String("fraud_status", n.FraudStatus))
		return u.failPayment(ctx, tx, status, time.Now())
	}

	return u.apply(ctx, tx, status, time.Now())
}

// SyncWithGateway fetches the authoritative status for a stale transaction
// and applies the same reconciliation rules as the webhook path. Transactions
// past their expiry that the gateway cannot account for are expired locally.
func (u *WebhookUseCase) SyncWithGateway(ctx context.Context, tx model.Transaction, now time.Time) error {
	status, err := u.fetcher.FetchStatus(ctx, tx.OrderRef)
	if err != nil {
		if now.After(tx.ExpiresAt) {
			u.logger.Info("expiring unresolved transaction",
				slog.String("order_ref", tx.OrderRef),
				slog.String("error", err.Error()))
			return u.failPayment(ctx, &tx, model.TransactionStatusExpire, now)
		}
		return err
	}

	newRank, _ := status.Rank()
	currentRank, _ := tx.Status.Rank()
	if newRank < currentRank {
		return nil
	}

	if status == model.TransactionStatusPending && now.After(tx.ExpiresAt) {
		return u.failPayment(ctx, &tx, model.TransactionStatusExpire, now)
	}

	return u.apply(ctx, &tx, status, now)
}

// apply advances transaction and purchase together under the reconciliation
// rules. Both writes share one commit boundary.
func (u *WebhookUseCase) apply(ctx context.Context, tx *model.Transaction, status model.TransactionStatus, now time.Time) error {
	switch {
	case status.IsSuccessful():
		purchase, err := u.purchases.GetByID(ctx, tx.PurchaseID)
		if err != nil {
			return err
		}
		purchaseRank, _ := purchase.Status.Rank()
		confirmingRank, _ := model.PurchaseStatusConfirming.Rank()
		if purchase.Status == model.PurchaseStatusCancelled || purchaseRank >= confirmingRank {
			// Late or duplicate capture: the purchase already moved on.
			u.logger.Info("payment already reconciled, ignoring",
				slog.String("order_ref", tx.OrderRef),
				slog.String("purchase_status", string(purchase.Status)))
			return nil
		}
		return u.transactions.SetStatusWithPurchase(ctx, tx.ID, status, &now, purchase.ID, model.PurchaseStatusConfirming)

	case status.IsTerminal():
		return u.failPayment(ctx, tx, status, now)

	default:
		// CREATED or PENDING: reflect the transaction, leave the purchase.
		return u.ledger.SetStatus(ctx, tx, status, now)
	}
}

// failPayment finalizes the transaction with a failure status, cancels the
// owning purchase unless it already reached a terminal state, and frees the
// production days the purchase was holding.
func (u *WebhookUseCase) failPayment(ctx context.Context, tx *model.Transaction, status model.TransactionStatus, now time.Time) error {
	purchase, err := u.purchases.GetByID(ctx, tx.PurchaseID)
	if err != nil {
		return err
	}
	if purchase.Status.IsTerminal() {
		return u.ledger.SetStatus(ctx, tx, status, now)
	}
	if err := u.transactions.SetStatusWithPurchase(ctx, tx.ID, status, &now, purchase.ID, model.PurchaseStatusCancelled); err != nil {
		return err
	}
	return u.calendar.ReleaseByPurchase(ctx, purchase.ID)
}
