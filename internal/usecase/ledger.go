package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/domain/repository"
)

// transactionTTL is how long the gateway keeps a payment page open.
const transactionTTL = 24 * time.Hour

// LedgerUseCase records payment attempts and enforces their monotonic status
// progression.
type LedgerUseCase struct {
	transactions repository.TransactionRepository
	logger       *slog.Logger
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(transactions repository.TransactionRepository, logger *slog.Logger) *LedgerUseCase {
	return &LedgerUseCase{transactions: transactions, logger: logger}
}

// Build assembles a new transaction for the purchase: status CREATED, amount
// covering items, delivery fee, and the fixed service fee, expiry one day
// out. The transaction is not persisted here.
func (u *LedgerUseCase) Build(purchase *model.Purchase, accountID int64, kind model.TransactionKind, serviceFee decimal.Decimal, now time.Time) *model.Transaction {
	return &model.Transaction{
		PurchaseID: purchase.ID,
		AccountID:  accountID,
		OrderRef:   uuid.NewString(),
		Amount:     purchase.Total().Add(serviceFee),
		Status:     model.TransactionStatusCreated,
		Kind:       kind,
		CreatedAt:  now,
		ExpiresAt:  now.Add(transactionTTL),
	}
}

// Create persists the transaction.
func (u *LedgerUseCase) Create(ctx context.Context, tx *model.Transaction) error {
	return u.transactions.Create(ctx, tx)
}

// AttachGatewayReference stores the gateway's reference id and redirect URL
// on the transaction.
func (u *LedgerUseCase) AttachGatewayReference(ctx context.Context, txID int64, referenceID, paymentURL string) error {
	return u.transactions.AttachGatewayRef(ctx, txID, referenceID, paymentURL)
}

// Get fetches a transaction by id.
func (u *LedgerUseCase) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	return u.transactions.GetByID(ctx, id)
}

// GetByOrderRef resolves a transaction by the gateway's order identifier.
func (u *LedgerUseCase) GetByOrderRef(ctx context.Context, orderRef string) (*model.Transaction, error) {
	return u.transactions.GetByOrderRef(ctx, orderRef)
}

// ListByPurchase returns every payment attempt of the purchase.
func (u *LedgerUseCase) ListByPurchase(ctx context.Context, purchaseID int64) ([]model.Transaction, error) {
	return u.transactions.ListByPurchase(ctx, purchaseID)
}

// ListUnsettled returns the oldest transactions still awaiting a final
// gateway status.
func (u *LedgerUseCase) ListUnsettled(ctx context.Context, limit int) ([]model.Transaction, error) {
	return u.transactions.ListUnsettled(ctx, limit)
}

// HasActive reports whether the account still has an unpaid transaction in
// flight.
func (u *LedgerUseCase) HasActive(ctx context.Context, accountID int64) (bool, error) {
	return u.transactions.HasActiveForAccount(ctx, accountID)
}

// SetStatus advances the transaction status. A target with a lower gateway
// rank than the stored status is a regression and is rejected.
func (u *LedgerUseCase) SetStatus(ctx context.Context, tx *model.Transaction, status model.TransactionStatus, now time.Time) error {
	newRank, ok := status.Rank()
	if !ok {
		return fmt.Errorf("%w: unknown transaction status %q", domainErrors.ErrValidation, status)
	}
	currentRank, _ := tx.Status.Rank()
	if newRank < currentRank {
		return fmt.Errorf("%w: %s is behind %s", domainErrors.ErrConflict, status, tx.Status)
	}

	var finalizedAt *time.Time
	if status.IsTerminal() || status.IsSuccessful() {
		finalizedAt = &now
	}
	if err := u.transactions.UpdateStatus(ctx, tx.ID, status, finalizedAt); err != nil {
		return err
	}
	tx.Status = status
	tx.FinalizedAt = finalizedAt
	return nil
}

// CancelAllOf cancels every non-terminal transaction of the purchase.
// Already finished attempts are skipped and logged, so repeated calls are
// safe.
func (u *LedgerUseCase) CancelAllOf(ctx context.Context, purchaseID int64, now time.Time) error {
	transactions, err := u.transactions.ListByPurchase(ctx, purchaseID)
	if err != nil {
		return err
	}
	for i := range transactions {
		tx := &transactions[i]
		if tx.Status.IsTerminal() || tx.Status.IsSuccessful() {
			u.logger.Info("skipping finished transaction",
				slog.Int64("transaction_id", tx.ID),
				slog.String("status", string(tx.Status)))
			continue
		}
		if err := u.transactions.UpdateStatus(ctx, tx.ID, model.TransactionStatusCancel, &now); err != nil {
			return fmt.Errorf("cancel transaction %d: %w", tx.ID, err)
		}
	}
	return nil
}
