package repository

import (
	"context"
	"time"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// TransactionRepository describes persistence operations with payment
// transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	GetByID(ctx context.Context, id int64) (*model.Transaction, error)
	GetByOrderRef(ctx context.Context, orderRef string) (*model.Transaction, error)
	ListByPurchase(ctx context.Context, purchaseID int64) ([]model.Transaction, error)
	// ListUnsettled returns transactions still in CREATED or PENDING,
	// oldest first, for the background reconciler.
	ListUnsettled(ctx context.Context, limit int) ([]model.Transaction, error)
	// HasActiveForAccount reports whether the account holds a transaction
	// in CREATED or PENDING status.
	HasActiveForAccount(ctx context.Context, accountID int64) (bool, error)
	AttachGatewayRef(ctx context.Context, id int64, gatewayRef, paymentURL string) error
	UpdateStatus(ctx context.Context, id int64, status model.TransactionStatus, finalizedAt *time.Time) error
	// SetStatusWithPurchase advances the transaction and its owning
	// purchase inside a single commit boundary.
	SetStatusWithPurchase(ctx context.Context, id int64, status model.TransactionStatus, finalizedAt *time.Time, purchaseID int64, purchaseStatus model.PurchaseStatus) error
	Delete(ctx context.Context, id int64) error
}
