package repository

import (
	"context"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// PurchaseRepository describes persistence operations with purchases.
type PurchaseRepository interface {
	// Create inserts the purchase and its items in one transaction and
	// fills generated identifiers and timestamps.
	Create(ctx context.Context, purchase *model.Purchase) error
	GetByID(ctx context.Context, id int64) (*model.Purchase, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.Purchase, error)
	ListAll(ctx context.Context) ([]model.Purchase, error)
	UpdateStatus(ctx context.Context, id int64, status model.PurchaseStatus) error
	// Delete removes the purchase and its items. Used only as a
	// compensating action while order placement is still failing.
	Delete(ctx context.Context, id int64) error
}
