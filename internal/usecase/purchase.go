package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/domain/repository"
)

// PurchaseUseCase owns the purchase entity and its guarded lifecycle
// transitions. Status only ever advances along the fixed forward order; the
// single exception is the terminal jump to CANCELLED.
type PurchaseUseCase struct {
	purchases repository.PurchaseRepository
}

// NewPurchaseUseCase constructs PurchaseUseCase.
func NewPurchaseUseCase(purchases repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{purchases: purchases}
}

// Get fetches a purchase by id.
func (u *PurchaseUseCase) Get(ctx context.Context, id int64) (*model.Purchase, error) {
	return u.purchases.GetByID(ctx, id)
}

// Upgrade moves the purchase to the immediate next forward status.
func (u *PurchaseUseCase) Upgrade(ctx context.Context, id int64) (*model.Purchase, error) {
	purchase, err := u.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot advance from %s", domainErrors.ErrIllegalTransition, purchase.Status)
	}
	next, ok := purchase.Status.Next()
	if !ok {
		return nil, fmt.Errorf("%w: cannot advance from %s", domainErrors.ErrIllegalTransition, purchase.Status)
	}
	if err := u.purchases.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	purchase.Status = next
	return purchase, nil
}

// ChangeStatus jumps directly to the target status. Regressions are rejected;
// the cancel path goes through Cancel, never here.
func (u *PurchaseUseCase) ChangeStatus(ctx context.Context, id int64, target model.PurchaseStatus) (*model.Purchase, error) {
	targetRank, ok := target.Rank()
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, target)
	}

	purchase, err := u.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status == model.PurchaseStatusCancelled {
		return nil, fmt.Errorf("%w: purchase is cancelled", domainErrors.ErrIllegalTransition)
	}
	currentRank, _ := purchase.Status.Rank()
	if targetRank < currentRank {
		return nil, fmt.Errorf("%w: %s is behind %s", domainErrors.ErrIllegalTransition, target, purchase.Status)
	}
	if err := u.purchases.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	purchase.Status = target
	return purchase, nil
}

// Confirm moves the purchase to CONFIRMED. Fails if it already reached
// CONFIRMED or a later status.
func (u *PurchaseUseCase) Confirm(ctx context.Context, id int64) (*model.Purchase, error) {
	purchase, err := u.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status == model.PurchaseStatusCancelled {
		return nil, fmt.Errorf("%w: purchase is cancelled", domainErrors.ErrIllegalTransition)
	}
	currentRank, _ := purchase.Status.Rank()
	confirmedRank, _ := model.PurchaseStatusConfirmed.Rank()
	if currentRank >= confirmedRank {
		return nil, fmt.Errorf("%w: already confirmed", domainErrors.ErrConflict)
	}
	if err := u.purchases.UpdateStatus(ctx, id, model.PurchaseStatusConfirmed); err != nil {
		return nil, err
	}
	purchase.Status = model.PurchaseStatusConfirmed
	return purchase, nil
}

// Cancel moves the purchase to CANCELLED. Delivered and already-cancelled
// purchases are rejected for everyone. Customers additionally must own the
// purchase and may not cancel inside the two-day preparation window;
// administrators override the window.
func (u *PurchaseUseCase) Cancel(ctx context.Context, actor model.Actor, id int64, now time.Time) (*model.Purchase, error) {
	purchase, err := u.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Owns(purchase.AccountID) {
		return nil, domainErrors.ErrForbidden
	}
	if purchase.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot cancel %s purchase", domainErrors.ErrConflict, purchase.Status)
	}
	if !actor.IsAdmin() && purchase.InPrepWindow(now) {
		return nil, fmt.Errorf("%w: preparation already started", domainErrors.ErrForbidden)
	}
	if err := u.purchases.UpdateStatus(ctx, id, model.PurchaseStatusCancelled); err != nil {
		return nil, err
	}
	purchase.Status = model.PurchaseStatusCancelled
	return purchase, nil
}

// AvailableNextStatuses returns the forward statuses still reachable from the
// purchase, in order, for UI affordances.
func (u *PurchaseUseCase) AvailableNextStatuses(status model.PurchaseStatus) []model.PurchaseStatus {
	return status.NextStatuses()
}
