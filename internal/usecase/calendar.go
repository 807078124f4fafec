package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/domain/repository"
)

// CalendarUseCase owns the production calendar: availability queries,
// all-or-nothing reservations, and admin-declared closures.
type CalendarUseCase struct {
	calendar repository.CalendarRepository
}

// NewCalendarUseCase constructs CalendarUseCase.
func NewCalendarUseCase(calendar repository.CalendarRepository) *CalendarUseCase {
	return &CalendarUseCase{calendar: calendar}
}

// IsAvailable reports whether the date carries no block of any type.
func (u *CalendarUseCase) IsAvailable(ctx context.Context, date time.Time) (bool, error) {
	blocked, err := u.calendar.IsBlocked(ctx, date)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// ReserveForEvent blocks the two preparation days and the event day for the
// purchase. The batch is all-or-nothing: a single taken date fails the whole
// reservation, and the database uniqueness constraint decides races.
func (u *CalendarUseCase) ReserveForEvent(ctx context.Context, purchaseID int64, eventDate time.Time) error {
	blocks := model.ReservationFor(purchaseID, eventDate)
	if err := u.calendar.ReserveAll(ctx, blocks); err != nil {
		return fmt.Errorf("reserve %s: %w", model.DateOnly(eventDate).Format("2006-01-02"), err)
	}
	return nil
}

// Release frees every block the purchase placed. Blocks of other purchases
// and admin closures are never touched.
func (u *CalendarUseCase) Release(ctx context.Context, purchaseID int64) error {
	return u.calendar.ReleaseByPurchase(ctx, purchaseID)
}

// ListBetween returns blocks inside the inclusive date range.
func (u *CalendarUseCase) ListBetween(ctx context.Context, from, to time.Time) ([]model.ClosedDate, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", domainErrors.ErrValidation)
	}
	return u.calendar.ListBetween(ctx, from, to)
}

// ListAfter returns blocks from the given date on.
func (u *CalendarUseCase) ListAfter(ctx context.Context, from time.Time) ([]model.ClosedDate, error) {
	return u.calendar.ListAfter(ctx, from)
}

// CloseDate declares an admin day off. Participates in the same uniqueness
// space as reservations, so orders can not be placed across it.
func (u *CalendarUseCase) CloseDate(ctx context.Context, actor model.Actor, date time.Time, reason string) error {
	if !actor.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	if err := u.calendar.Close(ctx, date, reason); err != nil {
		return fmt.Errorf("close %s: %w", model.DateOnly(date).Format("2006-01-02"), err)
	}
	return nil
}

// OpenDate removes an admin closure.
func (u *CalendarUseCase) OpenDate(ctx context.Context, actor model.Actor, date time.Time) error {
	if !actor.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	return u.calendar.Open(ctx, date)
}
