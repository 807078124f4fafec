package repository

import (
	"context"
	"time"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// CalendarRepository owns date-blocking records. The date column is unique at
// the database level; that constraint is the only serialization point between
// racing reservations.
type CalendarRepository interface {
	IsBlocked(ctx context.Context, date time.Time) (bool, error)
	// ReserveAll inserts every block in one transaction. If any date is
	// already taken the whole batch fails with ErrDateUnavailable.
	ReserveAll(ctx context.Context, blocks []model.ClosedDate) error
	ReleaseByPurchase(ctx context.Context, purchaseID int64) error
	ListBetween(ctx context.Context, from, to time.Time) ([]model.ClosedDate, error)
	ListAfter(ctx context.Context, from time.Time) ([]model.ClosedDate, error)
	// Close inserts an admin-declared CLOSED block.
	Close(ctx context.Context, date time.Time, reason string) error
	// Open removes a CLOSED block. Reservation blocks are not touched.
	Open(ctx context.Context, date time.Time) error
}
