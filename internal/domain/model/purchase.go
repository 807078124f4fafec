package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus describes the order lifecycle state.
type PurchaseStatus string

const (
	PurchaseStatusPending            PurchaseStatus = "PENDING"
	PurchaseStatusWaitingDownPayment PurchaseStatus = "WAITING_DOWN_PAYMENT"
	PurchaseStatusConfirming         PurchaseStatus = "CONFIRMING"
	PurchaseStatusConfirmed          PurchaseStatus = "CONFIRMED"
	PurchaseStatusWaitingSettlement  PurchaseStatus = "WAITING_SETTLEMENT"
	PurchaseStatusProcessing         PurchaseStatus = "PROCESSING"
	PurchaseStatusDelivered          PurchaseStatus = "DELIVERED"
	PurchaseStatusCancelled          PurchaseStatus = "CANCELLED"
)

// purchaseForwardOrder fixes the total order of forward transitions. Ranks are
// looked up here rather than derived from declaration order so reordering the
// constants can not silently change the monotonicity rule.
var purchaseForwardOrder = []PurchaseStatus{
	PurchaseStatusPending,
	PurchaseStatusWaitingDownPayment,
	PurchaseStatusConfirming,
	PurchaseStatusConfirmed,
	PurchaseStatusWaitingSettlement,
	PurchaseStatusProcessing,
	PurchaseStatusDelivered,
}

var purchaseRanks = func() map[PurchaseStatus]int {
	ranks := make(map[PurchaseStatus]int, len(purchaseForwardOrder))
	for i, s := range purchaseForwardOrder {
		ranks[s] = i
	}
	return ranks
}()

// Rank returns the position of the status in the forward order.
// CANCELLED and unknown values report -1 and false.
func (s PurchaseStatus) Rank() (int, bool) {
	r, ok := purchaseRanks[s]
	if !ok {
		return -1, false
	}
	return r, true
}

// IsTerminal reports whether no further transitions are allowed.
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseStatusDelivered || s == PurchaseStatusCancelled
}

// Next returns the immediate following status in the forward order.
func (s PurchaseStatus) Next() (PurchaseStatus, bool) {
	r, ok := s.Rank()
	if !ok || r+1 >= len(purchaseForwardOrder) {
		return "", false
	}
	return purchaseForwardOrder[r+1], true
}

// NextStatuses returns every forward status reachable from s, in order.
// CANCELLED is never listed.
func (s PurchaseStatus) NextStatuses() []PurchaseStatus {
	r, ok := s.Rank()
	if !ok {
		return nil
	}
	next := make([]PurchaseStatus, 0, len(purchaseForwardOrder)-r-1)
	next = append(next, purchaseForwardOrder[r+1:]...)
	return next
}

// PurchaseItem is one ordered line with a unit price snapshot taken at
// placement time.
type PurchaseItem struct {
	ID         int64
	PurchaseID int64
	VariantID  int64
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// Subtotal returns quantity times unit price.
func (i PurchaseItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Purchase is the customer's placed order aggregate.
type Purchase struct {
	ID            int64
	AccountID     int64
	InvoiceNumber string
	EventDate     time.Time
	DeliveryLat   float64
	DeliveryLon   float64
	DeliveryFee   decimal.Decimal
	Status        PurchaseStatus
	Items         []PurchaseItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ItemsTotal sums all line subtotals.
func (p *Purchase) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Total returns items total plus delivery fee.
func (p *Purchase) Total() decimal.Decimal {
	return p.ItemsTotal().Add(p.DeliveryFee)
}

// PrepWindowStart returns the first calendar day reserved for production,
// two days before the event.
func (p *Purchase) PrepWindowStart() time.Time {
	return DateOnly(p.EventDate).AddDate(0, 0, -2)
}

// InPrepWindow reports whether now falls on or after the first preparation
// day. Placement and non-admin cancellation are rejected inside the window.
func (p *Purchase) InPrepWindow(now time.Time) bool {
	return !DateOnly(now).Before(p.PrepWindowStart())
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
