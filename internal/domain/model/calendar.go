package model

import "time"

// ClosureType classifies why a calendar day is blocked.
type ClosureType string

const (
	// ClosureTypeClosed marks an admin-declared day off. No orders land here.
	ClosureTypeClosed ClosureType = "CLOSED"
	// ClosureTypeReserved marks the day an event is scheduled.
	ClosureTypeReserved ClosureType = "RESERVED"
	// ClosureTypePrep marks a day reserved for producing a scheduled event.
	ClosureTypePrep ClosureType = "PREP"
)

// ClosedDate blocks one calendar day. At most one record may exist per date;
// the storage layer enforces uniqueness so concurrent reservations serialize
// there. PurchaseID back-references the order that placed the block, so a
// release never frees another purchase's dates. Admin CLOSED rows have no
// purchase.
type ClosedDate struct {
	ID         int64
	Date       time.Time
	Type       ClosureType
	Reason     string
	PurchaseID *int64
	CreatedAt  time.Time
}

// ReservationFor builds the block set for an event on eventDate: the two
// preceding days as PREP and the event day as RESERVED.
func ReservationFor(purchaseID int64, eventDate time.Time) []ClosedDate {
	day := DateOnly(eventDate)
	return []ClosedDate{
		{Date: day.AddDate(0, 0, -2), Type: ClosureTypePrep, PurchaseID: &purchaseID},
		{Date: day.AddDate(0, 0, -1), Type: ClosureTypePrep, PurchaseID: &purchaseID},
		{Date: day, Type: ClosureTypeReserved, PurchaseID: &purchaseID},
	}
}
