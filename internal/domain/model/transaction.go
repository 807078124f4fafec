package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors the payment gateway's own status vocabulary.
type TransactionStatus string

const (
	TransactionStatusCreated    TransactionStatus = "CREATED"
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusCapture    TransactionStatus = "CAPTURE"
	TransactionStatusSettlement TransactionStatus = "SETTLEMENT"
	TransactionStatusDeny       TransactionStatus = "DENY"
	TransactionStatusCancel     TransactionStatus = "CANCEL"
	TransactionStatusExpire     TransactionStatus = "EXPIRE"
)

// transactionRanks fixes the gateway's ordinal ordering. A notification that
// reports a status with a strictly lower rank than the stored one is stale
// and must be ignored.
var transactionRanks = map[TransactionStatus]int{
	TransactionStatusCreated:    0,
	TransactionStatusPending:    1,
	TransactionStatusCapture:    2,
	TransactionStatusSettlement: 3,
	TransactionStatusDeny:       4,
	TransactionStatusCancel:     5,
	TransactionStatusExpire:     6,
}

// Rank returns the gateway ordinal of the status.
func (s TransactionStatus) Rank() (int, bool) {
	r, ok := transactionRanks[s]
	if !ok {
		return -1, false
	}
	return r, true
}

// IsSuccessful reports whether money has been captured.
func (s TransactionStatus) IsSuccessful() bool {
	return s == TransactionStatusCapture || s == TransactionStatusSettlement
}

// IsTerminal reports whether the payment attempt can no longer change.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusDeny || s == TransactionStatusCancel || s == TransactionStatusExpire
}

// ParseTransactionStatus maps a gateway status string to the internal value.
func ParseTransactionStatus(raw string) (TransactionStatus, bool) {
	s := TransactionStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := transactionRanks[s]; !ok {
		return "", false
	}
	return s, true
}

// TransactionKind distinguishes down payment from full payment.
type TransactionKind string

const (
	TransactionKindDownPayment TransactionKind = "DOWN_PAYMENT"
	TransactionKindFullPayment TransactionKind = "FULL_PAYMENT"
)

// Transaction is one payment attempt against a Purchase.
type Transaction struct {
	ID            int64
	PurchaseID    int64
	AccountID     int64
	OrderRef      string
	GatewayRef    string
	PaymentURL    string
	Amount        decimal.Decimal
	Status        TransactionStatus
	Kind          TransactionKind
	PaymentMethod string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	FinalizedAt   *time.Time
}

// GrossAmount renders the amount the way the gateway does, with two decimal
// places. Webhook amount checks compare this string exactly.
func (t *Transaction) GrossAmount() string {
	return t.Amount.StringFixed(2)
}
