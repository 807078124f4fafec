package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderItem is one requested order line.
type PlaceOrderItem struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// PlaceOrderRequest describes order placement payload. EventDate uses the
// 2006-01-02 layout. DeliveryFee, when present, overrides the computed fee.
type PlaceOrderRequest struct {
	EventDate   string           `json:"event_date"`
	DeliveryLat float64          `json:"delivery_lat"`
	DeliveryLon float64          `json:"delivery_lon"`
	DeliveryFee *decimal.Decimal `json:"delivery_fee,omitempty"`
	Items       []PlaceOrderItem `json:"items"`
}

// OrderItemResponse describes one purchased line.
type OrderItemResponse struct {
	VariantID int64           `json:"variant_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse describes a purchase.
type OrderResponse struct {
	ID            int64               `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	EventDate     string              `json:"event_date"`
	DeliveryFee   decimal.Decimal     `json:"delivery_fee"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// TransactionResponse describes a payment attempt.
type TransactionResponse struct {
	ID         int64           `json:"id"`
	OrderRef   string          `json:"order_ref"`
	PaymentURL string          `json:"payment_url,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Kind       string          `json:"kind"`
	CreatedAt  time.Time       `json:"created_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

// PlaceOrderResponse returns the created purchase together with payment
// details the customer needs to complete the transaction.
type PlaceOrderResponse struct {
	Order   OrderResponse       `json:"order"`
	Payment TransactionResponse `json:"payment"`
}

// StatusChangeRequest carries the target status for an explicit transition.
type StatusChangeRequest struct {
	Status string `json:"status"`
}

// NextStatusesResponse lists statuses reachable from the current one.
type NextStatusesResponse struct {
	Current string   `json:"current"`
	Next    []string `json:"next"`
}
