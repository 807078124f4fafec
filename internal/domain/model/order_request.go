package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderItem references one catalog variant and a quantity.
type PlaceOrderItem struct {
	VariantID int64
	Quantity  int
}

// PlaceOrderRequest describes a new order.
type PlaceOrderRequest struct {
	EventDate   time.Time
	DeliveryLat float64
	DeliveryLon float64
	// DeliveryFee overrides the computed fee when set.
	DeliveryFee *decimal.Decimal
	Items       []PlaceOrderItem
}
