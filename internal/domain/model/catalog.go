package model

import "github.com/shopspring/decimal"

// Variant is a sellable product variation with its quantity bounds.
type Variant struct {
	ID        int64
	ProductID int64
	Name      string
	Price     decimal.Decimal
	MinQty    int
	MaxQty    int
}

// AllowsQuantity checks the ordered quantity against the variant bounds.
func (v Variant) AllowsQuantity(qty int) bool {
	if qty < v.MinQty {
		return false
	}
	if v.MaxQty > 0 && qty > v.MaxQty {
		return false
	}
	return true
}

// CartItem is one line in the customer's cart.
type CartItem struct {
	ID        int64
	AccountID int64
	VariantID int64
	Quantity  int
}
