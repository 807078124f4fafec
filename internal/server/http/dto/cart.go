package dto

// CartAddRequest adds a variant to the cart.
type CartAddRequest struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// CartItemResponse describes one cart line.
type CartItemResponse struct {
	ID        int64 `json:"id"`
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}
