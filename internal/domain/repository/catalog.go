package repository

import (
	"context"

	"github.com/andinaft/bakeryd/internal/domain/model"
)

// VariantRepository reads the product catalog.
type VariantRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Variant, error)
}

// CartRepository describes persistence operations with customer carts.
type CartRepository interface {
	Add(ctx context.Context, accountID, variantID int64, quantity int) (*model.CartItem, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.CartItem, error)
	Clear(ctx context.Context, accountID int64) error
}
