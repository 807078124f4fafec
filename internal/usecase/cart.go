package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/domain/repository"
)

// CartUseCase manages the customer's cart.
type CartUseCase struct {
	carts    repository.CartRepository
	variants repository.VariantRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, variants repository.VariantRepository) *CartUseCase {
	return &CartUseCase{carts: carts, variants: variants}
}

// Add puts a variant into the actor's cart after validating the quantity.
func (u *CartUseCase) Add(ctx context.Context, actor model.Actor, variantID int64, quantity int) (*model.CartItem, error) {
	variant, err := u.variants.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if !variant.AllowsQuantity(quantity) {
		return nil, fmt.Errorf("%w: quantity %d outside allowed range for %s", domainErrors.ErrValidation, quantity, variant.Name)
	}
	return u.carts.Add(ctx, actor.AccountID, variantID, quantity)
}

// List returns the actor's cart lines.
func (u *CartUseCase) List(ctx context.Context, actor model.Actor) ([]model.CartItem, error) {
	return u.carts.ListByAccount(ctx, actor.AccountID)
}

// Clear empties the actor's cart.
func (u *CartUseCase) Clear(ctx context.Context, actor model.Actor) error {
	return u.carts.Clear(ctx, actor.AccountID)
}
