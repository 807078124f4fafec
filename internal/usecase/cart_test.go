package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/andinaft/bakeryd/internal/domain/errors"
	"github.com/andinaft/bakeryd/internal/domain/model"
	testhelpers "github.com/andinaft/bakeryd/internal/test"
)

func newCartFixture() (*CartUseCase, *testhelpers.CartRepositoryStub) {
	carts := &testhelpers.CartRepositoryStub{}
	variants := testhelpers.NewVariantRepositoryStub()
	variants.Variants[1] = &model.Variant{ID: 1, Name: "Chocolate cake", Price: decimal.NewFromInt(250000), MinQty: 1, MaxQty: 10}
	return NewCartUseCase(carts, variants), carts
}

func TestCartAddValidatesQuantity(t *testing.T) {
	uc, _ := newCartFixture()
	actor := model.Actor{AccountID: 7, Role: model.RoleCustomer}

	for _, qty := range []int{0, 11} {
		if _, err := uc.Add(context.Background(), actor, 1, qty); !errors.Is(err, domainErrors.ErrValidation) {
			t.Fatalf("quantity %d: expected ErrValidation, got %v", qty, err)
		}
	}
}

func TestCartAddUnknownVariant(t *testing.T) {
	uc, _ := newCartFixture()
	actor := model.Actor{AccountID: 7, Role: model.RoleCustomer}

	if _, err := uc.Add(context.Background(), actor, 404, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartListScopedToActor(t *testing.T) {
	uc, _ := newCartFixture()
	ctx := context.Background()
	alice := model.Actor{AccountID: 7, Role: model.RoleCustomer}
	bob := model.Actor{AccountID: 8, Role: model.RoleCustomer}

	if _, err := uc.Add(ctx, alice, 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := uc.Add(ctx, bob, 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := uc.List(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].AccountID != 7 {
		t.Fatalf("unexpected cart: %+v", items)
	}
}

func TestCartClear(t *testing.T) {
	uc, carts := newCartFixture()
	ctx := context.Background()
	actor := model.Actor{AccountID: 7, Role: model.RoleCustomer}

	if _, err := uc.Add(ctx, actor, 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := uc.Clear(ctx, actor); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(carts.Cleared) != 1 || carts.Cleared[0] != 7 {
		t.Fatalf("expected clear call for account 7, got %v", carts.Cleared)
	}
	items, _ := uc.List(ctx, actor)
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}
