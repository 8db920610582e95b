package usecase_test

import (
	. "github.com/threadcart/backend/internal/usecase"

	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/test"
)

func cartFixtures(t *testing.T) (*CartUseCase, int64, int64) {
	t.Helper()
	users := test.NewUserRepositoryStub()
	products := test.NewProductRepositoryStub()

	user, err := users.Create(context.Background(), "Jo", "jo@example.com", "hash")
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	product, err := products.Create(context.Background(), model.Product{
		Name:     "Jacket",
		Category: "men",
		NewPrice: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return NewCartUseCase(users, products), user.ID, product.ID
}

func TestCartAddIncrementsQuantity(t *testing.T) {
	uc, userID, productID := cartFixtures(t)

	if _, err := uc.Add(context.Background(), userID, productID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := uc.Add(context.Background(), userID, productID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart[productID] != 2 {
		t.Fatalf("expected quantity 2, got %d", cart[productID])
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	uc, userID, _ := cartFixtures(t)

	_, err := uc.Add(context.Background(), userID, 404)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCartRemoveDropsEntryAtZero(t *testing.T) {
	uc, userID, productID := cartFixtures(t)

	if _, err := uc.Add(context.Background(), userID, productID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := uc.Remove(context.Background(), userID, productID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cart[productID]; ok {
		t.Fatal("expected entry to be removed at zero quantity")
	}
}

func TestCartRemoveMissingEntry(t *testing.T) {
	uc, userID, productID := cartFixtures(t)

	_, err := uc.Remove(context.Background(), userID, productID)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCartGetStartsEmpty(t *testing.T) {
	uc, userID, _ := cartFixtures(t)

	cart, err := uc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestCartClearEmptiesCart(t *testing.T) {
	uc, userID, productID := cartFixtures(t)

	if _, err := uc.Add(context.Background(), userID, productID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := uc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("expected cleared cart, got %+v", cart)
	}
}
