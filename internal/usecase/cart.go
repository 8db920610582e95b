package usecase

import (
	"context"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/domain/repository"
)

// CartUseCase manages a shopper's cart, persisted with the account so it
// follows the shopper across devices.
type CartUseCase struct {
	users    repository.UserRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(users repository.UserRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{users: users, products: products}
}

// Get returns the shopper's cart.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (model.Cart, error) {
	cart, err := u.users.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = model.Cart{}
	}
	return cart, nil
}

// Add increments the quantity of a product in the cart. The product must
// exist in the catalog.
func (u *CartUseCase) Add(ctx context.Context, userID, productID int64) (model.Cart, error) {
	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	cart, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart[productID]++
	if err := u.users.SetCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove decrements the quantity of a product, dropping the entry at zero.
func (u *CartUseCase) Remove(ctx context.Context, userID, productID int64) (model.Cart, error) {
	cart, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	qty, ok := cart[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if qty <= 1 {
		delete(cart, productID)
	} else {
		cart[productID] = qty - 1
	}
	if err := u.users.SetCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart, used after a successful settlement.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	return u.users.SetCart(ctx, userID, model.Cart{})
}
