package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/domain/repository"
)

const (
	newCollectionLimit = 8
	popularWomenLimit  = 4
	relatedLimit       = 4
)

// CatalogUseCase serves the public storefront catalog and the admin
// product management surface.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// All returns the full catalog.
func (u *CatalogUseCase) All(ctx context.Context) ([]model.Product, error) {
	return u.products.ListAll(ctx)
}

// NewCollection returns the latest arrivals for the storefront banner.
func (u *CatalogUseCase) NewCollection(ctx context.Context) ([]model.Product, error) {
	return u.products.ListNewest(ctx, newCollectionLimit)
}

// PopularInWomen returns the featured picks from the women category.
func (u *CatalogUseCase) PopularInWomen(ctx context.Context) ([]model.Product, error) {
	return u.products.ListByCategory(ctx, "women", popularWomenLimit)
}

// Related returns products from the given category for the product page
// sidebar.
func (u *CatalogUseCase) Related(ctx context.Context, category string) ([]model.Product, error) {
	if strings.TrimSpace(category) == "" {
		return nil, domainErrors.ErrMissingParameter
	}
	return u.products.ListByCategory(ctx, category, relatedLimit)
}

// Product returns a single catalog entry.
func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// AddProduct creates a catalog entry.
func (u *CatalogUseCase) AddProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, product)
}

// UpdateProduct replaces a catalog entry.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	return u.products.Update(ctx, product)
}

// RemoveProduct deletes a catalog entry.
func (u *CatalogUseCase) RemoveProduct(ctx context.Context, id int64) error {
	existed, err := u.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return domainErrors.ErrNotFound
	}
	return nil
}

func validateProduct(product model.Product) error {
	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.Category) == "" {
		return domainErrors.ErrMissingRequiredField
	}
	if product.NewPrice.IsNegative() || product.OldPrice.IsNegative() {
		return domainErrors.ErrInvalidAmount
	}
	return nil
}
