package repository

import (
	"context"

	"github.com/threadcart/backend/internal/domain/model"
)

// ProductRepository describes persistence operations with the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	ListNewest(ctx context.Context, limit int) ([]model.Product, error)
	ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error)
	Update(ctx context.Context, product model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
