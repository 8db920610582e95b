package repository

import (
	"context"

	"github.com/threadcart/backend/internal/domain/model"
)

// UserRepository describes persistence operations with shopper accounts.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, page, pageSize int) ([]model.User, int64, error)
	SetVerified(ctx context.Context, id int64, verified bool) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	SetPasswordHash(ctx context.Context, id int64, passwordHash string) error
	GetCart(ctx context.Context, id int64) (model.Cart, error)
	SetCart(ctx context.Context, id int64, cart model.Cart) error
	Delete(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context) (*model.UserStats, error)
}
