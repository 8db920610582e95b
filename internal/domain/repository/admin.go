package repository

import (
	"context"

	"github.com/threadcart/backend/internal/domain/model"
)

// AdminRepository describes persistence operations with back-office accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin model.Admin) (*model.Admin, error)
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
	TouchLastLogin(ctx context.Context, id int64) error
}
