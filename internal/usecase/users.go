package usecase

import (
	"context"
	"log/slog"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/domain/repository"
)

// UserAdminUseCase is the back-office view over shopper accounts.
type UserAdminUseCase struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserAdminUseCase constructs UserAdminUseCase.
func NewUserAdminUseCase(users repository.UserRepository, logger *slog.Logger) *UserAdminUseCase {
	return &UserAdminUseCase{users: users, logger: logger}
}

// List returns a page of accounts with the total count.
func (u *UserAdminUseCase) List(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	return u.users.List(ctx, page, pageSize)
}

// Get returns a single account.
func (u *UserAdminUseCase) Get(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// SetBlocked blocks or unblocks an account. Blocked shoppers keep their
// data but cannot log in.
func (u *UserAdminUseCase) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	if _, err := u.users.GetByID(ctx, id); err != nil {
		return err
	}
	if err := u.users.SetBlocked(ctx, id, blocked); err != nil {
		return err
	}
	u.logger.Info("user block flag changed", slog.Int64("user_id", id), slog.Bool("blocked", blocked))
	return nil
}

// SetVerified overrides the email verification flag, for support cases
// where the code flow cannot complete.
func (u *UserAdminUseCase) SetVerified(ctx context.Context, id int64, verified bool) error {
	if _, err := u.users.GetByID(ctx, id); err != nil {
		return err
	}
	return u.users.SetVerified(ctx, id, verified)
}

// Delete removes an account permanently.
func (u *UserAdminUseCase) Delete(ctx context.Context, id int64) error {
	existed, err := u.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return domainErrors.ErrNotFound
	}
	u.logger.Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// Stats aggregates account numbers for the dashboard.
func (u *UserAdminUseCase) Stats(ctx context.Context) (*model.UserStats, error) {
	return u.users.Stats(ctx)
}
