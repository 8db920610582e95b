package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/domain/repository"
	"github.com/threadcart/backend/internal/pkg/auth"
)

// AuthUseCase handles shopper and back-office authentication.
type AuthUseCase struct {
	users    repository.UserRepository
	admins   repository.AdminRepository
	hasher   auth.PasswordHasher
	strategy auth.Strategy
	logger   *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, admins repository.AdminRepository, hasher auth.PasswordHasher, strategy auth.Strategy, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, admins: admins, hasher: hasher, strategy: strategy, logger: logger}
}

// RegisterUser creates a shopper account. The account starts unverified;
// the verification flow flips the flag once the emailed code is confirmed.
func (u *AuthUseCase) RegisterUser(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domainErrors.ErrMissingRequiredField
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := u.users.Create(ctx, name, email, hash)
	if err != nil {
		return nil, err
	}
	u.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// LoginUser authenticates a shopper and issues a bearer token. Blocked
// accounts are rejected even with correct credentials.
func (u *AuthUseCase) LoginUser(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrMissingRequiredField
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := u.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, "", domainErrors.ErrForbidden
	}

	token, err := u.strategy.IssueToken(user.ID, auth.RoleUser)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginAdmin authenticates a back-office account and records the login time.
func (u *AuthUseCase) LoginAdmin(ctx context.Context, username, password string) (*model.Admin, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domainErrors.ErrMissingRequiredField
	}

	admin, err := u.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := u.hasher.Compare(admin.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if err := u.admins.TouchLastLogin(ctx, admin.ID); err != nil {
		u.logger.Warn("failed to record admin login time",
			slog.Int64("admin_id", admin.ID),
			slog.String("error", err.Error()),
		)
	}

	token, err := u.strategy.IssueToken(admin.ID, auth.RoleAdmin)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// RegisterAdmin provisions a back-office account with the given capability
// set. Only callers holding the manage-users capability reach this point.
func (u *AuthUseCase) RegisterAdmin(ctx context.Context, username, email, password, role string, perms model.Permissions) (*model.Admin, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, domainErrors.ErrMissingRequiredField
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	admin, err := u.admins.Create(ctx, model.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Permissions:  perms,
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("admin registered", slog.Int64("admin_id", admin.ID), slog.String("role", admin.Role))
	return admin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
