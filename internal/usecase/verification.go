package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/threadcart/backend/internal/adapter/mail"
	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/repository"
	"github.com/threadcart/backend/internal/pkg/auth"
	"github.com/threadcart/backend/internal/storage/redisstore"
)

// VerificationUseCase drives the emailed one-time code flows: email
// confirmation after registration and password resets. Codes are stored
// hashed, so a leaked store entry does not reveal the code.
type VerificationUseCase struct {
	users  repository.UserRepository
	codes  redisstore.CodeStore
	mailer mail.Sender
	hasher auth.PasswordHasher
	ttl    time.Duration
	logger *slog.Logger
}

// NewVerificationUseCase constructs VerificationUseCase.
func NewVerificationUseCase(users repository.UserRepository, codes redisstore.CodeStore, mailer mail.Sender, hasher auth.PasswordHasher, ttl time.Duration, logger *slog.Logger) *VerificationUseCase {
	return &VerificationUseCase{users: users, codes: codes, mailer: mailer, hasher: hasher, ttl: ttl, logger: logger}
}

// SendVerificationCode issues a fresh code to an unverified account.
// Reissuing overwrites the previous code and restarts the TTL.
func (u *VerificationUseCase) SendVerificationCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return domainErrors.ErrAlreadyExists
	}
	return u.issueCode(ctx, redisstore.CodeKindVerification, email, user.Name, u.mailer.SendVerificationCode)
}

// ConfirmEmail checks the submitted code and marks the account verified.
func (u *VerificationUseCase) ConfirmEmail(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := u.consumeCode(ctx, redisstore.CodeKindVerification, email, code); err != nil {
		return err
	}
	if err := u.users.SetVerified(ctx, user.ID, true); err != nil {
		return err
	}
	u.logger.Info("email verified", slog.Int64("user_id", user.ID))
	return nil
}

// SendPasswordResetCode issues a reset code to an existing account.
func (u *VerificationUseCase) SendPasswordResetCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return u.issueCode(ctx, redisstore.CodeKindPasswordReset, email, user.Name, u.mailer.SendPasswordResetCode)
}

// ResetPassword checks the reset code and replaces the stored password hash.
func (u *VerificationUseCase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if newPassword == "" {
		return domainErrors.ErrMissingRequiredField
	}
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := u.consumeCode(ctx, redisstore.CodeKindPasswordReset, email, code); err != nil {
		return err
	}
	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.users.SetPasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}
	u.logger.Info("password reset", slog.Int64("user_id", user.ID))
	return nil
}

func (u *VerificationUseCase) issueCode(ctx context.Context, kind redisstore.CodeKind, email, name string, deliver func(ctx context.Context, to, name, code string) error) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	hash, err := u.hasher.Hash(code)
	if err != nil {
		return err
	}
	pending := redisstore.PendingCode{CodeHash: hash, IssuedAt: time.Now()}
	if err := u.codes.Put(ctx, kind, email, pending, u.ttl); err != nil {
		return err
	}
	return deliver(ctx, email, name, code)
}

func (u *VerificationUseCase) consumeCode(ctx context.Context, kind redisstore.CodeKind, email, code string) error {
	pending, err := u.codes.Get(ctx, kind, email)
	if err != nil {
		return err
	}
	if err := u.hasher.Compare(pending.CodeHash, code); err != nil {
		return domainErrors.ErrInvalidCode
	}
	// One-shot: the code is gone whether or not the caller retries.
	return u.codes.Delete(ctx, kind, email)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
