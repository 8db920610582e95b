package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/threadcart/backend/internal/adapter/mail"
	"github.com/threadcart/backend/internal/config"
	"github.com/threadcart/backend/internal/domain/repository"
	"github.com/threadcart/backend/internal/pkg/auth"
	"github.com/threadcart/backend/internal/storage/redisstore"
)

// Module provides all use cases via fx.
var Module = fx.Provide(
	NewSettlementUseCase,
	NewOrderUseCase,
	NewAuthUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	NewUserAdminUseCase,
	newVerificationUseCase,
)

type verificationParams struct {
	fx.In

	Users  repository.UserRepository
	Codes  redisstore.CodeStore
	Mailer mail.Sender
	Hasher auth.PasswordHasher
	Config *config.Config
	Logger *slog.Logger
}

func newVerificationUseCase(p verificationParams) *VerificationUseCase {
	return NewVerificationUseCase(p.Users, p.Codes, p.Mailer, p.Hasher, p.Config.VerificationTTL, p.Logger)
}
