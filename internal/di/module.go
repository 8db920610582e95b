package di

import (
	"go.uber.org/fx"

	"github.com/threadcart/backend/internal/adapter/gateway"
	"github.com/threadcart/backend/internal/adapter/mail"
	"github.com/threadcart/backend/internal/app"
	"github.com/threadcart/backend/internal/config"
	"github.com/threadcart/backend/internal/logger"
	"github.com/threadcart/backend/internal/pkg/auth"
	"github.com/threadcart/backend/internal/pkg/signature"
	"github.com/threadcart/backend/internal/server/http/router"
	"github.com/threadcart/backend/internal/storage/postgres"
	"github.com/threadcart/backend/internal/storage/redisstore"
	"github.com/threadcart/backend/internal/usecase"
)

// Module assembles the full application graph.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		signature.Module,
		postgres.Module,
		redisstore.Module,
		gateway.Module,
		mail.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
