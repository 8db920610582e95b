package redisstore

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"

	"github.com/threadcart/backend/internal/config"
)

// Module wires the redis client and the pending code store.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(func(client *redis.Client) CodeStore { return NewCodeStore(client) }),
	fx.Invoke(registerLifecycle),
)

type clientParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
}

func newClient(p clientParams) (*redis.Client, error) {
	return NewClient(p.Ctx, p.Config.RedisAddr)
}

func registerLifecycle(lc fx.Lifecycle, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
}
