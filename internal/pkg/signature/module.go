package signature

import (
	"go.uber.org/fx"

	"github.com/threadcart/backend/internal/config"
)

// Module provides the payment signature verifier via fx.
var Module = fx.Provide(
	func(cfg *config.Config) *Verifier {
		return NewVerifier(cfg.GatewayKeySecret)
	},
)
