package mail

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/threadcart/backend/internal/config"
)

// Module exposes the mail sender to the fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) Sender {
	if p.Config.SMTPAddr == "" {
		return NewLogSender(p.Logger)
	}
	return NewSMTPSender(p.Config.SMTPAddr, p.Config.SMTPFrom)
}
