package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/andinaft/bakeryd/internal/config"
)

// Module exposes the notifier implementation to fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) Notifier {
	return NewWebhookNotifier(p.Config.NotifyEndpoint, p.Logger)
}
