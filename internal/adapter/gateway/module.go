package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/andinaft/bakeryd/internal/config"
)

// Module exposes gateway client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.GatewayBaseURL, p.Config.ServerKey, p.Logger)
}
