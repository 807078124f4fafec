package di

import (
	"go.uber.org/fx"

	"github.com/andinaft/bakeryd/internal/adapter/gateway"
	"github.com/andinaft/bakeryd/internal/adapter/notify"
	"github.com/andinaft/bakeryd/internal/app"
	"github.com/andinaft/bakeryd/internal/config"
	"github.com/andinaft/bakeryd/internal/logger"
	"github.com/andinaft/bakeryd/internal/pkg/auth"
	"github.com/andinaft/bakeryd/internal/server/http/handlers"
	"github.com/andinaft/bakeryd/internal/server/http/router"
	"github.com/andinaft/bakeryd/internal/storage/postgres"
	"github.com/andinaft/bakeryd/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(
			func(client gateway.Client) usecase.PaymentGateway { return client },
			func(client gateway.Client) usecase.StatusFetcher { return client },
			func(notifier notify.Notifier) usecase.Notifier { return notifier },
			func(facade *app.BakeryFacade) handlers.BakeryFacade { return facade },
			func(storage *postgres.Storage) handlers.Pinger { return storage },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
