package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/andinaft/bakeryd/internal/config"
	"github.com/andinaft/bakeryd/internal/domain/repository"
	"github.com/andinaft/bakeryd/internal/pkg/geo"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCalendarUseCase,
	NewPurchaseUseCase,
	newLedger,
	newWebhook,
	newOrder,
	NewCartUseCase,
)

type ledgerParams struct {
	fx.In

	Transactions repository.TransactionRepository
	Logger       *slog.Logger
}

func newLedger(p ledgerParams) *LedgerUseCase {
	return NewLedgerUseCase(p.Transactions, p.Logger)
}

type webhookParams struct {
	fx.In

	Transactions repository.TransactionRepository
	Purchases    repository.PurchaseRepository
	Calendar     repository.CalendarRepository
	Ledger       *LedgerUseCase
	Fetcher      StatusFetcher
	Config       *config.Config
	Logger       *slog.Logger
}

func newWebhook(p webhookParams) *WebhookUseCase {
	return NewWebhookUseCase(p.Transactions, p.Purchases, p.Calendar, p.Ledger, p.Fetcher, p.Config.ServerKey, p.Config.MerchantID, p.Logger)
}

type orderParams struct {
	fx.In

	Purchases repository.PurchaseRepository
	Accounts  repository.AccountRepository
	Variants  repository.VariantRepository
	Carts     repository.CartRepository
	Machine   *PurchaseUseCase
	Ledger    *LedgerUseCase
	Calendar  *CalendarUseCase
	Gateway   PaymentGateway
	Notifier  Notifier
	Config    *config.Config
	Logger    *slog.Logger
}

func newOrder(p orderParams) *OrderUseCase {
	settings := OrderSettings{
		VendorOrigin: geo.Point{Lat: p.Config.VendorLat, Lon: p.Config.VendorLon},
		RatePerKm:    p.Config.RatePerKm,
		ServiceFee:   p.Config.ServiceFee,
	}
	return NewOrderUseCase(p.Purchases, p.Accounts, p.Variants, p.Carts, p.Machine, p.Ledger, p.Calendar, p.Gateway, p.Notifier, settings, p.Logger)
}
