package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/andinaft/bakeryd/internal/adapter/gateway"
	"github.com/andinaft/bakeryd/internal/adapter/notify"
	"github.com/andinaft/bakeryd/internal/app"
	"github.com/andinaft/bakeryd/internal/config"
	"github.com/andinaft/bakeryd/internal/domain/repository"
	"github.com/andinaft/bakeryd/internal/storage/postgres"
	"github.com/andinaft/bakeryd/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:            ":0",
		DatabaseURI:           "postgres://stub",
		TokenSecret:           "secret",
		GatewayBaseURL:        "http://localhost",
		ServerKey:             "server-key",
		MerchantID:            "M-1001",
		RatePerKm:             decimal.NewFromInt(10000),
		ServiceFee:            decimal.NewFromInt(5000),
		ShutdownTimeout:       time.Millisecond,
		ReconcilePollInterval: time.Millisecond,
		ReconcileBatchSize:    1,
		WorkerPoolSize:        1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	accountRepo := test.NewAccountRepositoryStub()
	purchaseRepo := test.NewPurchaseRepositoryStub()
	transactionRepo := test.NewTransactionRepositoryStub()
	calendarRepo := test.NewCalendarRepositoryStub()
	variantRepo := test.NewVariantRepositoryStub()
	cartRepo := &test.CartRepositoryStub{}
	gatewayStub := &test.PaymentGatewayStub{}
	notifierStub := &test.NotifierStub{}

	var facade *app.BakeryFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.AccountRepository(accountRepo)),
			fx.Replace(repository.PurchaseRepository(purchaseRepo)),
			fx.Replace(repository.TransactionRepository(transactionRepo)),
			fx.Replace(repository.CalendarRepository(calendarRepo)),
			fx.Replace(repository.VariantRepository(variantRepo)),
			fx.Replace(repository.CartRepository(cartRepo)),
			fx.Replace(gateway.Client(gatewayStub)),
			fx.Replace(notify.Notifier(notifierStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected bakery facade instance")
	}
}
