package config

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func requiredEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI":        "postgres://localhost/bakeryd",
		"GATEWAY_BASE_URL":    "https://gateway.example",
		"GATEWAY_SERVER_KEY":  "server-key",
		"GATEWAY_MERCHANT_ID": "M-1001",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(requiredEnv()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":8080" {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if !cfg.RatePerKm.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("unexpected rate %s", cfg.RatePerKm)
	}
	if !cfg.ServiceFee.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected service fee %s", cfg.ServiceFee)
	}
	if cfg.ReconcilePollInterval != 30*time.Second || cfg.ReconcileBatchSize != 32 || cfg.WorkerPoolSize != 4 {
		t.Fatalf("unexpected reconciliation defaults: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	env := requiredEnv()
	env["RUN_ADDRESS"] = ":9090"
	env["DELIVERY_RATE_PER_KM"] = "7500"
	env["RECONCILE_POLL_INTERVAL"] = "1m"
	env["WORKER_POOL_SIZE"] = "8"

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9090" {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if !cfg.RatePerKm.Equal(decimal.NewFromInt(7500)) {
		t.Fatalf("unexpected rate %s", cfg.RatePerKm)
	}
	if cfg.ReconcilePollInterval != time.Minute || cfg.WorkerPoolSize != 8 {
		t.Fatalf("unexpected reconciliation settings: %+v", cfg)
	}
}

func TestLoadFlagsBeatEnv(t *testing.T) {
	env := requiredEnv()
	env["RUN_ADDRESS"] = ":9090"

	cfg, err := load([]string{"-a", ":7070", "-rate-per-km", "12000"}, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7070" {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if !cfg.RatePerKm.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("unexpected rate %s", cfg.RatePerKm)
	}
}

func TestLoadRequiredSettings(t *testing.T) {
	for _, missing := range []string{"DATABASE_URI", "GATEWAY_BASE_URL", "GATEWAY_SERVER_KEY", "GATEWAY_MERCHANT_ID"} {
		env := requiredEnv()
		delete(env, missing)
		if _, err := load(nil, lookupFrom(env)); err == nil {
			t.Fatalf("expected error when %s is missing", missing)
		}
	}
}

func TestLoadInvalidRate(t *testing.T) {
	env := requiredEnv()
	env["DELIVERY_RATE_PER_KM"] = "ten thousand"

	_, err := load(nil, lookupFrom(env))
	if err == nil || !strings.Contains(err.Error(), "delivery rate") {
		t.Fatalf("expected delivery rate error, got %v", err)
	}
}
