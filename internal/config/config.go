package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	TokenSecret     string
	ShutdownTimeout time.Duration

	GatewayBaseURL string
	ServerKey      string
	MerchantID     string
	NotifyEndpoint string

	VendorLat  float64
	VendorLon  float64
	RatePerKm  decimal.Decimal
	ServiceFee decimal.Decimal

	ReconcilePollInterval time.Duration
	ReconcileBatchSize    int
	WorkerPoolSize        int
}

const (
	defaultRunAddress        = ":8080"
	defaultTokenSecret       = "change-me-in-production"
	defaultShutdownTimeout   = 10 * time.Second
	defaultReconcileInterval = 30 * time.Second
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultRatePerKm         = "10000"
	defaultServiceFee        = "5000"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		TokenSecret:           getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		GatewayBaseURL:        getString(lookup, "GATEWAY_BASE_URL", ""),
		ServerKey:             getString(lookup, "GATEWAY_SERVER_KEY", ""),
		MerchantID:            getString(lookup, "GATEWAY_MERCHANT_ID", ""),
		NotifyEndpoint:        getString(lookup, "NOTIFY_ENDPOINT", ""),
		VendorLat:             getFloat(lookup, "VENDOR_LAT", 0),
		VendorLon:             getFloat(lookup, "VENDOR_LON", 0),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		ReconcilePollInterval: getDuration(lookup, "RECONCILE_POLL_INTERVAL", defaultReconcileInterval),
		ReconcileBatchSize:    getInt(lookup, "RECONCILE_BATCH_SIZE", defaultReconcileBatch),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
	}

	ratePerKm := getString(lookup, "DELIVERY_RATE_PER_KM", defaultRatePerKm)
	serviceFee := getString(lookup, "SERVICE_FEE", defaultServiceFee)

	fs := flag.NewFlagSet("bakeryd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()
	pollIntervalStr := cfg.ReconcilePollInterval.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.GatewayBaseURL, "gateway-url", cfg.GatewayBaseURL, "Payment gateway base URL")
	fs.StringVar(&cfg.ServerKey, "server-key", cfg.ServerKey, "Payment gateway server key")
	fs.StringVar(&cfg.MerchantID, "merchant-id", cfg.MerchantID, "Payment gateway merchant identifier")
	fs.StringVar(&cfg.NotifyEndpoint, "notify-endpoint", cfg.NotifyEndpoint, "Outbound order notification endpoint (optional)")
	fs.Float64Var(&cfg.VendorLat, "vendor-lat", cfg.VendorLat, "Vendor origin latitude")
	fs.Float64Var(&cfg.VendorLon, "vendor-lon", cfg.VendorLon, "Vendor origin longitude")
	fs.StringVar(&ratePerKm, "rate-per-km", ratePerKm, "Delivery fee per kilometer")
	fs.StringVar(&serviceFee, "service-fee", serviceFee, "Fixed service fee added to every payment")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&pollIntervalStr, "reconcile-interval", pollIntervalStr, "Interval between gateway reconciliation polls")
	fs.IntVar(&cfg.ReconcileBatchSize, "reconcile-batch", cfg.ReconcileBatchSize, "Maximum transactions per reconciliation batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.ReconcilePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.RatePerKm, err = decimal.NewFromString(ratePerKm); err != nil {
		return nil, fmt.Errorf("invalid delivery rate: %w", err)
	}

	if cfg.ServiceFee, err = decimal.NewFromString(serviceFee); err != nil {
		return nil, fmt.Errorf("invalid service fee: %w", err)
	}

	if keyFile, ok := lookup("GATEWAY_SERVER_KEY_FILE"); ok && keyFile != "" {
		content, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read server key file: %w", err)
		}
		cfg.ServerKey = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatchSize <= 0 {
		cfg.ReconcileBatchSize = defaultReconcileBatch
	}

	if cfg.ReconcilePollInterval <= 0 {
		cfg.ReconcilePollInterval = defaultReconcileInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayBaseURL == "" {
		return nil, fmt.Errorf("gateway base URL must be provided")
	}

	if cfg.ServerKey == "" {
		return nil, fmt.Errorf("gateway server key must be provided")
	}

	if cfg.MerchantID == "" {
		return nil, fmt.Errorf("gateway merchant identifier must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
