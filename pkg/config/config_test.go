package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bchpay/pkg/invoice"
	"bchpay/pkg/logger"
)

var allKeys = []string{
	"HTTP_ADDR", "STORE_BACKEND", "DATABASE_URL", "REDIS_ADDR", "REDIS_CHANNEL",
	"OTEL_HOST", "OTEL_SAMPLE_RATIO", "INVOICE_ID_MODE", "PAYMENT_ADDRESS",
	"INVOICE_AMOUNT", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8081", cfg.HTTPAddr)
	require.Equal(t, BackendMemory, cfg.StoreBackend)
	require.Equal(t, "invoice.paid", cfg.RedisChannel)
	require.Equal(t, 1.0, cfg.OTELSampleRatio)
	require.Equal(t, invoice.DefaultAmount, cfg.InvoiceAmount)
	require.Equal(t, invoice.DefaultPaymentAddress, cfg.PaymentAddress)
	require.Equal(t, logger.LevelInfo, cfg.LogLevel)
	require.Equal(t, invoice.UUIDGenerator{}, cfg.IDGenerator())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/bchpay")
	t.Setenv("INVOICE_ID_MODE", "fixed")
	t.Setenv("INVOICE_AMOUNT", "0.01")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTPAddr)
	require.Equal(t, BackendPostgres, cfg.StoreBackend)
	require.Equal(t, 0.01, cfg.InvoiceAmount)
	require.Equal(t, logger.LevelDebug, cfg.LogLevel)
	require.Equal(t, "invoice123", cfg.IDGenerator().NewID())
}

func TestLoadErrors(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"unknown backend":      {"STORE_BACKEND": "mongo"},
		"postgres without url": {"STORE_BACKEND": "postgres"},
		"bad id mode":          {"INVOICE_ID_MODE": "sequential"},
		"bad amount":           {"INVOICE_AMOUNT": "lots"},
		"negative amount":      {"INVOICE_AMOUNT": "-1"},
		"ratio out of range":   {"OTEL_SAMPLE_RATIO": "2"},
		"bad log level":        {"LOG_LEVEL": "verbose"},
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
