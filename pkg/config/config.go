// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"bchpay/pkg/invoice"
	"bchpay/pkg/logger"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	IDModeUUID  = "uuid"
	IDModeFixed = "fixed"

	// FixedInvoiceID is issued for every invoice when INVOICE_ID_MODE=fixed.
	FixedInvoiceID = "invoice123"
)

type Config struct {
	HTTPAddr string

	StoreBackend string
	DatabaseURL  string

	RedisAddr    string
	RedisChannel string

	OTELHost        string
	OTELSampleRatio float64

	IDMode         string
	PaymentAddress string
	InvoiceAmount  float64

	LogLevel logger.Level
}

// Load reads the configuration, applying defaults for unset variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:       getEnvOrDefault("HTTP_ADDR", "0.0.0.0:8081"),
		StoreBackend:   getEnvOrDefault("STORE_BACKEND", BackendMemory),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisChannel:   getEnvOrDefault("REDIS_CHANNEL", "invoice.paid"),
		OTELHost:       os.Getenv("OTEL_HOST"),
		IDMode:         getEnvOrDefault("INVOICE_ID_MODE", IDModeUUID),
		PaymentAddress: getEnvOrDefault("PAYMENT_ADDRESS", invoice.DefaultPaymentAddress),
	}

	var err error
	if cfg.OTELSampleRatio, err = getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0); err != nil {
		return nil, err
	}
	if cfg.OTELSampleRatio < 0 || cfg.OTELSampleRatio > 1 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATIO must be within [0,1], got %v", cfg.OTELSampleRatio)
	}
	if cfg.InvoiceAmount, err = getEnvAsFloat("INVOICE_AMOUNT", invoice.DefaultAmount); err != nil {
		return nil, err
	}
	if cfg.InvoiceAmount <= 0 {
		return nil, fmt.Errorf("INVOICE_AMOUNT must be positive, got %v", cfg.InvoiceAmount)
	}
	if cfg.LogLevel, err = logger.ParseLevel(os.Getenv("LOG_LEVEL")); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	switch cfg.IDMode {
	case IDModeUUID, IDModeFixed:
	default:
		return nil, fmt.Errorf("unknown INVOICE_ID_MODE %q", cfg.IDMode)
	}
	return cfg, nil
}

// IDGenerator returns the invoice id source selected by IDMode.
func (c *Config) IDGenerator() invoice.IDGenerator {
	if c.IDMode == IDModeFixed {
		return invoice.FixedID(FixedInvoiceID)
	}
	return invoice.UUIDGenerator{}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
