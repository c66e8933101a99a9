package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the pricing rules that are configurable per deployment.
type Config struct {
	// USDToTZSRate converts between the two supported currencies.
	USDToTZSRate decimal.Decimal `mapstructure:"usd_to_tzs_rate"`

	// TaxRate is added to exclusive prices when shown tax-inclusive.
	TaxRate decimal.Decimal `mapstructure:"tax_rate"`

	// CurrencyInDuplicateKey makes currency part of the exact-duplicate key.
	// Off by default: a second currency for the same product, season and tax
	// behavior is reported as a duplicate.
	CurrencyInDuplicateKey bool `mapstructure:"currency_in_duplicate_key"`

	// StoreTimeout bounds every store round trip.
	StoreTimeout time.Duration `mapstructure:"store_timeout"`

	// DetectorConcurrency limits parallel per-park checks in ClassifyCandidates.
	DetectorConcurrency int `mapstructure:"detector_concurrency"`
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		USDToTZSRate:           decimal.NewFromInt(2500),
		TaxRate:                decimal.NewFromFloat(0.18),
		CurrencyInDuplicateKey: false,
		StoreTimeout:           10 * time.Second,
		DetectorConcurrency:    4,
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if !c.USDToTZSRate.IsPositive() {
		return ErrInvalidConfig{Field: "usd_to_tzs_rate", Reason: "must be positive"}
	}
	if c.TaxRate.IsNegative() {
		return ErrInvalidConfig{Field: "tax_rate", Reason: "must be non-negative"}
	}
	if c.StoreTimeout <= 0 {
		return ErrInvalidConfig{Field: "store_timeout", Reason: "must be positive"}
	}
	if c.DetectorConcurrency < 1 {
		return ErrInvalidConfig{Field: "detector_concurrency", Reason: "must be at least 1"}
	}
	return nil
}

// ErrInvalidConfig is returned when the configuration is invalid.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return e.Field + ": " + e.Reason
}
