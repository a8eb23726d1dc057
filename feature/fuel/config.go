package fuel

import (
	"fmt"
	"strings"
	"time"

	"energy-dashboard/core/table"

	"github.com/samber/lo"
)

// Config holds the fuel pipeline settings.
type Config struct {
	// PrimaryEntity is the tank-level sensor read from the generator exports.
	PrimaryEntity string `mapstructure:"primary_entity" default:"sensor.generator_fuel_consumed"`
	// BackupEntity is the dense tank-level sensor read from the history export.
	BackupEntity string `mapstructure:"backup_entity" default:"sensor.generator_fuel_level"`
	// PrimaryMinDaily drops primary days whose total is below it.
	PrimaryMinDaily float64 `mapstructure:"primary_min_daily" default:"1.0"`
	// Meaningful is the threshold above which a source wins reconciliation.
	Meaningful float64 `mapstructure:"meaningful" default:"0.1"`
	// BackupWindow is the rolling median window in samples.
	BackupWindow int `mapstructure:"backup_window" default:"20"`
	// BackupMinDrop and BackupMaxDrop bound, exclusively, a counted backup drop.
	BackupMinDrop float64 `mapstructure:"backup_min_drop" default:"1"`
	BackupMaxDrop float64 `mapstructure:"backup_max_drop" default:"30"`
	// BackupDailyCap caps each backup day.
	BackupDailyCap float64 `mapstructure:"backup_daily_cap" default:"50"`
	// DefaultPrice is used when the ledger has no usable price at all.
	DefaultPrice float64 `mapstructure:"default_price" default:"22.50"`
	// MaxPrice is the exclusive upper bound of a valid price per liter.
	MaxPrice float64 `mapstructure:"max_price" default:"50"`
	// PricingMode is nearest_prior or monthly_average.
	PricingMode string `mapstructure:"pricing_mode" default:"nearest_prior"`
	// LedgerColumns adds ledger header synonyms as "Header=column" pairs separated by
	// semicolons, e.g. "Qty=liters;Rand Value=cost".
	LedgerColumns string `mapstructure:"ledger_columns" default:""`
	// Timezone buckets timestamps into calendar days.
	Timezone string `mapstructure:"timezone" default:"UTC"`
	// CacheTTL bounds report memoization. Zero disables it.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"10m"`
}

// DefaultConfig returns the settings the plant runs with.
func DefaultConfig() Config {
	th := DefaultThresholds()
	return Config{
		PrimaryEntity:   "sensor.generator_fuel_consumed",
		BackupEntity:    "sensor.generator_fuel_level",
		PrimaryMinDaily: th.PrimaryMinDaily,
		Meaningful:      th.Meaningful,
		BackupWindow:    th.BackupWindow,
		BackupMinDrop:   th.BackupMinDrop,
		BackupMaxDrop:   th.BackupMaxDrop,
		BackupDailyCap:  th.BackupDailyCap,
		DefaultPrice:    22.50,
		MaxPrice:        50,
		PricingMode:     string(PricingNearestPrior),
		Timezone:        "UTC",
		CacheTTL:        10 * time.Minute,
	}
}

// Thresholds extracts the extraction and reconciliation thresholds.
func (c Config) Thresholds() Thresholds {
	return Thresholds{
		PrimaryMinDaily: c.PrimaryMinDaily,
		Meaningful:      c.Meaningful,
		BackupWindow:    c.BackupWindow,
		BackupMinDrop:   c.BackupMinDrop,
		BackupMaxDrop:   c.BackupMaxDrop,
		BackupDailyCap:  c.BackupDailyCap,
	}
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid fuel timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LedgerSynonyms overlays the configured LedgerColumns on the built-in ledger synonyms.
func (c Config) LedgerSynonyms() (table.Synonyms, error) {
	extra := table.Synonyms{}
	for _, pair := range strings.Split(c.LedgerColumns, ";") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		header, column, ok := strings.Cut(pair, "=")
		column = strings.TrimSpace(column)
		if !ok || table.NormalizeColumn(header) == "" {
			return nil, fmt.Errorf("invalid fuel ledger_columns entry %q (want header=column)", pair)
		}
		if !lo.Contains(ledgerColumns, column) {
			return nil, fmt.Errorf("fuel ledger_columns maps %q to unknown column %q", strings.TrimSpace(header), column)
		}
		extra[header] = column
	}
	return LedgerSynonyms.Merge(extra), nil
}

// Validate checks the settings for internal consistency.
func (c Config) Validate() error {
	if _, err := ParsePricingMode(c.PricingMode); err != nil {
		return err
	}
	if _, err := c.LedgerSynonyms(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch {
	case c.BackupWindow < 1:
		return fmt.Errorf("fuel backup_window must be at least 1, got %d", c.BackupWindow)
	case c.BackupMinDrop < 0 || c.BackupMaxDrop <= c.BackupMinDrop:
		return fmt.Errorf("fuel backup drop bounds must satisfy 0 <= min < max, got %g and %g", c.BackupMinDrop, c.BackupMaxDrop)
	case c.BackupDailyCap <= 0:
		return fmt.Errorf("fuel backup_daily_cap must be positive, got %g", c.BackupDailyCap)
	case c.MaxPrice <= 0:
		return fmt.Errorf("fuel max_price must be positive, got %g", c.MaxPrice)
	case c.DefaultPrice <= 0 || c.DefaultPrice >= c.MaxPrice:
		return fmt.Errorf("fuel default_price must be inside (0, %g), got %g", c.MaxPrice, c.DefaultPrice)
	}
	return nil
}
