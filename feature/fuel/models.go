package fuel

import (
	"sort"
	"time"
)

// SensorReading is one instrument sample. Value is nil when the state was not numeric.
type SensorReading struct {
	Timestamp time.Time
	EntityID  string
	Value     *float64
}

// DailyConsumption is the liters one source attributes to a calendar day.
type DailyConsumption struct {
	Date   time.Time `json:"date" yaml:"date"`
	Liters float64   `json:"liters" yaml:"liters"`
}

// Series maps calendar days (UTC midnight) to liters. Values are never negative.
type Series map[time.Time]float64

// Days returns the days of the series in ascending order.
func (s Series) Days() []time.Time {
	days := make([]time.Time, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sortDays(days)
	return days
}

// Records returns the series as day-ordered records.
func (s Series) Records() []DailyConsumption {
	out := make([]DailyConsumption, 0, len(s))
	for _, d := range s.Days() {
		out = append(out, DailyConsumption{Date: d, Liters: s[d]})
	}
	return out
}

// Total sums the series.
func (s Series) Total() float64 {
	var total float64
	for _, d := range s.Days() {
		total += s[d]
	}
	return total
}

// Source records which reconciliation rule picked a day's figure.
type Source string

const (
	SourcePrimary Source = "primary"
	SourceBackup  Source = "backup"
	SourceMax     Source = "max"
)

// ReconciledConsumption is the single consumption figure chosen for a day.
type ReconciledConsumption struct {
	Date          time.Time `json:"date" yaml:"date"`
	Liters        float64   `json:"liters" yaml:"liters"`
	PrimaryLiters float64   `json:"primary_liters" yaml:"primary_liters"`
	BackupLiters  float64   `json:"backup_liters" yaml:"backup_liters"`
	Source        Source    `json:"source" yaml:"source"`
}

// PurchaseRecord is one cleaned ledger row.
type PurchaseRecord struct {
	Date          time.Time `json:"date" yaml:"date"`
	Liters        float64   `json:"liters" yaml:"liters"`
	Cost          *float64  `json:"cost,omitempty" yaml:"cost,omitempty"`
	PricePerLiter float64   `json:"price_per_liter" yaml:"price_per_liter"`
}

// Amount returns the recorded cost, or liters times price when the ledger had none.
func (p PurchaseRecord) Amount() float64 {
	if p.Cost != nil {
		return *p.Cost
	}
	return p.Liters * p.PricePerLiter
}

// DailyPrice is the price attributed to a day and the strategy that produced it.
type DailyPrice struct {
	Date          time.Time `json:"date" yaml:"date"`
	PricePerLiter float64   `json:"price_per_liter" yaml:"price_per_liter"`
	Source        string    `json:"source" yaml:"source"`
}

// DailyFuelRecord is one output row. Only days with FuelConsumedLiters > 0 exist.
type DailyFuelRecord struct {
	Date               time.Time `json:"date" yaml:"date"`
	FuelConsumedLiters float64   `json:"fuel_consumed_liters" yaml:"fuel_consumed_liters"`
	FuelPricePerLiter  float64   `json:"fuel_price_per_liter" yaml:"fuel_price_per_liter"`
	DailyCost          float64   `json:"daily_cost" yaml:"daily_cost"`
	PrimarySource      float64   `json:"primary_source" yaml:"primary_source"`
	BackupSource       float64   `json:"backup_source" yaml:"backup_source"`
	PriceSource        string    `json:"price_source" yaml:"price_source"`
}

// Stats summarizes the active days of a report.
type Stats struct {
	TotalLiters        float64     `json:"total_fuel_liters" yaml:"total_fuel_liters"`
	TotalCost          float64     `json:"total_cost" yaml:"total_cost"`
	AverageDailyLiters float64     `json:"average_daily_fuel" yaml:"average_daily_fuel"`
	AveragePrice       float64     `json:"average_cost_per_liter" yaml:"average_cost_per_liter"`
	ActiveDays         int         `json:"period_days" yaml:"period_days"`
	PricingMode        PricingMode `json:"pricing_mode" yaml:"pricing_mode"`
	LitersTrend        []float64   `json:"fuel_consumption_trend" yaml:"fuel_consumption_trend"`
	CostTrend          []float64   `json:"cost_trend" yaml:"cost_trend"`
}

// Thresholds are the noise and anomaly limits of extraction and reconciliation.
type Thresholds struct {
	PrimaryMinDaily float64
	Meaningful      float64
	BackupWindow    int
	BackupMinDrop   float64
	BackupMaxDrop   float64
	BackupDailyCap  float64
}

// DefaultThresholds returns the tuned plant values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PrimaryMinDaily: 1.0,
		Meaningful:      0.1,
		BackupWindow:    20,
		BackupMinDrop:   1,
		BackupMaxDrop:   30,
		BackupDailyCap:  50,
	}
}

func sortDays(days []time.Time) {
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
}
