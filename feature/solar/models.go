package solar

import "time"

// System types reported in Stats.
const (
	SystemEnhanced = "3-Inverter Enhanced System"
	SystemLegacy   = "Legacy System"
)

// InverterDay is one inverter's output on one day.
type InverterDay struct {
	Date     time.Time `json:"date" yaml:"date"`
	Inverter string    `json:"inverter" yaml:"inverter"`
	TotalKWh float64   `json:"total_kwh" yaml:"total_kwh"`
	PeakKW   float64   `json:"peak_kw" yaml:"peak_kw"`
	AvgKW    float64   `json:"avg_kw" yaml:"avg_kw"`
	Readings int       `json:"readings" yaml:"readings"`
}

// DailyGeneration is the whole system's output on one day.
type DailyGeneration struct {
	Date     time.Time `json:"date" yaml:"date"`
	TotalKWh float64   `json:"total_kwh" yaml:"total_kwh"`
	PeakKW   float64   `json:"peak_kw" yaml:"peak_kw"`
	// AvgKW is the mean of the inverters' daily averages.
	AvgKW         float64 `json:"avg_kw" yaml:"avg_kw"`
	InverterCount int     `json:"inverter_count" yaml:"inverter_count"`
	// CapacityFactor is AvgKW / PeakKW in percent, 0 when the peak is 0.
	CapacityFactor float64 `json:"capacity_factor" yaml:"capacity_factor"`
}

// HourlyProfile aggregates all samples taken in one hour of the day.
type HourlyProfile struct {
	Hour       int     `json:"hour" yaml:"hour"`
	AvgPowerKW float64 `json:"avg_power_kw" yaml:"avg_power_kw"`
	MaxPowerKW float64 `json:"max_power_kw" yaml:"max_power_kw"`
	// Variability is the sample standard deviation, 0 with fewer than two samples.
	Variability float64 `json:"variability" yaml:"variability"`
	DataPoints  int     `json:"data_points" yaml:"data_points"`
}

// Stats are the headline solar figures.
type Stats struct {
	TotalKWh                   float64   `json:"total_generation_kwh" yaml:"total_generation_kwh"`
	TotalValue                 float64   `json:"total_value" yaml:"total_value"`
	AverageDailyKWh            float64   `json:"average_daily_kwh" yaml:"average_daily_kwh"`
	PeakKW                     float64   `json:"peak_system_power_kw" yaml:"peak_system_power_kw"`
	AverageCapacityFactor      float64   `json:"average_capacity_factor" yaml:"average_capacity_factor"`
	BestDayKWh                 float64   `json:"best_day_kwh" yaml:"best_day_kwh"`
	WorstDayKWh                float64   `json:"worst_day_kwh" yaml:"worst_day_kwh"`
	GenerationTrend            []float64 `json:"generation_trend" yaml:"generation_trend"`
	OperatingDays              int       `json:"total_operating_days" yaml:"total_operating_days"`
	AverageInverterCount       float64   `json:"average_inverter_count" yaml:"average_inverter_count"`
	CarbonOffsetKg             float64   `json:"carbon_offset_kg" yaml:"carbon_offset_kg"`
	SystemType                 string    `json:"system_type" yaml:"system_type"`
	CapacityImprovementPercent float64   `json:"capacity_improvement_percent" yaml:"capacity_improvement_percent"`
	EstimatedMonthlySavings    float64   `json:"estimated_monthly_savings" yaml:"estimated_monthly_savings"`
}
