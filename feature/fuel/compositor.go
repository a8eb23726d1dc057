package fuel

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TrendDays is the length of the trend slices in Stats.
const TrendDays = 7

// StrategyFallback marks a record priced by Compose's own fallback.
const StrategyFallback = "fallback"

// Compose builds the output records for active days (liters > 0) in input order.
// A day without an attributed price uses fallbackPrice.
func Compose(reconciled []ReconciledConsumption, prices map[time.Time]DailyPrice, fallbackPrice float64) []DailyFuelRecord {
	out := make([]DailyFuelRecord, 0, len(reconciled))
	for _, rc := range reconciled {
		if rc.Liters <= 0 {
			continue
		}
		price, source := fallbackPrice, StrategyFallback
		if dp, ok := prices[rc.Date]; ok {
			price, source = dp.PricePerLiter, dp.Source
		}
		out = append(out, DailyFuelRecord{
			Date:               rc.Date,
			FuelConsumedLiters: rc.Liters,
			FuelPricePerLiter:  price,
			DailyCost:          rc.Liters * price,
			PrimarySource:      rc.PrimaryLiters,
			BackupSource:       rc.BackupLiters,
			PriceSource:        source,
		})
	}
	return out
}

// Summarize computes report statistics over the active-day records.
// Means are over active days, not calendar days. Trends hold the last TrendDays
// values, or nothing when there are fewer records.
func Summarize(records []DailyFuelRecord, mode PricingMode) Stats {
	s := Stats{
		PricingMode: mode,
		ActiveDays:  len(records),
		LitersTrend: []float64{},
		CostTrend:   []float64{},
	}
	if len(records) == 0 {
		return s
	}

	liters := make([]float64, len(records))
	costs := make([]float64, len(records))
	prices := make([]float64, len(records))
	for i, r := range records {
		liters[i] = r.FuelConsumedLiters
		costs[i] = r.DailyCost
		prices[i] = r.FuelPricePerLiter
	}

	s.TotalLiters = floats.Sum(liters)
	s.TotalCost = floats.Sum(costs)
	s.AverageDailyLiters = stat.Mean(liters, nil)
	s.AveragePrice = stat.Mean(prices, nil)
	if len(records) >= TrendDays {
		s.LitersTrend = append(s.LitersTrend, liters[len(liters)-TrendDays:]...)
		s.CostTrend = append(s.CostTrend, costs[len(costs)-TrendDays:]...)
	}
	return s
}
