package fuel

import (
	"time"

	"energy-dashboard/core/period"

	"github.com/samber/lo"
)

// MonthlyBalance compares fuel bought with fuel burned in one month.
type MonthlyBalance struct {
	Month           time.Time `json:"month" yaml:"month"`
	PurchasedLiters float64   `json:"purchased_liters" yaml:"purchased_liters"`
	PurchaseCost    float64   `json:"purchase_cost" yaml:"purchase_cost"`
	ConsumedLiters  float64   `json:"consumed_liters" yaml:"consumed_liters"`
	ConsumptionCost float64   `json:"consumption_cost" yaml:"consumption_cost"`
	// NetLiters is purchased minus consumed. Negative means the tank ran down.
	NetLiters float64 `json:"net_liters" yaml:"net_liters"`
	// UtilizationPercent is consumed over purchased, 0 in months without purchases.
	UtilizationPercent float64 `json:"utilization_percent" yaml:"utilization_percent"`
}

// Balance outer-joins monthly purchases with monthly consumption, ordered by month.
// A purchase without a recorded cost contributes liters times its price.
func Balance(purchases []PurchaseRecord, records []DailyFuelRecord) []MonthlyBalance {
	months := make(map[time.Time]*MonthlyBalance)
	get := func(day time.Time) *MonthlyBalance {
		m := period.Month(day)
		b, ok := months[m]
		if !ok {
			b = &MonthlyBalance{Month: m}
			months[m] = b
		}
		return b
	}

	for _, p := range purchases {
		b := get(p.Date)
		b.PurchasedLiters += p.Liters
		b.PurchaseCost += p.Amount()
	}
	for _, r := range records {
		b := get(r.Date)
		b.ConsumedLiters += r.FuelConsumedLiters
		b.ConsumptionCost += r.DailyCost
	}

	keys := lo.Keys(months)
	sortDays(keys)
	out := make([]MonthlyBalance, 0, len(keys))
	for _, m := range keys {
		b := months[m]
		b.NetLiters = b.PurchasedLiters - b.ConsumedLiters
		if b.PurchasedLiters > 0 {
			b.UtilizationPercent = b.ConsumedLiters / b.PurchasedLiters * 100
		}
		out = append(out, *b)
	}
	return out
}
