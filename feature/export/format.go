package export

import (
	"time"

	"energy-dashboard/core/period"

	"github.com/shopspring/decimal"
)

// Places is the number of decimals written for liters, prices and money.
const Places = 2

// Fixed formats v with Places decimals.
func Fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(Places)
}

// Round rounds v to Places decimals.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(Places).InexactFloat64()
}

func date(t time.Time) string {
	return t.Format(period.DateLayout)
}

func month(t time.Time) string {
	return t.Format(period.MonthLayout)
}
