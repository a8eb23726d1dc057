package fuel

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"energy-dashboard/core/period"

	"gonum.org/v1/gonum/stat"
)

// PricingMode selects how a day's price is chosen from the ledger.
type PricingMode string

const (
	// PricingNearestPrior uses the most recent purchase on or before the day.
	PricingNearestPrior PricingMode = "nearest_prior"
	// PricingMonthlyAverage uses the mean price of purchases in the day's month.
	PricingMonthlyAverage PricingMode = "monthly_average"
)

// PricingModes lists the accepted modes.
var PricingModes = []PricingMode{PricingNearestPrior, PricingMonthlyAverage}

// ParsePricingMode validates a mode name. Matching ignores case and surrounding space.
func ParsePricingMode(s string) (PricingMode, error) {
	mode := PricingMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range PricingModes {
		if mode == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown pricing mode %q (want %s or %s)", s, PricingNearestPrior, PricingMonthlyAverage)
}

// Strategy names reported in DailyPrice.Source.
const (
	StrategyNearestPrior   = "nearest_prior"
	StrategyMonthlyAverage = "monthly_average"
	StrategyLedgerMean     = "ledger_mean"
	StrategyDefault        = "default"
)

// PriceStrategy yields a price for a day, or false to let the next strategy try.
type PriceStrategy struct {
	Name  string
	Price func(day time.Time) (float64, bool)
}

// PriceChain is an ordered list of strategies; the first that answers wins.
type PriceChain []PriceStrategy

// Price returns the first answer in the chain and the name of the strategy that gave it.
func (c PriceChain) Price(day time.Time) (float64, string, bool) {
	for _, s := range c {
		if p, ok := s.Price(day); ok {
			return p, s.Name, true
		}
	}
	return 0, "", false
}

// Names lists the strategies in order.
func (c PriceChain) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return names
}

// NewPriceChain builds the chain for a mode: the mode's strategy, then the ledger
// mean, then the fixed default. The ledger is only read.
func NewPriceChain(l *Ledger, mode PricingMode, defaultPrice float64) PriceChain {
	first := NearestPrior(l)
	if mode == PricingMonthlyAverage {
		first = MonthlyAverage(l)
	}
	return PriceChain{first, LedgerMean(l), Fixed(defaultPrice)}
}

// NearestPrior prices a day with the last purchase dated on or before it.
func NearestPrior(l *Ledger) PriceStrategy {
	var records []PurchaseRecord
	if l != nil {
		records = l.Records
	}
	return PriceStrategy{
		Name: StrategyNearestPrior,
		Price: func(day time.Time) (float64, bool) {
			// first purchase strictly after day
			i := sort.Search(len(records), func(i int) bool { return records[i].Date.After(day) })
			if i == 0 {
				return 0, false
			}
			return records[i-1].PricePerLiter, true
		},
	}
}

// MonthlyAverage prices a day with the mean of its month's purchases.
func MonthlyAverage(l *Ledger) PriceStrategy {
	byMonth := make(map[time.Time][]float64)
	if l != nil {
		for _, r := range l.Records {
			m := period.Month(r.Date)
			byMonth[m] = append(byMonth[m], r.PricePerLiter)
		}
	}
	means := make(map[time.Time]float64, len(byMonth))
	for m, prices := range byMonth {
		means[m] = stat.Mean(prices, nil)
	}
	return PriceStrategy{
		Name: StrategyMonthlyAverage,
		Price: func(day time.Time) (float64, bool) {
			p, ok := means[period.Month(day)]
			return p, ok
		},
	}
}

// LedgerMean prices every day with the ledger's overall mean.
func LedgerMean(l *Ledger) PriceStrategy {
	mean, ok := l.Mean()
	return PriceStrategy{
		Name: StrategyLedgerMean,
		Price: func(time.Time) (float64, bool) {
			return mean, ok
		},
	}
}

// Fixed prices every day with p.
func Fixed(p float64) PriceStrategy {
	return PriceStrategy{
		Name: StrategyDefault,
		Price: func(time.Time) (float64, bool) {
			return p, true
		},
	}
}

// AttributePrices prices each day through the chain. Days no strategy answers are absent.
func AttributePrices(chain PriceChain, days []time.Time) map[time.Time]DailyPrice {
	out := make(map[time.Time]DailyPrice, len(days))
	for _, d := range days {
		if p, name, ok := chain.Price(d); ok {
			out[d] = DailyPrice{Date: d, PricePerLiter: p, Source: name}
		}
	}
	return out
}
