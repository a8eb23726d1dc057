package fuel

import (
	"math"
	"sort"
	"time"

	"energy-dashboard/core/period"
	"energy-dashboard/core/table"
	"energy-dashboard/core/utils"

	"gonum.org/v1/gonum/stat"
)

// Canonical ledger columns.
const (
	ColDate          = "date"
	ColLiters        = "liters"
	ColCost          = "cost"
	ColPricePerLiter = "price_per_liter"
)

var ledgerColumns = []string{ColDate, ColLiters, ColCost, ColPricePerLiter}

// LedgerSynonyms maps normalized purchase-ledger headers to canonical names.
var LedgerSynonyms = table.Synonyms{
	"date":             ColDate,
	"purchase_date":    ColDate,
	"date_purchased":   ColDate,
	"fill_date":        ColDate,
	"filling_date":     ColDate,
	"transaction_date": ColDate,
	"liters":           ColLiters,
	"litres":           ColLiters,
	"amount":           ColLiters,
	"amount_liters":    ColLiters,
	"amount_litres":    ColLiters,
	"amountliters":     ColLiters,
	"amount_l":         ColLiters,
	"quantity":         ColLiters,
	"quantity_liters":  ColLiters,
	"quantity_litres":  ColLiters,
	"volume":           ColLiters,
	"cost":             ColCost,
	"cost_rands":       ColCost,
	"costrands":        ColCost,
	"cost_r":           ColCost,
	"total_cost":       ColCost,
	"amount_rands":     ColCost,
	"price":            ColPricePerLiter,
	"price_per_liter":  ColPricePerLiter,
	"price_per_litre":  ColPricePerLiter,
	"price_liter":      ColPricePerLiter,
	"price_litre":      ColPricePerLiter,
	"price_per_l":      ColPricePerLiter,
	"unit_price":       ColPricePerLiter,
	"price_per_unit":   ColPricePerLiter,
	"r_per_liter":      ColPricePerLiter,
	"r_per_litre":      ColPricePerLiter,
	"cost_per_liter":   ColPricePerLiter,
	"cost_per_litre":   ColPricePerLiter,
}

// LedgerOptions controls ledger cleaning.
type LedgerOptions struct {
	// Location interprets zone-less dates and buckets them into days.
	Location *time.Location
	// MaxPrice is the exclusive upper bound of a valid price.
	MaxPrice float64
	// DefaultPrice is reported when no valid price remains.
	DefaultPrice float64
}

// DropCounts records why ledger rows were discarded.
type DropCounts struct {
	InvalidDate int `json:"invalid_date" yaml:"invalid_date"`
	NoPrice     int `json:"no_price" yaml:"no_price"`
	OutOfBand   int `json:"out_of_band" yaml:"out_of_band"`
}

// Total sums all drop reasons.
func (d DropCounts) Total() int {
	return d.InvalidDate + d.NoPrice + d.OutOfBand
}

// Ledger is a cleaned purchase ledger. Records are ordered by date; every price
// lies inside (0, MaxPrice). A Ledger is read-only once built.
type Ledger struct {
	Records      []PurchaseRecord
	Dropped      DropCounts
	DefaultPrice float64
}

// CleanLedger normalizes a raw purchase table.
//
// Headers are mapped through synonyms; rows with unparsable dates are dropped;
// a missing price is derived as cost/liters; non-finite prices and prices outside
// (0, MaxPrice) are dropped. A nil table, or one without a date column, yields an
// empty ledger.
func CleanLedger(t *table.Table, synonyms table.Synonyms, opts LedgerOptions) *Ledger {
	l := &Ledger{DefaultPrice: opts.DefaultPrice}
	if t.Empty() {
		return l
	}
	t = t.Rename(synonyms)
	if !t.Has(ColDate) {
		l.Dropped.InvalidDate = t.Len()
		return l
	}

	dateIdx := t.Index(ColDate)
	litersIdx := t.Index(ColLiters)
	costIdx := t.Index(ColCost)
	priceIdx := t.Index(ColPricePerLiter)

	for _, row := range t.Rows {
		ts, ok := utils.ParseTime(table.Cell(row, dateIdx), opts.Location)
		if !ok {
			l.Dropped.InvalidDate++
			continue
		}

		rec := PurchaseRecord{Date: period.Day(ts, opts.Location)}
		liters, hasLiters := utils.ToFloat(table.Cell(row, litersIdx))
		if hasLiters {
			rec.Liters = liters
		}
		if cost, ok := utils.ToFloat(table.Cell(row, costIdx)); ok {
			rec.Cost = &cost
		}

		price, hasPrice := utils.ToFloat(table.Cell(row, priceIdx))
		if !hasPrice && hasLiters && rec.Cost != nil {
			price = *rec.Cost / liters
			hasPrice = !math.IsNaN(price) && !math.IsInf(price, 0)
		}
		if !hasPrice {
			l.Dropped.NoPrice++
			continue
		}
		if price <= 0 || price >= opts.MaxPrice {
			l.Dropped.OutOfBand++
			continue
		}
		rec.PricePerLiter = price
		l.Records = append(l.Records, rec)
	}

	sort.SliceStable(l.Records, func(i, j int) bool { return l.Records[i].Date.Before(l.Records[j].Date) })
	return l
}

// Empty reports whether the ledger holds no valid purchase.
func (l *Ledger) Empty() bool {
	return l == nil || len(l.Records) == 0
}

// Mean returns the mean price over all records.
func (l *Ledger) Mean() (float64, bool) {
	if l.Empty() {
		return 0, false
	}
	return stat.Mean(l.prices(), nil), true
}

// MeanOrDefault returns the mean price, or the default price of an empty ledger.
func (l *Ledger) MeanOrDefault() float64 {
	if mean, ok := l.Mean(); ok {
		return mean
	}
	if l == nil {
		return 0
	}
	return l.DefaultPrice
}

// Within returns the purchases whose day falls inside rng.
func (l *Ledger) Within(rng period.DateRange) []PurchaseRecord {
	if l.Empty() {
		return nil
	}
	var out []PurchaseRecord
	for _, r := range l.Records {
		if rng.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// prices returns every record's price.
func (l *Ledger) prices() []float64 {
	out := make([]float64, len(l.Records))
	for i, r := range l.Records {
		out[i] = r.PricePerLiter
	}
	return out
}
