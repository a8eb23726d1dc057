package fuel

import (
	"testing"
	"time"

	"energy-dashboard/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger(t *testing.T) *Ledger {
	t.Helper()
	tbl := table.New("fuel.csv", []string{"date", "liters", "price_per_liter"}, [][]string{
		{"2025-01-10", "100", "20"},
		{"2025-01-20", "100", "22"},
		{"2025-02-05", "100", "24"},
	})
	l := CleanLedger(tbl, LedgerSynonyms, defaultLedgerOptions())
	require.Len(t, l.Records, 3)
	return l
}

func TestParsePricingMode(t *testing.T) {
	mode, err := ParsePricingMode("nearest_prior")
	require.NoError(t, err)
	assert.Equal(t, PricingNearestPrior, mode)

	mode, err = ParsePricingMode(" Monthly_Average ")
	require.NoError(t, err)
	assert.Equal(t, PricingMonthlyAverage, mode)

	_, err = ParsePricingMode("weighted")
	assert.ErrorContains(t, err, "unknown pricing mode")
}

func TestNearestPrior(t *testing.T) {
	s := NearestPrior(sampleLedger(t))

	tests := []struct {
		day   string
		want  float64
		found bool
	}{
		{"2025-01-09", 0, false},
		{"2025-01-10", 20, true},
		{"2025-01-19", 20, true},
		{"2025-01-20", 22, true},
		{"2025-02-04", 22, true},
		{"2025-03-30", 24, true},
	}
	for _, tt := range tests {
		p, ok := s.Price(day(t, tt.day))
		assert.Equal(t, tt.found, ok, tt.day)
		assert.Equal(t, tt.want, p, tt.day)
	}
}

func TestMonthlyAverage(t *testing.T) {
	s := MonthlyAverage(sampleLedger(t))

	p, ok := s.Price(day(t, "2025-01-02"))
	require.True(t, ok)
	assert.InDelta(t, 21.0, p, 1e-9)

	p, ok = s.Price(day(t, "2025-02-28"))
	require.True(t, ok)
	assert.Equal(t, 24.0, p)

	_, ok = s.Price(day(t, "2025-03-01"))
	assert.False(t, ok)
}

func TestNewPriceChain_Order(t *testing.T) {
	l := sampleLedger(t)
	assert.Equal(t, []string{StrategyNearestPrior, StrategyLedgerMean, StrategyDefault}, NewPriceChain(l, PricingNearestPrior, 22.5).Names())
	assert.Equal(t, []string{StrategyMonthlyAverage, StrategyLedgerMean, StrategyDefault}, NewPriceChain(l, PricingMonthlyAverage, 22.5).Names())
}

// TestAttributePrices_BeforeLedger tests that days before every purchase get the ledger mean.
func TestAttributePrices_BeforeLedger(t *testing.T) {
	l := sampleLedger(t)
	days := []time.Time{day(t, "2024-12-01"), day(t, "2024-12-02"), day(t, "2024-12-31")}

	prices := AttributePrices(NewPriceChain(l, PricingNearestPrior, 22.5), days)

	require.Len(t, prices, 3)
	for _, d := range days {
		assert.InDelta(t, 22.0, prices[d].PricePerLiter, 1e-9)
		assert.Equal(t, StrategyLedgerMean, prices[d].Source)
	}
}

func TestAttributePrices_MonthWithoutPurchases(t *testing.T) {
	l := sampleLedger(t)
	d := day(t, "2025-04-15")

	prices := AttributePrices(NewPriceChain(l, PricingMonthlyAverage, 22.5), []time.Time{d})

	assert.InDelta(t, 22.0, prices[d].PricePerLiter, 1e-9)
	assert.Equal(t, StrategyLedgerMean, prices[d].Source)
}

func TestAttributePrices_EmptyLedger(t *testing.T) {
	l := CleanLedger(nil, LedgerSynonyms, defaultLedgerOptions())
	d := day(t, "2025-01-01")

	for _, mode := range PricingModes {
		prices := AttributePrices(NewPriceChain(l, mode, 22.5), []time.Time{d})
		assert.Equal(t, DailyPrice{Date: d, PricePerLiter: 22.5, Source: StrategyDefault}, prices[d], string(mode))
	}
}

// TestAttributePrices_SwitchModeWithoutRecleaning tests that one cleaned ledger serves both modes.
func TestAttributePrices_SwitchModeWithoutRecleaning(t *testing.T) {
	l := sampleLedger(t)
	before := append([]PurchaseRecord(nil), l.Records...)
	d := day(t, "2025-01-25")

	nearest := AttributePrices(NewPriceChain(l, PricingNearestPrior, 22.5), []time.Time{d})
	monthly := AttributePrices(NewPriceChain(l, PricingMonthlyAverage, 22.5), []time.Time{d})

	assert.Equal(t, 22.0, nearest[d].PricePerLiter)
	assert.InDelta(t, 21.0, monthly[d].PricePerLiter, 1e-9)
	assert.Equal(t, before, l.Records)
}

func TestPriceChain_NoAnswer(t *testing.T) {
	_, _, ok := PriceChain{LedgerMean(nil)}.Price(day(t, "2025-01-01"))
	assert.False(t, ok)
	assert.Empty(t, AttributePrices(PriceChain{}, []time.Time{day(t, "2025-01-01")}))
}
