package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"energy-dashboard/feature/fuel"
	"energy-dashboard/feature/solar"
)

// FuelHeader is the header row of the daily fuel CSV.
var FuelHeader = []string{
	"date", "fuel_consumed_liters", "fuel_price_per_liter", "daily_cost",
	"primary_source", "backup_source", "price_source",
}

// WriteFuelCSV writes the daily fuel records.
func WriteFuelCSV(w io.Writer, records []fuel.DailyFuelRecord) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, FuelHeader)
	for _, r := range records {
		rows = append(rows, []string{
			date(r.Date),
			Fixed(r.FuelConsumedLiters),
			Fixed(r.FuelPricePerLiter),
			Fixed(r.DailyCost),
			Fixed(r.PrimarySource),
			Fixed(r.BackupSource),
			r.PriceSource,
		})
	}
	return writeAll(w, rows)
}

// WritePurchasesCSV writes cleaned ledger records. A missing cost is left blank.
func WritePurchasesCSV(w io.Writer, purchases []fuel.PurchaseRecord) error {
	rows := [][]string{{"date", "liters", "cost", "price_per_liter"}}
	for _, p := range purchases {
		cost := ""
		if p.Cost != nil {
			cost = Fixed(*p.Cost)
		}
		rows = append(rows, []string{date(p.Date), Fixed(p.Liters), cost, Fixed(p.PricePerLiter)})
	}
	return writeAll(w, rows)
}

// WriteBalanceCSV writes the monthly purchase and consumption balance.
func WriteBalanceCSV(w io.Writer, balance []fuel.MonthlyBalance) error {
	rows := [][]string{{
		"month", "purchased_liters", "purchase_cost", "consumed_liters",
		"consumption_cost", "net_liters", "utilization_percent",
	}}
	for _, b := range balance {
		rows = append(rows, []string{
			month(b.Month),
			Fixed(b.PurchasedLiters),
			Fixed(b.PurchaseCost),
			Fixed(b.ConsumedLiters),
			Fixed(b.ConsumptionCost),
			Fixed(b.NetLiters),
			Fixed(b.UtilizationPercent),
		})
	}
	return writeAll(w, rows)
}

// WriteSolarCSV writes the daily system generation.
func WriteSolarCSV(w io.Writer, daily []solar.DailyGeneration) error {
	rows := [][]string{{"date", "total_kwh", "peak_kw", "avg_kw", "inverter_count", "capacity_factor"}}
	for _, d := range daily {
		rows = append(rows, []string{
			date(d.Date),
			Fixed(d.TotalKWh),
			Fixed(d.PeakKW),
			Fixed(d.AvgKW),
			strconv.Itoa(d.InverterCount),
			Fixed(d.CapacityFactor),
		})
	}
	return writeAll(w, rows)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
