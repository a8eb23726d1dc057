package export

import (
	"fmt"
	"io"

	"energy-dashboard/feature/fuel"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the fuel workbook.
const (
	SheetSummary   = "Summary"
	SheetDaily     = "Daily Fuel"
	SheetPurchases = "Purchases"
	SheetBalance   = "Monthly Balance"
)

// BuildFuelWorkbook lays a fuel report out over four sheets. Callers close the file.
func BuildFuelWorkbook(r *fuel.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetDaily, SheetPurchases, SheetBalance} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	summary := [][]any{
		{"Fuel Report"},
		{"Range", r.Range.String()},
		{"Pricing Mode", string(r.Stats.PricingMode)},
		{"Active Days", r.Stats.ActiveDays},
		{"Total Fuel (L)", Round(r.Stats.TotalLiters)},
		{"Total Cost", Round(r.Stats.TotalCost)},
		{"Average Daily Fuel (L)", Round(r.Stats.AverageDailyLiters)},
		{"Average Price per Liter", Round(r.Stats.AveragePrice)},
		{"Ledger Mean Price", Round(r.LedgerMean)},
		{"Real Pricing Used", r.RealPricing},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		f.Close()
		return nil, err
	}

	daily := [][]any{{"Date", "Fuel (L)", "Price per Liter", "Cost", "Primary (L)", "Backup (L)", "Price Source"}}
	for _, rec := range r.Records {
		daily = append(daily, []any{
			date(rec.Date), Round(rec.FuelConsumedLiters), Round(rec.FuelPricePerLiter),
			Round(rec.DailyCost), Round(rec.PrimarySource), Round(rec.BackupSource), rec.PriceSource,
		})
	}
	if err := writeRows(f, SheetDaily, daily); err != nil {
		f.Close()
		return nil, err
	}

	purchases := [][]any{{"Date", "Liters", "Cost", "Price per Liter"}}
	for _, p := range r.Purchases {
		var cost any
		if p.Cost != nil {
			cost = Round(*p.Cost)
		}
		purchases = append(purchases, []any{date(p.Date), Round(p.Liters), cost, Round(p.PricePerLiter)})
	}
	if err := writeRows(f, SheetPurchases, purchases); err != nil {
		f.Close()
		return nil, err
	}

	balance := [][]any{{"Month", "Purchased (L)", "Purchase Cost", "Consumed (L)", "Consumption Cost", "Net (L)", "Utilization %"}}
	for _, b := range r.Balance {
		balance = append(balance, []any{
			month(b.Month), Round(b.PurchasedLiters), Round(b.PurchaseCost), Round(b.ConsumedLiters),
			Round(b.ConsumptionCost), Round(b.NetLiters), Round(b.UtilizationPercent),
		})
	}
	if err := writeRows(f, SheetBalance, balance); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// WriteFuelXLSX writes the fuel workbook to w.
func WriteFuelXLSX(w io.Writer, r *fuel.Report) error {
	f, err := BuildFuelWorkbook(r)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	defer f.Close()
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
