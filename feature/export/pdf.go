package export

import (
	"fmt"
	"io"

	"energy-dashboard/feature/fuel"

	"github.com/jung-kurt/gofpdf"
)

// WriteFuelPDF writes a one-document fuel summary with the daily table.
func WriteFuelPDF(w io.Writer, r *fuel.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Generator Fuel Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Range: %s", r.Range.String()),
		fmt.Sprintf("Pricing mode: %s", r.Stats.PricingMode),
		fmt.Sprintf("Active days: %d", r.Stats.ActiveDays),
		fmt.Sprintf("Total fuel (L): %s", Fixed(r.Stats.TotalLiters)),
		fmt.Sprintf("Total cost: %s", Fixed(r.Stats.TotalCost)),
		fmt.Sprintf("Average daily fuel (L): %s", Fixed(r.Stats.AverageDailyLiters)),
		fmt.Sprintf("Average price per liter: %s", Fixed(r.Stats.AveragePrice)),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if r.Empty() {
		pdf.Cell(0, 6, "No fuel consumption recorded in this range.")
		pdf.Ln(5)
		return pdf.Output(w)
	}

	widths := []float64{30, 28, 28, 30, 26, 26}
	header := []string{"Date", "Fuel (L)", "Price/L", "Cost", "Primary", "Backup"}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, rec := range r.Records {
		pdf.CellFormat(widths[0], 6, date(rec.Date), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, Fixed(rec.FuelConsumedLiters), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, Fixed(rec.FuelPricePerLiter), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, Fixed(rec.DailyCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, Fixed(rec.PrimarySource), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, Fixed(rec.BackupSource), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
