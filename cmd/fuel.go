package cmd

import (
	"fmt"
	"io"
	"time"

	"energy-dashboard/core/cache"
	"energy-dashboard/feature/export"
	"energy-dashboard/feature/fuel"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type fuelOptions struct {
	from, to     string
	days         int
	mode         string
	format       string
	csv          string
	purchasesCSV string
	balanceCSV   string
	xlsx         string
	pdf          string
	chart        string
	publish      bool
	upload       bool
}

var fuelOpts fuelOptions

// fuelCmd represents the fuel command
var fuelCmd = &cobra.Command{
	Use:   "fuel",
	Short: "Reconcile generator fuel consumption and attribute prices",
	Long: `Combines the primary and backup tank sensors into one daily consumption figure,
prices every active day from the purchase ledger and prints the summary.
Without --from/--to the last --days days are reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFuel(cmd, fuelOpts)
	},
}

func init() {
	RootCmd.AddCommand(fuelCmd)

	f := fuelCmd.Flags()
	f.StringVar(&fuelOpts.from, "from", "", "First day (YYYY-MM-DD)")
	f.StringVar(&fuelOpts.to, "to", "", "Last day (YYYY-MM-DD)")
	f.IntVar(&fuelOpts.days, "days", 30, "Days ending today when --from/--to are not set")
	f.StringVar(&fuelOpts.mode, "mode", "", "Pricing mode: nearest_prior or monthly_average (default from config)")
	f.StringVar(&fuelOpts.format, "format", formatText, "Summary format: text, json or yaml")
	f.StringVar(&fuelOpts.csv, "csv", "", "Write daily records to this CSV file")
	f.StringVar(&fuelOpts.purchasesCSV, "purchases-csv", "", "Write cleaned purchases to this CSV file")
	f.StringVar(&fuelOpts.balanceCSV, "balance-csv", "", "Write the monthly balance to this CSV file")
	f.StringVar(&fuelOpts.xlsx, "xlsx", "", "Write the workbook to this XLSX file")
	f.StringVar(&fuelOpts.pdf, "pdf", "", "Write the report to this PDF file")
	f.StringVar(&fuelOpts.chart, "chart", "", "Write the daily chart to this PNG file")
	f.BoolVar(&fuelOpts.publish, "publish", false, "Publish stats to the MQTT broker")
	f.BoolVar(&fuelOpts.upload, "upload", false, "Upload written files to object storage")
}

func runFuel(cmd *cobra.Command, opts fuelOptions) error {
	ctx := cmd.Context()
	startTime := time.Now()

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.finish()

	var mode fuel.PricingMode
	if opts.mode != "" {
		if mode, err = fuel.ParsePricingMode(opts.mode); err != nil {
			return err
		}
	}

	svc, err := fuel.NewService(a.cfg.Fuel, a.logger,
		fuel.WithReportCache(cache.New[*fuel.Report](a.cfg.Fuel.CacheTTL)),
		fuel.WithLedgerCache(cache.New[*fuel.Ledger](a.cfg.Fuel.CacheTTL)),
		fuel.WithMetrics(a.metrics),
	)
	if err != nil {
		return fmt.Errorf("invalid fuel configuration: %w", err)
	}

	rng, err := resolveRange(opts.from, opts.to, opts.days, svc.Location())
	if err != nil {
		return err
	}

	in, err := fuel.LoadInputs(ctx, a.loader)
	if err != nil {
		return err
	}

	report, err := svc.Analyze(ctx, in, fuel.Request{Range: rng, Mode: mode})
	if err != nil {
		return fmt.Errorf("fuel analysis failed: %w", err)
	}

	if err := printReport(cmd.OutOrStdout(), opts.format, report, func(w io.Writer) {
		printFuelText(w, report)
	}); err != nil {
		return err
	}

	err = a.writeArtifacts(ctx, []artifact{
		{opts.csv, export.ContentTypeCSV, func(w io.Writer) error { return export.WriteFuelCSV(w, report.Records) }},
		{opts.purchasesCSV, export.ContentTypeCSV, func(w io.Writer) error { return export.WritePurchasesCSV(w, report.Purchases) }},
		{opts.balanceCSV, export.ContentTypeCSV, func(w io.Writer) error { return export.WriteBalanceCSV(w, report.Balance) }},
		{opts.xlsx, export.ContentTypeXLSX, func(w io.Writer) error { return export.WriteFuelXLSX(w, report) }},
		{opts.pdf, export.ContentTypePDF, func(w io.Writer) error { return export.WriteFuelPDF(w, report) }},
		{opts.chart, export.ContentTypePNG, func(w io.Writer) error { return export.WriteFuelChart(w, report.Records) }},
	}, opts.upload)
	if err != nil {
		return err
	}

	if opts.publish {
		if err := a.publish("fuel/stats", report.Stats); err != nil {
			return err
		}
	}

	a.logger.Info("Fuel report completed",
		zap.String("range", rng.String()),
		zap.String("mode", string(report.Stats.PricingMode)),
		zap.Int("active_days", report.Stats.ActiveDays),
		zap.Float64("total_liters", report.Stats.TotalLiters),
		zap.Duration("execution_time", time.Since(startTime)),
	)
	return nil
}

func printFuelText(w io.Writer, r *fuel.Report) {
	fmt.Fprintln(w, "\n=== Generator Fuel Report ===")
	fmt.Fprintf(w, "Range: %s\n", r.Range)
	fmt.Fprintf(w, "Pricing Mode: %s\n", r.Stats.PricingMode)
	if r.Empty() {
		fmt.Fprintln(w, "No fuel consumption recorded in this range.")
		return
	}
	fmt.Fprintf(w, "Active Days: %d\n", r.Stats.ActiveDays)
	fmt.Fprintf(w, "Total Fuel: %s L\n", humanize.CommafWithDigits(r.Stats.TotalLiters, 2))
	fmt.Fprintf(w, "Total Cost: %s\n", humanize.CommafWithDigits(r.Stats.TotalCost, 2))
	fmt.Fprintf(w, "Average Daily Fuel: %s L\n", humanize.CommafWithDigits(r.Stats.AverageDailyLiters, 2))
	fmt.Fprintf(w, "Average Price: %s /L\n", export.Fixed(r.Stats.AveragePrice))
	if !r.RealPricing {
		fmt.Fprintf(w, "Note: no usable purchase prices, every day priced at the default %s /L\n", export.Fixed(r.LedgerMean))
	}
	if n := r.LedgerDropped.Total(); n > 0 {
		fmt.Fprintf(w, "Ledger Rows Dropped: %d\n", n)
	}

	if len(r.Balance) > 0 {
		fmt.Fprintln(w, "\n--- Monthly Balance ---")
		for _, b := range r.Balance {
			fmt.Fprintf(w, "%s  purchased %s L  consumed %s L  net %s L\n",
				b.Month.Format("Jan 2006"),
				humanize.CommafWithDigits(b.PurchasedLiters, 1),
				humanize.CommafWithDigits(b.ConsumedLiters, 1),
				humanize.CommafWithDigits(b.NetLiters, 1),
			)
		}
	}
}
