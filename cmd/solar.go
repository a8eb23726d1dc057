package cmd

import (
	"fmt"
	"io"
	"time"

	"energy-dashboard/core/cache"
	"energy-dashboard/feature/export"
	"energy-dashboard/feature/solar"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type solarOptions struct {
	from, to string
	days     int
	format   string
	csv      string
	chart    string
	publish  bool
	upload   bool
}

var solarOpts solarOptions

// solarCmd represents the solar command
var solarCmd = &cobra.Command{
	Use:   "solar",
	Short: "Analyze solar inverter generation",
	Long: `Aggregates inverter power samples into daily energy, hourly profiles and
headline savings. The three-inverter export is preferred over the legacy monthly files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolar(cmd, solarOpts)
	},
}

func init() {
	RootCmd.AddCommand(solarCmd)

	f := solarCmd.Flags()
	f.StringVar(&solarOpts.from, "from", "", "First day (YYYY-MM-DD)")
	f.StringVar(&solarOpts.to, "to", "", "Last day (YYYY-MM-DD)")
	f.IntVar(&solarOpts.days, "days", 30, "Days ending today when --from/--to are not set")
	f.StringVar(&solarOpts.format, "format", formatText, "Summary format: text, json or yaml")
	f.StringVar(&solarOpts.csv, "csv", "", "Write daily generation to this CSV file")
	f.StringVar(&solarOpts.chart, "chart", "", "Write the daily chart to this PNG file")
	f.BoolVar(&solarOpts.publish, "publish", false, "Publish stats to the MQTT broker")
	f.BoolVar(&solarOpts.upload, "upload", false, "Upload written files to object storage")
}

func runSolar(cmd *cobra.Command, opts solarOptions) error {
	ctx := cmd.Context()
	startTime := time.Now()

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.finish()

	loc, err := a.cfg.Fuel.Location()
	if err != nil {
		return err
	}

	svc, err := solar.NewService(a.cfg.Solar, loc, a.logger,
		solar.WithReportCache(cache.New[*solar.Report](a.cfg.Fuel.CacheTTL)),
		solar.WithMetrics(a.metrics),
	)
	if err != nil {
		return fmt.Errorf("invalid solar configuration: %w", err)
	}

	rng, err := resolveRange(opts.from, opts.to, opts.days, loc)
	if err != nil {
		return err
	}

	in, err := solar.LoadInputs(ctx, a.loader)
	if err != nil {
		return err
	}

	report, err := svc.Analyze(ctx, in, rng)
	if err != nil {
		return fmt.Errorf("solar analysis failed: %w", err)
	}

	if err := printReport(cmd.OutOrStdout(), opts.format, report, func(w io.Writer) {
		printSolarText(w, report)
	}); err != nil {
		return err
	}

	err = a.writeArtifacts(ctx, []artifact{
		{opts.csv, export.ContentTypeCSV, func(w io.Writer) error { return export.WriteSolarCSV(w, report.Daily) }},
		{opts.chart, export.ContentTypePNG, func(w io.Writer) error { return export.WriteSolarChart(w, report.Daily) }},
	}, opts.upload)
	if err != nil {
		return err
	}

	if opts.publish {
		if err := a.publish("solar/stats", report.Stats); err != nil {
			return err
		}
	}

	a.logger.Info("Solar report completed",
		zap.String("range", rng.String()),
		zap.Int("operating_days", report.Stats.OperatingDays),
		zap.Float64("total_kwh", report.Stats.TotalKWh),
		zap.Duration("execution_time", time.Since(startTime)),
	)
	return nil
}

func printSolarText(w io.Writer, r *solar.Report) {
	fmt.Fprintln(w, "\n=== Solar Generation Report ===")
	fmt.Fprintf(w, "Range: %s\n", r.Range)
	if r.Empty() {
		fmt.Fprintln(w, "No solar generation recorded in this range.")
		return
	}
	s := r.Stats
	fmt.Fprintf(w, "System: %s\n", s.SystemType)
	fmt.Fprintf(w, "Operating Days: %d\n", s.OperatingDays)
	fmt.Fprintf(w, "Total Generation: %s kWh\n", humanize.CommafWithDigits(s.TotalKWh, 1))
	fmt.Fprintf(w, "Average Daily: %s kWh\n", humanize.CommafWithDigits(s.AverageDailyKWh, 1))
	fmt.Fprintf(w, "Best / Worst Day: %s / %s kWh\n", humanize.CommafWithDigits(s.BestDayKWh, 1), humanize.CommafWithDigits(s.WorstDayKWh, 1))
	fmt.Fprintf(w, "Peak Power: %s kW\n", export.Fixed(s.PeakKW))
	fmt.Fprintf(w, "Average Capacity Factor: %s%%\n", export.Fixed(s.AverageCapacityFactor))
	fmt.Fprintf(w, "Value: %s\n", humanize.CommafWithDigits(s.TotalValue, 2))
	fmt.Fprintf(w, "Estimated Monthly Savings: %s\n", humanize.CommafWithDigits(s.EstimatedMonthlySavings, 2))
	fmt.Fprintf(w, "Carbon Offset: %s kg\n", humanize.CommafWithDigits(s.CarbonOffsetKg, 1))
}
