package cmd

import (
	"fmt"
	"io"
	"strings"

	"energy-dashboard/core/period"
	"energy-dashboard/feature/health"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var healthFormat string

type healthResult struct {
	Datasets []health.DatasetStatus `json:"datasets" yaml:"datasets"`
	Bucket   *health.BucketStatus   `json:"bucket,omitempty" yaml:"bucket,omitempty"`
}

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check which data files are available",
	Long:  `Resolves every dataset and reports where it was found, its size, missing expected columns and the time span it covers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.finish()

		loc, err := a.cfg.Fuel.Location()
		if err != nil {
			return err
		}

		statuses, err := health.Run(ctx, a.loader, loc)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		result := healthResult{Datasets: statuses}
		if a.store != nil {
			bucket, err := health.CheckBucket(ctx, a.store, a.cfg.Storage.Bucket, a.cfg.Storage.Prefix)
			if err != nil {
				a.logger.Warn("Bucket check failed", zap.Error(err))
			} else {
				result.Bucket = &bucket
			}
		}

		if err := printReport(cmd.OutOrStdout(), healthFormat, result, func(w io.Writer) {
			printHealthText(w, result)
		}); err != nil {
			return err
		}

		unhealthy := 0
		for _, s := range statuses {
			if !s.Healthy() {
				unhealthy++
			}
		}
		a.logger.Info("Health check completed", zap.Int("datasets", len(statuses)), zap.Int("unhealthy", unhealthy))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
	healthCmd.Flags().StringVar(&healthFormat, "format", formatText, "Output format: text, json or yaml")
}

func printHealthText(w io.Writer, result healthResult) {
	fmt.Fprintln(w, "\n=== Data Health ===")
	for _, s := range result.Datasets {
		if !s.Found {
			fmt.Fprintf(w, "%-20s MISSING\n", s.Dataset)
			continue
		}
		state := "OK"
		if !s.Healthy() {
			state = "INCOMPLETE"
		}
		fmt.Fprintf(w, "%-20s %-10s %s rows from %s (%s)\n", s.Dataset, state, humanize.Comma(int64(s.Rows)), s.Name, s.Origin)
		if s.First != nil && s.Last != nil {
			fmt.Fprintf(w, "%-20s covers %s to %s\n", "", s.First.Format(period.DateLayout), s.Last.Format(period.DateLayout))
		}
		if len(s.MissingColumns) > 0 {
			fmt.Fprintf(w, "%-20s missing columns: %s\n", "", strings.Join(s.MissingColumns, ", "))
		}
	}

	if b := result.Bucket; b != nil {
		fmt.Fprintf(w, "\nBucket %s: ", b.Bucket)
		if !b.Exists {
			fmt.Fprintln(w, "NOT FOUND")
			return
		}
		fmt.Fprintf(w, "%d files", len(b.Files))
		if len(b.Unknown) > 0 {
			fmt.Fprintf(w, ", unrecognized: %s", strings.Join(b.Unknown, ", "))
		}
		fmt.Fprintln(w)
	}
}
