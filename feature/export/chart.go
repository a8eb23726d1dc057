package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"energy-dashboard/feature/fuel"
	"energy-dashboard/feature/solar"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to chart")

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 5 * vg.Inch
)

var (
	fuelColor  = color.RGBA{R: 214, G: 96, B: 77, A: 255}
	costColor  = color.RGBA{R: 52, G: 101, B: 164, A: 255}
	solarColor = color.RGBA{R: 242, G: 176, B: 53, A: 255}
)

// WriteFuelChart draws daily liters as bars with the daily cost as a line, encoded as PNG.
func WriteFuelChart(w io.Writer, records []fuel.DailyFuelRecord) error {
	if len(records) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Daily Generator Fuel"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Liters / Cost"
	p.Add(plotter.NewGrid())

	liters := make(plotter.Values, len(records))
	cost := make(plotter.XYs, len(records))
	labels := make([]string, len(records))
	for i, r := range records {
		liters[i] = r.FuelConsumedLiters
		cost[i].X = float64(i)
		cost[i].Y = r.DailyCost
		labels[i] = r.Date.Format("01-02")
	}

	bars, err := plotter.NewBarChart(liters, vg.Points(8))
	if err != nil {
		return fmt.Errorf("building bars: %w", err)
	}
	bars.Color = fuelColor
	bars.LineStyle.Width = vg.Length(0)

	line, err := plotter.NewLine(cost)
	if err != nil {
		return fmt.Errorf("building cost line: %w", err)
	}
	line.Color = costColor
	line.Width = vg.Points(1.5)

	p.Add(bars, line)
	p.Legend.Add("Liters", bars)
	p.Legend.Add("Cost", line)
	p.Legend.Top = true
	p.NominalX(labels...)

	return render(w, p)
}

// WriteSolarChart draws daily system generation in kWh, encoded as PNG.
func WriteSolarChart(w io.Writer, daily []solar.DailyGeneration) error {
	if len(daily) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Daily Solar Generation"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "kWh"
	p.Add(plotter.NewGrid())

	values := make(plotter.Values, len(daily))
	labels := make([]string, len(daily))
	for i, d := range daily {
		values[i] = d.TotalKWh
		labels[i] = d.Date.Format("01-02")
	}

	bars, err := plotter.NewBarChart(values, vg.Points(8))
	if err != nil {
		return fmt.Errorf("building bars: %w", err)
	}
	bars.Color = solarColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	return render(w, p)
}

func render(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
