package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder bundles the run metrics.
type Recorder struct {
	registry *prometheus.Registry

	StageDuration     *prometheus.HistogramVec
	DroppedRows       *prometheus.CounterVec
	SourceUnavailable *prometheus.CounterVec
	ActiveDays        *prometheus.GaugeVec
	TotalLiters       prometheus.Gauge
	TotalCost         prometheus.Gauge
	TotalKWh          prometheus.Gauge
}

// New constructs a recorder with its own registry.
func New(cfg Config) *Recorder {
	ns := cfg.Namespace
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		DroppedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "dropped_rows_total",
			Help:      "Input rows dropped during cleaning, by reason",
		}, []string{"dataset", "reason"}),
		SourceUnavailable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "source_unavailable_total",
			Help:      "Data locations that failed while resolving a dataset",
		}, []string{"dataset", "origin"}),
		ActiveDays: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "active_days",
			Help:      "Days with activity in the last report",
		}, []string{"report"}),
		TotalLiters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "fuel_liters_total",
			Help:      "Fuel consumed over the report range in liters",
		}),
		TotalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "fuel_cost_total",
			Help:      "Fuel cost over the report range",
		}),
		TotalKWh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "solar_kwh_total",
			Help:      "Solar generation over the report range in kWh",
		}),
	}
	r.registry.MustRegister(
		r.StageDuration,
		r.DroppedRows,
		r.SourceUnavailable,
		r.ActiveDays,
		r.TotalLiters,
		r.TotalCost,
		r.TotalKWh,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveStage records how long a stage took since start.
func (r *Recorder) ObserveStage(stage string, start time.Time) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// AddDropped counts rows removed from a dataset.
func (r *Recorder) AddDropped(dataset, reason string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.DroppedRows.WithLabelValues(dataset, reason).Add(float64(n))
}

// IncUnavailable counts a failed data location.
func (r *Recorder) IncUnavailable(dataset, origin string) {
	if r == nil {
		return
	}
	r.SourceUnavailable.WithLabelValues(dataset, origin).Inc()
}

// SetFuel records the headline fuel figures of a report.
func (r *Recorder) SetFuel(activeDays int, liters, cost float64) {
	if r == nil {
		return
	}
	r.ActiveDays.WithLabelValues("fuel").Set(float64(activeDays))
	r.TotalLiters.Set(liters)
	r.TotalCost.Set(cost)
}

// SetSolar records the headline solar figures of a report.
func (r *Recorder) SetSolar(operatingDays int, kwh float64) {
	if r == nil {
		return
	}
	r.ActiveDays.WithLabelValues("solar").Set(float64(operatingDays))
	r.TotalKWh.Set(kwh)
}

// WriteTextfile writes the registry to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
