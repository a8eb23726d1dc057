package solar

import (
	"context"
	"fmt"
	"time"

	"energy-dashboard/core/cache"
	"energy-dashboard/core/metrics"
	"energy-dashboard/core/period"
	"energy-dashboard/core/source"
	"energy-dashboard/core/table"
	"energy-dashboard/feature/fuel"

	"go.uber.org/zap"
)

// Inputs holds the inverter table and whether it came from the current system's export.
type Inputs struct {
	Table    *table.Table
	Enhanced bool
}

// LoadInputs prefers the new inverter export and falls back to the legacy monthly files.
func LoadInputs(ctx context.Context, l *source.Loader) (Inputs, error) {
	t, err := l.Load(ctx, source.DatasetSolar)
	if err != nil {
		return Inputs{}, fmt.Errorf("loading %s: %w", source.DatasetSolar, err)
	}
	if !t.Empty() {
		return Inputs{Table: t, Enhanced: true}, nil
	}

	t, err = l.Load(ctx, source.DatasetSolarLegacy)
	if err != nil {
		return Inputs{}, fmt.Errorf("loading %s: %w", source.DatasetSolarLegacy, err)
	}
	return Inputs{Table: t}, nil
}

// Service runs solar analyses.
type Service struct {
	cfg     Config
	loc     *time.Location
	logger  *zap.Logger
	reports *cache.Store[*Report]
	metrics *metrics.Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithReportCache memoizes reports.
func WithReportCache(c *cache.Store[*Report]) Option {
	return func(s *Service) { s.reports = c }
}

// WithMetrics records stage timings and drop counts.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a solar service bucketing days in loc.
func NewService(cfg Config, loc *time.Location, logger *zap.Logger, opts ...Option) (*Service, error) {
	if cfg.SamplesPerHour <= 0 {
		return nil, fmt.Errorf("solar samples_per_hour must be positive, got %g", cfg.SamplesPerHour)
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{cfg: cfg, loc: loc, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Analyze computes the solar report for rng. The only error is context cancellation.
func (s *Service) Analyze(ctx context.Context, in Inputs, rng period.DateRange) (*Report, error) {
	key := cache.Key("solar", in.Table.Fingerprint(), fmt.Sprint(in.Enhanced), rng.String())
	report, err := s.reports.GetOrBuild(ctx, key, func(ctx context.Context) (*Report, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		readings, dropped := fuel.ParseReadings(in.Table, s.loc)
		s.metrics.AddDropped("solar", "invalid_timestamp", dropped)
		s.metrics.ObserveStage("solar_load", start)

		start = time.Now()
		report := Analyze(readings, rng, s.loc, s.cfg, in.Enhanced)
		s.metrics.ObserveStage("solar_aggregate", start)

		s.logger.Info("Solar analysis complete",
			zap.String("range", rng.String()),
			zap.String("system_type", report.Stats.SystemType),
			zap.Int("operating_days", report.Stats.OperatingDays),
			zap.Float64("total_kwh", report.Stats.TotalKWh),
		)
		if report.Empty() {
			s.logger.Warn("No solar generation in range", zap.String("range", rng.String()))
		}
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.SetSolar(report.Stats.OperatingDays, report.Stats.TotalKWh)
	return report, nil
}
