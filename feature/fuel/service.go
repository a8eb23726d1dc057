package fuel

import (
	"context"
	"fmt"
	"time"

	"energy-dashboard/core/cache"
	"energy-dashboard/core/metrics"
	"energy-dashboard/core/period"
	"energy-dashboard/core/source"
	"energy-dashboard/core/table"

	"go.uber.org/zap"
)

// Inputs are the raw tables a fuel report is computed from. Any may be nil.
type Inputs struct {
	Generator         *table.Table
	GeneratorDetailed *table.Table
	FuelHistory       *table.Table
	Purchases         *table.Table
}

// LoadInputs resolves the fuel datasets through a source loader.
func LoadInputs(ctx context.Context, l *source.Loader) (Inputs, error) {
	var in Inputs
	targets := []struct {
		ds  source.Dataset
		dst **table.Table
	}{
		{source.DatasetGenerator, &in.Generator},
		{source.DatasetGeneratorDetailed, &in.GeneratorDetailed},
		{source.DatasetFuelHistory, &in.FuelHistory},
		{source.DatasetFuelPurchases, &in.Purchases},
	}
	for _, tgt := range targets {
		t, err := l.Load(ctx, tgt.ds)
		if err != nil {
			return Inputs{}, fmt.Errorf("loading %s: %w", tgt.ds, err)
		}
		*tgt.dst = t
	}
	return in, nil
}

// Request selects the report range and pricing mode.
type Request struct {
	Range period.DateRange
	Mode  PricingMode
}

// Report is the result of one fuel analysis. Reports may be shared through the
// cache and must not be modified.
type Report struct {
	Range      period.DateRange        `json:"range" yaml:"range"`
	Records    []DailyFuelRecord       `json:"records" yaml:"records"`
	Stats      Stats                   `json:"stats" yaml:"stats"`
	Reconciled []ReconciledConsumption `json:"-" yaml:"-"`
	Primary    Series                  `json:"-" yaml:"-"`
	Backup     Series                  `json:"-" yaml:"-"`
	// Purchases are the cleaned ledger records inside the range.
	Purchases []PurchaseRecord `json:"purchases" yaml:"purchases"`
	Balance   []MonthlyBalance `json:"monthly_balance" yaml:"monthly_balance"`
	// LedgerMean is the mean ledger price, or the default price when the ledger is empty.
	LedgerMean    float64    `json:"ledger_mean_price" yaml:"ledger_mean_price"`
	LedgerDropped DropCounts `json:"ledger_dropped" yaml:"ledger_dropped"`
	// RealPricing is false when every price came from the fixed default.
	RealPricing bool `json:"real_pricing_used" yaml:"real_pricing_used"`
}

// Empty reports whether no active day was found.
func (r *Report) Empty() bool {
	return r == nil || len(r.Records) == 0
}

// Service runs the fuel pipeline.
type Service struct {
	cfg     Config
	th      Thresholds
	mode    PricingMode
	columns table.Synonyms
	loc     *time.Location
	logger  *zap.Logger
	reports *cache.Store[*Report]
	ledgers *cache.Store[*Ledger]
	metrics *metrics.Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithReportCache memoizes whole reports.
func WithReportCache(c *cache.Store[*Report]) Option {
	return func(s *Service) { s.reports = c }
}

// WithLedgerCache memoizes cleaned ledgers, so switching pricing mode does not re-clean.
func WithLedgerCache(c *cache.Store[*Ledger]) Option {
	return func(s *Service) { s.ledgers = c }
}

// WithMetrics records stage timings and drop counts.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a fuel service. The configuration is validated.
func NewService(cfg Config, logger *zap.Logger, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := ParsePricingMode(cfg.PricingMode)
	if err != nil {
		return nil, err
	}
	columns, err := cfg.LedgerSynonyms()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		cfg:     cfg,
		th:      cfg.Thresholds(),
		mode:    mode,
		columns: columns,
		loc:     loc,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Location is the zone calendar days are bucketed in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Analyze runs the pipeline for one request. An empty mode uses the configured one.
// Data problems never produce an error; the only errors are an unknown pricing mode
// and context cancellation.
func (s *Service) Analyze(ctx context.Context, in Inputs, req Request) (*Report, error) {
	if req.Mode == "" {
		req.Mode = s.mode
	} else {
		mode, err := ParsePricingMode(string(req.Mode))
		if err != nil {
			return nil, err
		}
		req.Mode = mode
	}
	key := cache.Key("fuel",
		in.Generator.Fingerprint(),
		in.GeneratorDetailed.Fingerprint(),
		in.FuelHistory.Fingerprint(),
		in.Purchases.Fingerprint(),
		req.Range.String(),
		string(req.Mode),
	)
	report, err := s.reports.GetOrBuild(ctx, key, func(ctx context.Context) (*Report, error) {
		return s.analyze(ctx, in, req)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.SetFuel(report.Stats.ActiveDays, report.Stats.TotalLiters, report.Stats.TotalCost)
	return report, nil
}

func (s *Service) analyze(ctx context.Context, in Inputs, req Request) (*Report, error) {
	start := time.Now()
	detailed := s.readings("generator_detailed", in.GeneratorDetailed)
	generator := s.readings("generator", in.Generator)
	history := s.readings("fuel_history", in.FuelHistory)
	s.metrics.ObserveStage("load", start)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	primary := ExtractPrimary(detailed, generator, s.cfg.PrimaryEntity, req.Range, s.loc, s.th)
	backup := ExtractBackup(history, s.cfg.BackupEntity, req.Range, s.loc, s.th)
	s.metrics.ObserveStage("extract", start)

	start = time.Now()
	reconciled := Reconcile(primary, backup, s.th.Meaningful)
	s.metrics.ObserveStage("reconcile", start)

	start = time.Now()
	ledger, err := s.Ledger(ctx, in.Purchases)
	if err != nil {
		return nil, err
	}
	days := make([]time.Time, len(reconciled))
	for i, rc := range reconciled {
		days[i] = rc.Date
	}
	prices := AttributePrices(NewPriceChain(ledger, req.Mode, s.cfg.DefaultPrice), days)
	s.metrics.ObserveStage("price", start)

	start = time.Now()
	records := Compose(reconciled, prices, ledger.MeanOrDefault())
	stats := Summarize(records, req.Mode)
	purchases := ledger.Within(req.Range)
	report := &Report{
		Range:         req.Range,
		Records:       records,
		Stats:         stats,
		Reconciled:    reconciled,
		Primary:       primary,
		Backup:        backup,
		Purchases:     purchases,
		Balance:       Balance(purchases, records),
		LedgerMean:    ledger.MeanOrDefault(),
		LedgerDropped: ledger.Dropped,
		RealPricing:   !ledger.Empty(),
	}
	s.metrics.ObserveStage("compose", start)

	s.logger.Info("Fuel analysis complete",
		zap.String("range", req.Range.String()),
		zap.String("pricing_mode", string(req.Mode)),
		zap.Int("primary_days", len(primary)),
		zap.Int("backup_days", len(backup)),
		zap.Int("active_days", stats.ActiveDays),
		zap.Float64("total_liters", stats.TotalLiters),
		zap.Float64("total_cost", stats.TotalCost),
	)
	if report.Empty() {
		s.logger.Warn("No fuel consumption in range", zap.String("range", req.Range.String()))
	}
	return report, nil
}

// Ledger cleans a purchase table, reusing an earlier result for identical content.
func (s *Service) Ledger(ctx context.Context, t *table.Table) (*Ledger, error) {
	key := cache.Key("ledger", t.Fingerprint(), s.cfg.LedgerColumns)
	return s.ledgers.GetOrBuild(ctx, key, func(ctx context.Context) (*Ledger, error) {
		l := CleanLedger(t, s.columns, LedgerOptions{
			Location:     s.loc,
			MaxPrice:     s.cfg.MaxPrice,
			DefaultPrice: s.cfg.DefaultPrice,
		})
		s.metrics.AddDropped("fuel_purchases", "invalid_date", l.Dropped.InvalidDate)
		s.metrics.AddDropped("fuel_purchases", "no_price", l.Dropped.NoPrice)
		s.metrics.AddDropped("fuel_purchases", "out_of_band", l.Dropped.OutOfBand)
		if l.Dropped.Total() > 0 {
			s.logger.Debug("Dropped ledger rows",
				zap.Int("invalid_date", l.Dropped.InvalidDate),
				zap.Int("no_price", l.Dropped.NoPrice),
				zap.Int("out_of_band", l.Dropped.OutOfBand),
			)
		}
		if l.Empty() {
			s.logger.Warn("No usable fuel purchases, using default price", zap.Float64("price", s.cfg.DefaultPrice))
		}
		return l, nil
	})
}

func (s *Service) readings(dataset string, t *table.Table) []SensorReading {
	readings, dropped := ParseReadings(t, s.loc)
	s.metrics.AddDropped(dataset, "invalid_timestamp", dropped)
	return readings
}
