package source

import (
	"context"
	"errors"

	"energy-dashboard/core/cache"
	"energy-dashboard/core/table"

	"go.uber.org/zap"
)

// UnavailableFunc is notified whenever a location fails for a reason other than "not found".
type UnavailableFunc func(dataset Dataset, origin table.Origin)

// Loader resolves datasets to tables by trying each candidate name at each location.
type Loader struct {
	fetchers      []Fetcher
	specs         map[Dataset]Spec
	cache         *cache.Store[*table.Table]
	logger        *zap.Logger
	onUnavailable UnavailableFunc
}

// Option configures a Loader.
type Option func(*Loader)

// WithSpecs overrides the dataset candidate lists.
func WithSpecs(specs map[Dataset]Spec) Option {
	return func(l *Loader) {
		if specs != nil {
			l.specs = specs
		}
	}
}

// WithCache memoizes loaded tables.
func WithCache(c *cache.Store[*table.Table]) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithUnavailableHook registers a callback for failed locations.
func WithUnavailableHook(fn UnavailableFunc) Option {
	return func(l *Loader) {
		l.onUnavailable = fn
	}
}

// NewLoader creates a loader over the given locations, tried in order.
func NewLoader(logger *zap.Logger, fetchers []Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetchers: fetchers,
		specs:    DefaultSpecs,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	return l
}

// Load returns the table for a dataset, or nil when no location has it.
// A missing dataset is not an error; the only error is context cancellation.
func (l *Loader) Load(ctx context.Context, ds Dataset) (*table.Table, error) {
	return l.cache.GetOrBuild(ctx, cache.Key("dataset", string(ds)), func(ctx context.Context) (*table.Table, error) {
		return l.load(ctx, ds)
	})
}

func (l *Loader) load(ctx context.Context, ds Dataset) (*table.Table, error) {
	spec, ok := l.specs[ds]
	if !ok {
		l.logger.Warn("Unknown dataset", zap.String("dataset", string(ds)))
		return nil, nil
	}

	var found []*table.Table
	for _, name := range spec.Candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := l.loadCandidate(ctx, ds, name)
		if t.Empty() {
			continue
		}
		found = append(found, t)
		if !spec.Merge {
			break
		}
	}

	switch len(found) {
	case 0:
		l.logger.Debug("Dataset not available", zap.String("dataset", string(ds)))
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return table.Concat(string(ds), found...), nil
	}
}

// loadCandidate tries one file name at every location in order.
func (l *Loader) loadCandidate(ctx context.Context, ds Dataset, name string) *table.Table {
	for _, f := range l.fetchers {
		rc, err := f.Fetch(ctx, name)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				l.logger.Warn("Source unavailable",
					zap.String("dataset", string(ds)),
					zap.String("file", name),
					zap.String("origin", string(f.Origin())),
					zap.Error(err),
				)
				if l.onUnavailable != nil {
					l.onUnavailable(ds, f.Origin())
				}
			}
			continue
		}

		t, err := table.Read(name, rc)
		rc.Close()
		if err != nil {
			l.logger.Warn("Unreadable data file",
				zap.String("dataset", string(ds)),
				zap.String("file", name),
				zap.String("origin", string(f.Origin())),
				zap.Error(err),
			)
			continue
		}
		if t.Empty() {
			continue
		}

		t.Origin = f.Origin()
		l.logger.Debug("Loaded dataset",
			zap.String("dataset", string(ds)),
			zap.String("file", name),
			zap.String("origin", string(t.Origin)),
			zap.Int("rows", t.Len()),
		)
		return t
	}
	return nil
}
