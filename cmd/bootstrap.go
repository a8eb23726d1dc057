package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"energy-dashboard/core/cache"
	"energy-dashboard/core/config"
	"energy-dashboard/core/logger"
	"energy-dashboard/core/metrics"
	"energy-dashboard/core/period"
	"energy-dashboard/core/publisher"
	"energy-dashboard/core/source"
	"energy-dashboard/core/storage"
	"energy-dashboard/core/table"
	"energy-dashboard/feature/export"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// app carries what every command needs for one run.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	runID   string
	metrics *metrics.Recorder
	loader  *source.Loader
	// store is nil when object storage is disabled.
	store storage.Client
}

// bootstrap loads configuration and wires logging, metrics and the data sources.
func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	runID := uuid.NewString()
	logg = logger.WithRunID(logg, runID)

	a := &app{
		cfg:     cfg,
		logger:  logg,
		runID:   runID,
		metrics: metrics.New(cfg.Metrics),
	}

	fetchers := []source.Fetcher{source.LocalFetcher{Dir: cfg.Data.Dir}}
	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		a.store = store
		fetchers = append(fetchers, source.StorageFetcher{
			Client: store,
			Bucket: cfg.Storage.Bucket,
			Prefix: cfg.Storage.Prefix,
		})
	}
	if cfg.Data.RemoteBaseURL != "" {
		timeout := time.Duration(cfg.Data.RemoteTimeoutSeconds) * time.Second
		fetchers = append(fetchers, source.NewRemoteFetcher(cfg.Data.RemoteBaseURL, timeout))
	}

	a.loader = source.NewLoader(logg, fetchers,
		source.WithCache(cache.New[*table.Table](cfg.Data.CacheTTL)),
		source.WithUnavailableHook(func(ds source.Dataset, origin table.Origin) {
			a.metrics.IncUnavailable(string(ds), string(origin))
		}),
	)

	logg.Debug("Bootstrapped",
		zap.String("data_dir", cfg.Data.Dir),
		zap.Bool("storage", cfg.Storage.Enabled),
		zap.Bool("remote", cfg.Data.RemoteBaseURL != ""),
	)
	return a, nil
}

// finish flushes metrics and logs. Errors are logged, not returned.
func (a *app) finish() {
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.logger.Warn("Failed to write metrics textfile", zap.String("path", a.cfg.Metrics.Textfile), zap.Error(err))
	}
	_ = a.logger.Sync()
}

// resolveRange resolves --from/--to, or the last --days days when both are empty.
func resolveRange(from, to string, days int, loc *time.Location) (period.DateRange, error) {
	if from == "" && to == "" {
		return period.LastDays(time.Now(), days, loc), nil
	}
	if from == "" || to == "" {
		return period.DateRange{}, errors.New("--from and --to must be given together")
	}
	return period.ParseDateRange(from, to)
}

// Output formats of the stdout summary.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// printReport writes v as JSON or YAML, or calls text for the human summary.
func printReport(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case formatText, "":
		text(w)
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// artifact is one optional output file.
type artifact struct {
	path        string
	contentType string
	render      func(io.Writer) error
}

// writeArtifacts renders every artifact with a path and, when upload is set, copies
// it to the export prefix of the bucket.
func (a *app) writeArtifacts(ctx context.Context, artifacts []artifact, upload bool) error {
	var uploader *export.Uploader
	if upload {
		if a.store == nil {
			return errors.New("--upload requires storage.enabled")
		}
		uploader = &export.Uploader{Client: a.store, Bucket: a.cfg.Storage.Bucket, Prefix: a.cfg.Storage.ExportPrefix}
	}

	for _, art := range artifacts {
		if art.path == "" {
			continue
		}
		var buf bytes.Buffer
		if err := art.render(&buf); err != nil {
			if errors.Is(err, export.ErrNoData) {
				a.logger.Warn("Nothing to write", zap.String("file", art.path))
				continue
			}
			return fmt.Errorf("failed to render %s: %w", art.path, err)
		}
		if err := os.WriteFile(art.path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", art.path, err)
		}
		a.logger.Info("Wrote export", zap.String("file", art.path), zap.Int("bytes", buf.Len()))

		if uploader != nil {
			name := fmt.Sprintf("%s-%s", a.runID[:8], filepath.Base(art.path))
			object, err := uploader.Upload(ctx, name, art.contentType, buf.Bytes())
			if err != nil {
				return err
			}
			a.logger.Info("Uploaded export", zap.String("object", object))
		}
	}
	return nil
}

// newPublisher connects to the broker. Tests replace it.
var newPublisher = func(cfg publisher.Config) (publisher.Publisher, error) {
	p, err := publisher.New(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// publish sends a payload to <topic_prefix>/<topic> and disconnects.
func (a *app) publish(topic string, payload any) error {
	pub, err := newPublisher(a.cfg.MQTT)
	if err != nil {
		if errors.Is(err, publisher.ErrDisabled) {
			return errors.New("--publish requires mqtt.enabled")
		}
		return err
	}
	defer pub.Close()

	if err := pub.Publish(topic, payload); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	a.logger.Info("Published report", zap.String("topic", publisher.Topic(a.cfg.MQTT.TopicPrefix, topic)))
	return nil
}
