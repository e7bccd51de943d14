package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"spiritlog/internal/bgg"
	"spiritlog/internal/catalog"
	"spiritlog/internal/failure"
	"spiritlog/internal/logging"
	"spiritlog/internal/output"
	"spiritlog/internal/playparse"
	"spiritlog/internal/record"
	"spiritlog/internal/synthetic"
)

// Options describes one pipeline run.
type Options struct {
	Fetch           bgg.FetchOptions
	SpiritsPath     string
	AdversariesPath string
	OutputPath      string
	Synthetic       synthetic.Options
}

// Result summarizes a completed run.
type Result struct {
	RunID      string
	Fetched    int
	Parsed     int
	Skipped    int
	Synthetic  int
	OutputPath string
	Plays      []record.Play
	Duration   time.Duration
}

// Tracker wires the fetcher, parser, generator and writer together.
type Tracker struct {
	source bgg.PlaySource
	logger *slog.Logger
}

// New builds a tracker reading plays from source.
func New(source bgg.PlaySource, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Tracker{
		source: source,
		logger: logger,
	}
}

// Collect fetches and parses plays without generating synthetic records or
// writing anything.
func (t *Tracker) Collect(ctx context.Context, opts Options) ([]bgg.RawPlay, []record.Play, catalog.Set, error) {
	logger := logging.WithContext(ctx, logging.NewComponentLogger(t.logger, "tracker"))

	catalogs, err := catalog.Load(opts.SpiritsPath, opts.AdversariesPath)
	if err != nil {
		return nil, nil, catalog.Set{}, err
	}
	logger.Debug("loaded catalogs", logging.String("catalogs", catalogs.String()))

	raws, err := t.source.FetchPlays(ctx, opts.Fetch)
	if err != nil {
		return nil, nil, catalog.Set{}, err
	}
	logger.Info("fetched plays", logging.Int("count", len(raws)))

	plays, err := playparse.New(catalogs, logging.WithContext(ctx, t.logger)).ParseAll(raws)
	if err != nil {
		return nil, nil, catalog.Set{}, err
	}
	return raws, plays, catalogs, nil
}

// Run performs one full sync: fetch, parse, augment with synthetic plays and
// write the output document. Nothing is written when any step fails.
func (t *Tracker) Run(ctx context.Context, opts Options) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(t.logger, "tracker"))

	raws, plays, catalogs, err := t.Collect(ctx, opts)
	if err != nil {
		logger.Error("run failed", logging.String("kind", failure.Kind(err)), logging.Error(err))
		return Result{RunID: runID}, err
	}

	augmented := synthetic.Augment(plays, catalogs.Spirits, opts.Synthetic)
	if err := output.Write(opts.OutputPath, augmented); err != nil {
		logger.Error("run failed", logging.String("kind", failure.Kind(err)), logging.Error(err))
		return Result{RunID: runID}, err
	}

	result := Result{
		RunID:      runID,
		Fetched:    len(raws),
		Parsed:     len(plays),
		Skipped:    len(raws) - len(plays),
		Synthetic:  len(augmented) - len(plays),
		OutputPath: opts.OutputPath,
		Plays:      augmented,
		Duration:   time.Since(start),
	}
	logger.Info("wrote plays",
		logging.String("path", result.OutputPath),
		logging.Int("parsed", result.Parsed),
		logging.Int("skipped", result.Skipped),
		logging.Int("synthetic", result.Synthetic),
		logging.Duration("duration", result.Duration))
	return result, nil
}
