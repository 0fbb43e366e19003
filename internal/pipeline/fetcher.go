package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/exotimeline/internal/catalogue"
	"github.com/nao1215/exotimeline/internal/model"
)

// Fetcher retrieves the catalogue from one source and writes the planet
// table.
type Fetcher struct {
	source string
	client Downloader
	cache  *catalogue.Cache
	store  RunStore
	logger *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchCache enables the catalogue cache.
func WithFetchCache(cache *catalogue.Cache) FetcherOption {
	return func(f *Fetcher) {
		f.cache = cache
	}
}

// WithRunStore records successful runs in store.
func WithRunStore(store RunStore) FetcherOption {
	return func(f *Fetcher) {
		f.store = store
	}
}

// WithFetchLogger sets the logger of the fetcher and its steps.
func WithFetchLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a fetcher for the catalogue at source.
func NewFetcher(source string, client Downloader, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		source: source,
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Source returns the catalogue URL.
func (f *Fetcher) Source() string {
	return f.source
}

// Pipeline builds the step sequence of a fetch. Recording in the history
// is not part of it, see Run.
func (f *Fetcher) Pipeline() *Pipeline {
	p := New(WithLogger(f.logger))
	p.AddSteps(
		NewDownloadStep(f.client, WithCache(f.cache), WithDownloadLogger(f.logger)),
		NewParseStep(),
		NewFilterStep(f.logger),
		NewWriteTableStep(),
	)
	return p
}

// Run performs a fetch and returns the finished run.
// On failure the partially filled run is returned together with the error.
//
// Once the table is written the fetch has succeeded. A run that cannot be
// recorded in the history, including one cancelled at that point, only logs
// a warning and leaves "record" out of run.Steps.
func (f *Fetcher) Run(ctx context.Context, outputPath string) (*model.FetchRun, error) {
	run := model.NewFetchRun(f.source, outputPath)
	if err := f.Pipeline().Execute(ctx, run); err != nil {
		return run, err
	}

	if f.store != nil {
		step := NewRecordStep(f.store)
		if err := step.Do(ctx, run); err != nil {
			f.logger.Warn("fetch not recorded in history",
				"source", run.Source,
				"run_id", run.ID,
				"error", err,
			)
		} else {
			run.Steps = append(run.Steps, step.Name())
		}
	}
	return run, nil
}

// Fetch retrieves the catalogue, writes the planet table to outputPath and
// returns the number of rows written.
func (f *Fetcher) Fetch(ctx context.Context, outputPath string) (int, error) {
	run, err := f.Run(ctx, outputPath)
	if err != nil {
		return 0, err
	}
	return run.Stats.Kept, nil
}
