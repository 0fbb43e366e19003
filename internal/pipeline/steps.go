package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/exotimeline/internal/catalogue"
	"github.com/nao1215/exotimeline/internal/model"
	"github.com/nao1215/exotimeline/internal/table"
)

// ErrNoCatalogue is returned when a step needs data an earlier step should
// have produced.
var ErrNoCatalogue = errors.New("no catalogue data in run")

// Downloader fetches a catalogue document. *catalogue.Client implements it.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// RunStore persists finished runs. *database.CatalogueDB implements it.
type RunStore interface {
	SaveFetchRun(ctx context.Context, run *model.FetchRun) error
}

// DownloadStep retrieves the catalogue, from the cache when possible.
type DownloadStep struct {
	client Downloader

	// cache is optional; nil disables caching.
	cache *catalogue.Cache

	logger *slog.Logger
}

// DownloadStepOption configures a DownloadStep.
type DownloadStepOption func(*DownloadStep)

// WithCache enables the on-disk catalogue cache.
func WithCache(cache *catalogue.Cache) DownloadStepOption {
	return func(s *DownloadStep) {
		s.cache = cache
	}
}

// WithDownloadLogger sets a custom logger for the download step.
func WithDownloadLogger(logger *slog.Logger) DownloadStepOption {
	return func(s *DownloadStep) {
		s.logger = logger
	}
}

// NewDownloadStep creates a download step using client.
func NewDownloadStep(client Downloader, opts ...DownloadStepOption) *DownloadStep {
	s := &DownloadStep{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *DownloadStep) Name() string {
	return "download"
}

// Do fills run.Raw and run.Digest.
func (s *DownloadStep) Do(ctx context.Context, run *model.FetchRun) error {
	if s.cache != nil {
		data, ok, err := s.cache.Get(run.Source)
		if err != nil {
			s.logger.Warn("ignoring unreadable cache entry", "source", run.Source, "error", err)
		}
		if ok {
			s.logger.Debug("catalogue served from cache", "path", s.cache.Path(run.Source))
			run.Raw = data
			run.FromCache = true
			run.Digest = catalogue.Digest(data)
			return nil
		}
	}

	data, err := s.client.Download(ctx, run.Source)
	if err != nil {
		return err
	}
	run.Raw = data
	run.Digest = catalogue.Digest(data)

	if s.cache != nil {
		if err := s.cache.Put(run.Source, data); err != nil {
			s.logger.Warn("failed to cache catalogue", "error", err)
		}
	}
	return nil
}

// ParseStep turns the raw document into catalogue entries.
type ParseStep struct{}

// NewParseStep creates a parse step.
func NewParseStep() *ParseStep {
	return &ParseStep{}
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do fills run.Entries and releases run.Raw.
func (s *ParseStep) Do(_ context.Context, run *model.FetchRun) error {
	if run.Raw == nil {
		return ErrNoCatalogue
	}
	entries, err := catalogue.ParseBytes(run.Raw)
	if err != nil {
		return fmt.Errorf("failed to parse catalogue from %s: %w", run.Source, err)
	}
	run.Entries = entries
	run.Raw = nil
	return nil
}

// FilterStep drops incomplete and pre-1990 entries.
type FilterStep struct {
	logger *slog.Logger
}

// NewFilterStep creates a filter step.
func NewFilterStep(logger *slog.Logger) *FilterStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilterStep{logger: logger}
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter"
}

// Do fills run.Planets and run.Stats.
func (s *FilterStep) Do(_ context.Context, run *model.FetchRun) error {
	run.Planets, run.Stats = catalogue.Filter(run.Entries)
	s.logger.Info("catalogue filtered",
		"total", run.Stats.Total,
		"incomplete", run.Stats.Incomplete,
		"pre_cutoff", run.Stats.PreCutoff,
		"kept", run.Stats.Kept,
	)
	return nil
}

// WriteTableStep writes the planet table to run.OutputPath.
type WriteTableStep struct{}

// NewWriteTableStep creates a table writing step.
func NewWriteTableStep() *WriteTableStep {
	return &WriteTableStep{}
}

// Name returns the step name.
func (s *WriteTableStep) Name() string {
	return "write_table"
}

// Do writes the table, replacing any existing file.
func (s *WriteTableStep) Do(_ context.Context, run *model.FetchRun) error {
	return table.WriteFile(run.OutputPath, run.Records())
}

// RecordStep stores the run in the fetch history.
type RecordStep struct {
	store RunStore
}

// NewRecordStep creates a history recording step.
func NewRecordStep(store RunStore) *RecordStep {
	return &RecordStep{store: store}
}

// Name returns the step name.
func (s *RecordStep) Name() string {
	return "record"
}

// Do saves the run.
func (s *RecordStep) Do(ctx context.Context, run *model.FetchRun) error {
	if err := s.store.SaveFetchRun(ctx, run); err != nil {
		return fmt.Errorf("failed to record fetch run: %w", err)
	}
	return nil
}
