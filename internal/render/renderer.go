package render

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/nao1215/exotimeline/internal/animation"
	"github.com/nao1215/exotimeline/internal/config"
	"github.com/nao1215/exotimeline/internal/model"
	"github.com/nao1215/exotimeline/internal/table"
)

// ErrNoPlanets is returned when there is nothing to animate.
var ErrNoPlanets = errors.New("no planets to render")

// Renderer drives the animation model and writes the frames.
type Renderer struct {
	cfg     *config.AnimationConfig
	painter FramePainter
	random  animation.RandomSource
	logger  *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithPainter replaces the gonum/plot painter.
func WithPainter(p FramePainter) Option {
	return func(r *Renderer) {
		if p != nil {
			r.painter = p
		}
	}
}

// WithRandomSource replaces the generator seeded from the configuration.
func WithRandomSource(src animation.RandomSource) Option {
	return func(r *Renderer) {
		if src != nil {
			r.random = src
		}
	}
}

// NewRenderer creates a Renderer for cfg.
func NewRenderer(cfg *config.AnimationConfig, opts ...Option) *Renderer {
	seed := uint64(cfg.Seed) //nolint:gosec // negative seeds wrap
	r := &Renderer{
		cfg:     cfg,
		painter: NewPainter(cfg),
		random:  rand.New(rand.NewPCG(seed, seed)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// RenderFile reads the planet table at the configured input path and renders
// it. It returns the number of frames written.
func (r *Renderer) RenderFile(ctx context.Context) (int, error) {
	records, err := table.ReadFile(r.cfg.InputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read planet table: %w", err)
	}
	return r.Render(ctx, records)
}

// Render animates records and returns the number of frames written.
func (r *Renderer) Render(ctx context.Context, records []model.PlanetRecord) (int, error) {
	if err := r.cfg.Validate(); err != nil {
		return 0, fmt.Errorf("invalid render configuration: %w", err)
	}
	if len(records) == 0 {
		return 0, ErrNoPlanets
	}

	markers := r.Markers(records)
	years, err := r.FrameYears(records, markers)
	if err != nil {
		return 0, err
	}
	timeline, err := animation.NewTimeline(years,
		animation.WithExtend(r.cfg.Extend),
		animation.WithInverted(r.cfg.Inverted),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to build timeline: %w", err)
	}

	r.logger.Info("rendering animation",
		"planets", len(markers),
		"frames", len(years),
		"first_year", years[0],
		"last_year", years[len(years)-1],
	)

	enc := NewBatchEncoder(r.painter, r.cfg.OutputDir,
		WithJobs(r.cfg.Jobs),
		WithEncoderLogger(r.logger),
	)
	n, err := enc.EncodeSeq(ctx, Frames(markers, timeline))
	if err != nil {
		return n, fmt.Errorf("failed to encode frames: %w", err)
	}
	return n, nil
}

// Markers builds one marker per record. The discovery jitter is drawn from
// the renderer's generator in record order.
func (r *Renderer) Markers(records []model.PlanetRecord) []*animation.Marker {
	markers := make([]*animation.Marker, len(records))
	for i, rec := range records {
		markers[i] = animation.NewMarker(rec.Mass, rec.SemimajorAxis, rec.DiscoveryYear,
			animation.WithSmoothDiscovery(r.cfg.SmoothDiscovery),
			animation.WithRandomSource(r.random),
			animation.WithFadeMarker(r.cfg.FadeMarkerFrames),
			animation.WithFadeOutline(r.cfg.FadeOutlineFrames),
		)
	}
	return markers
}

// FrameYears returns the year of every frame. The animation starts at the
// first discovery year of records and ends at the last discovery year of
// records or markers, whichever is later, so that a marker jittered past its
// catalogue year still appears.
func (r *Renderer) FrameYears(records []model.PlanetRecord, markers []*animation.Marker) ([]float64, error) {
	if len(records) == 0 {
		return nil, ErrNoPlanets
	}
	discovered := make([]float64, len(records))
	for i, rec := range records {
		discovered[i] = rec.DiscoveryYear
	}
	last := floats.Max(discovered)
	for _, m := range markers {
		last = max(last, m.DiscoveryYear)
	}

	years, err := animation.FrameYears(floats.Min(discovered), last,
		r.cfg.FramesPerYear, r.cfg.HoldFrames)
	if err != nil {
		return nil, fmt.Errorf("failed to compute frame years: %w", err)
	}
	return years, nil
}

// Frames records the animation one frame at a time.
//
// Markers count the frames they are drawn in, so the sequence must be
// consumed in order and only once.
func Frames(markers []*animation.Marker, timeline *animation.Timeline) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		main, axis := NewRecorder(), NewRecorder()
		for i, year := range timeline.Years() {
			main.Reset()
			axis.Reset()

			for _, m := range markers {
				m.RenderAt(main, year)
			}
			timeline.RenderYearAxisAt(axis, year)

			frame := Frame{
				Index:    i,
				Year:     year,
				Main:     main.Panel(),
				Timeline: axis.Panel(),
			}
			if !yield(frame) {
				return
			}
		}
	}
}
