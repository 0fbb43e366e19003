package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/exotimeline/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the run as left
// by the previous steps.
//
// Design decision: Steps are an interface rather than function types so
// that a step can carry its own configuration (client, cache, logger) and
// report a Name for logging.
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation and the run to fill in.
	// A returned error stops the pipeline.
	Do(ctx context.Context, run *model.FetchRun) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern used across the packages.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	// Apply options
	for _, opt := range opts {
		opt(p)
	}

	// Set default logger if not provided
	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence and stops at the first
// failure. The failing step's error is returned unchanged and recorded in
// run.Err.
//
// Design decision: There is no continue-on-error mode. Every step needs the
// output of the one before it (no document, nothing to parse; no planets,
// no table), so a later step could only fail again or write a partial table.
//
// Design decision: context.Done() is checked before each step rather than
// during, because steps handle their own timeouts (the download has its own
// deadline). A cancelled run never starts the next step.
func (p *Pipeline) Execute(ctx context.Context, run *model.FetchRun) error {
	for _, step := range p.steps {
		// Check for cancellation before starting each step
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			run.Err = ctx.Err()
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"source", run.Source,
		)

		// A failing step ends the run; later steps depend on its output
		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", run.Source,
				"error", err,
			)
			run.Err = err
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"source", run.Source,
		)
		run.Steps = append(run.Steps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
