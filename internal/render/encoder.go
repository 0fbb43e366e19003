package render

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultJobs is the encoding concurrency when none is configured.
const DefaultJobs = 4

// FramePainter encodes a single frame.
type FramePainter interface {
	Paint(w io.Writer, f Frame) error
	Extension() string
}

// FrameFileName returns the file name of the frame at index.
func FrameFileName(index int, ext string) string {
	return fmt.Sprintf("frame_%05d.%s", index, ext)
}

// BatchEncoder writes frames to disk concurrently.
//
// Frames are produced by the caller in order and handed to a bounded
// errgroup; when all workers are busy, the producer blocks. The first
// failure cancels the remaining work.
type BatchEncoder struct {
	painter   FramePainter
	outputDir string
	jobs      int
	logger    *slog.Logger
}

// EncoderOption configures a BatchEncoder.
type EncoderOption func(*BatchEncoder)

// WithJobs sets the maximum number of frames encoded at once.
func WithJobs(n int) EncoderOption {
	return func(e *BatchEncoder) {
		if n > 0 {
			e.jobs = n
		}
	}
}

// WithEncoderLogger sets a custom logger.
func WithEncoderLogger(logger *slog.Logger) EncoderOption {
	return func(e *BatchEncoder) {
		e.logger = logger
	}
}

// NewBatchEncoder creates an encoder writing into outputDir.
func NewBatchEncoder(painter FramePainter, outputDir string, opts ...EncoderOption) *BatchEncoder {
	e := &BatchEncoder{
		painter:   painter,
		outputDir: outputDir,
		jobs:      DefaultJobs,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Encode writes every frame of the slice.
func (e *BatchEncoder) Encode(ctx context.Context, frames []Frame) (int, error) {
	return e.EncodeSeq(ctx, slices.Values(frames))
}

// EncodeSeq pulls frames from seq and writes them as they arrive. It returns
// the number of frames written.
func (e *BatchEncoder) EncodeSeq(ctx context.Context, seq iter.Seq[Frame]) (int, error) {
	if err := os.MkdirAll(e.outputDir, 0o750); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.logger.Info("encoding frames",
		"output_dir", e.outputDir,
		"format", e.painter.Extension(),
		"jobs", e.jobs,
	)
	start := time.Now()

	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)

	for frame := range seq {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := e.writeFrame(frame); err != nil {
				return err
			}
			written.Add(1)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		// Wait only reports worker failures; a cancelled parent context can
		// stop the producer loop without any worker noticing.
		err = ctx.Err()
	}

	e.logger.Info("encoding complete",
		"frames", written.Load(),
		"elapsed", time.Since(start),
	)

	return int(written.Load()), err
}

func (e *BatchEncoder) writeFrame(f Frame) (err error) {
	path := filepath.Join(e.outputDir, FrameFileName(f.Index, e.painter.Extension()))

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close frame file: %w", cerr)
		}
	}()

	if err := e.painter.Paint(file, f); err != nil {
		return fmt.Errorf("failed to paint %s: %w", path, err)
	}

	e.logger.Debug("frame written", "path", path, "year", f.Year)
	return nil
}
