package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/exotimeline/internal/animation"
	"github.com/nao1215/exotimeline/internal/config"
	"github.com/nao1215/exotimeline/internal/render"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the discovery animation from the planet table",
		Long: `Render reads the planet table written by 'fetch' and draws one image per
frame: a log-log plot of mass against semi-major axis in which planets fade in
as their discovery year is reached, and a year timeline below it.

Frames are written as frame_00000.png, frame_00001.png, ... and can be joined
into a video with any encoder, for example:

  ffmpeg -framerate 24 -i frames/frame_%05d.png -pix_fmt yuv420p exoplanets.mp4

Examples:
  # Render exoplanets.txt into ./frames
  exotimeline render

  # Faster animation with a dark timeline
  exotimeline render --frames-per-year 2 --inverted

  # Vector frames, no discovery jitter
  exotimeline render --format svg --smooth-discovery=false`,
		Args: cobra.NoArgs,
		RunE: runRenderCmd,
	}

	cmd.Flags().StringP("input", "i", config.DefaultOutputPath,
		"Planet table to read")
	cmd.Flags().StringP("output", "o", config.DefaultFrameDir,
		"Directory receiving the frames")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Frame format: png or svg")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .exotimeline in current or home directory)")

	cmd.Flags().Int64("seed", config.DefaultSeed,
		"Seed of the discovery year jitter")
	cmd.Flags().Int("frames-per-year", config.DefaultFramesPerYear,
		"Frames per catalogue year")
	cmd.Flags().Int("hold-frames", config.DefaultHoldFrames,
		"Extra frames showing the final year")
	cmd.Flags().Int("fade-marker", animation.DefaultFadeMarkerFrames,
		"Frames for a planet marker to fade in, 0 disables the fade")
	cmd.Flags().Int("fade-outline", animation.DefaultFadeOutlineFrames,
		"Frames for the discovery ring to fade out, 0 disables the ring")
	cmd.Flags().Bool("smooth-discovery", true,
		"Spread discoveries randomly over their discovery year")
	cmd.Flags().Float64("extend", animation.DefaultExtend,
		"Years the timeline trails off before the first year")
	cmd.Flags().Bool("inverted", false,
		"White timeline on a black background")

	cmd.Flags().IntP("jobs", "j", config.DefaultJobs,
		"Frames encoded concurrently")
	cmd.Flags().Float64("width", config.DefaultWidth,
		"Frame width in inches")
	cmd.Flags().Float64("height", config.DefaultHeight,
		"Frame height in inches")
	cmd.Flags().Float64Slice("mass-range", []float64{config.DefaultMassMin, config.DefaultMassMax},
		"Mass axis limits in Jupiter masses: min,max")
	cmd.Flags().Float64Slice("axis-range", []float64{config.DefaultAxisMin, config.DefaultAxisMax},
		"Semi-major axis limits in au: min,max")

	return cmd
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildAnimationConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	return runRender(ctx, cmd.OutOrStdout(), cfg, logger)
}

// buildAnimationConfig creates an AnimationConfig from defaults, the
// animation section of the configuration file and the flags that were set
// explicitly, in that order.
func buildAnimationConfig(cmd *cobra.Command) (*config.AnimationConfig, error) {
	cfg := config.NewAnimationConfig()
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	file, _, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ApplyFile(file.Animation)

	if cfg.InputPath, err = flags.GetString("input"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Jobs, err = flags.GetInt("jobs"); err != nil {
		return nil, err
	}

	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetInt64("seed"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("frames-per-year") {
		if cfg.FramesPerYear, err = flags.GetInt("frames-per-year"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("hold-frames") {
		if cfg.HoldFrames, err = flags.GetInt("hold-frames"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("fade-marker") {
		if cfg.FadeMarkerFrames, err = flags.GetInt("fade-marker"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("fade-outline") {
		if cfg.FadeOutlineFrames, err = flags.GetInt("fade-outline"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("smooth-discovery") {
		if cfg.SmoothDiscovery, err = flags.GetBool("smooth-discovery"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("extend") {
		if cfg.Extend, err = flags.GetFloat64("extend"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("inverted") {
		if cfg.Inverted, err = flags.GetBool("inverted"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("width") {
		if cfg.Width, err = flags.GetFloat64("width"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("height") {
		if cfg.Height, err = flags.GetFloat64("height"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("mass-range") {
		if cfg.MassMin, cfg.MassMax, err = rangeFlag(cmd, "mass-range"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("axis-range") {
		if cfg.AxisMin, cfg.AxisMax, err = rangeFlag(cmd, "axis-range"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// rangeFlag reads a min,max pair.
func rangeFlag(cmd *cobra.Command, name string) (float64, float64, error) {
	values, err := cmd.Flags().GetFloat64Slice(name)
	if err != nil {
		return 0, 0, err
	}
	if len(values) != 2 {
		return 0, 0, fmt.Errorf("--%s expects two values (min,max), got %d", name, len(values))
	}
	return values[0], values[1], nil
}

// runRender renders the frames and prints the result.
func runRender(ctx context.Context, out io.Writer, cfg *config.AnimationConfig, logger *slog.Logger) error {
	n, err := render.NewRenderer(cfg, render.WithLogger(logger)).RenderFile(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(out, "%d frames written to %s.\n", n, cfg.OutputDir)
	return nil
}
