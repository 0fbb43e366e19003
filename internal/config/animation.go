package config

import (
	"github.com/nao1215/exotimeline/internal/animation"
)

// Default render settings.
const (
	// DefaultFrameDir receives the encoded frames.
	DefaultFrameDir = "frames"

	// DefaultFormat is the frame image format.
	DefaultFormat = "png"

	// DefaultFramesPerYear is the number of frames per catalogue year.
	DefaultFramesPerYear = 4

	// DefaultHoldFrames repeats the last year at the end of the animation.
	DefaultHoldFrames = 20

	// DefaultSeed makes the discovery jitter reproducible.
	DefaultSeed int64 = 1

	// DefaultJobs is the number of frames encoded concurrently.
	DefaultJobs = 4

	// DefaultWidth and DefaultHeight are the frame size in inches.
	DefaultWidth  = 6.0
	DefaultHeight = 4.5

	// Default mass panel range in Jupiter masses.
	DefaultMassMin = 1e-3
	DefaultMassMax = 1e2

	// Default semi-major axis panel range in au.
	DefaultAxisMin = 1e-2
	DefaultAxisMax = 1e3
)

// Supported frame formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// AnimationConfig holds the options of a render run.
type AnimationConfig struct {
	// InputPath is the planet table written by fetch.
	InputPath string

	// OutputDir receives frame_00000.<format> files.
	OutputDir string

	// Format is FormatPNG or FormatSVG.
	Format string

	// Seed drives the discovery jitter of the markers.
	Seed int64

	FramesPerYear int
	HoldFrames    int

	// FadeMarkerFrames and FadeOutlineFrames are the marker fade lengths;
	// 0 disables a fade.
	FadeMarkerFrames  int
	FadeOutlineFrames int

	// SmoothDiscovery spreads discoveries over their year.
	SmoothDiscovery bool

	// Extend lengthens the timeline before the first year.
	Extend float64

	// Inverted draws a light timeline for dark backgrounds.
	Inverted bool

	// Jobs bounds concurrent frame encoding.
	Jobs int

	Width  float64
	Height float64

	MassMin float64
	MassMax float64
	AxisMin float64
	AxisMax float64
}

// NewAnimationConfig creates an AnimationConfig with default values.
func NewAnimationConfig() *AnimationConfig {
	return &AnimationConfig{
		InputPath:         DefaultOutputPath,
		OutputDir:         DefaultFrameDir,
		Format:            DefaultFormat,
		Seed:              DefaultSeed,
		FramesPerYear:     DefaultFramesPerYear,
		HoldFrames:        DefaultHoldFrames,
		FadeMarkerFrames:  animation.DefaultFadeMarkerFrames,
		FadeOutlineFrames: animation.DefaultFadeOutlineFrames,
		SmoothDiscovery:   true,
		Extend:            animation.DefaultExtend,
		Jobs:              DefaultJobs,
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		MassMin:           DefaultMassMin,
		MassMax:           DefaultMassMax,
		AxisMin:           DefaultAxisMin,
		AxisMax:           DefaultAxisMax,
	}
}

// ApplyFile copies the fields set in the animation section of the
// configuration file into c.
func (c *AnimationConfig) ApplyFile(f AnimationFile) {
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.Seed != nil {
		c.Seed = *f.Seed
	}
	if f.FramesPerYear > 0 {
		c.FramesPerYear = f.FramesPerYear
	}
	if f.HoldFrames != nil {
		c.HoldFrames = *f.HoldFrames
	}
	if f.FadeMarkerFrames != nil {
		c.FadeMarkerFrames = *f.FadeMarkerFrames
	}
	if f.FadeOutlineFrames != nil {
		c.FadeOutlineFrames = *f.FadeOutlineFrames
	}
	if f.SmoothDiscovery != nil {
		c.SmoothDiscovery = *f.SmoothDiscovery
	}
	if f.Extend != nil {
		c.Extend = *f.Extend
	}
	if f.Inverted != nil {
		c.Inverted = *f.Inverted
	}
	if f.Width > 0 {
		c.Width = f.Width
	}
	if f.Height > 0 {
		c.Height = f.Height
	}
	if len(f.MassRange) == 2 {
		c.MassMin, c.MassMax = f.MassRange[0], f.MassRange[1]
	}
	if len(f.AxisRange) == 2 {
		c.AxisMin, c.AxisMax = f.AxisRange[0], f.AxisRange[1]
	}
}

// Validate returns the first problem found in c.
func (c *AnimationConfig) Validate() error {
	if c.InputPath == "" {
		return ErrNoInput
	}
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if c.Format != FormatPNG && c.Format != FormatSVG {
		return ErrUnsupportedFormat
	}
	if c.FramesPerYear <= 0 {
		return ErrInvalidFrameRate
	}
	if c.HoldFrames < 0 || c.FadeMarkerFrames < 0 || c.FadeOutlineFrames < 0 {
		return ErrInvalidFrameCount
	}
	if c.Extend < 0 {
		return ErrInvalidExtend
	}
	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidSize
	}
	if !validRange(c.MassMin, c.MassMax) || !validRange(c.AxisMin, c.AxisMax) {
		return ErrInvalidLimits
	}
	return nil
}

func validRange(lo, hi float64) bool {
	return lo > 0 && lo < hi
}
