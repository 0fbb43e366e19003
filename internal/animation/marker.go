package animation

import (
	"image/color"
	"math/rand/v2"
)

// Default fade durations in frames.
const (
	DefaultFadeMarkerFrames  = 10
	DefaultFadeOutlineFrames = 10
)

// Marker appearance. The filled marker grows and becomes opaque while the
// outline ring grows slightly and fades out, which reads as a planet popping
// into view with a ripple around it.
var (
	// MarkerColor is the face color of a discovered planet.
	MarkerColor color.Color = color.RGBA{R: 0xff, G: 0xa5, A: 0xff}

	// OutlineColor is the color of the ring shown during the fade-in.
	OutlineColor color.Color = color.Black
)

const (
	markerStartSize  = 0.0
	markerFinalSize  = 15.0
	markerStartAlpha = 0.0
	markerFinalAlpha = 1.0
	markerZOrder     = 100

	outlineWidth      = 0.5
	outlineStartSize  = 35.0
	outlineFinalSize  = 45.0
	outlineStartAlpha = 1.0
	outlineFinalAlpha = 0.0
	outlineZOrder     = 10000
)

// RandomSource yields uniform values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Marker is the animated scatter point of a single planet.
//
// A Marker is invisible until the animation year reaches DiscoveryYear. From
// then on every RenderAt call draws it and advances its frame counter, so the
// fade progresses with the number of frames in which the planet was shown.
type Marker struct {
	// Mass in Jupiter masses, plotted on the y axis.
	Mass float64

	// SemimajorAxis in au, plotted on the x axis.
	SemimajorAxis float64

	// DiscoveryYear is the (possibly jittered) year at which the marker
	// appears.
	DiscoveryYear float64

	fadeMarkerFrames  int
	fadeOutlineFrames int
	smoothDiscovery   bool
	random            RandomSource

	// frames counts the frames in which the marker has been drawn.
	frames int
}

// MarkerOption configures a Marker.
type MarkerOption func(*Marker)

// WithSmoothDiscovery toggles the discovery year jitter. When enabled (the
// default) a uniform offset in [-0.5, 0.5) is added to the discovery year so
// that planets found in the same year do not all appear in the same frame.
func WithSmoothDiscovery(enabled bool) MarkerOption {
	return func(m *Marker) {
		m.smoothDiscovery = enabled
	}
}

// WithRandomSource sets the generator used for the discovery year jitter.
// Passing a seeded generator makes the jitter reproducible.
func WithRandomSource(r RandomSource) MarkerOption {
	return func(m *Marker) {
		if r != nil {
			m.random = r
		}
	}
}

// WithFadeMarker sets the number of frames the filled marker takes to fade
// in. Zero disables the animation.
func WithFadeMarker(frames int) MarkerOption {
	return func(m *Marker) {
		m.fadeMarkerFrames = frames
	}
}

// WithFadeOutline sets the number of frames the outline ring takes to fade
// out. Zero disables the ring entirely.
func WithFadeOutline(frames int) MarkerOption {
	return func(m *Marker) {
		m.fadeOutlineFrames = frames
	}
}

// NewMarker creates the marker of a planet.
// The jitter, if enabled, is drawn once here and never changes afterwards.
func NewMarker(mass, semimajorAxis, discoveryYear float64, opts ...MarkerOption) *Marker {
	m := &Marker{
		Mass:              mass,
		SemimajorAxis:     semimajorAxis,
		DiscoveryYear:     discoveryYear,
		fadeMarkerFrames:  DefaultFadeMarkerFrames,
		fadeOutlineFrames: DefaultFadeOutlineFrames,
		smoothDiscovery:   true,
		random:            globalSource{},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.smoothDiscovery {
		m.DiscoveryYear += m.random.Float64()
		m.DiscoveryYear -= 0.5
	}

	return m
}

// Frames returns the number of frames in which the marker has been drawn.
func (m *Marker) Frames() int {
	return m.frames
}

// FadeMarkerFrames returns the fade-in duration of the filled marker.
func (m *Marker) FadeMarkerFrames() int {
	return m.fadeMarkerFrames
}

// FadeOutlineFrames returns the fade-out duration of the outline ring.
func (m *Marker) FadeOutlineFrames() int {
	return m.fadeOutlineFrames
}

// Visible reports whether the marker is drawn at the given animation year.
func (m *Marker) Visible(year float64) bool {
	return year >= m.DiscoveryYear
}

// Settled reports whether both fades have completed, after which the marker
// is drawn at full size without an outline.
func (m *Marker) Settled() bool {
	return m.frames >= max(m.fadeMarkerFrames, m.fadeOutlineFrames)
}

// MarkerFadeIn returns the fade-in progress of the filled marker.
func (m *Marker) MarkerFadeIn() float64 {
	return FadeFactor(m.frames, m.fadeMarkerFrames)
}

// OutlineFadeOut returns the fade-out progress of the outline ring.
func (m *Marker) OutlineFadeOut() float64 {
	return FadeFactor(m.frames, m.fadeOutlineFrames)
}

// MarkerSize returns the current glyph area of the filled marker.
func (m *Marker) MarkerSize() float64 {
	return Lerp(markerStartSize, markerFinalSize, m.MarkerFadeIn())
}

// MarkerAlpha returns the current opacity of the filled marker.
func (m *Marker) MarkerAlpha() float64 {
	return Lerp(markerStartAlpha, markerFinalAlpha, m.MarkerFadeIn())
}

// OutlineSize returns the current glyph area of the outline ring.
func (m *Marker) OutlineSize() float64 {
	return Lerp(outlineStartSize, outlineFinalSize, m.OutlineFadeOut())
}

// OutlineAlpha returns the current opacity of the outline ring.
func (m *Marker) OutlineAlpha() float64 {
	return Lerp(outlineStartAlpha, outlineFinalAlpha, m.OutlineFadeOut())
}

// RenderAt draws the marker for the frame showing the given year.
//
// Nothing happens while year < DiscoveryYear. Otherwise the filled marker is
// drawn, the outline ring is drawn on top of it while the outline fade is
// still running, and the frame counter is incremented. The counter does not
// move on frames where the marker is hidden.
func (m *Marker) RenderAt(s Surface, year float64) {
	if !m.Visible(year) {
		return
	}

	s.Scatter(m.SemimajorAxis, m.Mass, PointStyle{
		Shape:     ShapeCircle,
		Fill:      MarkerColor,
		EdgeWidth: 0,
		Size:      m.MarkerSize(),
		Alpha:     m.MarkerAlpha(),
		ZOrder:    markerZOrder,
	})

	if m.frames < m.fadeOutlineFrames {
		s.Scatter(m.SemimajorAxis, m.Mass, PointStyle{
			Shape:     ShapeCircle,
			Edge:      OutlineColor,
			EdgeWidth: outlineWidth,
			Size:      m.OutlineSize(),
			Alpha:     m.OutlineAlpha(),
			ZOrder:    outlineZOrder,
		})
	}

	m.frames++
}
