package animation

import (
	"errors"
	"image/color"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// DefaultExtend is how far, in years, the axis trails off to the left of the
// first frame year.
const DefaultExtend = 1.0

// ErrNoYears is returned when a timeline is built from an empty year sequence.
var ErrNoYears = errors.New("timeline requires at least one year")

// ErrInvalidFrameRate is returned by FrameYears for a non-positive frame rate.
var ErrInvalidFrameRate = errors.New("frames per year must be positive")

const (
	// smoothSegments is the number of overlapping segments used to fade the
	// left end of the axis in.
	smoothSegments = 40

	labelInterval  = 5
	axisY          = 0.5
	labelY         = 0.75
	captionX       = 0.5
	captionY       = 1.4
	fontSize       = 7.0
	axisLineWidth  = 1.0
	limitPadding   = 0.1
	markerSize     = 20.0
	markerEdge     = 1.5
	markerZ        = 20
	majorTickLow   = 0.45
	majorTickHigh  = 0.55
	minorTickLow   = 0.475
	minorTickHigh  = 0.525
	captionMessage = "Year"
)

// Timeline is the shared year axis of an animation run.
// It is immutable after construction; the current year is supplied per call.
type Timeline struct {
	years        []float64
	uniqueYears  []float64
	labeledYears []float64
	extend       float64

	color     color.Color
	edgeColor color.Color
}

// TimelineOption configures a Timeline.
type TimelineOption func(*Timeline)

// WithExtend sets how far the axis trails off before the first year.
func WithExtend(extend float64) TimelineOption {
	return func(t *Timeline) {
		t.extend = extend
	}
}

// WithInverted switches to white lines with black edges, for dark
// backgrounds.
func WithInverted(inverted bool) TimelineOption {
	return func(t *Timeline) {
		if inverted {
			t.color, t.edgeColor = color.White, color.Black
		} else {
			t.color, t.edgeColor = color.Black, color.White
		}
	}
}

// NewTimeline builds the axis for the given frame years, one per frame.
// The sequence is usually increasing but this is not required.
func NewTimeline(years []float64, opts ...TimelineOption) (*Timeline, error) {
	if len(years) == 0 {
		return nil, ErrNoYears
	}

	t := &Timeline{
		years:     slices.Clone(years),
		extend:    DefaultExtend,
		color:     color.Black,
		edgeColor: color.White,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.uniqueYears = uniqueRounded(t.years)
	t.labeledYears = labeled(t.uniqueYears)

	return t, nil
}

// uniqueRounded returns the sorted set of years rounded half to even.
func uniqueRounded(years []float64) []float64 {
	rounded := make([]float64, len(years))
	for i, y := range years {
		rounded[i] = math.RoundToEven(y)
	}
	slices.Sort(rounded)
	return slices.Compact(rounded)
}

// labeled selects the multiples of labelInterval strictly inside the range of
// unique.
func labeled(unique []float64) []float64 {
	lo, hi := floats.Min(unique), floats.Max(unique)

	var out []float64
	for _, y := range unique {
		if y <= lo || y >= hi {
			continue
		}
		if math.Mod(y, labelInterval) == 0 {
			out = append(out, y)
		}
	}
	return out
}

// FrameYears returns the year shown in each frame of an animation running
// from first to last at framesPerYear frames per year, followed by
// holdFrames frames that keep showing last.
func FrameYears(first, last float64, framesPerYear, holdFrames int) ([]float64, error) {
	if framesPerYear <= 0 {
		return nil, ErrInvalidFrameRate
	}
	if last < first {
		first, last = last, first
	}

	n := int(math.Round((last-first)*float64(framesPerYear))) + 1
	years := make([]float64, n, n+max(holdFrames, 0))
	if n == 1 {
		years[0] = first
	} else {
		floats.Span(years, first, last)
		// Span accumulates rounding; the final frame must show last itself.
		years[n-1] = last
	}

	for range max(holdFrames, 0) {
		years = append(years, last)
	}
	return years, nil
}

// Years returns a copy of the frame years.
func (t *Timeline) Years() []float64 {
	return slices.Clone(t.years)
}

// UniqueYears returns the sorted, rounded, de-duplicated years that receive a
// tick mark.
func (t *Timeline) UniqueYears() []float64 {
	return slices.Clone(t.uniqueYears)
}

// LabeledYears returns the tick years that also get a text label.
func (t *Timeline) LabeledYears() []float64 {
	return slices.Clone(t.labeledYears)
}

// Extend returns the trailing length of the axis before the first year.
func (t *Timeline) Extend() float64 {
	return t.extend
}

// RenderYearAxis draws the axis without a current-year marker.
func (t *Timeline) RenderYearAxis(s Surface) {
	t.render(s, nil)
}

// RenderYearAxisAt draws the axis and marks year on it.
func (t *Timeline) RenderYearAxisAt(s Surface, year float64) {
	t.render(s, &year)
}

func (t *Timeline) render(s Surface, current *float64) {
	first, last := t.years[0], t.years[len(t.years)-1]
	line := LineStyle{Color: t.color, Width: axisLineWidth, Alpha: 1, ZOrder: ZOrderLine}

	s.Line(first, axisY, last, axisY, line)
	s.SetXLim(first-t.extend-limitPadding, last+limitPadding)
	s.Text(captionX, captionY, captionMessage, TextStyle{
		Color:        t.color,
		FontSize:     fontSize,
		Bold:         true,
		HAlign:       HAlignCenter,
		VAlign:       VAlignBottom,
		AxesFraction: true,
		ZOrder:       ZOrderText,
	})
	s.SetYLim(0, 1)
	s.HideAxes()

	// Overlapping faint segments starting further and further right build a
	// gradient into the first year.
	faint := line
	faint.Alpha = 1.2 / smoothSegments
	for i := range smoothSegments {
		fraction := 1.0 - float64(i)/smoothSegments
		s.Line(first-fraction*t.extend, axisY, last, axisY, faint)
	}

	for _, y := range t.uniqueYears {
		if slices.Contains(t.labeledYears, y) {
			s.Text(y, labelY, strconv.Itoa(int(y)), TextStyle{
				Color:    t.color,
				FontSize: fontSize,
				HAlign:   HAlignCenter,
				VAlign:   VAlignBottom,
				ZOrder:   ZOrderText,
			})
			s.Line(y, majorTickLow, y, majorTickHigh, line)
		} else {
			s.Line(y, minorTickLow, y, minorTickHigh, line)
		}
	}

	if current != nil {
		s.Scatter(*current, axisY, PointStyle{
			Shape:     ShapeSquare,
			Fill:      t.color,
			Edge:      t.edgeColor,
			EdgeWidth: markerEdge,
			Size:      markerSize,
			Alpha:     1,
			ZOrder:    markerZ,
		})
	}
}
