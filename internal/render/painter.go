package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Register the png and svg canvas formats.
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/nao1215/exotimeline/internal/animation"
	"github.com/nao1215/exotimeline/internal/config"
)

const (
	// timelineFraction is the share of the frame height given to the
	// timeline panel.
	timelineFraction = 0.18

	// timelineInset keeps the timeline clear of the frame border.
	timelineInset = vg.Length(12)

	massLabel = "Mass [Mjup]"
	axisLabel = "Semi-major axis [au]"
)

// Theme holds the colors of a frame.
type Theme struct {
	Background color.Color
	Foreground color.Color
}

// LightTheme draws black axes on white.
var LightTheme = Theme{Background: color.White, Foreground: color.Black}

// DarkTheme draws white axes on black. It pairs with an inverted timeline.
var DarkTheme = Theme{Background: color.Black, Foreground: color.White}

// Painter replays recorded frames onto a gonum/plot canvas and encodes them.
// A Painter is immutable and safe for concurrent use.
type Painter struct {
	width  vg.Length
	height vg.Length
	format string
	theme  Theme

	massMin, massMax float64
	axisMin, axisMax float64
}

// NewPainter creates a Painter from the render settings.
func NewPainter(cfg *config.AnimationConfig) *Painter {
	theme := LightTheme
	if cfg.Inverted {
		theme = DarkTheme
	}
	return &Painter{
		width:   vg.Length(cfg.Width) * vg.Inch,
		height:  vg.Length(cfg.Height) * vg.Inch,
		format:  cfg.Format,
		theme:   theme,
		massMin: cfg.MassMin,
		massMax: cfg.MassMax,
		axisMin: cfg.AxisMin,
		axisMax: cfg.AxisMax,
	}
}

// Extension returns the file extension of the encoded frames.
func (p *Painter) Extension() string {
	return p.format
}

// Paint draws f and writes the encoded image to w.
func (p *Painter) Paint(w io.Writer, f Frame) error {
	canvas, err := draw.NewFormattedCanvas(p.width, p.height, p.format)
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}

	dc := draw.New(canvas)
	dc.SetColor(p.theme.Background)
	dc.Fill(dc.Rectangle.Path())

	split := p.height * timelineFraction
	p.mainPlot(f.Main).Draw(draw.Crop(dc, 0, 0, split, 0))
	p.timelinePlot(f.Timeline).Draw(draw.Crop(dc, timelineInset, -timelineInset, 0, split-p.height))

	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode frame %d: %w", f.Index, err)
	}
	return nil
}

func (p *Painter) mainPlot(panel Panel) *plot.Plot {
	plt := plot.New()
	plt.BackgroundColor = nil

	plt.X.Label.Text = axisLabel
	plt.X.Scale = plot.LogScale{}
	plt.X.Tick.Marker = plot.LogTicks{Prec: -1}
	plt.X.Min, plt.X.Max = limitsOr(panel.XLim, p.axisMin, p.axisMax)

	plt.Y.Label.Text = massLabel
	plt.Y.Scale = plot.LogScale{}
	plt.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	plt.Y.Min, plt.Y.Max = limitsOr(panel.YLim, p.massMin, p.massMax)

	themeAxis(&plt.X, p.theme.Foreground)
	themeAxis(&plt.Y, p.theme.Foreground)
	if panel.Hidden {
		hide(plt)
	}

	plt.Add(replay{commands: panel.Commands})
	return plt
}

func (p *Painter) timelinePlot(panel Panel) *plot.Plot {
	plt := plot.New()
	plt.BackgroundColor = nil

	lo, hi := dataRangeX(panel.Commands)
	plt.X.Min, plt.X.Max = limitsOr(panel.XLim, lo, hi)
	plt.Y.Min, plt.Y.Max = limitsOr(panel.YLim, 0, 1)

	themeAxis(&plt.X, p.theme.Foreground)
	themeAxis(&plt.Y, p.theme.Foreground)
	if panel.Hidden {
		hide(plt)
	}

	plt.Add(replay{commands: panel.Commands})
	return plt
}

func hide(plt *plot.Plot) {
	plt.HideAxes()
	plt.X.Padding = 0
	plt.Y.Padding = 0
}

func themeAxis(a *plot.Axis, fg color.Color) {
	a.Color = fg
	a.Label.TextStyle.Color = fg
	a.Tick.Color = fg
	a.Tick.Label.Color = fg
}

func limitsOr(l Limits, lo, hi float64) (float64, float64) {
	if l.Set {
		return l.Min, l.Max
	}
	return lo, hi
}

// dataRangeX returns the x extent of the commands, or (0, 1) when there are
// none.
func dataRangeX(commands []Command) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range commands {
		if c.Op == OpText && c.Text.AxesFraction {
			continue
		}
		lo, hi = min(lo, c.X0), max(hi, c.X0)
		if c.Op == OpLine {
			lo, hi = min(lo, c.X1), max(hi, c.X1)
		}
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

// replay is a plot.Plotter drawing recorded commands.
type replay struct {
	commands []Command
}

// Plot implements plot.Plotter.
//
// Data a log axis cannot show (zero or negative values) is skipped before
// it is transformed, since gonum/plot panics on it.
func (r replay) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	onAxes := func(xs []float64, ys ...float64) bool {
		return inDomain(&plt.X, xs...) && inDomain(&plt.Y, ys...)
	}

	for _, cmd := range r.commands {
		switch cmd.Op {
		case OpScatter:
			if !onAxes([]float64{cmd.X0}, cmd.Y0) {
				continue
			}
			pt := vg.Point{X: trX(cmd.X0), Y: trY(cmd.Y0)}
			if !finite(pt.X, pt.Y) {
				continue
			}
			drawPoint(&c, pt, cmd.Point)

		case OpLine:
			if !onAxes([]float64{cmd.X0, cmd.X1}, cmd.Y0, cmd.Y1) {
				continue
			}
			x0, y0, x1, y1 := trX(cmd.X0), trY(cmd.Y0), trX(cmd.X1), trY(cmd.Y1)
			if !finite(x0, y0, x1, y1) || cmd.Line.Color == nil {
				continue
			}
			c.StrokeLine2(draw.LineStyle{
				Color: withAlpha(cmd.Line.Color, cmd.Line.Alpha),
				Width: vg.Points(cmd.Line.Width),
			}, x0, y0, x1, y1)

		case OpText:
			var pt vg.Point
			switch {
			case cmd.Text.AxesFraction:
				pt = vg.Point{X: c.X(cmd.X0), Y: c.Y(cmd.Y0)}
			case onAxes([]float64{cmd.X0}, cmd.Y0):
				pt = vg.Point{X: trX(cmd.X0), Y: trY(cmd.Y0)}
			default:
				continue
			}
			if !finite(pt.X, pt.Y) {
				continue
			}
			c.FillText(textStyle(cmd.Text, plt.TextHandler), pt, cmd.Label)
		}
	}
}

// inDomain reports whether every value can be placed on the axis.
func inDomain(a *plot.Axis, vs ...float64) bool {
	if _, ok := a.Scale.(plot.LogScale); !ok {
		return true
	}
	for _, v := range vs {
		if !(v > 0) {
			return false
		}
	}
	return true
}

func finite(vs ...vg.Length) bool {
	for _, v := range vs {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

// glyphRadius converts a glyph area in points squared to the radius of a
// circle, or half the side of a square, of that nominal size.
func glyphRadius(size float64) vg.Length {
	if size <= 0 {
		return 0
	}
	return vg.Points(math.Sqrt(size) / 2)
}

func drawPoint(c *draw.Canvas, pt vg.Point, sty animation.PointStyle) {
	radius := glyphRadius(sty.Size)
	if radius == 0 || sty.Alpha <= 0 {
		return
	}
	g := glyph{
		shape: sty.Shape,
		fill:  withAlpha(sty.Fill, sty.Alpha),
		edge:  withAlpha(sty.Edge, sty.Alpha),
		width: vg.Points(sty.EdgeWidth),
	}
	if g.fill == nil && g.edge == nil {
		return
	}
	base := g.fill
	if base == nil {
		base = g.edge
	}
	c.DrawGlyph(draw.GlyphStyle{Color: base, Radius: radius, Shape: g}, pt)
}

// glyph draws a circle or square with independent fill and edge. The stock
// gonum glyphs stroke with a fixed line width.
type glyph struct {
	shape animation.Shape
	fill  color.Color
	edge  color.Color
	width vg.Length
}

// DrawGlyph implements draw.GlyphDrawer.
func (g glyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	var p vg.Path
	r := sty.Radius
	switch g.shape {
	case animation.ShapeSquare:
		p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
		p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
		p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
		p.Line(vg.Point{X: pt.X - r, Y: pt.Y + r})
	default:
		p.Move(vg.Point{X: pt.X + r, Y: pt.Y})
		p.Arc(pt, r, 0, 2*math.Pi)
	}
	p.Close()

	if g.fill != nil {
		c.SetColor(g.fill)
		c.Fill(p)
	}
	if g.edge != nil && g.width > 0 {
		c.SetLineStyle(draw.LineStyle{Color: g.edge, Width: g.width})
		c.Stroke(p)
	}
}

// withAlpha scales the opacity of col by alpha. A nil color stays nil.
func withAlpha(col color.Color, alpha float64) color.Color {
	if col == nil {
		return nil
	}
	alpha = min(max(alpha, 0), 1)
	n, _ := color.NRGBAModel.Convert(col).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}

func textStyle(sty animation.TextStyle, handler text.Handler) draw.TextStyle {
	fnt := font.From(plot.DefaultFont, vg.Points(sty.FontSize))
	if sty.Bold {
		fnt.Weight = xfont.WeightBold
	}

	ts := draw.TextStyle{
		Color:   sty.Color,
		Font:    fnt,
		Handler: handler,
	}
	if ts.Color == nil {
		ts.Color = color.Black
	}

	switch sty.HAlign {
	case animation.HAlignCenter:
		ts.XAlign = draw.XCenter
	case animation.HAlignRight:
		ts.XAlign = draw.XRight
	default:
		ts.XAlign = draw.XLeft
	}
	switch sty.VAlign {
	case animation.VAlignCenter:
		ts.YAlign = draw.YCenter
	case animation.VAlignTop:
		ts.YAlign = draw.YTop
	default:
		ts.YAlign = draw.YBottom
	}
	return ts
}
