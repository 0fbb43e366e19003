package render

import (
	"slices"

	"github.com/nao1215/exotimeline/internal/animation"
)

// Op is the kind of a recorded draw call.
type Op int

const (
	// OpScatter is a point glyph.
	OpScatter Op = iota
	// OpLine is a straight segment.
	OpLine
	// OpText is a text label.
	OpText
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpScatter:
		return "scatter"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Command is one recorded draw call.
// Scatter and text use (X0, Y0) only.
type Command struct {
	Op     Op
	X0, Y0 float64
	X1, Y1 float64
	Label  string

	Point animation.PointStyle
	Line  animation.LineStyle
	Text  animation.TextStyle
}

// ZOrder returns the stacking order of the command.
func (c Command) ZOrder() int {
	switch c.Op {
	case OpScatter:
		return c.Point.ZOrder
	case OpLine:
		return c.Line.ZOrder
	default:
		return c.Text.ZOrder
	}
}

// Limits is an optional axis range.
type Limits struct {
	Min, Max float64
	Set      bool
}

// Recorder is an animation.Surface that stores draw calls for later replay.
// It is not safe for concurrent use.
type Recorder struct {
	commands []Command
	xlim     Limits
	ylim     Limits
	hidden   bool
}

var _ animation.Surface = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Scatter records a point glyph.
func (r *Recorder) Scatter(x, y float64, style animation.PointStyle) {
	r.commands = append(r.commands, Command{Op: OpScatter, X0: x, Y0: y, Point: style})
}

// Line records a segment.
func (r *Recorder) Line(x0, y0, x1, y1 float64, style animation.LineStyle) {
	r.commands = append(r.commands, Command{Op: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Line: style})
}

// Text records a label.
func (r *Recorder) Text(x, y float64, label string, style animation.TextStyle) {
	r.commands = append(r.commands, Command{Op: OpText, X0: x, Y0: y, Label: label, Text: style})
}

// SetXLim records the x range. The last call wins.
func (r *Recorder) SetXLim(minX, maxX float64) {
	r.xlim = Limits{Min: minX, Max: maxX, Set: true}
}

// SetYLim records the y range. The last call wins.
func (r *Recorder) SetYLim(minY, maxY float64) {
	r.ylim = Limits{Min: minY, Max: maxY, Set: true}
}

// HideAxes marks the panel as axis-less.
func (r *Recorder) HideAxes() {
	r.hidden = true
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// Commands returns the recorded commands in drawing order: ascending z-order,
// ties kept in call order.
func (r *Recorder) Commands() []Command {
	out := slices.Clone(r.commands)
	slices.SortStableFunc(out, func(a, b Command) int {
		return a.ZOrder() - b.ZOrder()
	})
	return out
}

// XLim returns the recorded x range.
func (r *Recorder) XLim() Limits {
	return r.xlim
}

// YLim returns the recorded y range.
func (r *Recorder) YLim() Limits {
	return r.ylim
}

// AxesHidden reports whether HideAxes was called.
func (r *Recorder) AxesHidden() bool {
	return r.hidden
}

// Panel freezes the recording into an immutable Panel.
func (r *Recorder) Panel() Panel {
	return Panel{
		Commands: r.Commands(),
		XLim:     r.xlim,
		YLim:     r.ylim,
		Hidden:   r.hidden,
	}
}

// Reset clears the recorder for the next frame.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.xlim = Limits{}
	r.ylim = Limits{}
	r.hidden = false
}

// Panel is the recorded content of one plot panel.
type Panel struct {
	Commands []Command
	XLim     Limits
	YLim     Limits
	Hidden   bool
}

// Frame is the recorded content of one animation frame.
type Frame struct {
	// Index is the zero-based position of the frame in the animation.
	Index int

	// Year is the animation year shown in the frame.
	Year float64

	Main     Panel
	Timeline Panel
}
