package animation

import "image/color"

// Shape identifies the glyph used for a scattered point.
type Shape int

const (
	// ShapeCircle draws a circle.
	ShapeCircle Shape = iota

	// ShapeSquare draws a square.
	ShapeSquare
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	default:
		return "unknown"
	}
}

// Default stacking orders, matching the usual plotting convention where
// lines sit above scattered points and text above lines.
const (
	ZOrderScatter = 1
	ZOrderLine    = 2
	ZOrderText    = 3
)

// PointStyle describes a single scattered point.
type PointStyle struct {
	// Shape is the glyph shape.
	Shape Shape

	// Fill is the face color. Nil means the glyph is not filled.
	Fill color.Color

	// Edge is the outline color. Nil means no outline.
	Edge color.Color

	// EdgeWidth is the outline width in points.
	EdgeWidth float64

	// Size is the glyph area in points squared.
	Size float64

	// Alpha is the opacity in [0, 1] applied to both fill and edge.
	Alpha float64

	// ZOrder is the stacking order. Higher values are drawn on top.
	ZOrder int
}

// LineStyle describes a straight line segment.
type LineStyle struct {
	Color  color.Color
	Width  float64
	Alpha  float64
	ZOrder int
}

// HAlign is the horizontal anchor of a text label.
type HAlign int

const (
	// HAlignLeft anchors text at its left edge.
	HAlignLeft HAlign = iota
	// HAlignCenter anchors text at its center.
	HAlignCenter
	// HAlignRight anchors text at its right edge.
	HAlignRight
)

// VAlign is the vertical anchor of a text label.
type VAlign int

const (
	// VAlignBottom anchors text at its baseline box bottom.
	VAlignBottom VAlign = iota
	// VAlignCenter anchors text at its vertical center.
	VAlignCenter
	// VAlignTop anchors text at its top.
	VAlignTop
)

// TextStyle describes a text label.
type TextStyle struct {
	Color    color.Color
	FontSize float64
	Bold     bool
	HAlign   HAlign
	VAlign   VAlign

	// AxesFraction places the label in axes coordinates, where (0, 0) is the
	// lower-left and (1, 1) the upper-right corner of the panel, instead of
	// data coordinates.
	AxesFraction bool

	ZOrder int
}

// Surface is the 2D drawing target the animation model renders to.
// Implementations are expected to honor ZOrder when compositing.
type Surface interface {
	// Scatter draws a point glyph at (x, y) in data coordinates.
	Scatter(x, y float64, style PointStyle)

	// Line draws a segment from (x0, y0) to (x1, y1) in data coordinates.
	Line(x0, y0, x1, y1 float64, style LineStyle)

	// Text draws a label anchored at (x, y).
	Text(x, y float64, label string, style TextStyle)

	// SetXLim sets the visible x range.
	SetXLim(minX, maxX float64)

	// SetYLim sets the visible y range.
	SetYLim(minY, maxY float64)

	// HideAxes suppresses frame, ticks and tick labels of the panel.
	HideAxes()
}
