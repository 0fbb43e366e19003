package animation

// call is one recorded Surface invocation.
type call struct {
	kind  string
	x, y  float64
	x1    float64
	y1    float64
	label string
	point PointStyle
	line  LineStyle
	text  TextStyle
}

// fakeSurface records draw calls for assertions.
type fakeSurface struct {
	calls  []call
	xlim   [2]float64
	ylim   [2]float64
	hidden bool
}

func (f *fakeSurface) Scatter(x, y float64, style PointStyle) {
	f.calls = append(f.calls, call{kind: "scatter", x: x, y: y, point: style})
}

func (f *fakeSurface) Line(x0, y0, x1, y1 float64, style LineStyle) {
	f.calls = append(f.calls, call{kind: "line", x: x0, y: y0, x1: x1, y1: y1, line: style})
}

func (f *fakeSurface) Text(x, y float64, label string, style TextStyle) {
	f.calls = append(f.calls, call{kind: "text", x: x, y: y, label: label, text: style})
}

func (f *fakeSurface) SetXLim(minX, maxX float64) { f.xlim = [2]float64{minX, maxX} }

func (f *fakeSurface) SetYLim(minY, maxY float64) { f.ylim = [2]float64{minY, maxY} }

func (f *fakeSurface) HideAxes() { f.hidden = true }

func (f *fakeSurface) count(kind string) int {
	n := 0
	for _, c := range f.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

// fixedSource returns the same value on every draw.
type fixedSource float64

func (s fixedSource) Float64() float64 { return float64(s) }
