package render

import (
	"testing"

	"github.com/nao1215/exotimeline/internal/animation"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	t.Run("commands are ordered by z-order then call order", func(t *testing.T) {
		t.Parallel()

		r := NewRecorder()
		r.Text(0, 0, "label", animation.TextStyle{ZOrder: 3})
		r.Scatter(1, 1, animation.PointStyle{ZOrder: 100})
		r.Line(0, 0, 1, 1, animation.LineStyle{ZOrder: 2})
		r.Scatter(2, 2, animation.PointStyle{ZOrder: 100})
		r.Line(1, 1, 2, 2, animation.LineStyle{ZOrder: 2})

		got := r.Commands()
		want := []struct {
			op Op
			x  float64
		}{
			{OpLine, 0}, {OpLine, 1}, {OpText, 0}, {OpScatter, 1}, {OpScatter, 2},
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i].Op != want[i].op || got[i].X0 != want[i].x {
				t.Errorf("command %d = %s at %v, expected %s at %v", i, got[i].Op, got[i].X0, want[i].op, want[i].x)
			}
		}
	})

	t.Run("commands does not reorder the recording", func(t *testing.T) {
		t.Parallel()

		r := NewRecorder()
		r.Scatter(1, 1, animation.PointStyle{ZOrder: 10})
		r.Scatter(2, 2, animation.PointStyle{ZOrder: 1})
		_ = r.Commands()

		if r.commands[0].X0 != 1 {
			t.Error("recorded commands were sorted in place")
		}
	})

	t.Run("limits and hidden axes", func(t *testing.T) {
		t.Parallel()

		r := NewRecorder()
		if r.XLim().Set || r.YLim().Set || r.AxesHidden() {
			t.Fatal("new recorder should have no limits and visible axes")
		}

		r.SetXLim(1, 2)
		r.SetXLim(3, 4)
		r.SetYLim(0, 1)
		r.HideAxes()

		if got := r.XLim(); !got.Set || got.Min != 3 || got.Max != 4 {
			t.Errorf("expected last x limits to win, got %+v", got)
		}
		if got := r.YLim(); !got.Set || got.Min != 0 || got.Max != 1 {
			t.Errorf("unexpected y limits %+v", got)
		}
		if !r.AxesHidden() {
			t.Error("expected axes hidden")
		}
	})

	t.Run("panel survives reset", func(t *testing.T) {
		t.Parallel()

		r := NewRecorder()
		r.Scatter(1, 1, animation.PointStyle{})
		r.SetXLim(0, 1)
		panel := r.Panel()

		r.Reset()
		r.Scatter(5, 5, animation.PointStyle{})

		if r.Len() != 1 || r.XLim().Set {
			t.Errorf("reset did not clear the recorder: len=%d xlim=%+v", r.Len(), r.XLim())
		}
		if len(panel.Commands) != 1 || panel.Commands[0].X0 != 1 || !panel.XLim.Set {
			t.Errorf("panel changed after reset: %+v", panel)
		}
	})
}

func TestOp_String(t *testing.T) {
	t.Parallel()

	tests := map[Op]string{
		OpScatter: "scatter",
		OpLine:    "line",
		OpText:    "text",
		Op(42):    "unknown",
	}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", int(op), got, want)
		}
	}
}
