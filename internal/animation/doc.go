// Package animation models the per-frame state of the exoplanet discovery
// timeline.
//
// Two stateful types are driven by a caller, one frame at a time:
//   - Marker: one per planet, fades in when the animation year reaches its
//     discovery year and shows a dissipating outline ring while doing so.
//   - Timeline: the shared year axis drawn below the scatter plot, with an
//     optional "now" marker.
//
// Neither type draws pixels. They issue draw calls against a Surface, which is
// implemented by the render package (a recording surface replayed through
// gonum/plot). Keeping the model free of a drawing backend makes every draw
// call observable in tests.
//
// # Frame loop
//
//	for _, year := range timeline.Years() {
//	    for _, m := range markers {
//	        m.RenderAt(mainSurface, year)
//	    }
//	    timeline.RenderYearAxisAt(axisSurface, year)
//	}
//
// The loop is strictly sequential. A marker's frame counter advances exactly
// once per RenderAt call in which it is visible.
package animation
