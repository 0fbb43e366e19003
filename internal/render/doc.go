// Package render turns a planet table into animation frames.
//
// Rendering happens in two phases:
//
//  1. Recording. A Renderer builds one animation.Marker per table row and a
//     shared animation.Timeline, then walks the frame years strictly in
//     order. Markers and timeline draw into a pair of Recorders, which
//     implement animation.Surface by storing the draw calls. The marker
//     frame counters only make sense when frames are visited in sequence,
//     so this phase never runs concurrently.
//  2. Encoding. Each recorded Frame is immutable and is replayed onto a
//     gonum/plot canvas by a Painter. The BatchEncoder encodes frames on a
//     bounded errgroup and writes frame_00000.png (or .svg) files.
//
// The main panel is a log-log plot of mass (Jupiter masses) against
// semi-major axis (au). The timeline panel sits below it with its axes
// hidden.
package render
