// Package backend defines the drawing surface marks are painted on.
//
// Every backend accepts the same call: one ordered point sequence drawn as
// connected segments with the frame's stroke style. Accelerated (GPU line
// strips), immediate (2D raster lines, canvas line objects) and terminal
// cell backends all implement it, and the painter never branches on which
// one it has.
package backend

import (
	"image/color"
	"sync"

	"github.com/dshills/mousemark/internal/mark"
)

// Style is the stroke applied to every polyline in a frame.
type Style struct {
	// Color is always fully opaque.
	Color color.RGBA

	// Width is the stroke width in logical pixels.
	Width float64

	// Scale converts logical coordinates to device pixels. Zero means 1.
	Scale float64
}

// DefaultStyle returns a 3 pixel opaque red stroke.
func DefaultStyle() Style {
	return Style{
		Color: color.RGBA{R: 0xff, A: 0xff},
		Width: 3,
		Scale: 1,
	}
}

// DeviceScale returns the effective scale factor.
func (s Style) DeviceScale() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

// DeviceWidth returns the stroke width in device pixels, never below one.
func (s Style) DeviceWidth() float64 {
	return max(s.Width*s.DeviceScale(), 1)
}

// Backend draws polylines.
type Backend interface {
	// DrawPolyline draws segments between consecutive points.
	// Sequences with fewer than two points draw nothing.
	DrawPolyline(points []mark.Point, style Style)
}

// Stroke is one recorded DrawPolyline call.
type Stroke struct {
	Points []mark.Point
	Style  Style
}

// Recorder is a Backend that remembers what it was asked to draw.
// Used by tests and by hosts that need to diff frames.
type Recorder struct {
	mu      sync.Mutex
	strokes []Stroke
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) DrawPolyline(points []mark.Point, style Style) {
	if len(points) < 2 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]mark.Point, len(points))
	copy(cp, points)
	r.strokes = append(r.strokes, Stroke{Points: cp, Style: style})
}

// Strokes returns the recorded strokes.
func (r *Recorder) Strokes() []Stroke {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Stroke, len(r.strokes))
	copy(out, r.strokes)
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strokes = nil
}
