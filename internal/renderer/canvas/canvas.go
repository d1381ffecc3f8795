// Package canvas turns marks into retained fyne line objects.
//
// Every frame rebuilds the full object list; fyne repaints the whole
// widget on refresh, so damage regions only decide whether a frame runs.
package canvas

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"

	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer"
	"github.com/dshills/mousemark/internal/renderer/backend"
)

// Surface is a renderer.Surface that produces fyne canvas objects.
type Surface struct {
	mu       sync.RWMutex
	objects  []fyne.CanvasObject
	pending  []fyne.CanvasObject
	onChange func()
}

var _ renderer.Surface = (*Surface)(nil)

// NewSurface creates an empty surface. onChange runs after every frame
// and may be nil.
func NewSurface(onChange func()) *Surface {
	return &Surface{onChange: onChange}
}

// BeginFrame starts a new object list.
func (s *Surface) BeginFrame(renderer.Frame) {
	s.pending = make([]fyne.CanvasObject, 0, len(s.objects))
}

// DrawPolyline appends one line object per segment.
func (s *Surface) DrawPolyline(points []mark.Point, style backend.Style) {
	if len(points) < 2 {
		return
	}
	var c color.Color = style.Color
	width := float32(style.Width)
	for i := 1; i < len(points); i++ {
		line := fynecanvas.NewLine(c)
		line.StrokeWidth = width
		line.Position1 = toPosition(points[i-1])
		line.Position2 = toPosition(points[i])
		s.pending = append(s.pending, line)
	}
}

// EndFrame publishes the new object list.
func (s *Surface) EndFrame() {
	s.mu.Lock()
	s.objects = s.pending
	s.pending = nil
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange()
	}
}

// Objects returns the objects of the last completed frame.
func (s *Surface) Objects() []fyne.CanvasObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]fyne.CanvasObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// toPosition maps a logical point to fyne's device independent units.
// fyne applies the output scale itself.
func toPosition(p mark.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

// ToPoint is the inverse of toPosition.
func ToPoint(p fyne.Position) mark.Point {
	return mark.Pt(float64(p.X), float64(p.Y))
}
