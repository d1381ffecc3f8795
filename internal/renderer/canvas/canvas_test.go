package canvas

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"

	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer"
	"github.com/dshills/mousemark/internal/renderer/backend"
)

func TestSurfaceSegments(t *testing.T) {
	changes := 0
	s := NewSurface(func() { changes++ })
	style := backend.Style{Color: color.RGBA{R: 0xff, A: 0xff}, Width: 3, Scale: 1}

	s.BeginFrame(renderer.Frame{Full: true})
	s.DrawPolyline([]mark.Point{mark.Pt(0, 0), mark.Pt(10, 0), mark.Pt(10, 10)}, style)
	s.DrawPolyline([]mark.Point{mark.Pt(5, 5)}, style)
	s.EndFrame()

	objs := s.Objects()
	if len(objs) != 2 {
		t.Fatalf("len(Objects()) = %d, want 2", len(objs))
	}
	if changes != 1 {
		t.Errorf("onChange calls = %d, want 1", changes)
	}

	line, ok := objs[1].(*fynecanvas.Line)
	if !ok {
		t.Fatalf("object type = %T, want *canvas.Line", objs[1])
	}
	if line.Position1 != fyne.NewPos(10, 0) || line.Position2 != fyne.NewPos(10, 10) {
		t.Errorf("segment = %v-%v, want (10,0)-(10,10)", line.Position1, line.Position2)
	}
	if line.StrokeWidth != 3 {
		t.Errorf("StrokeWidth = %v, want 3", line.StrokeWidth)
	}
	if line.StrokeColor != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("StrokeColor = %v, want red", line.StrokeColor)
	}
}

func TestSurfaceFrameReplacesObjects(t *testing.T) {
	s := NewSurface(nil)
	style := backend.DefaultStyle()

	s.BeginFrame(renderer.Frame{Full: true})
	s.DrawPolyline([]mark.Point{mark.Pt(0, 0), mark.Pt(1, 1)}, style)
	s.EndFrame()

	s.BeginFrame(renderer.Frame{Full: true})
	s.EndFrame()

	if got := len(s.Objects()); got != 0 {
		t.Errorf("len(Objects()) after empty frame = %d, want 0", got)
	}
}

func TestToPoint(t *testing.T) {
	if got := ToPoint(fyne.NewPos(1.5, 2)); got != mark.Pt(1.5, 2) {
		t.Errorf("ToPoint() = %v, want (1.5,2)", got)
	}
}
