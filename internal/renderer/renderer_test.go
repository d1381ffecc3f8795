package renderer

import (
	"testing"

	"github.com/dshills/mousemark/internal/input/key"
	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer/backend"
	"github.com/dshills/mousemark/internal/renderer/dirty"
)

type testSurface struct {
	*backend.Recorder
	frames []Frame
	ended  int
}

func newTestSurface() *testSurface {
	return &testSurface{Recorder: backend.NewRecorder()}
}

func (s *testSurface) BeginFrame(f Frame) {
	s.frames = append(s.frames, f)
	s.Reset()
}

func (s *testSurface) EndFrame() { s.ended++ }

func newTestRenderer() (*Renderer, *mark.Tracker) {
	damage := dirty.NewTracker(1000, 1000)
	tracker := mark.NewTracker(mark.Settings{
		LineWidth:  2,
		Classifier: mark.Classifier{Freehand: key.ModShift, Arrow: key.ModCtrl},
	}, mark.WithDamager(damage))
	return New(tracker, damage, backend.DefaultStyle()), tracker
}

func TestPaintSkipsInvisible(t *testing.T) {
	_, tracker := newTestRenderer()
	tracker.PointerMoved(mark.Pt(0, 0), key.ModShift)

	rec := backend.NewRecorder()
	if n := Paint(tracker, rec, backend.DefaultStyle()); n != 0 {
		t.Errorf("Paint() = %d, want 0 for a seed point", n)
	}

	tracker.PointerMoved(mark.Pt(5, 5), key.ModShift)
	if n := Paint(tracker, rec, backend.DefaultStyle()); n != 1 {
		t.Errorf("Paint() = %d, want 1", n)
	}
}

func TestRenderFirstFrameIsFull(t *testing.T) {
	r, _ := newTestRenderer()
	s := newTestSurface()

	if !r.Render(s) {
		t.Fatal("Render() = false, want initial frame")
	}
	if len(s.frames) != 1 || !s.frames[0].Full {
		t.Errorf("frames = %+v, want one full frame", s.frames)
	}
	if s.ended != 1 {
		t.Errorf("EndFrame called %d times, want 1", s.ended)
	}

	if r.Render(s) {
		t.Error("Render() = true with nothing dirty")
	}
}

func TestRenderPartialFrame(t *testing.T) {
	r, tracker := newTestRenderer()
	s := newTestSurface()
	r.Render(s)

	tracker.PointerMoved(mark.Pt(10, 10), key.ModShift)
	tracker.PointerMoved(mark.Pt(20, 10), key.ModShift)

	if !r.Render(s) {
		t.Fatal("Render() = false after a freehand segment")
	}
	f := s.frames[len(s.frames)-1]
	if f.Full {
		t.Error("freehand segment should produce a partial frame")
	}
	if len(f.Regions) != 1 {
		t.Fatalf("len(Regions) = %d, want 1", len(f.Regions))
	}
	want := mark.Rect{X: 8, Y: 8, W: 14, H: 4}
	if f.Regions[0].Rect != want {
		t.Errorf("region = %+v, want %+v", f.Regions[0].Rect, want)
	}
	if got := len(s.Strokes()); got != 1 {
		t.Errorf("strokes = %d, want 1", got)
	}
}

func TestRenderScalesRegions(t *testing.T) {
	r, tracker := newTestRenderer()
	style := backend.DefaultStyle()
	style.Scale = 2
	r.SetStyle(style)
	s := newTestSurface()
	r.Render(s)

	tracker.PointerMoved(mark.Pt(10, 10), key.ModShift)
	tracker.PointerMoved(mark.Pt(20, 10), key.ModShift)
	r.Render(s)

	f := s.frames[len(s.frames)-1]
	if len(f.Regions) != 1 {
		t.Fatalf("len(Regions) = %d, want 1", len(f.Regions))
	}
	want := mark.Rect{X: 16, Y: 16, W: 28, H: 8}
	if f.Regions[0].Rect != want {
		t.Errorf("region = %+v, want %+v", f.Regions[0].Rect, want)
	}
}

func TestRenderLockedDrawsNothing(t *testing.T) {
	r, tracker := newTestRenderer()
	s := newTestSurface()

	tracker.PointerMoved(mark.Pt(0, 0), key.ModShift)
	tracker.PointerMoved(mark.Pt(9, 9), key.ModShift)
	tracker.SetScreenLocked(true)

	if !r.Render(s) {
		t.Fatal("Render() = false, lock change should repaint")
	}
	if len(s.Strokes()) != 0 {
		t.Errorf("strokes = %d, want none while locked", len(s.Strokes()))
	}
	if r.Stats().LastDrawn != 0 {
		t.Errorf("LastDrawn = %d, want 0", r.Stats().LastDrawn)
	}
}

func TestSetStyleRepaints(t *testing.T) {
	r, _ := newTestRenderer()
	s := newTestSurface()
	r.Render(s)

	style := backend.DefaultStyle()
	style.Width = 9
	r.SetStyle(style)

	if !r.NeedsRender() {
		t.Error("SetStyle() should schedule a repaint")
	}
	r.Render(s)
	if got := s.frames[len(s.frames)-1].Style.Width; got != 9 {
		t.Errorf("frame style width = %v, want 9", got)
	}
	if r.Stats().Frames != 2 {
		t.Errorf("Frames = %d, want 2", r.Stats().Frames)
	}
}
