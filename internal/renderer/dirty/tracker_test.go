package dirty

import (
	"sync"
	"testing"

	"github.com/dshills/mousemark/internal/mark"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(800, 600)

	if tracker.screenWidth != 800 {
		t.Errorf("screenWidth = %v, want 800", tracker.screenWidth)
	}
	if tracker.screenHeight != 600 {
		t.Errorf("screenHeight = %v, want 600", tracker.screenHeight)
	}
	if tracker.fullRedraw {
		t.Error("New tracker should not need full redraw")
	}
	if tracker.IsDirty() {
		t.Error("New tracker should not be dirty")
	}
}

func TestNewTrackerNegative(t *testing.T) {
	tracker := NewTracker(-5, -1)
	w, h := tracker.ScreenSize()
	if w != 0 || h != 0 {
		t.Errorf("ScreenSize() = %d x %d, want 0 x 0", w, h)
	}
}

func TestTrackerSetScreenSize(t *testing.T) {
	tracker := NewTracker(800, 600)
	tracker.AddRepaint(mark.Rect{X: 1, Y: 1, W: 5, H: 5})

	tracker.SetScreenSize(1920, 1080)

	if w, h := tracker.ScreenSize(); w != 1920 || h != 1080 {
		t.Errorf("ScreenSize() = %d x %d, want 1920 x 1080", w, h)
	}
	if !tracker.NeedsFullRedraw() {
		t.Error("Screen resize should trigger full redraw")
	}
}

func TestTrackerAddRepaint(t *testing.T) {
	tracker := NewTracker(800, 600)

	tracker.AddRepaint(mark.Rect{X: 97, Y: 187, W: 16, H: 16})

	regions := tracker.DirtyRegions()
	if len(regions) != 1 {
		t.Fatalf("len(DirtyRegions()) = %d, want 1", len(regions))
	}
	if regions[0].Rect != (mark.Rect{X: 97, Y: 187, W: 16, H: 16}) {
		t.Errorf("DirtyRegions()[0] = %+v", regions[0])
	}
	if tracker.NeedsFullRedraw() {
		t.Error("small repaint should not force a full redraw")
	}
}

func TestTrackerAddRepaintClipped(t *testing.T) {
	tracker := NewTracker(100, 100)

	tracker.AddRepaint(mark.Rect{X: -10, Y: -10, W: 20, H: 20})
	tracker.AddRepaint(mark.Rect{X: 500, Y: 500, W: 5, H: 5})

	regions := tracker.DirtyRegions()
	if len(regions) != 1 {
		t.Fatalf("len(DirtyRegions()) = %d, want 1", len(regions))
	}
	if regions[0].Rect != (mark.Rect{X: 0, Y: 0, W: 10, H: 10}) {
		t.Errorf("clipped region = %+v, want 0,0 10x10", regions[0])
	}
}

func TestTrackerMergesOverlapping(t *testing.T) {
	tracker := NewTracker(1000, 1000)

	tracker.AddRepaint(mark.Rect{X: 0, Y: 0, W: 10, H: 10})
	tracker.AddRepaint(mark.Rect{X: 5, Y: 5, W: 10, H: 10})
	tracker.AddRepaint(mark.Rect{X: 500, Y: 500, W: 10, H: 10})

	regions := tracker.DirtyRegions()
	if len(regions) != 2 {
		t.Fatalf("len(DirtyRegions()) = %d, want 2", len(regions))
	}
	if regions[0].Rect != (mark.Rect{X: 0, Y: 0, W: 15, H: 15}) {
		t.Errorf("merged region = %+v, want 0,0 15x15", regions[0])
	}
}

func TestTrackerThreshold(t *testing.T) {
	tracker := NewTracker(100, 100)

	tracker.AddRepaint(mark.Rect{X: 0, Y: 0, W: 80, H: 80})

	if !tracker.NeedsFullRedraw() {
		t.Error("repaint over the threshold should force a full redraw")
	}
	regions := tracker.DirtyRegions()
	if len(regions) != 1 || regions[0].Rect != (mark.Rect{W: 100, H: 100}) {
		t.Errorf("DirtyRegions() = %+v, want the whole screen", regions)
	}
}

func TestTrackerMaxRegions(t *testing.T) {
	tracker := NewTracker(10000, 10000)
	tracker.SetMaxRegions(3)

	for i := 0; i < 4; i++ {
		x := float64(i * 100)
		tracker.AddRepaint(mark.Rect{X: x, Y: 0, W: 10, H: 10})
	}

	regions := tracker.DirtyRegions()
	if len(regions) != 1 {
		t.Fatalf("len(DirtyRegions()) = %d, want regions collapsed to 1", len(regions))
	}
	if regions[0].Rect != (mark.Rect{X: 0, Y: 0, W: 310, H: 10}) {
		t.Errorf("collapsed region = %+v", regions[0])
	}
}

func TestTrackerFullRedrawIgnoresRegions(t *testing.T) {
	tracker := NewTracker(800, 600)
	tracker.AddRepaintFull()
	tracker.AddRepaint(mark.Rect{X: 1, Y: 1, W: 1, H: 1})

	if tracker.Stats().RegionCount != 0 {
		t.Error("regions should not accumulate during a full redraw")
	}
}

func TestTrackerTake(t *testing.T) {
	tracker := NewTracker(800, 600)
	tracker.AddRepaint(mark.Rect{X: 1, Y: 1, W: 4, H: 4})

	regions, full := tracker.Take()
	if full || len(regions) != 1 {
		t.Errorf("Take() = %v, %v; want 1 region, not full", regions, full)
	}
	if tracker.IsDirty() {
		t.Error("Take() should clear the tracker")
	}

	tracker.AddRepaintFull()
	regions, full = tracker.Take()
	if !full || regions != nil {
		t.Errorf("Take() = %v, %v; want full redraw", regions, full)
	}
}

func TestTrackerClear(t *testing.T) {
	tracker := NewTracker(800, 600)
	tracker.AddRepaintFull()
	tracker.Clear()

	if tracker.IsDirty() {
		t.Error("Clear() should reset dirty state")
	}
}

func TestSetCoalesceThreshold(t *testing.T) {
	tracker := NewTracker(10, 10)

	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0.25, 0.25},
		{2, 1},
	}

	for _, tt := range tests {
		tracker.SetCoalesceThreshold(tt.in)
		if got := tracker.Stats().CoalThreshold; got != tt.want {
			t.Errorf("SetCoalesceThreshold(%v) stored %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTrackerConcurrentAccess(t *testing.T) {
	tracker := NewTracker(1000, 1000)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.AddRepaint(mark.Rect{X: float64(i), Y: float64(j), W: 2, H: 2})
				_ = tracker.IsDirty()
				_ = tracker.DirtyRegions()
			}
		}(i)
	}

	wg.Wait()
}
