package dirty

import (
	"testing"

	"github.com/dshills/mousemark/internal/mark"
)

func TestNewRegionNormalizes(t *testing.T) {
	r := NewRegion(10, 10, -4, -6)
	want := mark.Rect{X: 6, Y: 4, W: 4, H: 6}
	if r.Rect != want {
		t.Errorf("NewRegion() = %+v, want %+v", r.Rect, want)
	}
}

func TestRegionAdjacent(t *testing.T) {
	base := NewRegion(0, 0, 10, 10)

	tests := []struct {
		name  string
		other Region
		want  bool
	}{
		{"right edge", NewRegion(10, 0, 5, 10), true},
		{"left edge", NewRegion(-5, 0, 5, 10), true},
		{"below", NewRegion(0, 10, 10, 3), true},
		{"right edge different height", NewRegion(10, 0, 5, 9), false},
		{"gap", NewRegion(11, 0, 5, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Adjacent(tt.other); got != tt.want {
				t.Errorf("Adjacent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegionMerge(t *testing.T) {
	a := NewRegion(0, 0, 10, 10)

	merged, ok := a.Merge(NewRegion(10, 0, 5, 10))
	if !ok {
		t.Fatal("adjacent regions should merge")
	}
	if merged.Rect != (mark.Rect{X: 0, Y: 0, W: 15, H: 10}) {
		t.Errorf("Merge() = %+v", merged.Rect)
	}

	if _, ok := a.Merge(NewRegion(50, 50, 1, 1)); ok {
		t.Error("disjoint regions should not merge")
	}
}

func TestRegionPixels(t *testing.T) {
	x0, y0, x1, y1 := NewRegion(1.5, 2.2, 3, 3).Pixels()
	if x0 != 1 || y0 != 2 || x1 != 5 || y1 != 6 {
		t.Errorf("Pixels() = %d,%d,%d,%d; want 1,2,5,6", x0, y0, x1, y1)
	}
}

func TestRegionScale(t *testing.T) {
	got := NewRegion(1, 2, 3, 4).Scale(2)
	want := mark.Rect{X: 2, Y: 4, W: 6, H: 8}
	if got.Rect != want {
		t.Errorf("Scale(2) = %+v, want %+v", got.Rect, want)
	}
}
