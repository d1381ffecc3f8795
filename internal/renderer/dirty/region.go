// Package dirty tracks which parts of the overlay need repainting.
// Repaint requests from the mark tracker are collected as rectangles and
// coalesced, and large or numerous requests collapse into a full redraw.
package dirty

import (
	"math"

	"github.com/dshills/mousemark/internal/mark"
)

// Region is a dirty rectangle in screen coordinates.
type Region struct {
	mark.Rect
}

// NewRegion creates a region from corner and size.
// Negative sizes are normalized.
func NewRegion(x, y, w, h float64) Region {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return Region{mark.Rect{X: x, Y: y, W: w, H: h}}
}

// Adjacent returns true if two regions touch along an edge with matching
// extent, so that their union covers no extra area.
func (r Region) Adjacent(other Region) bool {
	rm, om := r.Max(), other.Max()
	if r.Y == other.Y && r.H == other.H {
		return rm.X == other.X || om.X == r.X
	}
	if r.X == other.X && r.W == other.W {
		return rm.Y == other.Y || om.Y == r.Y
	}
	return false
}

// Merge combines two regions into a single region that covers both.
// Returns the merged region and true if they overlap or are adjacent.
func (r Region) Merge(other Region) (Region, bool) {
	if !r.Overlaps(other.Rect) && !r.Adjacent(other) {
		return Region{}, false
	}
	return Region{r.Union(other.Rect)}, true
}

// Clip returns the part of the region inside a w by h screen.
func (r Region) Clip(w, h float64) Region {
	return Region{r.Intersect(mark.Rect{W: w, H: h})}
}

// Scale returns the region with every coordinate multiplied by s.
func (r Region) Scale(s float64) Region {
	return Region{mark.Rect{X: r.X * s, Y: r.Y * s, W: r.W * s, H: r.H * s}}
}

// Pixels returns the region grown outward to whole pixels.
func (r Region) Pixels() (x0, y0, x1, y1 int) {
	m := r.Max()
	return int(math.Floor(r.X)), int(math.Floor(r.Y)), int(math.Ceil(m.X)), int(math.Ceil(m.Y))
}
