package mark

import (
	"math"
	"slices"
)

const (
	// ArrowBarbLength is the length of each arrow barb in screen units.
	ArrowBarbLength = 50.0

	// ArrowBarbAngle is the angle between the shaft and each barb.
	ArrowBarbAngle = math.Pi / 6
)

// Mark is an ordered polyline. Consecutive points form the visible segments.
type Mark []Point

// Visible reports whether the mark produces any geometry.
func (m Mark) Visible() bool {
	return len(m) >= 2
}

// Last returns the final point. The mark must not be empty.
func (m Mark) Last() Point {
	return m[len(m)-1]
}

// Clone returns an independent copy of the mark.
func (m Mark) Clone() Mark {
	return slices.Clone(m)
}

// Bounds returns the bounding rectangle of all points.
func (m Mark) Bounds() Rect {
	if len(m) == 0 {
		return Rect{}
	}
	minP, maxP := m[0], m[0]
	for _, p := range m[1:] {
		minP.X, minP.Y = math.Min(minP.X, p.X), math.Min(minP.Y, p.Y)
		maxP.X, maxP.Y = math.Max(maxP.X, p.X), math.Max(maxP.Y, p.Y)
	}
	return BoundingRect(minP, maxP)
}

// CreateArrow builds the six point polyline for an arrow pointing at head.
//
// The tail comes first so that redrawing the arrow from the same tail keeps
// its anchor, and the head comes last so that a freehand stroke continuing
// from this mark starts at the tip. Points 3 and 5 return to the head, which
// lets a single polyline carry the shaft and both barbs.
func CreateArrow(head, tail Point) Mark {
	angle := tail.Sub(head).Angle()
	right := head.Add(Point{
		X: ArrowBarbLength * math.Cos(angle+ArrowBarbAngle),
		Y: ArrowBarbLength * math.Sin(angle+ArrowBarbAngle),
	})
	left := head.Add(Point{
		X: ArrowBarbLength * math.Cos(angle-ArrowBarbAngle),
		Y: ArrowBarbLength * math.Sin(angle-ArrowBarbAngle),
	})
	return Mark{tail, head, right, head, left, head}
}
