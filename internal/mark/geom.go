package mark

import "math"

// Point is a screen-space coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Angle returns the direction of p as a vector, in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// BoundingRect returns the smallest rectangle containing a and b.
func BoundingRect(a, b Point) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Outset grows the rectangle by d on every side.
func (r Rect) Outset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.X + r.W, Y: r.Y + r.H}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Union returns the smallest rectangle containing r and o.
// Empty rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	minX, minY := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	rm, om := r.Max(), o.Max()
	maxX, maxY := math.Max(rm.X, om.X), math.Max(rm.Y, om.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Intersect returns the overlap of r and o, or an empty Rect.
func (r Rect) Intersect(o Rect) Rect {
	minX, minY := math.Max(r.X, o.X), math.Max(r.Y, o.Y)
	rm, om := r.Max(), o.Max()
	maxX, maxY := math.Min(rm.X, om.X), math.Min(rm.Y, om.Y)
	if maxX <= minX || maxY <= minY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// Area returns W*H, or 0 for empty rectangles.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.W * r.H
}
