package mark

import "testing"

func TestBoundingRect(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want Rect
	}{
		{"ordered", Pt(0, 0), Pt(10, 5), Rect{X: 0, Y: 0, W: 10, H: 5}},
		{"reversed", Pt(10, 5), Pt(0, 0), Rect{X: 0, Y: 0, W: 10, H: 5}},
		{"offset", Pt(100, 200), Pt(110, 190), Rect{X: 100, Y: 190, W: 10, H: 10}},
		{"horizontal", Pt(3, 4), Pt(8, 4), Rect{X: 3, Y: 4, W: 5, H: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundingRect(tt.a, tt.b); got != tt.want {
				t.Errorf("BoundingRect(%v, %v) = %+v, want %+v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectOutset(t *testing.T) {
	r := Rect{X: 100, Y: 190, W: 10, H: 10}.Outset(3)
	want := Rect{X: 97, Y: 187, W: 16, H: 16}
	if r != want {
		t.Errorf("Outset(3) = %+v, want %+v", r, want)
	}
}

func TestRectUnionIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 10, H: 10}

	if got, want := a.Union(b), (Rect{X: 0, Y: 0, W: 15, H: 15}); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
	if got, want := a.Intersect(b), (Rect{X: 5, Y: 5, W: 5, H: 5}); got != want {
		t.Errorf("Intersect() = %+v, want %+v", got, want)
	}
	if !a.Overlaps(b) {
		t.Error("Overlaps() = false, want true")
	}

	far := Rect{X: 50, Y: 50, W: 1, H: 1}
	if a.Overlaps(far) {
		t.Error("Overlaps() = true for disjoint rects")
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union(empty) = %+v, want %+v", got, a)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty.Union(a) = %+v, want %+v", got, a)
	}
}

func TestRectArea(t *testing.T) {
	if got := (Rect{W: 4, H: 5}).Area(); got != 20 {
		t.Errorf("Area() = %v, want 20", got)
	}
	if got := (Rect{W: -4, H: 5}).Area(); got != 0 {
		t.Errorf("Area() of inverted rect = %v, want 0", got)
	}
}
