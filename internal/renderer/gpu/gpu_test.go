package gpu

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/mousemark/internal/mark"
)

func line(n int) []mark.Point {
	pts := make([]mark.Point, n)
	for i := range pts {
		pts[i] = mark.Pt(float64(i), 0)
	}
	return pts
}

func TestChunks(t *testing.T) {
	tests := []struct {
		name       string
		points     int
		n          int
		wantChunks int
	}{
		{"fits", 10, 512, 1},
		{"exact", 512, 512, 1},
		{"one over", 513, 512, 2},
		{"small chunks", 10, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := line(tt.points)
			chunks := Chunks(pts, tt.n)
			if len(chunks) != tt.wantChunks {
				t.Fatalf("len(Chunks()) = %d, want %d", len(chunks), tt.wantChunks)
			}
			if chunks[0][0] != pts[0] {
				t.Error("first chunk should start at the first point")
			}
			last := chunks[len(chunks)-1]
			if last[len(last)-1] != pts[len(pts)-1] {
				t.Error("last chunk should end at the last point")
			}
			for i := 1; i < len(chunks); i++ {
				prev := chunks[i-1]
				if prev[len(prev)-1] != chunks[i][0] {
					t.Errorf("chunk %d does not continue from chunk %d", i, i-1)
				}
				if len(chunks[i]) > tt.n {
					t.Errorf("chunk %d has %d points, limit %d", i, len(chunks[i]), tt.n)
				}
			}
		})
	}
}

func TestColorize(t *testing.T) {
	vs := make([]ebiten.Vertex, 3)
	Colorize(vs, color.RGBA{R: 0xff, G: 0x80, A: 0xff})

	for i, v := range vs {
		if v.SrcX != 1 || v.SrcY != 1 {
			t.Errorf("vertex %d samples %v,%v; want 1,1", i, v.SrcX, v.SrcY)
		}
		if v.ColorR != 1 || v.ColorB != 0 || v.ColorA != 1 {
			t.Errorf("vertex %d color = %v,%v,%v,%v", i, v.ColorR, v.ColorG, v.ColorB, v.ColorA)
		}
	}
}
