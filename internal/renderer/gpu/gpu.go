// Package gpu paints marks with ebiten's triangulated line strips.
package gpu

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer"
	"github.com/dshills/mousemark/internal/renderer/backend"
)

// maxChunkPoints bounds one stroke batch so its vertices fit 16-bit indices.
const maxChunkPoints = 512

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns a one pixel white source image for DrawTriangles.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Surface is a renderer.Surface drawing into an ebiten image.
type Surface struct {
	target     *ebiten.Image
	background *ebiten.Image
	clips      []*ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

var _ renderer.Surface = (*Surface)(nil)

// NewSurface creates a surface with no target.
func NewSurface() *Surface {
	return &Surface{}
}

// SetTarget sets the image frames are drawn into, usually the screen passed
// to ebiten.Game.Draw.
func (s *Surface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// SetBackground sets an image drawn under the marks. Nil means transparent.
func (s *Surface) SetBackground(img *ebiten.Image) {
	s.background = img
}

// BeginFrame clears the repainted area, restoring the background there.
func (s *Surface) BeginFrame(f renderer.Frame) {
	s.clips = s.clips[:0]
	if s.target == nil {
		return
	}
	if f.Full {
		s.clips = append(s.clips, s.target)
	} else {
		for _, r := range f.Regions {
			x0, y0, x1, y1 := r.Pixels()
			sub, ok := s.target.SubImage(image.Rect(x0, y0, x1, y1)).(*ebiten.Image)
			if ok {
				s.clips = append(s.clips, sub)
			}
		}
	}
	for _, clip := range s.clips {
		clip.Clear()
		if s.background != nil {
			clip.DrawImage(s.background, nil)
		}
	}
}

// EndFrame drops the frame's clip images.
func (s *Surface) EndFrame() {
	s.clips = s.clips[:0]
}

// DrawPolyline strokes the points as one connected path into every clip of
// the current frame.
func (s *Surface) DrawPolyline(points []mark.Point, style backend.Style) {
	if len(points) < 2 || len(s.clips) == 0 {
		return
	}
	op := &vector.StrokeOptions{
		Width:    float32(style.DeviceWidth()),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	dop := &ebiten.DrawTrianglesOptions{AntiAlias: true}

	for _, chunk := range Chunks(points, maxChunkPoints) {
		path := BuildPath(chunk, style.DeviceScale())
		s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)
		Colorize(s.vertices, style.Color)
		for _, clip := range s.clips {
			clip.DrawTriangles(s.vertices, s.indices, white(), dop)
		}
	}
}

// BuildPath converts points to a vector path in device pixels.
func BuildPath(points []mark.Point, scale float64) *vector.Path {
	var path vector.Path
	for i, p := range points {
		x, y := float32(p.X*scale), float32(p.Y*scale)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	return &path
}

// Colorize sets every vertex to sample the white pixel tinted with c.
func Colorize(vs []ebiten.Vertex, c color.RGBA) {
	r, g, b, a := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
}

// Chunks splits a polyline into pieces of at most n points. Neighbouring
// pieces share their boundary point so the line stays connected.
func Chunks(points []mark.Point, n int) [][]mark.Point {
	if n < 2 {
		n = 2
	}
	if len(points) <= n {
		return [][]mark.Point{points}
	}
	var out [][]mark.Point
	for start := 0; start < len(points)-1; start += n - 1 {
		end := min(start+n, len(points))
		out = append(out, points[start:end])
	}
	return out
}
