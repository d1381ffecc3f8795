// Package raster paints marks with immediate 2D line drawing into an
// in-memory RGBA image. Hosts upload the image to the screen.
package raster

import (
	"image"
	"image/draw"

	"git.sr.ht/~sbinet/gg"

	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer"
	"github.com/dshills/mousemark/internal/renderer/backend"
)

// Surface is a renderer.Surface backed by a gg context.
type Surface struct {
	img     *image.RGBA
	dc      *gg.Context
	changed image.Rectangle
}

var _ renderer.Surface = (*Surface)(nil)

// NewSurface creates a transparent surface of the given size.
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Resize replaces the backing image. Contents are lost.
func (s *Surface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	s.dc = gg.NewContextForRGBA(s.img)
	s.changed = s.img.Bounds()
}

// Image returns the backing image.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Changed returns the area modified since the last call and resets it.
func (s *Surface) Changed() image.Rectangle {
	r := s.changed
	s.changed = image.Rectangle{}
	return r
}

// BeginFrame clears the repainted area and restricts drawing to it.
func (s *Surface) BeginFrame(f renderer.Frame) {
	s.dc.ResetClip()
	if f.Full {
		draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
		s.changed = s.img.Bounds()
		return
	}

	for _, r := range f.Regions {
		x0, y0, x1, y1 := r.Pixels()
		rect := image.Rect(x0, y0, x1, y1).Intersect(s.img.Bounds())
		draw.Draw(s.img, rect, image.Transparent, image.Point{}, draw.Src)
		s.changed = s.changed.Union(rect)
		s.dc.DrawRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))
	}
	s.dc.Clip()
}

// EndFrame lifts the frame clip.
func (s *Surface) EndFrame() {
	s.dc.ResetClip()
}

// DrawPolyline draws one line per consecutive point pair.
func (s *Surface) DrawPolyline(points []mark.Point, style backend.Style) {
	if len(points) < 2 {
		return
	}
	c := style.Color
	scale := style.DeviceScale()

	s.dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
	s.dc.SetLineWidth(style.DeviceWidth())
	s.dc.SetLineCapRound()
	s.dc.SetLineJoinRound()
	s.dc.MoveTo(points[0].X*scale, points[0].Y*scale)
	for _, p := range points[1:] {
		s.dc.LineTo(p.X*scale, p.Y*scale)
	}
	s.dc.Stroke()
}
