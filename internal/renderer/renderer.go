package renderer

import (
	"sync"

	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer/backend"
	"github.com/dshills/mousemark/internal/renderer/dirty"
)

// Source provides the marks to draw.
// *mark.Tracker implements it.
type Source interface {
	// Each visits renderable marks in draw order.
	Each(fn func(mark.Mark))

	// IsActive reports whether anything should be shown at all.
	IsActive() bool
}

// Frame describes the area a repaint covers.
type Frame struct {
	// Full is set when the whole surface must be repainted.
	Full bool

	// Regions lists the dirty rectangles of a partial repaint, in
	// device pixels.
	Regions []dirty.Region

	// Style is the stroke used for the frame.
	Style backend.Style
}

// Surface is a backend that is told about frame boundaries.
type Surface interface {
	backend.Backend

	// BeginFrame clears the area the frame covers.
	BeginFrame(f Frame)

	// EndFrame presents the frame.
	EndFrame()
}

// Paint submits every renderable mark from src to b and returns the number
// of polylines drawn.
func Paint(src Source, b backend.Backend, style backend.Style) int {
	n := 0
	src.Each(func(m mark.Mark) {
		if !m.Visible() {
			return
		}
		b.DrawPolyline(m, style)
		n++
	})
	return n
}

// Renderer is the main rendering facade.
type Renderer struct {
	mu sync.RWMutex

	source Source
	damage *dirty.Tracker
	style  backend.Style

	frameCount uint64
	lastDrawn  int
}

// New creates a renderer that paints src whenever damage is dirty.
func New(src Source, damage *dirty.Tracker, style backend.Style) *Renderer {
	r := &Renderer{
		source: src,
		damage: damage,
		style:  style,
	}
	// First frame always paints the whole surface.
	damage.AddRepaintFull()
	return r
}

// SetStyle changes the stroke and schedules a full repaint.
func (r *Renderer) SetStyle(style backend.Style) {
	r.mu.Lock()
	r.style = style
	r.mu.Unlock()

	r.damage.AddRepaintFull()
}

// Style returns the current stroke.
func (r *Renderer) Style() backend.Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.style
}

// Resize updates the surface size and schedules a full repaint.
func (r *Renderer) Resize(width, height int) {
	r.damage.SetScreenSize(width, height)
}

// NeedsRender reports whether a frame is pending.
func (r *Renderer) NeedsRender() bool {
	return r.damage.IsDirty()
}

// Render paints a frame onto s if anything is dirty.
// Returns false when no frame was needed.
func (r *Renderer) Render(s Surface) bool {
	regions, full := r.damage.Take()
	if !full && len(regions) == 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if scale := r.style.DeviceScale(); scale != 1 {
		for i := range regions {
			regions[i] = regions[i].Scale(scale)
		}
	}
	f := Frame{Full: full, Regions: regions, Style: r.style}
	s.BeginFrame(f)
	r.lastDrawn = 0
	if r.source.IsActive() {
		r.lastDrawn = Paint(r.source, s, r.style)
	}
	s.EndFrame()
	r.frameCount++
	return true
}

// Stats returns frame counters.
func (r *Renderer) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{Frames: r.frameCount, LastDrawn: r.lastDrawn}
}

// Stats contains renderer counters.
type Stats struct {
	Frames    uint64
	LastDrawn int
}
