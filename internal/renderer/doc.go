// Package renderer paints marks onto a drawing surface.
//
// The renderer is responsible for:
//   - Deciding when a frame is needed, from the dirty region tracker
//   - Preparing the surface for a full or partial repaint
//   - Submitting every renderable mark as one polyline, in draw order
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│   mark.Tracker    │   dirty.Tracker     │
//	├─────────────────────────────────────────┤
//	│      Surface / backend.Backend          │
//	├─────────────────────────────────────────┤
//	│ gpu (ebiten) │ raster (gg) │ canvas     │
//	│ (fyne)       │ terminal (tcell)         │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	damage := dirty.NewTracker(w, h)
//	tracker := mark.NewTracker(settings, mark.WithDamager(damage))
//	r := renderer.New(tracker, damage, style)
//	r.Render(surface)
package renderer
