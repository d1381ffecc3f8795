// Package terminal runs mousemark inside a terminal. Cells are points,
// mouse motion with modifiers draws, and marks are block characters.
package terminal

import (
	"context"
	"errors"

	"github.com/dshills/mousemark/internal/app"
	"github.com/dshills/mousemark/internal/input/key"
	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer"
	"github.com/dshills/mousemark/internal/renderer/backend"
)

// Surface presents frames on a terminal backend.
type Surface struct {
	term *backend.Terminal
}

var _ renderer.Surface = (*Surface)(nil)

// NewSurface wraps term.
func NewSurface(term *backend.Terminal) *Surface {
	return &Surface{term: term}
}

// BeginFrame blanks the repainted cells.
func (s *Surface) BeginFrame(f renderer.Frame) {
	if f.Full {
		s.term.Clear()
		return
	}
	for _, r := range f.Regions {
		x0, y0, x1, y1 := r.Pixels()
		s.term.ClearRect(x0, y0, x1, y1)
	}
}

// DrawPolyline plots the stroke.
func (s *Surface) DrawPolyline(points []mark.Point, style backend.Style) {
	s.term.DrawPolyline(points, style)
}

// EndFrame flushes the screen.
func (s *Surface) EndFrame() {
	s.term.Show()
}

// Host owns a terminal session.
type Host struct {
	app  *app.Application
	term *backend.Terminal
	log  *app.Logger
}

// New creates a host. term must not be initialized yet.
func New(a *app.Application, term *backend.Terminal) *Host {
	return &Host{app: a, term: term, log: a.Logger().WithComponent("terminal")}
}

// Run initializes the terminal and blocks until quit or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	if err := h.term.Init(); err != nil {
		return &app.InitError{Component: "terminal", Err: err}
	}
	defer h.term.Shutdown()

	w, ht := h.term.Size()
	h.log.Debug("terminal %dx%d", w, ht)
	h.app.Post(app.ResizeEvent{Width: w, Height: ht, Scale: 1})

	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		h.pollLoop()
	}()

	err := h.app.Run(ctx, NewSurface(h.term))
	h.app.Shutdown()
	h.term.Interrupt(nil)
	<-pollDone
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

func (h *Host) pollLoop() {
	for {
		ev, ok := h.term.PollEvent()
		if !ok {
			return
		}
		if ev.Type == backend.EventInterrupt {
			select {
			case <-h.app.Done():
				return
			default:
			}
			continue
		}
		if out, ok := Translate(ev); ok {
			h.app.Post(out)
		}
	}
}

// Translate converts a terminal event to an application event.
// Ctrl+C, Escape and q quit.
func Translate(ev backend.Event) (app.Event, bool) {
	switch ev.Type {
	case backend.EventMouse:
		return app.PointerEvent{
			Pos:  mark.Pt(float64(ev.MouseX), float64(ev.MouseY)),
			Mods: ev.Mod,
		}, true

	case backend.EventKey:
		if isQuitKey(ev) {
			return app.QuitEvent{}, true
		}
		if ev.Key == key.KeyRune {
			return app.KeyEvent{Key: key.NewRuneEvent(ev.Rune, ev.Mod)}, true
		}
		return app.KeyEvent{Key: key.NewSpecialEvent(ev.Key, ev.Mod)}, true

	case backend.EventResize:
		return app.ResizeEvent{Width: ev.Width, Height: ev.Height, Scale: 1}, true
	}
	return nil, false
}

func isQuitKey(ev backend.Event) bool {
	switch {
	case ev.Key == key.KeyEscape && ev.Mod == key.ModNone:
		return true
	case ev.Key == key.KeyRune && ev.Mod == key.ModCtrl && (ev.Rune == 'c' || ev.Rune == 'C'):
		return true
	case ev.Key == key.KeyRune && ev.Mod == key.ModNone && ev.Rune == 'q':
		return true
	}
	return false
}
