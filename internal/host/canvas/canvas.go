// Package canvas runs mousemark in a fyne window. Marks are retained
// line objects redrawn by fyne; input comes from the widget's hover and
// the window's key events.
package canvas

import (
	"context"
	"errors"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/dshills/mousemark/internal/app"
	"github.com/dshills/mousemark/internal/input/key"
	"github.com/dshills/mousemark/internal/mark"
	rcanvas "github.com/dshills/mousemark/internal/renderer/canvas"
)

// AppID identifies the fyne application for its preferences store.
const AppID = "io.github.dshills.mousemark"

// Poster accepts application events.
type Poster interface {
	Post(ev app.Event) bool
}

// Widget shows marks and reports pointer motion.
type Widget struct {
	widget.BaseWidget

	poster  Poster
	surface *rcanvas.Surface

	mu      sync.Mutex
	pointer mark.Point
	mods    key.Modifier
	size    fyne.Size
}

var (
	_ fyne.Widget       = (*Widget)(nil)
	_ desktop.Hoverable = (*Widget)(nil)
)

// NewWidget creates a widget posting input to poster.
func NewWidget(poster Poster) *Widget {
	w := &Widget{poster: poster}
	w.surface = rcanvas.NewSurface(func() { fyne.Do(w.Refresh) })
	w.ExtendBaseWidget(w)
	return w
}

// Surface returns the surface the application renders into.
func (w *Widget) Surface() *rcanvas.Surface {
	return w.surface
}

// MouseIn starts tracking the pointer.
func (w *Widget) MouseIn(e *desktop.MouseEvent) {
	w.MouseMoved(e)
}

// MouseMoved reports the pointer position and held modifiers.
func (w *Widget) MouseMoved(e *desktop.MouseEvent) {
	w.mu.Lock()
	w.pointer = rcanvas.ToPoint(e.Position)
	w.mods = modsFromFyne(e.Modifier)
	ev := app.PointerEvent{Pos: w.pointer, Mods: w.mods}
	w.mu.Unlock()

	w.poster.Post(ev)
}

// MouseOut releases the modifiers so drawing ends at the edge.
func (w *Widget) MouseOut() {
	w.mu.Lock()
	ev := app.PointerEvent{Pos: w.pointer}
	w.mods = key.ModNone
	w.mu.Unlock()

	w.poster.Post(ev)
}

// KeyDown handles a key press on the window. Modifier keys change the
// drawing mode at the current pointer position, other keys are checked
// against the shortcuts.
func (w *Widget) KeyDown(e *fyne.KeyEvent) {
	w.mu.Lock()
	if m, ok := modifierKey(e.Name); ok {
		w.mods |= m
		ev := app.PointerEvent{Pos: w.pointer, Mods: w.mods}
		w.mu.Unlock()
		w.poster.Post(ev)
		return
	}
	mods := w.mods
	w.mu.Unlock()

	if ke, ok := keyFromName(e.Name, mods); ok {
		w.poster.Post(app.KeyEvent{Key: ke})
	}
}

// KeyUp handles a key release on the window.
func (w *Widget) KeyUp(e *fyne.KeyEvent) {
	m, ok := modifierKey(e.Name)
	if !ok {
		return
	}
	w.mu.Lock()
	w.mods &^= m
	ev := app.PointerEvent{Pos: w.pointer, Mods: w.mods}
	w.mu.Unlock()

	w.poster.Post(ev)
}

func (w *Widget) resized(size fyne.Size) {
	w.mu.Lock()
	changed := size != w.size
	w.size = size
	w.mu.Unlock()

	if changed {
		w.poster.Post(app.ResizeEvent{Width: int(size.Width), Height: int(size.Height), Scale: 1})
	}
}

// CreateRenderer implements fyne.Widget.
func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	return &widgetRenderer{
		widget:     w,
		background: fynecanvas.NewRectangle(color.White),
	}
}

type widgetRenderer struct {
	widget     *Widget
	background *fynecanvas.Rectangle
}

func (r *widgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.widget.resized(size)
}

func (r *widgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *widgetRenderer) Refresh() {
	r.background.Refresh()
}

func (r *widgetRenderer) Objects() []fyne.CanvasObject {
	return append([]fyne.CanvasObject{r.background}, r.widget.surface.Objects()...)
}

func (r *widgetRenderer) Destroy() {}

// Run opens the window and blocks until it closes or the application
// quits.
func Run(ctx context.Context, a *app.Application, title string) error {
	fa := fyneapp.NewWithID(AppID)
	win := fa.NewWindow(title)
	w := NewWidget(a)
	win.SetContent(w)
	win.Resize(fyne.NewSize(1280, 800))
	if dc, ok := win.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(w.KeyDown)
		dc.SetOnKeyUp(w.KeyUp)
	}

	errc := make(chan error, 1)
	go func() {
		err := a.Run(ctx, w.Surface())
		fyne.Do(fa.Quit)
		errc <- err
	}()

	win.ShowAndRun()
	a.Shutdown()

	err := <-errc
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
