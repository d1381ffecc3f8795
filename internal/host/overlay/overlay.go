// Package overlay shows marks in an ebiten window. In overlay mode the
// window is borderless, transparent and click-through, covering the
// desktop while input arrives from a global hook. In window mode it is
// an ordinary window that reads its own pointer, touch and key input.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dshills/mousemark/internal/app"
	"github.com/dshills/mousemark/internal/input/key"
	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer/gpu"
	"github.com/dshills/mousemark/internal/renderer/raster"
)

// Mode selects how the window behaves.
type Mode int

const (
	// ModeOverlay is a transparent click-through layer over the desktop.
	ModeOverlay Mode = iota
	// ModeWindow is a normal decorated window.
	ModeWindow
)

// Backend selects how frames are painted.
type Backend int

const (
	// BackendGPU strokes triangles on the GPU.
	BackendGPU Backend = iota
	// BackendRaster rasterizes on the CPU and uploads the image.
	BackendRaster
)

// ParseBackend resolves "gpu" or "raster".
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gpu":
		return BackendGPU, nil
	case "raster":
		return BackendRaster, nil
	}
	return BackendGPU, fmt.Errorf("unknown backend %q", s)
}

func (b Backend) String() string {
	if b == BackendRaster {
		return "raster"
	}
	return "gpu"
}

// Options configures the window.
type Options struct {
	Mode    Mode
	Backend Backend
	Title   string

	// Backdrop is drawn under the marks. Only used in window mode.
	Backdrop image.Image
}

// Game implements ebiten.Game on top of an application.
type Game struct {
	ctx  context.Context
	app  *app.Application
	opts Options
	log  *app.Logger

	deviceScale func() float64

	gpu       *gpu.Surface
	raster    *raster.Surface
	rasterImg *ebiten.Image
	backdrop  *ebiten.Image

	width, height int
	scale         float64

	pointer    mark.Point
	mods       key.Modifier
	hasPointer bool
	keys       []ebiten.Key
	touches    []ebiten.TouchID
	active     map[ebiten.TouchID]bool
}

var _ ebiten.Game = (*Game)(nil)

// NewGame creates the game. ctx ends the loop when cancelled.
func NewGame(ctx context.Context, a *app.Application, opts Options) *Game {
	g := &Game{
		ctx:         ctx,
		app:         a,
		opts:        opts,
		log:         a.Logger().WithComponent("overlay"),
		deviceScale: func() float64 { return ebiten.Monitor().DeviceScaleFactor() },
		active:      make(map[ebiten.TouchID]bool),
	}
	switch opts.Backend {
	case BackendRaster:
		g.raster = raster.NewSurface(1, 1)
	default:
		g.gpu = gpu.NewSurface()
	}
	return g
}

// Update polls input in window mode and handles queued events.
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	if g.opts.Mode == ModeWindow {
		if err := g.pollInput(); err != nil {
			return g.finish(err)
		}
	}
	return g.finish(g.app.Drain())
}

func (g *Game) finish(err error) error {
	if errors.Is(err, app.ErrQuit) {
		return ebiten.Termination
	}
	if err != nil {
		g.log.Error("%v", err)
	}
	return nil
}

func (g *Game) pollInput() error {
	scale := g.scaleOrOne()
	mods := modifiersFrom(ebiten.IsKeyPressed)

	x, y := ebiten.CursorPosition()
	pos := mark.Pt(float64(x)/scale, float64(y)/scale)
	if !g.hasPointer || pos != g.pointer || mods != g.mods {
		g.pointer, g.mods, g.hasPointer = pos, mods, true
		if err := g.app.Handle(app.PointerEvent{Pos: pos, Mods: mods}); err != nil {
			return err
		}
	}

	g.pollTouches(scale)

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		ev, ok := keyEvent(k, mods)
		if !ok {
			continue
		}
		if err := g.app.Handle(app.KeyEvent{Key: ev}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) pollTouches(scale float64) {
	for id := range g.active {
		if inpututil.IsTouchJustReleased(id) {
			delete(g.active, id)
			g.app.Touch(app.TouchUp, int32(id), mark.Point{})
		}
	}

	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		pos := mark.Pt(float64(x)/scale, float64(y)/scale)
		if !g.active[id] {
			g.active[id] = true
			g.app.Touch(app.TouchDown, int32(id), pos)
			continue
		}
		g.app.Touch(app.TouchMotion, int32(id), pos)
	}
}

// Draw paints pending damage. The screen is not cleared between frames,
// so nothing is drawn when nothing changed.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.opts.Mode == ModeWindow && g.opts.Backdrop != nil && g.backdrop == nil {
		g.backdrop = ebiten.NewImageFromImage(g.opts.Backdrop)
		if g.gpu != nil {
			g.gpu.SetBackground(g.backdrop)
		}
	}

	if g.gpu != nil {
		g.gpu.SetTarget(screen)
		g.app.Render(g.gpu)
		return
	}
	g.drawRaster(screen)
}

func (g *Game) drawRaster(screen *ebiten.Image) {
	b := screen.Bounds()
	if g.rasterImg == nil || g.rasterImg.Bounds() != b {
		g.raster.Resize(b.Dx(), b.Dy())
		if g.rasterImg != nil {
			g.rasterImg.Deallocate()
		}
		g.rasterImg = ebiten.NewImage(b.Dx(), b.Dy())
	}

	g.app.Render(g.raster)
	if g.raster.Changed().Empty() {
		return
	}
	g.rasterImg.WritePixels(g.raster.Image().Pix)

	screen.Clear()
	if g.backdrop != nil {
		screen.DrawImage(g.backdrop, nil)
	}
	screen.DrawImage(g.rasterImg, nil)
}

// Layout sizes the screen in device pixels and reports size or scale
// changes to the application.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := g.deviceScale()
	if scale <= 0 {
		scale = 1
	}
	if outsideWidth != g.width || outsideHeight != g.height || scale != g.scale {
		g.width, g.height, g.scale = outsideWidth, outsideHeight, scale
		g.app.Post(app.ResizeEvent{Width: outsideWidth, Height: outsideHeight, Scale: scale})
	}
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

func (g *Game) scaleOrOne() float64 {
	if g.scale <= 0 {
		return 1
	}
	return g.scale
}

// Run opens the window and blocks until it closes, ctx is cancelled or
// the application quits.
func Run(ctx context.Context, a *app.Application, opts Options) error {
	g := NewGame(ctx, a, opts)
	ebiten.SetTPS(60)
	ebiten.SetScreenClearedEveryFrame(false)
	if opts.Title == "" {
		opts.Title = "Mouse Mark"
	}
	ebiten.SetWindowTitle(opts.Title)

	var runOpts ebiten.RunGameOptions
	switch opts.Mode {
	case ModeOverlay:
		w, h := ebiten.ScreenSizeInFullscreen()
		ebiten.SetWindowDecorated(false)
		ebiten.SetWindowFloating(true)
		ebiten.SetWindowMousePassthrough(true)
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowPosition(0, 0)
		runOpts.ScreenTransparent = true
		runOpts.InitUnfocused = true
		runOpts.SkipTaskbar = true
	default:
		w, h := 1280, 800
		if opts.Backdrop != nil {
			b := opts.Backdrop.Bounds()
			w, h = b.Dx(), b.Dy()
		}
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetWindowSize(w, h)
	}

	g.log.Info("starting %s backend", opts.Backend)
	err := ebiten.RunGameWithOptions(g, &runOpts)
	a.Shutdown()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
