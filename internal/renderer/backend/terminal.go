package backend

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mousemark/internal/input/key"
	"github.com/dshills/mousemark/internal/mark"
)

// markRune fills every cell a stroke passes through.
const markRune = '█'

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventFocus
	EventInterrupt
)

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  key.Key
	Rune rune
	Mod  key.Modifier

	// Mouse event fields, in cells
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// Focus event fields
	Focused bool

	// Interrupt payload
	Data any
}

// Terminal implements Backend using tcell, one block cell per plotted point.
type Terminal struct {
	screen        tcell.Screen
	resizeHandler func(width, height int)
	mu            sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	// Hover tracking needs motion events, not only drags.
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resizeHandler = callback
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// ClearRect blanks the cells in [x0,x1) x [y0,y1).
func (t *Terminal) ClearRect(x0, y0, x1, y1 int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	for y := max(y0, 0); y < min(y1, h); y++ {
		for x := max(x0, 0); x < min(x1, w); x++ {
			t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// DrawPolyline plots every segment with Bresenham's algorithm.
func (t *Terminal) DrawPolyline(points []mark.Point, style Style) {
	if len(points) < 2 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	c := style.Color
	ts := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	scale := style.DeviceScale()
	w, h := t.screen.Size()

	plot := func(x, y int) {
		if x >= 0 && x < w && y >= 0 && y < h {
			t.screen.SetContent(x, y, markRune, nil, ts)
		}
	}
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i].Scale(scale), points[i+1].Scale(scale)
		PlotLine(cell(a.X), cell(a.Y), cell(b.X), cell(b.Y), plot)
	}
}

// ContentAt returns the rune drawn at a cell.
func (t *Terminal) ContentAt(x, y int) rune {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, _, _, _ := t.screen.GetContent(x, y)
	return r
}

// PollEvent waits for and returns the next terminal event.
// Returns an EventNone with ok=false once the screen is finalized.
func (t *Terminal) PollEvent() (Event, bool) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, false
	}
	return convertEvent(ev, t), true
}

// Interrupt wakes PollEvent with an EventInterrupt carrying data.
func (t *Terminal) Interrupt(data any) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

func cell(v float64) int {
	return int(math.Floor(v))
}

// PlotLine calls plot for every cell on the line from (x0,y0) to (x1,y1),
// both ends included.
func PlotLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func convertEvent(ev tcell.Event, t *Terminal) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, r, mod := convertKey(e.Key(), e.Rune())
		return Event{
			Type: EventKey,
			Key:  k,
			Rune: r,
			Mod:  mod | convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		t.mu.Lock()
		handler := t.resizeHandler
		t.mu.Unlock()
		if handler != nil {
			handler(w, h)
		}
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventFocus:
		return Event{
			Type:    EventFocus,
			Focused: e.Focused,
		}

	case *tcell.EventInterrupt:
		return Event{
			Type: EventInterrupt,
			Data: e.Data(),
		}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts a tcell key to our key, folding control characters
// into a rune plus Ctrl.
func convertKey(k tcell.Key, r rune) (key.Key, rune, key.Modifier) {
	switch k {
	case tcell.KeyRune:
		return key.KeyRune, r, key.ModNone
	case tcell.KeyEscape:
		return key.KeyEscape, 0, key.ModNone
	case tcell.KeyEnter:
		return key.KeyEnter, 0, key.ModNone
	case tcell.KeyTab:
		return key.KeyTab, 0, key.ModNone
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace, 0, key.ModNone
	case tcell.KeyDelete:
		return key.KeyDelete, 0, key.ModNone
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.FunctionKey(int(k-tcell.KeyF1) + 1), 0, key.ModNone
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.KeyRune, 'a' + rune(k-tcell.KeyCtrlA), key.ModCtrl
	}
	return key.KeyNone, 0, key.ModNone
}

// convertMod converts tcell modifier mask to our modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

// convertMouseButton converts tcell button mask to our MouseButton.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button3 != 0:
		return MouseMiddle
	case b&tcell.Button2 != 0:
		return MouseRight
	default:
		return MouseNone
	}
}
