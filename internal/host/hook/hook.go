// Package hook feeds global pointer motion and key presses into the
// application through a system input hook.
package hook

import (
	"context"

	gohook "github.com/robotn/gohook"

	"github.com/dshills/mousemark/internal/app"
	"github.com/dshills/mousemark/internal/input/key"
	"github.com/dshills/mousemark/internal/mark"
)

// Poster accepts application events.
type Poster interface {
	Post(ev app.Event) bool
}

// Modifier mask bits reported by the hook.
const (
	maskShiftL uint16 = 1 << iota
	maskCtrlL
	maskMetaL
	maskAltL
	maskShiftR
	maskCtrlR
	maskMetaR
	maskAltR
)

// Virtual key codes.
const (
	vcEscape    uint16 = 0x0001
	vcBackspace uint16 = 0x000E
	vcTab       uint16 = 0x000F
	vcEnter     uint16 = 0x001C
	vcSpace     uint16 = 0x0039
	vcF1        uint16 = 0x003B
	vcF10       uint16 = 0x0044
	vcF11       uint16 = 0x0057
	vcF12       uint16 = 0x0058
	vcDelete    uint16 = 0x0E53
)

// Letter and digit rows keyed by their first virtual code.
var runeRows = []struct {
	first uint16
	runes string
}{
	{0x0002, "1234567890"},
	{0x0010, "qwertyuiop"},
	{0x001E, "asdfghjkl"},
	{0x002C, "zxcvbnm"},
}

// ModsFromMask converts a hook modifier mask. Left and right keys are
// not distinguished.
func ModsFromMask(mask uint16) key.Modifier {
	var m key.Modifier
	if mask&(maskShiftL|maskShiftR) != 0 {
		m |= key.ModShift
	}
	if mask&(maskCtrlL|maskCtrlR) != 0 {
		m |= key.ModCtrl
	}
	if mask&(maskAltL|maskAltR) != 0 {
		m |= key.ModAlt
	}
	if mask&(maskMetaL|maskMetaR) != 0 {
		m |= key.ModMeta
	}
	return m
}

// KeyFromCode maps a virtual key code to a key and, for KeyRune, its rune.
func KeyFromCode(code uint16) (key.Key, rune) {
	switch code {
	case vcEscape:
		return key.KeyEscape, 0
	case vcBackspace:
		return key.KeyBackspace, 0
	case vcTab:
		return key.KeyTab, 0
	case vcEnter:
		return key.KeyEnter, 0
	case vcSpace:
		return key.KeySpace, 0
	case vcDelete:
		return key.KeyDelete, 0
	case vcF11:
		return key.KeyF11, 0
	case vcF12:
		return key.KeyF12, 0
	}
	if code >= vcF1 && code <= vcF10 {
		return key.FunctionKey(int(code-vcF1) + 1), 0
	}
	for _, row := range runeRows {
		if code >= row.first && int(code-row.first) < len(row.runes) {
			return key.KeyRune, rune(row.runes[code-row.first])
		}
	}
	return key.KeyNone, 0
}

// Translate converts a hook event. Coordinates are divided by scale to
// give logical units.
func Translate(ev gohook.Event, scale float64) (app.Event, bool) {
	if scale <= 0 {
		scale = 1
	}
	switch ev.Kind {
	case gohook.MouseMove, gohook.MouseDrag:
		return app.PointerEvent{
			Pos:  mark.Pt(float64(ev.X)/scale, float64(ev.Y)/scale),
			Mods: ModsFromMask(ev.Mask),
		}, true

	case gohook.KeyHold:
		k, r := KeyFromCode(ev.Keycode)
		if k == key.KeyNone {
			return nil, false
		}
		mods := ModsFromMask(ev.Mask)
		if k == key.KeyRune {
			return app.KeyEvent{Key: key.NewRuneEvent(r, mods)}, true
		}
		return app.KeyEvent{Key: key.NewSpecialEvent(k, mods)}, true
	}
	return nil, false
}

// Feed forwards hook events to a poster.
type Feed struct {
	poster Poster
	scale  float64
	log    *app.Logger
}

// New creates a feed. scale is the device pixel ratio of the hooked
// coordinates.
func New(poster Poster, scale float64, log *app.Logger) *Feed {
	if log == nil {
		log = app.NullLogger
	}
	return &Feed{poster: poster, scale: scale, log: log.WithComponent("hook")}
}

// Run starts the system hook and blocks until ctx is done or the hook
// stops.
func (f *Feed) Run(ctx context.Context) error {
	events := gohook.Start()
	defer gohook.End()
	f.log.Debug("input hook started")

	return f.consume(ctx, events)
}

func (f *Feed) consume(ctx context.Context, events <-chan gohook.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				f.log.Warn("input hook stopped")
				return nil
			}
			if out, ok := Translate(ev, f.scale); ok {
				f.poster.Post(out)
			}
		}
	}
}
