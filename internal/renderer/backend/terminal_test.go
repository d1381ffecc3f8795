package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mousemark/internal/input/key"
	"github.com/dshills/mousemark/internal/mark"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	sim.SetSize(20, 10)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestTerminalDrawPolyline(t *testing.T) {
	term, _ := newSimTerminal(t)

	term.DrawPolyline([]mark.Point{mark.Pt(1, 1), mark.Pt(4, 1), mark.Pt(4, 3)}, DefaultStyle())

	for _, c := range [][2]int{{1, 1}, {2, 1}, {3, 1}, {4, 1}, {4, 2}, {4, 3}} {
		if got := term.ContentAt(c[0], c[1]); got != markRune {
			t.Errorf("ContentAt(%d, %d) = %q, want %q", c[0], c[1], got, markRune)
		}
	}
	if got := term.ContentAt(0, 0); got == markRune {
		t.Error("ContentAt(0, 0) should be empty")
	}
}

func TestTerminalDrawPolylineClipped(t *testing.T) {
	term, _ := newSimTerminal(t)

	// must not panic when leaving the screen
	term.DrawPolyline([]mark.Point{mark.Pt(-5, -5), mark.Pt(100, 100)}, DefaultStyle())

	if got := term.ContentAt(3, 3); got != markRune {
		t.Errorf("ContentAt(3, 3) = %q, want %q", got, markRune)
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name     string
		in       tcell.Key
		r        rune
		wantKey  key.Key
		wantRune rune
		wantMod  key.Modifier
	}{
		{"rune", tcell.KeyRune, 'q', key.KeyRune, 'q', key.ModNone},
		{"escape", tcell.KeyEscape, 0, key.KeyEscape, 0, key.ModNone},
		{"f11", tcell.KeyF11, 0, key.KeyF11, 0, key.ModNone},
		{"ctrl+c", tcell.KeyCtrlC, 0, key.KeyRune, 'c', key.ModCtrl},
		{"enter is not ctrl+m", tcell.KeyEnter, 0, key.KeyEnter, 0, key.ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, r, mod := convertKey(tt.in, tt.r)
			if k != tt.wantKey || r != tt.wantRune || mod != tt.wantMod {
				t.Errorf("convertKey() = %v, %q, %v; want %v, %q, %v", k, r, mod, tt.wantKey, tt.wantRune, tt.wantMod)
			}
		})
	}
}

func TestConvertMod(t *testing.T) {
	got := convertMod(tcell.ModShift | tcell.ModMeta)
	if got != key.ModShift|key.ModMeta {
		t.Errorf("convertMod() = %v, want Shift+Meta", got)
	}
}

func TestConvertMouseButton(t *testing.T) {
	tests := []struct {
		in   tcell.ButtonMask
		want MouseButton
	}{
		{tcell.ButtonNone, MouseNone},
		{tcell.Button1, MouseLeft},
		{tcell.Button2, MouseRight},
		{tcell.Button3, MouseMiddle},
	}

	for _, tt := range tests {
		if got := convertMouseButton(tt.in); got != tt.want {
			t.Errorf("convertMouseButton(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTerminalPollMouseEvent(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectMouse(5, 6, tcell.ButtonNone, tcell.ModShift)

	for {
		ev, ok := term.PollEvent()
		if !ok {
			t.Fatal("PollEvent() closed before mouse event")
		}
		if ev.Type != EventMouse {
			continue
		}
		if ev.MouseX != 5 || ev.MouseY != 6 {
			t.Errorf("mouse at %d,%d; want 5,6", ev.MouseX, ev.MouseY)
		}
		if ev.Mod != key.ModShift {
			t.Errorf("Mod = %v, want Shift", ev.Mod)
		}
		return
	}
}

func TestTerminalInterrupt(t *testing.T) {
	term, _ := newSimTerminal(t)

	term.Interrupt("wake")

	for {
		ev, ok := term.PollEvent()
		if !ok {
			t.Fatal("PollEvent() closed before interrupt")
		}
		if ev.Type == EventInterrupt {
			if ev.Data != "wake" {
				t.Errorf("Data = %v, want wake", ev.Data)
			}
			return
		}
	}
}

func TestTerminalClearRect(t *testing.T) {
	term, _ := newSimTerminal(t)
	term.DrawPolyline([]mark.Point{mark.Pt(0, 2), mark.Pt(9, 2)}, DefaultStyle())

	term.ClearRect(-3, 0, 5, 4)

	if got := term.ContentAt(2, 2); got == markRune {
		t.Error("ContentAt(2, 2) should be cleared")
	}
	if got := term.ContentAt(7, 2); got != markRune {
		t.Errorf("ContentAt(7, 2) = %q, want %q", got, markRune)
	}
}
