package app

import (
	"github.com/dshills/mousemark/internal/input/key"
	"github.com/dshills/mousemark/internal/mark"
)

// Event is anything a host can deliver to the Application.
type Event interface {
	event()
}

// PointerEvent reports the pointer position and the held modifiers.
type PointerEvent struct {
	Pos  mark.Point
	Mods key.Modifier
}

// TouchPhase is the stage of a touch contact.
type TouchPhase uint8

const (
	TouchDown TouchPhase = iota
	TouchMotion
	TouchUp
)

func (p TouchPhase) String() string {
	switch p {
	case TouchDown:
		return "down"
	case TouchMotion:
		return "motion"
	case TouchUp:
		return "up"
	default:
		return "unknown"
	}
}

// TouchEvent reports one touch contact. Pos is ignored for TouchUp.
type TouchEvent struct {
	Phase TouchPhase
	ID    int32
	Pos   mark.Point
}

// KeyEvent reports a key press, matched against the configured shortcuts.
type KeyEvent struct {
	Key key.Event
}

// LockEvent reports a screen lock state change.
type LockEvent struct {
	Locked bool
}

// ActionEvent requests a named action.
type ActionEvent struct {
	Action Action
}

// ReloadEvent asks the Application to re-read its configuration.
type ReloadEvent struct{}

// ResizeEvent reports a new surface size in logical units and the
// device scale factor. A zero Scale keeps the current one.
type ResizeEvent struct {
	Width, Height int
	Scale         float64
}

// QuitEvent stops the Application.
type QuitEvent struct{}

func (PointerEvent) event() {}
func (TouchEvent) event()   {}
func (KeyEvent) event()     {}
func (LockEvent) event()    {}
func (ActionEvent) event()  {}
func (ReloadEvent) event()  {}
func (ResizeEvent) event()  {}
func (QuitEvent) event()    {}
