package key

import "unicode"

// Event is a key press reported by a host, already stripped of any
// host-specific encoding.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// NewRuneEvent creates a key event for a character.
// Letters are folded to lower case so that Shift is carried only by Modifiers.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: mods}
}

// String returns the event in combo notation, e.g. "Shift+Meta+F11".
func (e Event) String() string {
	return Combo(e).String()
}
