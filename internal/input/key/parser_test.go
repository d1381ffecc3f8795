package key

import (
	"errors"
	"testing"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
		wantMod  Modifier
	}{
		{"Shift+Meta+F11", KeyF11, 0, ModShift | ModMeta},
		{"shift+meta+f12", KeyF12, 0, ModShift | ModMeta},
		{"S-M-F12", KeyF12, 0, ModShift | ModMeta},
		{"Escape", KeyEscape, 0, ModNone},
		{"q", KeyRune, 'q', ModNone},
		{"Ctrl+C", KeyRune, 'c', ModCtrl},
	}

	for _, tt := range tests {
		c, err := ParseCombo(tt.spec)
		if err != nil {
			t.Errorf("ParseCombo(%q) error = %v", tt.spec, err)
			continue
		}
		if c.Key != tt.wantKey {
			t.Errorf("ParseCombo(%q) key = %v, want %v", tt.spec, c.Key, tt.wantKey)
		}
		if c.Rune != tt.wantRune {
			t.Errorf("ParseCombo(%q) rune = %q, want %q", tt.spec, c.Rune, tt.wantRune)
		}
		if c.Modifiers != tt.wantMod {
			t.Errorf("ParseCombo(%q) modifiers = %v, want %v", tt.spec, c.Modifiers, tt.wantMod)
		}
	}
}

func TestParseComboErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+F1", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"Ctrl+F13", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := ParseCombo(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("ParseCombo(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestComboMatches(t *testing.T) {
	clearAll := MustParseCombo("Shift+Meta+F11")

	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"exact", NewSpecialEvent(KeyF11, ModShift|ModMeta), true},
		{"extra modifier", NewSpecialEvent(KeyF11, ModShift|ModMeta|ModCtrl), false},
		{"missing modifier", NewSpecialEvent(KeyF11, ModMeta), false},
		{"other key", NewSpecialEvent(KeyF12, ModShift|ModMeta), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clearAll.Matches(tt.event); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}

	quit := MustParseCombo("q")
	if !quit.Matches(NewRuneEvent('Q', ModNone)) {
		t.Error("rune combos should match regardless of letter case")
	}
	var zero Combo
	if zero.Matches(Event{}) {
		t.Error("zero combo should never match")
	}
}

func TestComboString(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"meta+shift+f11", "Shift+Meta+F11"},
		{"C-A-x", "Ctrl+Alt+x"},
		{"F1", "F1"},
	}

	for _, tt := range tests {
		if got := MustParseCombo(tt.spec).String(); got != tt.want {
			t.Errorf("ParseCombo(%q).String() = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestComboUnmarshalText(t *testing.T) {
	var c Combo
	if err := c.UnmarshalText([]byte("Shift+Meta+F12")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if c.Key != KeyF12 || c.Modifiers != ModShift|ModMeta {
		t.Errorf("UnmarshalText() = %+v, want Shift+Meta+F12", c)
	}
	if err := c.UnmarshalText([]byte("Nope+F1")); err == nil {
		t.Error("UnmarshalText() expected error for unknown modifier")
	}
}

func TestFunctionKey(t *testing.T) {
	if FunctionKey(11) != KeyF11 {
		t.Errorf("FunctionKey(11) = %v, want F11", FunctionKey(11))
	}
	if FunctionKey(0) != KeyNone || FunctionKey(13) != KeyNone {
		t.Error("FunctionKey out of range should return KeyNone")
	}
}
