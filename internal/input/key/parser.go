package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Combo is a shortcut: one key plus the exact set of modifiers that must be
// held with it.
type Combo Event

// ParseCombo parses a shortcut like "Shift+Meta+F11", "S-M-F12" or "q".
// The last element is the key; everything before it must be a modifier name.
func ParseCombo(spec string) (Combo, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Combo{}, ErrEmptySpec
	}

	parts := splitSpec(spec)
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Combo{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Combo{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return Combo(NewSpecialEvent(k, mods)), nil
	}
	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return Combo(NewRuneEvent(r, mods)), nil
	}
	return Combo{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParseCombo parses a combo and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseCombo(spec string) Combo {
	c, err := ParseCombo(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// Matches reports whether e triggers the combo. Modifiers must match exactly.
func (c Combo) Matches(e Event) bool {
	if c.Key == KeyNone || c.Key != e.Key || c.Modifiers != e.Modifiers {
		return false
	}
	if c.Key == KeyRune {
		return NewRuneEvent(e.Rune, 0).Rune == c.Rune
	}
	return true
}

// IsZero reports whether the combo is unset.
func (c Combo) IsZero() bool {
	return c.Key == KeyNone
}

// String returns the canonical "Shift+Meta+F11" form.
func (c Combo) String() string {
	if c.Key == KeyNone {
		return ""
	}
	var name string
	switch c.Key {
	case KeyRune:
		name = string(c.Rune)
	default:
		name = c.Key.String()
	}

	var parts []string
	if c.Modifiers.HasShift() {
		parts = append(parts, "Shift")
	}
	if c.Modifiers.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if c.Modifiers.HasAlt() {
		parts = append(parts, "Alt")
	}
	if c.Modifiers.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(append(parts, name), "+")
}

// UnmarshalText implements encoding.TextUnmarshaler so combos can be read
// directly from TOML and YAML documents.
func (c *Combo) UnmarshalText(text []byte) error {
	parsed, err := ParseCombo(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Combo) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
