package canvas

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/dshills/mousemark/internal/input/key"
)

func modsFromFyne(m fyne.KeyModifier) key.Modifier {
	var out key.Modifier
	if m&fyne.KeyModifierShift != 0 {
		out |= key.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		out |= key.ModCtrl
	}
	if m&fyne.KeyModifierAlt != 0 {
		out |= key.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		out |= key.ModMeta
	}
	return out
}

func modifierKey(name fyne.KeyName) (key.Modifier, bool) {
	switch name {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		return key.ModShift, true
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		return key.ModCtrl, true
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		return key.ModAlt, true
	case desktop.KeySuperLeft, desktop.KeySuperRight:
		return key.ModMeta, true
	}
	return key.ModNone, false
}

var specialKeys = map[fyne.KeyName]key.Key{
	fyne.KeyEscape:    key.KeyEscape,
	fyne.KeyReturn:    key.KeyEnter,
	fyne.KeyEnter:     key.KeyEnter,
	fyne.KeyTab:       key.KeyTab,
	fyne.KeyBackspace: key.KeyBackspace,
	fyne.KeyDelete:    key.KeyDelete,
	fyne.KeySpace:     key.KeySpace,
	fyne.KeyF1:        key.KeyF1,
	fyne.KeyF2:        key.KeyF2,
	fyne.KeyF3:        key.KeyF3,
	fyne.KeyF4:        key.KeyF4,
	fyne.KeyF5:        key.KeyF5,
	fyne.KeyF6:        key.KeyF6,
	fyne.KeyF7:        key.KeyF7,
	fyne.KeyF8:        key.KeyF8,
	fyne.KeyF9:        key.KeyF9,
	fyne.KeyF10:       key.KeyF10,
	fyne.KeyF11:       key.KeyF11,
	fyne.KeyF12:       key.KeyF12,
}

// keyFromName converts a fyne key name. Letters and digits become runes.
func keyFromName(name fyne.KeyName, mods key.Modifier) (key.Event, bool) {
	if k, ok := specialKeys[name]; ok {
		return key.NewSpecialEvent(k, mods), true
	}
	if len(name) != 1 {
		return key.Event{}, false
	}
	c := rune(name[0])
	switch {
	case c >= 'A' && c <= 'Z':
		return key.NewRuneEvent(c-'A'+'a', mods), true
	case c >= '0' && c <= '9':
		return key.NewRuneEvent(c, mods), true
	}
	return key.Event{}, false
}
