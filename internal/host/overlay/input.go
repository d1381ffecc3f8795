package overlay

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/mousemark/internal/input/key"
)

var letterKeys = [...]ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
	ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
	ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
	ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
	ebiten.KeyY, ebiten.KeyZ,
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var functionKeys = [...]ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
	ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
}

// ebitenKeys maps ebiten keys to keys and runes.
var ebitenKeys = func() map[ebiten.Key]key.Event {
	m := map[ebiten.Key]key.Event{
		ebiten.KeyEscape:    key.NewSpecialEvent(key.KeyEscape, key.ModNone),
		ebiten.KeyEnter:     key.NewSpecialEvent(key.KeyEnter, key.ModNone),
		ebiten.KeyTab:       key.NewSpecialEvent(key.KeyTab, key.ModNone),
		ebiten.KeyBackspace: key.NewSpecialEvent(key.KeyBackspace, key.ModNone),
		ebiten.KeyDelete:    key.NewSpecialEvent(key.KeyDelete, key.ModNone),
		ebiten.KeySpace:     key.NewSpecialEvent(key.KeySpace, key.ModNone),
	}
	for i, k := range letterKeys {
		m[k] = key.NewRuneEvent('a'+rune(i), key.ModNone)
	}
	for i, k := range digitKeys {
		m[k] = key.NewRuneEvent('0'+rune(i), key.ModNone)
	}
	for i, k := range functionKeys {
		m[k] = key.NewSpecialEvent(key.FunctionKey(i+1), key.ModNone)
	}
	return m
}()

// keyEvent converts a pressed ebiten key with the held modifiers.
// Modifier keys themselves and unmapped keys report false.
func keyEvent(k ebiten.Key, mods key.Modifier) (key.Event, bool) {
	ev, ok := ebitenKeys[k]
	if !ok {
		return key.Event{}, false
	}
	ev.Modifiers = mods
	return ev, true
}

// modifiersFrom collects the held modifiers using pressed.
func modifiersFrom(pressed func(ebiten.Key) bool) key.Modifier {
	var m key.Modifier
	if pressed(ebiten.KeyShift) {
		m |= key.ModShift
	}
	if pressed(ebiten.KeyControl) {
		m |= key.ModCtrl
	}
	if pressed(ebiten.KeyAlt) {
		m |= key.ModAlt
	}
	if pressed(ebiten.KeyMeta) {
		m |= key.ModMeta
	}
	return m
}
