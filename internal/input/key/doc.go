// Package key provides modifier and shortcut types shared by every input
// host.
//
// Hosts translate their native modifier state (ebiten key polling, gohook
// mask bits, tcell modifier masks, fyne desktop modifiers) into a Modifier
// value. Two Modifier values drive drawing: the freehand trigger set and the
// arrow trigger set. Shortcuts such as "Shift+Meta+F11" are parsed into a
// Combo and matched against Event values reported by the host.
//
// # Combo Specifications
//
//   - With modifiers: "Shift+Meta+F11", "Ctrl+Alt+C"
//   - Compact form: "S-M-F12"
//   - Bare keys: "Escape", "q"
package key
