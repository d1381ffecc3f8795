// Package host groups the platform front ends that feed input into an
// app.Application and present its frames.
//
//   - overlay: ebiten window, transparent and click-through or ordinary
//   - terminal: tcell full screen session
//   - canvas: fyne window drawing line objects
//   - hook: global pointer and key feed via gohook
//   - lockwatch: screen saver state via D-Bus
//   - tray: status icon menu with the clear actions
//   - backdrop: screen capture shown behind marks in window mode
package host
