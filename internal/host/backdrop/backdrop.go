// Package backdrop captures the desktop so window mode can show marks
// over a still of the screen.
package backdrop

import (
	"errors"
	"image"

	"github.com/kbinani/screenshot"
)

// ErrNoDisplay is returned when no active display is found.
var ErrNoDisplay = errors.New("no active display")

// Union returns the smallest rectangle covering every bounds.
func Union(bounds []image.Rectangle) image.Rectangle {
	var u image.Rectangle
	for i, b := range bounds {
		if i == 0 {
			u = b
			continue
		}
		u = u.Union(b)
	}
	return u
}

// Displays returns the bounds of every active display.
func Displays() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return bounds
}

// Capture grabs every display as one image.
func Capture() (*image.RGBA, error) {
	bounds := Displays()
	if len(bounds) == 0 {
		return nil, ErrNoDisplay
	}
	return screenshot.CaptureRect(Union(bounds))
}
