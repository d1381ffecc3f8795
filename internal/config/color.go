package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors holds the CSS color keywords accepted for mark.color.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"lime":    "#00ff00",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"aqua":    "#00ffff",
	"magenta": "#ff00ff",
	"fuchsia": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"gray":    "#808080",
	"grey":    "#808080",
}

// ParseColor parses a #rgb, #rrggbb, #rrggbbaa or CSS keyword color.
// The alpha channel is always opaque.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	if strings.HasPrefix(v, "#") && len(v) == 9 {
		v = v[:7]
	}

	if len(v) != 4 && len(v) != 7 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
