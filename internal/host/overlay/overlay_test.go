package overlay

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/mousemark/internal/input/key"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"", BackendGPU, false},
		{"gpu", BackendGPU, false},
		{" Raster ", BackendRaster, false},
		{"opengl", BackendGPU, true},
	}

	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBackend(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModifiersFrom(t *testing.T) {
	held := map[ebiten.Key]bool{ebiten.KeyShift: true, ebiten.KeyMeta: true}
	got := modifiersFrom(func(k ebiten.Key) bool { return held[k] })
	if got != key.ModShift|key.ModMeta {
		t.Errorf("modifiersFrom() = %v, want Shift+Meta", got)
	}

	if got := modifiersFrom(func(ebiten.Key) bool { return false }); got != key.ModNone {
		t.Errorf("modifiersFrom() = %v, want none", got)
	}
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		in   ebiten.Key
		mods key.Modifier
		want key.Event
		ok   bool
	}{
		{"letter", ebiten.KeyC, key.ModCtrl, key.NewRuneEvent('c', key.ModCtrl), true},
		{"last letter", ebiten.KeyZ, key.ModNone, key.NewRuneEvent('z', key.ModNone), true},
		{"digit", ebiten.KeyDigit7, key.ModNone, key.NewRuneEvent('7', key.ModNone), true},
		{"f11", ebiten.KeyF11, key.ModShift | key.ModMeta, key.NewSpecialEvent(key.KeyF11, key.ModShift|key.ModMeta), true},
		{"escape", ebiten.KeyEscape, key.ModNone, key.NewSpecialEvent(key.KeyEscape, key.ModNone), true},
		{"modifier alone", ebiten.KeyShiftLeft, key.ModShift, key.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyEvent(tt.in, tt.mods)
			if ok != tt.ok || got != tt.want {
				t.Errorf("keyEvent() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBackendString(t *testing.T) {
	if BackendGPU.String() != "gpu" || BackendRaster.String() != "raster" {
		t.Errorf("String() = %q, %q", BackendGPU, BackendRaster)
	}
}
