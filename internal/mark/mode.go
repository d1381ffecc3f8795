package mark

import "github.com/dshills/mousemark/internal/input/key"

// Mode is the global drawing mode.
type Mode uint8

const (
	// ModeNone means pointer movement is not recorded.
	ModeNone Mode = iota

	// ModeFreehand appends every distinct point to the channel's mark.
	ModeFreehand

	// ModeArrow keeps the first point as the tail and redraws an arrow to
	// the latest point.
	ModeArrow
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeFreehand:
		return "freehand"
	case ModeArrow:
		return "arrow"
	default:
		return "unknown"
	}
}

// Classifier selects a Mode from the modifier keys held during pointer
// movement.
type Classifier struct {
	Freehand key.Modifier
	Arrow    key.Modifier
}

// Classify matches mods exactly against the freehand set, then the arrow set.
// Any other combination, including a superset of either, yields ModeNone.
func (c Classifier) Classify(mods key.Modifier) Mode {
	switch mods {
	case c.Freehand:
		return ModeFreehand
	case c.Arrow:
		return ModeArrow
	default:
		return ModeNone
	}
}
