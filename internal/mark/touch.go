package mark

import (
	"maps"
	"slices"
)

// Touch handlers return true when the event is consumed by the overlay and
// must not reach the windows underneath. Once a touch id has been consumed
// on down, its motion and up events are consumed too, whatever the mode
// becomes in between, so no application ever sees half a touch sequence.

// TouchDown starts a touch contact. It is consumed whenever touch drawing is
// enabled. A second down for an id that is already pressed is logged and
// leaves the existing buffer untouched.
func (t *Tracker) TouchDown(id int32, pos Point) bool {
	t.log.Debug("touch down id=%d pos=%v", id, pos)
	if !t.settings.TouchDrawEnabled {
		return false
	}
	if _, ok := t.touches[id]; ok {
		t.log.Warn("touch %d started twice", id)
		return true
	}
	t.touches[id] = struct{}{}
	t.ProcessPoint(TouchChannel(id), pos)
	return true
}

// TouchMotion moves a touch contact.
func (t *Tracker) TouchMotion(id int32, pos Point) bool {
	if !t.settings.TouchDrawEnabled || t.mode == ModeNone {
		_, ok := t.touches[id]
		return ok
	}
	t.ProcessPoint(TouchChannel(id), pos)
	return true
}

// TouchUp ends a touch contact and finishes its mark. The release is
// consumed only if the matching down was.
func (t *Tracker) TouchUp(id int32) bool {
	t.log.Debug("touch up id=%d", id)
	_, tracked := t.touches[id]
	if tracked || (t.settings.TouchDrawEnabled && t.mode != ModeNone) {
		t.EndDraw(TouchChannel(id))
	}
	if !tracked {
		return false
	}
	delete(t.touches, id)
	return true
}

// ActiveTouches returns the pressed touch ids in ascending order.
func (t *Tracker) ActiveTouches() []int32 {
	return slices.Sorted(maps.Keys(t.touches))
}
