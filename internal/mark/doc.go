// Package mark implements the annotation core: it turns pointer and touch
// movement into polylines ("marks") that hosts paint on top of the screen.
//
// # Overview
//
// A Tracker owns three pieces of state:
//
//   - Completed marks, in the order they were finished
//   - In-progress buffers, one per input channel
//   - The active touch set, the raw touch ids currently pressed
//
// Channel 0 is the primary pointer. Touch contact N uses channel N+1 so that
// touch ids never collide with the pointer.
//
// # Modes
//
// The drawing Mode is global. A Classifier maps the currently held modifier
// keys to a Mode by exact match: the freehand set wins, then the arrow set,
// anything else is ModeNone. Leaving ModeNone or switching between freehand
// and arrow finishes the current buffers and reseeds each one with its last
// point, so a stroke continues without a visible jump. Entering ModeNone
// finishes every buffer.
//
// # Damage
//
// Every mutation reports what must be repainted through a Damager: a single
// rectangle for a freehand segment, the whole screen for everything else.
//
// # Concurrency
//
// Tracker is not safe for concurrent use. Hosts serialize events onto one
// goroutine (see package app) and paint from that same goroutine.
package mark
