package mark

import (
	"maps"
	"slices"

	"github.com/dshills/mousemark/internal/input/key"
)

// Channel identifies an input stream. Channel 0 is the pointer.
type Channel int64

// PointerChannel is the channel fed by the primary pointer.
const PointerChannel Channel = 0

// TouchChannel returns the channel used for touch contact id. Channels are
// wider than touch ids so every id, including math.MaxInt32, maps to id+1.
func TouchChannel(id int32) Channel {
	return Channel(id) + 1
}

// Damager receives repaint requests.
type Damager interface {
	// AddRepaint requests a repaint of r.
	AddRepaint(r Rect)
	// AddRepaintFull requests a repaint of the whole screen.
	AddRepaintFull()
}

// Logger is the subset of the application logger the tracker writes to.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Settings is the part of the configuration the tracker reads.
type Settings struct {
	// LineWidth is the stroke width in pixels. Freehand damage rectangles
	// are grown by this much on every side.
	LineWidth int

	// Classifier maps held modifiers to a drawing mode.
	Classifier Classifier

	// TouchDrawEnabled allows touch contacts to draw.
	TouchDrawEnabled bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDamager sets where repaint requests are sent.
func WithDamager(d Damager) Option {
	return func(t *Tracker) {
		if d != nil {
			t.damage = d
		}
	}
}

// WithLogger sets the logger for anomalies.
func WithLogger(l Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// Tracker accumulates input into marks.
type Tracker struct {
	settings Settings
	mode     Mode
	locked   bool

	marks    []Mark
	drawings map[Channel]Mark
	touches  map[int32]struct{}

	damage Damager
	log    Logger
}

// NewTracker creates a tracker in ModeNone with no marks.
func NewTracker(settings Settings, opts ...Option) *Tracker {
	t := &Tracker{
		settings: settings,
		drawings: make(map[Channel]Mark),
		touches:  make(map[int32]struct{}),
		damage:   nopDamager{},
		log:      nopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Configure replaces the settings. Existing marks are kept.
func (t *Tracker) Configure(settings Settings) {
	t.settings = settings
	if t.hasMarks() {
		t.damage.AddRepaintFull()
	}
}

// Settings returns the current settings.
func (t *Tracker) Settings() Settings {
	return t.settings
}

// Mode returns the current drawing mode.
func (t *Tracker) Mode() Mode {
	return t.mode
}

// PointerMoved handles a pointer position update with the modifiers held at
// that moment. Updates are ignored while the screen is locked.
func (t *Tracker) PointerMoved(pos Point, mods key.Modifier) {
	if t.locked {
		return
	}
	t.SetMode(t.settings.Classifier.Classify(mods))
	t.ProcessPoint(PointerChannel, pos)
}

// SetMode switches the drawing mode.
//
// Switching to ModeNone finishes every buffer. Switching to ModeFreehand or
// ModeArrow records each buffer as a completed mark and reseeds it with its
// last point so the stroke continues from where it was.
func (t *Tracker) SetMode(m Mode) {
	if t.mode == m {
		return
	}
	t.mode = m

	if m == ModeNone {
		t.EndDrawAll()
		return
	}

	for _, ch := range t.channels() {
		drawing := t.drawings[ch]
		t.marks = append(t.marks, drawing.Clone())
		if len(drawing) >= 2 {
			t.drawings[ch] = Mark{drawing.Last()}
		}
	}
}

// ProcessPoint feeds one point into the channel's buffer according to the
// current mode.
func (t *Tracker) ProcessPoint(ch Channel, pos Point) {
	switch t.mode {
	case ModeFreehand:
		drawing := t.drawings[ch]
		if len(drawing) == 0 {
			t.drawings[ch] = Mark{pos}
			return
		}
		last := drawing.Last()
		if last == pos {
			return
		}
		t.drawings[ch] = append(drawing, pos)
		t.damage.AddRepaint(BoundingRect(last, pos).Outset(float64(t.settings.LineWidth)))

	case ModeArrow:
		drawing := t.drawings[ch]
		if len(drawing) == 0 {
			t.drawings[ch] = Mark{pos}
			return
		}
		if drawing.Last() == pos {
			return
		}
		t.drawings[ch] = CreateArrow(pos, drawing[0])
		t.damage.AddRepaintFull()
	}
}

// EndDraw moves the channel's buffer into the completed marks.
// Channels without a buffer are ignored.
func (t *Tracker) EndDraw(ch Channel) {
	drawing, ok := t.drawings[ch]
	if !ok {
		return
	}
	t.marks = append(t.marks, drawing)
	delete(t.drawings, ch)
	t.damage.AddRepaintFull()
}

// EndDrawAll moves every buffer into the completed marks in channel order.
func (t *Tracker) EndDrawAll() {
	if len(t.drawings) == 0 {
		return
	}
	for _, ch := range t.channels() {
		t.marks = append(t.marks, t.drawings[ch])
	}
	clear(t.drawings)
	t.damage.AddRepaintFull()
}

// Clear discards every mark, finished or not.
func (t *Tracker) Clear() {
	clear(t.drawings)
	t.marks = nil
	t.damage.AddRepaintFull()
}

// ClearLast undoes one step. While a stroke with visible segments is in
// progress the in-progress buffers are dropped; otherwise the most recently
// completed mark is removed. A buffer holding a single seed point does not
// count as a stroke.
func (t *Tracker) ClearLast() {
	if t.drawingInProgress() {
		clear(t.drawings)
		t.damage.AddRepaintFull()
		return
	}
	if len(t.marks) > 0 {
		t.marks = t.marks[:len(t.marks)-1]
		t.damage.AddRepaintFull()
	}
}

// SetScreenLocked records the screen lock state. Marks are preserved.
// Locking finishes every buffer so strokes do not continue across the lock.
func (t *Tracker) SetScreenLocked(locked bool) {
	wasLocked := t.locked
	t.locked = locked
	if locked && !wasLocked && len(t.drawings) > 0 {
		t.EndDrawAll()
		return
	}
	if t.hasMarks() {
		t.damage.AddRepaintFull()
	}
}

// ScreenLocked reports the last recorded lock state.
func (t *Tracker) ScreenLocked() bool {
	return t.locked
}

// IsActive reports whether the overlay has anything to show.
func (t *Tracker) IsActive() bool {
	return t.hasMarks() && !t.locked
}

// Each calls fn for every renderable mark in draw order: completed marks
// first, then visible in-progress buffers by ascending channel.
func (t *Tracker) Each(fn func(Mark)) {
	for _, m := range t.marks {
		fn(m)
	}
	for _, ch := range t.channels() {
		if d := t.drawings[ch]; d.Visible() {
			fn(d)
		}
	}
}

// Renderable returns the marks Each would visit.
func (t *Tracker) Renderable() []Mark {
	out := make([]Mark, 0, len(t.marks)+len(t.drawings))
	t.Each(func(m Mark) {
		out = append(out, m)
	})
	return out
}

// Marks returns a copy of the completed marks.
func (t *Tracker) Marks() []Mark {
	out := make([]Mark, len(t.marks))
	for i, m := range t.marks {
		out[i] = m.Clone()
	}
	return out
}

// Drawing returns a copy of the channel's in-progress buffer.
func (t *Tracker) Drawing(ch Channel) (Mark, bool) {
	d, ok := t.drawings[ch]
	return d.Clone(), ok
}

// Channels returns the channels that have an in-progress buffer.
func (t *Tracker) Channels() []Channel {
	return t.channels()
}

func (t *Tracker) channels() []Channel {
	return slices.Sorted(maps.Keys(t.drawings))
}

func (t *Tracker) hasMarks() bool {
	return len(t.marks) > 0 || len(t.drawings) > 0
}

func (t *Tracker) drawingInProgress() bool {
	for _, d := range t.drawings {
		if len(d) > 1 {
			return true
		}
	}
	return false
}

type nopDamager struct{}

func (nopDamager) AddRepaint(Rect) {}
func (nopDamager) AddRepaintFull() {}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
