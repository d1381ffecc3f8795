// Package tray shows a status icon whose menu performs the application
// actions.
package tray

import (
	"bytes"
	"image/color"
	"image/png"
	"sync"

	"git.sr.ht/~sbinet/gg"
	"github.com/getlantern/systray"

	"github.com/dshills/mousemark/internal/app"
)

// IconSize is the edge length of the generated icon in pixels.
const IconSize = 32

// Poster accepts application events.
type Poster interface {
	Post(ev app.Event) bool
}

// Icon renders the tray icon as PNG: a ring in the mark color around a
// short stroke.
func Icon(c color.RGBA) ([]byte, error) {
	dc := gg.NewContext(IconSize, IconSize)
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 255)
	dc.SetLineWidth(3)
	dc.DrawCircle(IconSize/2, IconSize/2, IconSize/2-3)
	dc.Stroke()

	dc.SetLineCapRound()
	dc.DrawLine(IconSize*0.3, IconSize*0.65, IconSize*0.7, IconSize*0.35)
	dc.Stroke()

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Tray owns the status icon.
type Tray struct {
	poster Poster
	icon   []byte
	log    *app.Logger

	once  sync.Once
	ready chan struct{}
}

// New creates a tray that posts to poster.
func New(poster Poster, c color.RGBA, log *app.Logger) (*Tray, error) {
	if log == nil {
		log = app.NullLogger
	}
	icon, err := Icon(c)
	if err != nil {
		return nil, app.NewComponentError("tray", "icon", err)
	}
	return &Tray{
		poster: poster,
		icon:   icon,
		log:    log.WithComponent("tray"),
		ready:  make(chan struct{}),
	}, nil
}

// Start runs the tray loop in the background.
func (t *Tray) Start() {
	go systray.Run(t.onReady, t.onExit)
}

// Ready is closed once the menu exists.
func (t *Tray) Ready() <-chan struct{} {
	return t.ready
}

// Stop removes the icon.
func (t *Tray) Stop() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(t.icon)
	systray.SetTitle("Mouse Mark")
	systray.SetTooltip("Mouse Mark")

	for _, a := range app.Actions {
		item := systray.AddMenuItem(a.Title(), a.Title())
		go t.forward(item.ClickedCh, a)
	}
	t.log.Debug("tray ready")
	t.once.Do(func() { close(t.ready) })
}

func (t *Tray) forward(clicked <-chan struct{}, a app.Action) {
	for range clicked {
		t.post(a)
	}
}

func (t *Tray) post(a app.Action) {
	if !t.poster.Post(app.ActionEvent{Action: a}) {
		t.log.Warn("action %s dropped", a)
	}
}

func (t *Tray) onExit() {
	t.log.Debug("tray closed")
}
