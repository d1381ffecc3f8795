// Package lockwatch reports screen lock changes from the session bus.
package lockwatch

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/dshills/mousemark/internal/app"
)

const (
	screenSaverPath      = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
	screenSaverInterface = "org.freedesktop.ScreenSaver"
	screenSaverService   = "org.freedesktop.ScreenSaver"
	activeChanged        = "ActiveChanged"
)

// Poster accepts application events.
type Poster interface {
	Post(ev app.Event) bool
}

// ParseSignal extracts the lock state from an ActiveChanged signal.
func ParseSignal(sig *dbus.Signal) (locked, ok bool) {
	if sig == nil || sig.Name != screenSaverInterface+"."+activeChanged || len(sig.Body) != 1 {
		return false, false
	}
	locked, ok = sig.Body[0].(bool)
	return locked, ok
}

// Watcher posts a LockEvent whenever the screen saver activates or
// deactivates.
type Watcher struct {
	poster Poster
	log    *app.Logger
}

// New creates a watcher.
func New(poster Poster, log *app.Logger) *Watcher {
	if log == nil {
		log = app.NullLogger
	}
	return &Watcher{poster: poster, log: log.WithComponent("lockwatch")}
}

// Run connects to the session bus and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return app.NewComponentError("lockwatch", "connect session bus", err)
	}
	defer conn.Close()

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(screenSaverPath),
		dbus.WithMatchInterface(screenSaverInterface),
		dbus.WithMatchMember(activeChanged),
	); err != nil {
		return app.NewComponentError("lockwatch", "match "+activeChanged, err)
	}

	signals := make(chan *dbus.Signal, 8)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	var active bool
	obj := conn.Object(screenSaverService, screenSaverPath)
	if err := obj.CallWithContext(ctx, screenSaverInterface+".GetActive", 0).Store(&active); err != nil {
		w.log.Warn("screen saver state unknown: %v", err)
	} else if active {
		w.poster.Post(app.LockEvent{Locked: true})
	}

	return w.consume(ctx, signals)
}

func (w *Watcher) consume(ctx context.Context, signals <-chan *dbus.Signal) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			locked, ok := ParseSignal(sig)
			if !ok {
				continue
			}
			w.log.Debug("screen locked=%v", locked)
			w.poster.Post(app.LockEvent{Locked: locked})
		}
	}
}
