// Package app wires the mark tracker, damage tracking and rendering
// together and owns the single goroutine that mutates them.
//
// Hosts deliver input from any goroutine with Post. The owning goroutine
// drains the queue (Drain from a host tick, or Run) and paints frames
// with Render.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mousemark/internal/config"
	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer"
	"github.com/dshills/mousemark/internal/renderer/dirty"
)

// DefaultQueueSize is the event queue capacity used when Options leaves it zero.
const DefaultQueueSize = 1024

// Application is the central coordinator for mousemark.
type Application struct {
	mu sync.RWMutex

	cfg    *config.Config
	reload func() (*config.Config, error)
	scale  float64

	tracker  *mark.Tracker
	damage   *dirty.Tracker
	renderer *renderer.Renderer
	metrics  *Metrics

	log     *Logger
	session string

	events    chan Event
	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// Options configures the application.
type Options struct {
	// Config is the initial configuration. Required.
	Config *config.Config

	// Reload produces a fresh configuration for ReloadEvent.
	// When nil, reload requests are ignored.
	Reload func() (*config.Config, error)

	// Logger defaults to a stderr logger at the configured level.
	Logger *Logger

	// Width and Height are the initial surface size in logical units.
	Width, Height int

	// Scale is the device pixel ratio. Zero means 1.
	Scale float64

	// QueueSize is the event queue capacity.
	QueueSize int
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Config == nil {
		return nil, &InitError{Component: "config", Err: errors.New("no configuration")}
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}

	log := opts.Logger
	if log == nil {
		cfg := DefaultLoggerConfig()
		cfg.Level = ParseLogLevel(opts.Config.Log.Level)
		log = NewLogger(cfg)
	}
	session := uuid.NewString()
	log = log.WithField("session", session)

	damage := dirty.NewTracker(opts.Width, opts.Height)
	tracker := mark.NewTracker(opts.Config.MarkSettings(),
		mark.WithDamager(damage),
		mark.WithLogger(log.WithComponent("mark")),
	)

	app := &Application{
		cfg:      opts.Config,
		reload:   opts.Reload,
		scale:    opts.Scale,
		tracker:  tracker,
		damage:   damage,
		renderer: renderer.New(tracker, damage, opts.Config.Style(opts.Scale)),
		metrics:  NewMetrics(),
		log:      log,
		session:  session,
		events:   make(chan Event, opts.QueueSize),
		done:     make(chan struct{}),
	}
	for _, w := range opts.Config.Warnings() {
		log.WithComponent("config").Warn("%s", w)
	}
	return app, nil
}

// Post queues ev for the owning goroutine. Safe for concurrent use.
// Returns false when the queue is full or the application has stopped.
func (app *Application) Post(ev Event) bool {
	select {
	case <-app.done:
		return false
	default:
	}

	select {
	case app.events <- ev:
		return true
	default:
		app.metrics.RecordEventDropped()
		app.log.Warn("event queue full, dropping %T", ev)
		return false
	}
}

// Drain handles every queued event without blocking.
// Returns ErrQuit once a quit has been handled.
func (app *Application) Drain() error {
	for {
		select {
		case ev := <-app.events:
			if err := app.Handle(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return err
				}
				app.log.Error("%v", err)
			}
		default:
			if app.stopped() {
				return ErrQuit
			}
			return nil
		}
	}
}

// Run handles events and paints s at up to 60 frames per second until
// ctx is cancelled or a quit is requested.
func (app *Application) Run(ctx context.Context, s renderer.Surface) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	const (
		targetFPS = 60
		frameTime = time.Second / targetFPS
	)

	frameTicker := time.NewTicker(frameTime)
	defer frameTicker.Stop()

	app.Render(s)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-app.done:
			return nil

		case ev := <-app.events:
			if err := app.Handle(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				app.log.Error("%v", err)
			}

		case <-frameTicker.C:
			app.Render(s)
		}
	}
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Handle processes one event on the calling goroutine, which must be the
// owning goroutine.
func (app *Application) Handle(ev Event) error {
	start := time.Now()
	defer func() { app.metrics.RecordEvent(time.Since(start)) }()

	switch e := ev.(type) {
	case PointerEvent:
		app.tracker.PointerMoved(e.Pos, e.Mods)
	case TouchEvent:
		app.Touch(e.Phase, e.ID, e.Pos)
	case KeyEvent:
		if a, ok := app.ShortcutFor(e); ok {
			return app.Perform(a)
		}
	case LockEvent:
		app.log.Debug("screen locked: %v", e.Locked)
		app.tracker.SetScreenLocked(e.Locked)
	case ActionEvent:
		return app.Perform(e.Action)
	case ReloadEvent:
		app.reloadConfig()
	case ResizeEvent:
		app.resize(e)
	case QuitEvent:
		return app.Perform(ActionQuit)
	}
	return nil
}

// Touch forwards a touch contact and reports whether it was consumed.
// Call only from the owning goroutine.
func (app *Application) Touch(phase TouchPhase, id int32, pos mark.Point) bool {
	switch phase {
	case TouchDown:
		return app.tracker.TouchDown(id, pos)
	case TouchMotion:
		return app.tracker.TouchMotion(id, pos)
	case TouchUp:
		return app.tracker.TouchUp(id)
	}
	return false
}

// ShortcutFor returns the action bound to a key press.
func (app *Application) ShortcutFor(e KeyEvent) (Action, bool) {
	cfg := app.Config()
	switch {
	case cfg.ClearAll().Matches(e.Key):
		return ActionClearAll, true
	case cfg.ClearLast().Matches(e.Key):
		return ActionClearLast, true
	}
	return "", false
}

// Perform runs an action. ActionQuit stops the application and returns ErrQuit.
func (app *Application) Perform(a Action) error {
	switch a {
	case ActionClearAll:
		app.log.Debug("clear all marks")
		app.tracker.Clear()
	case ActionClearLast:
		app.log.Debug("clear last mark")
		app.tracker.ClearLast()
	case ActionQuit:
		app.Shutdown()
		return ErrQuit
	default:
		return NewOperationError("perform", string(a), ErrUnknownAction)
	}
	return nil
}

// Render paints a frame onto s if anything changed.
func (app *Application) Render(s renderer.Surface) bool {
	start := time.Now()
	if !app.renderer.Render(s) {
		return false
	}
	app.metrics.RecordFrame(time.Since(start))
	return true
}

// ApplyConfig switches to cfg. Existing marks keep their points and are
// repainted with the new style.
func (app *Application) ApplyConfig(cfg *config.Config) {
	app.mu.Lock()
	app.cfg = cfg
	scale := app.scale
	app.mu.Unlock()

	app.log.SetLevel(ParseLogLevel(cfg.Log.Level))
	app.tracker.Configure(cfg.MarkSettings())
	app.renderer.SetStyle(cfg.Style(scale))
	for _, w := range cfg.Warnings() {
		app.log.WithComponent("config").Warn("%s", w)
	}
}

func (app *Application) reloadConfig() {
	if app.reload == nil {
		return
	}
	cfg, err := app.reload()
	if err != nil {
		app.log.WithComponent("config").Error("reload failed, keeping previous settings: %v", err)
		return
	}
	app.log.Info("configuration reloaded")
	app.ApplyConfig(cfg)
}

func (app *Application) resize(e ResizeEvent) {
	app.mu.Lock()
	scaleChanged := e.Scale > 0 && e.Scale != app.scale
	if scaleChanged {
		app.scale = e.Scale
	}
	cfg, scale := app.cfg, app.scale
	app.mu.Unlock()

	app.renderer.Resize(e.Width, e.Height)
	if scaleChanged {
		app.renderer.SetStyle(cfg.Style(scale))
	}
}

// Shutdown stops Run and makes further Post calls fail.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() {
		app.log.Debug("shutting down")
		close(app.done)
	})
}

// Done is closed by Shutdown.
func (app *Application) Done() <-chan struct{} {
	return app.done
}

func (app *Application) stopped() bool {
	select {
	case <-app.done:
		return true
	default:
		return false
	}
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Tracker returns the mark tracker. Only the owning goroutine may mutate it.
func (app *Application) Tracker() *mark.Tracker {
	return app.tracker
}

// Renderer returns the frame renderer.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.log
}

// Session returns the id tagged on every log record of this instance.
func (app *Application) Session() string {
	return app.session
}

// Metrics returns the event and frame counters.
func (app *Application) Metrics() MetricsSnapshot {
	return app.metrics.Snapshot()
}
