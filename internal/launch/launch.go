// Package launch assembles an application with its configuration,
// logging, reload watcher and desktop integrations. Hosts then drive the
// returned application.
package launch

import (
	"context"
	"io"
	"strings"

	"github.com/dshills/mousemark/internal/app"
	"github.com/dshills/mousemark/internal/config"
	"github.com/dshills/mousemark/internal/config/watcher"
	"github.com/dshills/mousemark/internal/host/lockwatch"
	"github.com/dshills/mousemark/internal/host/tray"
)

// Options configures Start.
type Options struct {
	// ConfigPath is the config file. Empty uses config.PathFromEnv.
	ConfigPath string

	// DotEnv is an optional .env file layered under the environment.
	DotEnv string

	// LogLevel overrides log.level when set.
	LogLevel string

	// LogOutput replaces the log destination, ignoring log.file.
	LogOutput io.Writer

	// Watch reloads the config file when it changes.
	Watch bool

	// LockWatch follows the desktop screen lock state.
	LockWatch bool

	// Tray shows a status icon with the actions.
	Tray bool

	// Width and Height are the initial surface size.
	Width, Height int
}

// Session is a running application and the services around it.
type Session struct {
	App *app.Application
	Log *app.Logger

	opts     Options
	cancel   context.CancelFunc
	cleanups []func()
	closed   bool
}

// bootstrapper runs the init steps in order and unwinds on failure.
type bootstrapper struct {
	ctx  context.Context
	s    *Session
	opts Options
	cfg  *config.Config
}

// Start builds a session. Cancel ctx or call Close to stop the background
// services.
func Start(ctx context.Context, opts Options) (*Session, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.PathFromEnv()
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{opts: opts, cancel: cancel}
	b := &bootstrapper{ctx: ctx, s: s, opts: opts}

	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initApp,
		b.initWatcher,
		b.initLockWatch,
		b.initTray,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Load reads the configuration the session was started with.
func (s *Session) Load() (*config.Config, error) {
	return loadConfig(s.opts)
}

func loadConfig(opts Options) (*config.Config, error) {
	cfgOpts := []config.Option{config.WithFile(opts.ConfigPath)}
	if opts.DotEnv != "" {
		cfgOpts = append(cfgOpts, config.WithDotEnv(opts.DotEnv))
	}
	cfg, err := config.Load(cfgOpts...)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
	}
	return cfg, nil
}

func (b *bootstrapper) initConfig() error {
	cfg, err := loadConfig(b.opts)
	if err != nil {
		return &app.InitError{Component: "config", Err: err}
	}
	b.cfg = cfg
	return nil
}

func (b *bootstrapper) initLogger() error {
	out := b.opts.LogOutput
	if out == nil {
		w, closer, err := app.OpenLogFile(b.cfg.Log.File)
		if err != nil {
			return &app.InitError{Component: "log", Err: err}
		}
		out = w
		b.s.addCleanup(func() { _ = closer() })
	}

	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(b.cfg.Log.Level)
	lc.Output = out
	b.s.Log = app.NewLogger(lc)
	return nil
}

func (b *bootstrapper) initApp() error {
	a, err := app.New(app.Options{
		Config: b.cfg,
		Reload: b.s.Load,
		Logger: b.s.Log,
		Width:  b.opts.Width,
		Height: b.opts.Height,
	})
	if err != nil {
		return err
	}
	b.s.App = a
	b.s.Log = a.Logger()
	b.s.addCleanup(a.Shutdown)
	return nil
}

func (b *bootstrapper) initWatcher() error {
	if !b.opts.Watch || b.cfg.Path() == "" {
		return nil
	}
	log := b.s.Log.WithComponent("watcher")
	w, err := watcher.New(b.cfg.Path(), watcher.WithErrorHandler(func(err error) {
		log.Warn("watch error: %v", err)
	}))
	if err != nil {
		// A missing config directory only disables reloading.
		log.Warn("config reload disabled: %v", err)
		return nil
	}
	w.OnChange(func(ev watcher.Event) {
		log.Debug("%s %s", ev.Op, ev.Path)
		b.s.App.Post(app.ReloadEvent{})
	})
	if err := w.Start(); err != nil {
		_ = w.Close()
		return &app.InitError{Component: "watcher", Err: err}
	}
	b.s.addCleanup(func() { _ = w.Close() })
	return nil
}

func (b *bootstrapper) initLockWatch() error {
	if !b.opts.LockWatch {
		return nil
	}
	lw := lockwatch.New(b.s.App, b.s.Log)
	go func() {
		if err := lw.Run(b.ctx); err != nil {
			b.s.Log.Warn("screen lock detection unavailable: %v", err)
		}
	}()
	return nil
}

func (b *bootstrapper) initTray() error {
	if !b.opts.Tray {
		return nil
	}
	t, err := tray.New(b.s.App, b.cfg.Color(), b.s.Log)
	if err != nil {
		return &app.InitError{Component: "tray", Err: err}
	}
	t.Start()
	b.s.addCleanup(t.Stop)
	return nil
}

func (s *Session) addCleanup(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

// Close stops the background services in reverse start order.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
}
