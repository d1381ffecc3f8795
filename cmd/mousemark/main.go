// Package main is the entry point for mousemark.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/dshills/mousemark/internal/config"
	"github.com/dshills/mousemark/internal/host/backdrop"
	"github.com/dshills/mousemark/internal/host/hook"
	"github.com/dshills/mousemark/internal/host/overlay"
	"github.com/dshills/mousemark/internal/host/terminal"
	"github.com/dshills/mousemark/internal/launch"
	"github.com/dshills/mousemark/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// hosts lists the accepted --host values.
var hosts = []string{"overlay", "window", "terminal"}

type options struct {
	host        string
	configPath  string
	logLevel    string
	backend     string
	tray        bool
	backdrop    bool
	noLockWatch bool
	noWatch     bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	be, err := overlay.ParseBackend(opts.backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lopts := launch.Options{
		ConfigPath: opts.configPath,
		DotEnv:     ".env",
		LogLevel:   opts.logLevel,
		Watch:      !opts.noWatch,
		LockWatch:  !opts.noLockWatch,
		Tray:       opts.tray,
	}
	if opts.host == "terminal" {
		// the terminal owns the screen; keep log lines off it
		lopts.Tray = false
		if lopts.LogLevel == "" {
			lopts.LogLevel = "error"
		}
	}

	session, err := launch.Start(ctx, lopts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer session.Close()
	log := session.Log

	switch opts.host {
	case "terminal":
		err = runTerminal(ctx, session)
	case "window":
		err = runWindow(ctx, session, be, opts.backdrop)
	default:
		err = runOverlay(ctx, session, be)
	}
	if err != nil {
		log.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runTerminal(ctx context.Context, s *launch.Session) error {
	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	return terminal.New(s.App, term).Run(ctx)
}

func runOverlay(ctx context.Context, s *launch.Session, be overlay.Backend) error {
	feed := hook.New(s.App, 1, s.Log)
	hookCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := feed.Run(hookCtx); err != nil {
			s.Log.Error("input hook: %v", err)
		}
	}()

	return overlay.Run(ctx, s.App, overlay.Options{Mode: overlay.ModeOverlay, Backend: be})
}

func runWindow(ctx context.Context, s *launch.Session, be overlay.Backend, withBackdrop bool) error {
	opts := overlay.Options{Mode: overlay.ModeWindow, Backend: be}
	if withBackdrop {
		img, err := backdrop.Capture()
		if err != nil {
			s.Log.Warn("backdrop unavailable: %v", err)
		} else {
			opts.Backdrop = img
		}
	}
	return overlay.Run(ctx, s.App, opts)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.host, "host", "overlay", "Host (overlay, window, terminal)")
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.backend, "backend", "gpu", "Paint backend for overlay and window (gpu, raster)")
	flag.BoolVar(&opts.tray, "tray", false, "Show a tray icon with the clear actions")
	flag.BoolVar(&opts.backdrop, "backdrop", false, "Draw over a screenshot in window mode")
	flag.BoolVar(&opts.noLockWatch, "no-lockwatch", false, "Do not follow the screen lock state")
	flag.BoolVar(&opts.noWatch, "no-watch", false, "Do not reload the config file on change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Mousemark - draw on the screen with the mouse\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mousemark [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nHold Shift+Meta to draw freehand, Ctrl+Meta to draw an arrow.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mousemark                        Overlay the desktop\n")
		fmt.Fprintf(os.Stderr, "  mousemark --host window --backdrop  Annotate a screenshot\n")
		fmt.Fprintf(os.Stderr, "  mousemark --host terminal        Draw in the terminal\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Mousemark %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.host = strings.ToLower(opts.host)
	if !slices.Contains(hosts, opts.host) {
		fmt.Fprintf(os.Stderr, "Error: invalid host %q (must be %s)\n", opts.host, strings.Join(hosts, ", "))
		os.Exit(1)
	}
	if opts.logLevel != "" && !slices.Contains(config.LogLevels, strings.ToLower(opts.logLevel)) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be %s)\n", opts.logLevel, strings.Join(config.LogLevels, ", "))
		os.Exit(1)
	}

	return opts
}
