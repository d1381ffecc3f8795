// Package main runs mousemark in a fyne window.
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
	"github.com/dshills/mousemark/internal/host/canvas"
	"github.com/dshills/mousemark/internal/launch"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		logLevel    string
		tray        bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&tray, "tray", false, "Show a tray icon with the clear actions")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Mousemark canvas %s\n", version)
		return 0
	}
	if logLevel != "" && !slices.Contains(config.LogLevels, strings.ToLower(logLevel)) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", logLevel)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := launch.Start(ctx, launch.Options{
		ConfigPath: configPath,
		DotEnv:     ".env",
		LogLevel:   logLevel,
		Watch:      true,
		LockWatch:  true,
		Tray:       tray,
		Width:      1280,
		Height:     800,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer session.Close()

	if err := canvas.Run(ctx, session.App, "Mouse Mark"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
