// Package confsource wires the config source to the daemon's command line
// and downstream output.
package confsource

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kart-io/confsource/pkg/infra/app"
	"github.com/kart-io/confsource/pkg/source"
	"github.com/kart-io/logger"
)

const (
	appName        = "confsource"
	appDescription = `confsource - hot-reloading config update stream

Watches one filesystem path and emits a continuous stream of JSON update
messages on stdout, one per line.

If the watched path is executable it is run as a long-lived subprocess and
each stdout line it prints becomes one update. Otherwise the path is parsed
once as a single JSON document. Whenever the path changes on disk the
current delivery is cancelled, the mode is re-selected and delivery starts
over.

Examples:
  # Stream updates from a static JSON file
  confsource --source.path=/etc/presence/config.json

  # Stream updates from an executable config script
  confsource --source.path=~/.config/presence/config.sh

  # Widen the reload coalescing window
  confsource --source.path=config.json --source.coalesce-window=2s

Configuration:
  Configuration can be provided via:
  - Command-line flags (highest priority)
  - Environment variables (prefix: CONFSOURCE_)
  - Configuration file (YAML)
  - Default values (lowest priority)`
)

// NewApp creates the daemon application instance.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(appName),
		app.WithShortDescription("Hot-reloading config update stream"),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return Run(opts)
		}),
	)
}

// Run runs the daemon with the given options until interrupted.
func Run(opts *Options) error {
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Flush() }()

	logger.Infow("Starting confsource",
		"app", appName,
		"version", app.GetVersion(),
		"path", opts.Source.Path,
	)

	src, err := source.New(opts.Source.Path,
		source.WithCoalesceWindow(opts.Source.CoalesceWindow),
		source.WithBuffer(opts.Source.Buffer),
	)
	if err != nil {
		return fmt.Errorf("failed to create config source: %w", err)
	}
	defer func() { _ = src.Close() }()

	sink := NewStreamSink(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down")
			return nil
		case msg, ok := <-src.Updates():
			if !ok {
				return nil
			}
			if err := sink.Apply(msg); err != nil {
				return fmt.Errorf("failed to write update: %w", err)
			}
		}
	}
}
