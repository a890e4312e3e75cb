package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/koenvw/pane-runner/internal/config"
	"github.com/koenvw/pane-runner/internal/mux"
	telem "github.com/koenvw/pane-runner/internal/otel"
	"github.com/koenvw/pane-runner/internal/picker"
	"github.com/koenvw/pane-runner/internal/runner"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

var (
	// Global flags.
	flagMux     string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pane-runner",
	Short: "Drive tmux panes from your editor",
	Long: `pane-runner is editor-to-tmux glue: send text to panes, keep one
runner pane per window for shell commands, yank tmux paste buffers,
and navigate windows and panes.

Each invocation is one synchronous operation against the tmux server.
Bind editor keys to pane-runner subcommands; runner state is recorded
in tmux window options so consecutive invocations agree on which pane
is the runner.

Configuration is loaded from .pane-runner.yaml or environment
variables (PANE_RUNNER_*).`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", envOrDefault("PANE_RUNNER_MUX", ""), "terminal multiplexer: tmux (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "report config file and telemetry wiring on stderr")
}

// app bundles what one invocation needs: loaded config, a reachable
// multiplexer, and telemetry. Commands build it once in RunE and close
// it on return.
type app struct {
	cfg  *config.Config
	mux  *mux.Tmux
	tel  *telem.Telemetry
	span trace.Span
}

// open loads config, initializes telemetry, connects the multiplexer,
// and fails fast when no tmux server is reachable. The whole
// invocation runs inside one span named after the command; the
// returned context carries it.
func open(cmd *cobra.Command) (*app, context.Context, error) {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return nil, ctx, fmt.Errorf("config: %w", err)
	}
	if flagMux != "" {
		cfg.Mux = flagMux
	}
	if flagVerbose && cfg.ConfigFile != "" {
		fmt.Fprintf(os.Stderr, "config: loaded %s\n", cfg.ConfigFile)
	}

	telem.Version = Version
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}

	a := &app{cfg: cfg, tel: tel}
	if tel != nil {
		ctx, a.span = tel.Tracer.Start(ctx, cmd.Name())
	}

	m, err := getMultiplexer(cfg)
	if err != nil {
		a.close(ctx)
		return nil, ctx, err
	}
	a.mux = m
	if tel != nil && tel.Metrics != nil {
		metrics := tel.Metrics
		m.Observe(func(subcommand string, err error) {
			metrics.RecordMuxCall(ctx, subcommand, err != nil)
		})
	}
	if err := m.ServerRunning(ctx); err != nil {
		a.close(ctx)
		return nil, ctx, fmt.Errorf("tmux server: %w", err)
	}

	return a, ctx, nil
}

// close ends the invocation span and flushes telemetry. Safe on a
// partially built app.
func (a *app) close(ctx context.Context) {
	if a.span != nil {
		a.span.End()
	}
	if a.tel != nil {
		a.tel.Shutdown(ctx)
	}
}

// manager builds the runner-pane manager with records kept in tmux
// window options, so every invocation sees the same runner.
func (a *app) manager() *runner.Manager {
	mgr := runner.NewManager(a.mux, &runner.TmuxRegistry{Options: a.mux}, runner.Config{
		Orientation: a.cfg.Orientation,
		Height:      a.cfg.Height,
		UseNearest:  a.cfg.UseNearest,
	})
	if a.tel != nil && a.tel.Metrics != nil {
		mgr.Notify(a.tel.Metrics)
	}
	return mgr
}

// chooser returns the interactive chooser for the current terminal.
func (a *app) chooser() picker.Chooser {
	return picker.Default()
}

// bufferFormat resolves the configured paste-buffer listing format.
func (a *app) bufferFormat() (mux.BufferFormat, error) {
	if a.cfg.BufferPattern != "" {
		return mux.CustomFormat(a.cfg.BufferPattern, a.cfg.BufferByName)
	}
	return mux.FormatByName(a.cfg.BufferFormat)
}

// window resolves the window a runner command operates on: an explicit
// flag value wins, then the attached client's current window, then the
// active window parsed from the listing (when no client is attached).
func (a *app) window(ctx context.Context, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if w, err := a.mux.CurrentWindow(ctx, ""); err == nil && w != "" {
		return w, nil
	}
	w, err := a.mux.ActiveWindow(ctx, "")
	if err != nil {
		return "", err
	}
	if w == "" {
		return "", fmt.Errorf("could not determine the active window (pass --window)")
	}
	return w, nil
}

// getMultiplexer returns the configured or auto-detected multiplexer.
func getMultiplexer(cfg *config.Config) (*mux.Tmux, error) {
	if cfg.Mux != "" {
		return mux.FromName(cfg.Mux)
	}
	return mux.Detect()
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
