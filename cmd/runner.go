package cmd

import (
	"context"

	"github.com/koenvw/pane-runner/internal/runner"
	"github.com/spf13/cobra"
)

// The runner maintenance commands operate on the window's existing
// runner pane and fail with runner.ErrNoRunner when there is none;
// none of them creates a runner implicitly.

var flagRunnerWindow string

var interruptCmd = &cobra.Command{
	Use:   "interrupt",
	Short: "Send Ctrl-C to the runner pane",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd, func(ctx context.Context, mgr *runner.Manager, window string) error {
			return mgr.Interrupt(ctx, window)
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the runner pane's scrollback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd, func(ctx context.Context, mgr *runner.Manager, window string) error {
			return mgr.ClearHistory(ctx, window)
		})
	},
}

var zoomCmd = &cobra.Command{
	Use:   "zoom",
	Short: "Toggle zoom on the runner pane",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd, func(ctx context.Context, mgr *runner.Manager, window string) error {
			return mgr.Zoom(ctx, window)
		})
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Focus the runner pane and enter copy mode",
	Long: `Move focus to the window's runner pane and enter tmux copy mode so
its output can be scrolled and searched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd, func(ctx context.Context, mgr *runner.Manager, window string) error {
			return mgr.Inspect(ctx, window)
		})
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Kill the runner pane",
	Long: `Kill the window's runner pane and forget it. A window without a
runner is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(cmd, func(ctx context.Context, mgr *runner.Manager, window string) error {
			return mgr.Close(ctx, window)
		})
	},
}

// withRunner wires the shared setup for runner maintenance commands.
func withRunner(cmd *cobra.Command, fn func(ctx context.Context, mgr *runner.Manager, window string) error) error {
	a, ctx, err := open(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	window, err := a.window(ctx, flagRunnerWindow)
	if err != nil {
		return err
	}
	return fn(ctx, a.manager(), window)
}

func init() {
	for _, c := range []*cobra.Command{interruptCmd, clearCmd, zoomCmd, inspectCmd, closeCmd} {
		c.Flags().StringVar(&flagRunnerWindow, "window", "", "window id (default: active window)")
		rootCmd.AddCommand(c)
	}
}
