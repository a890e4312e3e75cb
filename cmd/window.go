package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/koenvw/pane-runner/internal/model"
	"github.com/spf13/cobra"
)

var (
	flagNewWindowAdjacent bool
	flagNewWindowDir      string
	flagNewWindowCommand  string

	flagSplitOrientation string
	flagSplitSize        int
	flagSplitDir         string
	flagSplitCommand     string
)

var newWindowCmd = &cobra.Command{
	Use:   "new-window",
	Short: "Create a window carrying the current context",
	Long: `Create a tmux window, cd it to --dir, and optionally start a command
in it (clone_command in the config, typically an editor client; what
the client does with its layout is its own business).

With --adjacent the window is inserted right after the current one
instead of at the end of the window list. Remote directories (TRAMP
or ssh:// form) open the ssh login first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		if err := a.mux.NewWindow(ctx, flagNewWindowAdjacent); err != nil {
			return err
		}
		// The new window takes focus, so the active pane is the one to
		// prepare.
		return prepareActivePane(ctx, a, flagNewWindowDir, cloneCommand(a, flagNewWindowCommand))
	},
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the current pane carrying the current context",
	Long: `Split the current pane, cd the new pane to --dir, and optionally
start a command in it (clone_command in the config).

Orientation and size default to the configured runner policy. Remote
directories (TRAMP or ssh:// form) open the ssh login first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		orientation := flagSplitOrientation
		if orientation == "" {
			orientation = a.cfg.Orientation
		}
		size := flagSplitSize
		if size == 0 {
			size = a.cfg.Height
		}
		if err := a.mux.SplitWindow(ctx, "", orientation, size); err != nil {
			return err
		}
		// The fresh split takes focus.
		return prepareActivePane(ctx, a, flagSplitDir, cloneCommand(a, flagSplitCommand))
	},
}

var closeOthersCmd = &cobra.Command{
	Use:   "close-others",
	Short: "Kill every pane in the window except the focused one",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		window, err := a.mux.ActiveWindow(ctx, "")
		if err != nil {
			return err
		}
		pane, err := a.mux.ActivePane(ctx, window)
		if err != nil {
			return err
		}
		if window == "" || pane == "" {
			return fmt.Errorf("could not resolve the focused pane")
		}
		return a.mux.KillOtherPanes(ctx, window+"."+pane)
	},
}

// cloneCommand resolves the command to start in a cloned pane: the
// flag wins, then the configured clone_command, then nothing.
func cloneCommand(a *app, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return a.cfg.CloneCommand
}

// prepareActivePane points the currently focused pane at dir and
// starts command in it. An empty dir falls back to the process working
// directory; an empty command skips the start.
func prepareActivePane(ctx context.Context, a *app, dir, command string) error {
	window, err := a.mux.ActiveWindow(ctx, "")
	if err != nil {
		return err
	}
	pane, err := a.mux.ActivePane(ctx, window)
	if err != nil {
		return err
	}
	if window == "" || pane == "" {
		return fmt.Errorf("could not resolve the focused pane")
	}
	target := window + "." + pane

	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	if dir != "" {
		if remote, ok := model.ParseRemote(dir); ok {
			if err := a.mux.SendKeys(ctx, target, remote.Login); err != nil {
				return err
			}
			if err := a.mux.SendKeys(ctx, target, "cd "+remote.Path); err != nil {
				return err
			}
		} else if err := a.mux.SendKeys(ctx, target, "cd "+dir); err != nil {
			return err
		}
	}

	if command != "" {
		return a.mux.SendKeys(ctx, target, command)
	}
	return nil
}

func init() {
	newWindowCmd.Flags().BoolVar(&flagNewWindowAdjacent, "adjacent", false, "insert the window after the current one")
	newWindowCmd.Flags().StringVar(&flagNewWindowDir, "dir", "", "directory for the new window (default: current directory)")
	newWindowCmd.Flags().StringVar(&flagNewWindowCommand, "command", "", "command to start in the new window (default: clone_command)")
	rootCmd.AddCommand(newWindowCmd)
	rootCmd.AddCommand(closeOthersCmd)

	splitCmd.Flags().StringVar(&flagSplitOrientation, "orientation", "", "split orientation: vertical or horizontal (default: configured)")
	splitCmd.Flags().IntVar(&flagSplitSize, "size", 0, "split size in percent (default: configured)")
	splitCmd.Flags().StringVar(&flagSplitDir, "dir", "", "directory for the new pane (default: current directory)")
	splitCmd.Flags().StringVar(&flagSplitCommand, "command", "", "command to start in the new pane (default: clone_command)")
	rootCmd.AddCommand(splitCmd)
}
