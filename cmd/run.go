package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagRunWindow string
	flagRunDir    string
	flagRunLast   bool
)

var runCmd = &cobra.Command{
	Use:   "run [text]...",
	Short: "Run a command in the window's runner pane",
	Long: `Send a shell command to the window's runner pane, creating the
runner first if the window has none.

A new runner is split off with the configured orientation and size
(or, with use_nearest, reuses the nearest inactive pane) and cd'd to
--dir before the command is sent. Focus returns to the pane that was
active before the call. Use --last to repeat the window's previous
command.

Remote directories in TRAMP form (/ssh:user@host:/path) or URL form
(ssh://user@host/path) open the ssh login in the runner first, then cd
to the remote path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagRunLast && len(args) == 0 {
			return fmt.Errorf("nothing to run: pass a command or --last")
		}

		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		window, err := a.window(ctx, flagRunWindow)
		if err != nil {
			return err
		}
		mgr := a.manager()

		text := strings.Join(args, " ")
		if flagRunLast {
			last, err := mgr.LastCommand(ctx, window)
			if err != nil {
				return err
			}
			if last == "" {
				return fmt.Errorf("no command recorded for window %s", window)
			}
			text = last
		}

		dir := flagRunDir
		if dir == "" {
			if wd, err := os.Getwd(); err == nil {
				dir = wd
			}
		}

		return mgr.RunCommand(ctx, window, dir, text)
	},
}

func init() {
	runCmd.Flags().StringVar(&flagRunWindow, "window", "", "window id (default: active window)")
	runCmd.Flags().StringVar(&flagRunDir, "dir", "", "directory for a newly created runner (default: current directory; TRAMP and ssh:// forms are remote)")
	runCmd.Flags().BoolVar(&flagRunLast, "last", false, "re-run the window's previous command")
	rootCmd.AddCommand(runCmd)
}
