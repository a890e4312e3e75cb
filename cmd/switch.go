package cmd

import (
	"errors"

	"github.com/koenvw/pane-runner/internal/picker"
	"github.com/spf13/cobra"
)

var flagSwitchSessionOnly bool

var switchCmd = &cobra.Command{
	Use:   "switch",
	Short: "Switch to another session and window",
	Long: `Choose a session and switch the attached client to it, then choose
one of its windows and select it.

Levels with exactly one candidate are selected automatically. Use
--session-only to stop after the session switch. Cancelling before
the session switch is a no-op; cancelling at the window level keeps
the session switch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)
		c := a.chooser()

		sessions, err := a.mux.ListSessions(ctx)
		if err != nil {
			return err
		}
		session, err := picker.Resolve(c, "session", sessions)
		if err != nil {
			if errors.Is(err, picker.ErrCancelled) {
				return nil
			}
			return err
		}
		if err := a.mux.SwitchClient(ctx, session); err != nil {
			return err
		}
		if flagSwitchSessionOnly {
			return nil
		}

		windows, err := a.mux.WindowIDs(ctx, session)
		if err != nil {
			return err
		}
		window, err := picker.Resolve(c, "window", windows)
		if err != nil {
			if errors.Is(err, picker.ErrCancelled) {
				return nil
			}
			return err
		}
		return a.mux.SelectWindow(ctx, session+":"+window)
	},
}

func init() {
	switchCmd.Flags().BoolVar(&flagSwitchSessionOnly, "session-only", false, "switch the session without choosing a window")
	rootCmd.AddCommand(switchCmd)
}
