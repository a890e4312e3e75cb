package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/koenvw/pane-runner/internal/model"
	"github.com/koenvw/pane-runner/internal/picker"
	"github.com/spf13/cobra"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Interactively pick a pane target",
	Long: `Walk through session, window, and pane selection and print the
resulting target ("session:window.pane") on stdout.

Levels with exactly one candidate are selected automatically without
prompting. Cancelling prints nothing and exits zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		sel, err := resolveTarget(ctx, a, a.chooser())
		if err != nil {
			if errors.Is(err, picker.ErrCancelled) {
				return nil
			}
			return err
		}
		fmt.Println(sel.Target())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetCmd)
}

// resolveTarget builds a complete Selection by walking session, window,
// and pane candidates through the chooser. Cancellation at any level
// clears the selection and returns picker.ErrCancelled.
func resolveTarget(ctx context.Context, a *app, c picker.Chooser) (model.Selection, error) {
	var sel model.Selection

	sessions, err := a.mux.ListSessions(ctx)
	if err != nil {
		return sel, err
	}
	session, err := picker.Resolve(c, "session", sessions)
	if err != nil {
		sel.Clear()
		return sel, err
	}
	sel.SetSession(session)

	windows, err := a.mux.WindowIDs(ctx, sel.Session)
	if err != nil {
		return sel, err
	}
	window, err := picker.Resolve(c, "window", windows)
	if err != nil {
		sel.Clear()
		return sel, err
	}
	sel.SetWindow(window)

	panes, err := a.mux.PaneIDs(ctx, sel.Session+":"+sel.Window)
	if err != nil {
		return sel, err
	}
	pane, err := picker.Resolve(c, "pane", panes)
	if err != nil {
		sel.Clear()
		return sel, err
	}
	sel.SetPane(pane)

	if !sel.IsComplete() {
		return sel, fmt.Errorf("incomplete selection %s", sel.Target())
	}
	return sel, nil
}
