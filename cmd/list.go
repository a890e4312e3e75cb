package cmd

import (
	"fmt"
	"regexp"

	"github.com/koenvw/pane-runner/internal/model"
	"github.com/spf13/cobra"
)

var flagListFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all pane targets",
	Long: `List every pane as a target, one per line.

Each line is a target ("session:window.pane") that can be passed to
other commands (send --target). Optionally filter by session name
using a regex pattern.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter *regexp.Regexp
		if flagListFilter != "" {
			re, err := regexp.Compile(flagListFilter)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			filter = re
		}

		a, ctx, err := open(cmd)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		sessions, err := a.mux.ListSessions(ctx)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		for _, session := range sessions {
			if filter != nil && !filter.MatchString(session) {
				continue
			}
			windows, err := a.mux.WindowIDs(ctx, session)
			if err != nil {
				return err
			}
			for _, window := range windows {
				panes, err := a.mux.PaneIDs(ctx, session+":"+window)
				if err != nil {
					return err
				}
				for _, pane := range panes {
					fmt.Println(model.FormatTarget(session, window, pane))
				}
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&flagListFilter, "filter", "", "regex pattern to filter by session name")
	rootCmd.AddCommand(listCmd)
}
